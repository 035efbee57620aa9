package repository

import (
	"context"

	"eyecare-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProfileRepository struct {
	Col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{Col: db.Collection("patient_profiles")}
}

func (r *ProfileRepository) FindByUsername(ctx context.Context, username string) (*models.PatientProfile, error) {
	var profile models.PatientProfile
	err := r.Col.FindOne(ctx, bson.M{"username": username}).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert replaces the profile fields for a username, creating the document
// on first save.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.PatientProfile) error {
	// The username is the real key; never carry a client-supplied id into
	// the $set document.
	profile.ID = ""
	_, err := r.Col.UpdateOne(ctx,
		bson.M{"username": profile.Username},
		bson.M{"$set": profile},
		options.Update().SetUpsert(true),
	)
	return err
}
