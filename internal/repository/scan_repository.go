package repository

import (
	"context"

	"eyecare-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ScanRepository struct {
	Col *mongo.Collection
}

func NewScanRepository(db *mongo.Database) *ScanRepository {
	return &ScanRepository{Col: db.Collection("images")}
}

// Create inserts the scan under a generated hex id. Ids are stored as plain
// strings so lookups never need ObjectID round-trips.
func (r *ScanRepository) Create(ctx context.Context, scan *models.EyeScan) error {
	if scan.ID == "" {
		scan.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Col.InsertOne(ctx, scan)
	return err
}

func (r *ScanRepository) FindByID(ctx context.Context, id string) (*models.EyeScan, error) {
	var scan models.EyeScan
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&scan); err != nil {
		return nil, err
	}
	return &scan, nil
}

func (r *ScanRepository) FindByUsername(ctx context.Context, username string) ([]models.EyeScan, error) {
	return r.find(ctx, bson.M{"username": username})
}

// FindAll returns every scan, newest first, for the technician queue.
func (r *ScanRepository) FindAll(ctx context.Context) ([]models.EyeScan, error) {
	return r.find(ctx, bson.M{})
}

func (r *ScanRepository) find(ctx context.Context, filter bson.M) ([]models.EyeScan, error) {
	cur, err := r.Col.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var scans []models.EyeScan
	for cur.Next(ctx) {
		var s models.EyeScan
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		scans = append(scans, s)
	}
	return scans, nil
}

func (r *ScanRepository) Delete(ctx context.Context, id string) error {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Validate marks a scan as technician-reviewed and stores the notes.
func (r *ScanRepository) Validate(ctx context.Context, id, notes string) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"tech_validated": true,
		"tech_notes":     notes,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
