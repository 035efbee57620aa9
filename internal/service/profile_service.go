package service

import (
	"context"
	"time"

	"eyecare-service/internal/models"
	"eyecare-service/internal/repository"
)

type ProfileService struct {
	Repo *repository.ProfileRepository
}

func NewProfileService(repo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{Repo: repo}
}

func (s *ProfileService) GetProfile(ctx context.Context, username string) (*models.PatientProfile, error) {
	return s.Repo.FindByUsername(ctx, username)
}

func (s *ProfileService) SaveProfile(ctx context.Context, profile *models.PatientProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	return s.Repo.Upsert(ctx, profile)
}
