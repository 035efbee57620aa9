package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"eyecare-service/internal/ai"
	"eyecare-service/internal/event"
	"eyecare-service/internal/models"
	"eyecare-service/internal/repository"
	"eyecare-service/internal/storage"
)

var (
	ErrInvalidFileType = errors.New("only png, jpg and jpeg images are accepted")
	ErrNotScanOwner    = errors.New("scan belongs to another user")
)

var allowedScanExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

type ScanService struct {
	Repo      *repository.ScanRepository
	Store     *storage.ScanStore
	AI        *ai.Client
	Publisher *event.Publisher
}

func NewScanService(repo *repository.ScanRepository, store *storage.ScanStore, aiClient *ai.Client, publisher *event.Publisher) *ScanService {
	return &ScanService{Repo: repo, Store: store, AI: aiClient, Publisher: publisher}
}

// Upload stores the image, runs the AI analysis and persists the scan
// document. The analysis is part of the upload contract; if it fails the
// upload fails and nothing is kept.
func (s *ScanService) Upload(ctx context.Context, username, filename, contentType string, data []byte) (*models.EyeScan, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedScanExt[ext] {
		return nil, ErrInvalidFileType
	}

	analysis, err := s.AI.AnalyzeScan(ctx, data, contentType)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("%s_%s", time.Now().UTC().Format("20060102150405.000000"), filepath.Base(filename))
	if err := s.Store.Upload(ctx, objectKey, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, err
	}

	scan := &models.EyeScan{
		Username:    username,
		Filename:    filepath.Base(filename),
		ObjectKey:   objectKey,
		ContentType: contentType,
		AIResult:    analysis,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, scan); err != nil {
		return nil, err
	}

	s.Publisher.Publish("scan.uploaded", map[string]string{
		"scan_id":  scan.ID,
		"username": username,
	})
	return scan, nil
}

func (s *ScanService) GetScan(ctx context.Context, id string) (*models.EyeScan, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *ScanService) ListForUser(ctx context.Context, username string) ([]models.EyeScan, error) {
	return s.Repo.FindByUsername(ctx, username)
}

func (s *ScanService) ListAll(ctx context.Context) ([]models.EyeScan, error) {
	return s.Repo.FindAll(ctx)
}

// Delete removes a scan and its stored image; only the owner may delete.
func (s *ScanService) Delete(ctx context.Context, id, username string) error {
	scan, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if scan.Username != username {
		return ErrNotScanOwner
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	// The document is gone; a leaked object is only storage noise.
	_ = s.Store.Delete(ctx, scan.ObjectKey)
	return nil
}

// Validate records a technician's review on the scan.
func (s *ScanService) Validate(ctx context.Context, id, notes, technician string) error {
	if err := s.Repo.Validate(ctx, id, notes); err != nil {
		return err
	}
	s.Publisher.Publish("scan.validated", map[string]string{
		"scan_id":    id,
		"technician": technician,
	})
	return nil
}

// ImageURL returns a short-lived download link for the scan image.
func (s *ScanService) ImageURL(ctx context.Context, scan *models.EyeScan) (string, error) {
	return s.Store.PresignedURL(ctx, scan.ObjectKey, 15*time.Minute)
}
