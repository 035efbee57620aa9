package service

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson"

	"eyecare-service/internal/models"
	"eyecare-service/internal/quiz"
	"eyecare-service/internal/repository"
)

type QuestionService struct {
	Repo *repository.QuestionRepository
}

func NewQuestionService(repo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{Repo: repo}
}

func (s *QuestionService) ListQuestions(ctx context.Context) ([]models.VisionQuestion, error) {
	return s.Repo.FindAll(ctx)
}

func (s *QuestionService) CreateQuestion(ctx context.Context, question *models.VisionQuestion) error {
	return s.Repo.Create(ctx, question)
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, id string, update map[string]any) error {
	return s.Repo.Update(ctx, id, bson.M(update))
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// ImportWorkbook parses an uploaded .xlsx workbook and bulk-inserts its
// questions, returning how many were seeded.
func (s *QuestionService) ImportWorkbook(ctx context.Context, r io.Reader) (int, error) {
	questions, err := quiz.LoadWorkbook(r)
	if err != nil {
		return 0, err
	}
	return s.Repo.CreateMany(ctx, questions)
}
