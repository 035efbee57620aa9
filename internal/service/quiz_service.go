package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"eyecare-service/internal/event"
	"eyecare-service/internal/models"
	"eyecare-service/internal/quiz"
	"eyecare-service/internal/repository"
	"eyecare-service/internal/scoring"
)

var (
	ErrNotEnoughQuestions = errors.New("not enough questions seeded for a quiz")
	ErrNotAttemptOwner    = errors.New("quiz attempt belongs to another user")
	ErrQuestionOutOfRange = errors.New("question index out of range")
)

// QuestionSource and ResultSink are the quiz flow's persistence seams,
// satisfied by the Mongo repositories in production and by fakes in tests.
type QuestionSource interface {
	FindAll(ctx context.Context) ([]models.VisionQuestion, error)
}

type ResultSink interface {
	Create(ctx context.Context, result *models.VisionResult) error
	FindByUsername(ctx context.Context, username string, limit int64) ([]models.VisionResult, error)
}

// NarrativeGenerator produces the AI report for a finished quiz.
type NarrativeGenerator interface {
	VisionReport(ctx context.Context, correct, total int, weakAreas []string) (string, error)
}

// QuizService runs the vision-quiz lifecycle: start samples a question
// snapshot into a Redis attempt, answers mutate the attempt, finish pops it,
// scores it with the evaluator core and persists the result.
type QuizService struct {
	Questions QuestionSource
	Results   ResultSink
	Attempts  *repository.AttemptStore
	Sampler   *quiz.Sampler
	Narrator  NarrativeGenerator
	Publisher *event.Publisher
	QuizSize  int
}

func NewQuizService(
	questions QuestionSource,
	results ResultSink,
	attempts *repository.AttemptStore,
	sampler *quiz.Sampler,
	narrator NarrativeGenerator,
	publisher *event.Publisher,
	quizSize int,
) *QuizService {
	return &QuizService{
		Questions: questions,
		Results:   results,
		Attempts:  attempts,
		Sampler:   sampler,
		Narrator:  narrator,
		Publisher: publisher,
		QuizSize:  quizSize,
	}
}

// StartResponse hands the client its attempt token and the first question.
type StartResponse struct {
	Token    string              `json:"token"`
	Total    int                 `json:"total"`
	Question models.QuestionView `json:"question"`
}

func (s *QuizService) Start(ctx context.Context, username string) (*StartResponse, error) {
	pool, err := s.Questions.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	picked, err := s.Sampler.Sample(pool, s.QuizSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotEnoughQuestions, err)
	}

	attempt := &models.QuizAttempt{
		Token:     uuid.NewString(),
		Username:  username,
		Questions: picked,
		Answers:   make(map[int]string),
		Current:   0,
		StartedAt: time.Now().UTC(),
	}
	if err := s.Attempts.Save(ctx, attempt); err != nil {
		return nil, err
	}

	s.Publisher.Publish("quiz.started", map[string]string{
		"token":    attempt.Token,
		"username": username,
	})
	return &StartResponse{
		Token:    attempt.Token,
		Total:    len(attempt.Questions),
		Question: attempt.Questions[0].View(0),
	}, nil
}

// Question returns the display payload for one question of a running
// attempt. The expected answer never leaves the server.
func (s *QuizService) Question(ctx context.Context, token, username string, index int) (*models.QuestionView, error) {
	attempt, err := s.attemptFor(ctx, token, username)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(attempt.Questions) {
		return nil, ErrQuestionOutOfRange
	}
	view := attempt.Questions[index].View(index)
	return &view, nil
}

// Answer records the raw submission for a question and optionally advances
// the attempt cursor.
func (s *QuizService) Answer(ctx context.Context, token, username string, index int, answer string, advance bool) error {
	attempt, err := s.attemptFor(ctx, token, username)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(attempt.Questions) {
		return ErrQuestionOutOfRange
	}
	attempt.SetAnswer(index, answer, advance)
	return s.Attempts.Save(ctx, attempt)
}

// Finish pops the attempt (tokens are single use), scores it and persists
// the result. The AI narrative is best-effort: a failed model call degrades
// to a stock line instead of losing the attempt.
func (s *QuizService) Finish(ctx context.Context, token, username string) (*models.VisionResult, error) {
	attempt, err := s.attemptFor(ctx, token, username)
	if err != nil {
		return nil, err
	}
	if err := s.Attempts.Delete(ctx, token); err != nil {
		return nil, err
	}

	questions := make([]scoring.Question, len(attempt.Questions))
	for i, q := range attempt.Questions {
		questions[i] = q.ToScoring(i)
	}
	scored := scoring.Score(questions, attempt.Answers)

	narrative, err := s.Narrator.VisionReport(ctx, scored.CorrectCount, scored.TotalCount, scored.WeakAreas)
	if err != nil {
		log.Printf("vision narrative unavailable: %v", err)
		narrative = "AI report unavailable. Please review the score breakdown with an eye-care professional."
	}

	result := models.NewVisionResult(username, scored, narrative)
	result.CreatedAt = time.Now().UTC()
	if err := s.Results.Create(ctx, result); err != nil {
		return nil, err
	}

	s.Publisher.Publish("quiz.completed", map[string]interface{}{
		"username": username,
		"score":    result.ScorePercent,
		"risk":     result.Risk,
	})
	return result, nil
}

// History returns the user's ten most recent results.
func (s *QuizService) History(ctx context.Context, username string) ([]models.VisionResult, error) {
	return s.Results.FindByUsername(ctx, username, 10)
}

func (s *QuizService) attemptFor(ctx context.Context, token, username string) (*models.QuizAttempt, error) {
	attempt, err := s.Attempts.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if attempt.Username != username {
		return nil, ErrNotAttemptOwner
	}
	return attempt, nil
}
