package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"eyecare-service/internal/models"
	"eyecare-service/internal/quiz"
	"eyecare-service/internal/repository"
)

type fakeQuestionSource struct {
	pool []models.VisionQuestion
	err  error
}

func (f *fakeQuestionSource) FindAll(ctx context.Context) ([]models.VisionQuestion, error) {
	return f.pool, f.err
}

type fakeResultSink struct {
	saved []*models.VisionResult
}

func (f *fakeResultSink) Create(ctx context.Context, result *models.VisionResult) error {
	f.saved = append(f.saved, result)
	return nil
}

func (f *fakeResultSink) FindByUsername(ctx context.Context, username string, limit int64) ([]models.VisionResult, error) {
	var out []models.VisionResult
	for _, r := range f.saved {
		if r.Username == username {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeNarrator struct {
	report string
	err    error
	calls  int
}

func (f *fakeNarrator) VisionReport(ctx context.Context, correct, total int, weakAreas []string) (string, error) {
	f.calls++
	return f.report, f.err
}

func questionPool(n int) []models.VisionQuestion {
	pool := make([]models.VisionQuestion, n)
	for i := range pool {
		pool[i] = models.VisionQuestion{
			Seq:     i + 1,
			Prompt:  fmt.Sprintf("question %d", i+1),
			Image:   fmt.Sprintf("questions/q%d.png", i+1),
			Options: []string{"a", "b", "c", "d"},
			Answer:  "a",
		}
	}
	return pool
}

func newTestQuizService(t *testing.T, pool []models.VisionQuestion, narrator *fakeNarrator) (*QuizService, *fakeResultSink) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sink := &fakeResultSink{}
	svc := NewQuizService(
		&fakeQuestionSource{pool: pool},
		sink,
		repository.NewAttemptStore(client, 30*time.Minute),
		quiz.NewSampler(rand.NewSource(1)),
		narrator,
		nil,
		3,
	)
	return svc, sink
}

func TestQuizStartAnswerFinish(t *testing.T) {
	narrator := &fakeNarrator{report: "Your tracking could use practice."}
	svc, sink := newTestQuizService(t, questionPool(10), narrator)
	ctx := context.Background()

	started, err := svc.Start(ctx, "alice")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if started.Token == "" || started.Total != 3 {
		t.Fatalf("unexpected start response: %+v", started)
	}
	if started.Question.Index != 0 {
		t.Errorf("first question index = %d, want 0", started.Question.Index)
	}

	// Answer every question correctly; the pool's answers are all "a".
	for i := 0; i < started.Total; i++ {
		if err := svc.Answer(ctx, started.Token, "alice", i, "a", true); err != nil {
			t.Fatalf("Answer(%d) failed: %v", i, err)
		}
	}

	result, err := svc.Finish(ctx, started.Token, "alice")
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if result.ScorePercent != 100 || result.CorrectCount != 3 || result.TotalCount != 3 {
		t.Errorf("score = %d (%d/%d), want 100 (3/3)",
			result.ScorePercent, result.CorrectCount, result.TotalCount)
	}
	if result.AIReport != narrator.report {
		t.Errorf("AIReport = %q, want narrator output", result.AIReport)
	}
	if narrator.calls != 1 {
		t.Errorf("narrator called %d times, want 1", narrator.calls)
	}
	if len(sink.saved) != 1 {
		t.Fatalf("persisted %d results, want 1", len(sink.saved))
	}

	history, err := svc.History(ctx, "alice")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 1 || history[0].Username != "alice" {
		t.Errorf("unexpected history: %+v", history)
	}
}

func TestQuizStartFailsOnSmallPool(t *testing.T) {
	svc, _ := newTestQuizService(t, questionPool(2), &fakeNarrator{})

	_, err := svc.Start(context.Background(), "alice")
	if !errors.Is(err, ErrNotEnoughQuestions) {
		t.Errorf("err = %v, want ErrNotEnoughQuestions", err)
	}
}

func TestQuizQuestionHidesAnswerAndChecksRange(t *testing.T) {
	svc, _ := newTestQuizService(t, questionPool(10), &fakeNarrator{})
	ctx := context.Background()

	started, err := svc.Start(ctx, "alice")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	view, err := svc.Question(ctx, started.Token, "alice", 1)
	if err != nil {
		t.Fatalf("Question failed: %v", err)
	}
	if view.Index != 1 || view.Prompt == "" {
		t.Errorf("unexpected view: %+v", view)
	}

	if _, err := svc.Question(ctx, started.Token, "alice", 3); !errors.Is(err, ErrQuestionOutOfRange) {
		t.Errorf("out-of-range err = %v, want ErrQuestionOutOfRange", err)
	}
	if _, err := svc.Question(ctx, started.Token, "alice", -1); !errors.Is(err, ErrQuestionOutOfRange) {
		t.Errorf("negative index err = %v, want ErrQuestionOutOfRange", err)
	}
}

func TestQuizRejectsOtherUsersToken(t *testing.T) {
	svc, _ := newTestQuizService(t, questionPool(10), &fakeNarrator{})
	ctx := context.Background()

	started, err := svc.Start(ctx, "alice")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if _, err := svc.Question(ctx, started.Token, "mallory", 0); !errors.Is(err, ErrNotAttemptOwner) {
		t.Errorf("Question err = %v, want ErrNotAttemptOwner", err)
	}
	if err := svc.Answer(ctx, started.Token, "mallory", 0, "a", false); !errors.Is(err, ErrNotAttemptOwner) {
		t.Errorf("Answer err = %v, want ErrNotAttemptOwner", err)
	}
	if _, err := svc.Finish(ctx, started.Token, "mallory"); !errors.Is(err, ErrNotAttemptOwner) {
		t.Errorf("Finish err = %v, want ErrNotAttemptOwner", err)
	}

	// The owner's attempt must survive the rejected finish.
	if _, err := svc.Question(ctx, started.Token, "alice", 0); err != nil {
		t.Errorf("owner lost attempt after rejected finish: %v", err)
	}
}

func TestQuizFinishIsSingleUse(t *testing.T) {
	svc, _ := newTestQuizService(t, questionPool(10), &fakeNarrator{})
	ctx := context.Background()

	started, err := svc.Start(ctx, "alice")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := svc.Finish(ctx, started.Token, "alice"); err != nil {
		t.Fatalf("first Finish failed: %v", err)
	}
	if _, err := svc.Finish(ctx, started.Token, "alice"); !errors.Is(err, repository.ErrAttemptNotFound) {
		t.Errorf("second Finish err = %v, want ErrAttemptNotFound", err)
	}
}

func TestQuizFinishDegradesWhenNarratorFails(t *testing.T) {
	narrator := &fakeNarrator{err: errors.New("model offline")}
	svc, _ := newTestQuizService(t, questionPool(10), narrator)
	ctx := context.Background()

	started, err := svc.Start(ctx, "alice")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	result, err := svc.Finish(ctx, started.Token, "alice")
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if result.AIReport == "" {
		t.Error("expected fallback AI report, got empty string")
	}
	// Unanswered questions count as wrong.
	if result.CorrectCount != 0 || result.TotalCount != 3 {
		t.Errorf("score = %d/%d, want 0/3", result.CorrectCount, result.TotalCount)
	}
}
