package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"eyecare-service/internal/models"
)

func newTestStore(t *testing.T) (*AttemptStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewAttemptStore(client, 30*time.Minute), mr
}

func sampleAttempt() *models.QuizAttempt {
	return &models.QuizAttempt{
		Token:    "tok-1",
		Username: "alice",
		Questions: []models.VisionQuestion{
			{Seq: 1, Prompt: "How many letters?", Answer: "6"},
			{Seq: 2, Prompt: "Which word?", Answer: "TREE"},
		},
		Answers:   map[int]string{0: "6"},
		Current:   1,
		StartedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestAttemptStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleAttempt()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Username != "alice" || len(got.Questions) != 2 {
		t.Errorf("unexpected attempt: %+v", got)
	}
	if got.Answers[0] != "6" || got.Current != 1 {
		t.Errorf("answers/cursor not preserved: %+v", got)
	}
}

func TestAttemptStoreMissingToken(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, ErrAttemptNotFound) {
		t.Errorf("err = %v, want ErrAttemptNotFound", err)
	}
}

func TestAttemptStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleAttempt()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	mr.FastForward(31 * time.Minute)

	if _, err := store.Get(ctx, "tok-1"); !errors.Is(err, ErrAttemptNotFound) {
		t.Errorf("expected attempt to expire, got err = %v", err)
	}
}

func TestAttemptStoreDeleteMakesTokenSingleUse(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleAttempt()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "tok-1"); !errors.Is(err, ErrAttemptNotFound) {
		t.Errorf("Get after Delete err = %v, want ErrAttemptNotFound", err)
	}
}
