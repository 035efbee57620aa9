package quiz

import (
	"fmt"
	"math/rand"

	"eyecare-service/internal/models"
)

// Sampler draws a random subset of the question pool for one attempt. The
// random source is injected so selection is deterministic under test.
type Sampler struct {
	rand *rand.Rand
}

func NewSampler(src rand.Source) *Sampler {
	return &Sampler{rand: rand.New(src)}
}

// Sample returns n questions drawn uniformly without replacement. The pool
// itself is left untouched.
func (s *Sampler) Sample(pool []models.VisionQuestion, n int) ([]models.VisionQuestion, error) {
	if len(pool) < n {
		return nil, fmt.Errorf("question pool has %d questions, need %d", len(pool), n)
	}
	picked := make([]models.VisionQuestion, len(pool))
	copy(picked, pool)
	s.rand.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:n], nil
}
