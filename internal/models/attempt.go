package models

import "time"

// QuizAttempt is the in-progress state of one vision quiz, held in Redis
// until the attempt is finished or expires. The question snapshot is frozen
// at start time so later edits to the question pool cannot change a running
// quiz.
type QuizAttempt struct {
	Token     string           `json:"token"`
	Username  string           `json:"username"`
	Questions []VisionQuestion `json:"questions"`
	Answers   map[int]string   `json:"answers"`
	Current   int              `json:"current"`
	StartedAt time.Time        `json:"started_at"`
}

// SetAnswer records the raw answer for a question index and optionally
// advances the cursor, clamped to the last question.
func (a *QuizAttempt) SetAnswer(index int, answer string, advance bool) {
	if a.Answers == nil {
		a.Answers = make(map[int]string)
	}
	a.Answers[index] = answer
	if advance {
		next := index + 1
		if next > len(a.Questions)-1 {
			next = len(a.Questions) - 1
		}
		a.Current = next
	}
}
