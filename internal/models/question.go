package models

import "eyecare-service/internal/scoring"

// VisionQuestion is one seeded quiz item. Seq preserves the workbook row
// order; Image is a path under the games asset root.
type VisionQuestion struct {
	ID      string   `bson:"_id,omitempty" json:"id"`
	Seq     int      `bson:"seq" json:"seq"`
	Prompt  string   `bson:"prompt" json:"prompt"`
	Image   string   `bson:"image" json:"image"`
	Options []string `bson:"options" json:"options"`
	Answer  string   `bson:"answer" json:"answer"`
}

// ToScoring converts the stored question into the scorer's view, pinning it
// to its position within an attempt.
func (q VisionQuestion) ToScoring(index int) scoring.Question {
	return scoring.Question{
		Index:   index,
		Prompt:  q.Prompt,
		Image:   q.Image,
		Options: q.Options,
		Answer:  q.Answer,
	}
}

// QuestionView is the payload exposed to quiz takers. It deliberately omits
// the expected answer.
type QuestionView struct {
	Index   int      `json:"index"`
	Prompt  string   `json:"prompt"`
	Image   string   `json:"image"`
	Options []string `json:"options"`
}

func (q VisionQuestion) View(index int) QuestionView {
	return QuestionView{
		Index:   index,
		Prompt:  q.Prompt,
		Image:   q.Image,
		Options: q.Options,
	}
}
