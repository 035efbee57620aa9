package models

import "time"

// EyeScan is one uploaded eye image together with the AI analysis and the
// technician's validation state.
type EyeScan struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Username      string    `bson:"username" json:"username"`
	Filename      string    `bson:"filename" json:"filename"`
	ObjectKey     string    `bson:"object_key" json:"object_key"`
	ContentType   string    `bson:"content_type" json:"content_type"`
	AIResult      string    `bson:"ai_result" json:"ai_result"`
	TechValidated bool      `bson:"tech_validated" json:"tech_validated"`
	TechNotes     string    `bson:"tech_notes,omitempty" json:"tech_notes,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
