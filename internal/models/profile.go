package models

import "time"

// PatientProfile holds the self-reported medical context shown alongside
// scan reports. One document per username, upserted on save.
type PatientProfile struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	Username         string    `bson:"username" json:"username"`
	FullName         string    `bson:"full_name" json:"full_name"`
	Age              string    `bson:"age" json:"age"`
	Gender           string    `bson:"gender" json:"gender"`
	Phone            string    `bson:"phone" json:"phone"`
	Email            string    `bson:"email" json:"email"`
	Height           string    `bson:"height" json:"height"`
	Weight           string    `bson:"weight" json:"weight"`
	BPSystolic       string    `bson:"bp_systolic" json:"bp_systolic"`
	BPDiastolic      string    `bson:"bp_diastolic" json:"bp_diastolic"`
	Address          string    `bson:"address" json:"address"`
	MedicalHistory   string    `bson:"medical_history" json:"medical_history"`
	EyeHistory       string    `bson:"eye_history" json:"eye_history"`
	FamilyEyeHistory string    `bson:"family_eye_history" json:"family_eye_history"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}
