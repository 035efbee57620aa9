package models

import (
	"time"

	"eyecare-service/internal/scoring"
)

// VisionResult is the persisted outcome of one finished quiz attempt,
// breakdown included for later audit.
type VisionResult struct {
	ID           string                   `bson:"_id,omitempty" json:"id"`
	Username     string                   `bson:"username" json:"username"`
	ScorePercent int                      `bson:"score" json:"score"`
	CorrectCount int                      `bson:"correct_count" json:"correct_count"`
	TotalCount   int                      `bson:"total_count" json:"total_count"`
	Risk         scoring.RiskTier         `bson:"risk" json:"risk"`
	WeakAreas    []string                 `bson:"weak_areas" json:"weak_areas"`
	Insights     []string                 `bson:"insights" json:"insights"`
	AIReport     string                   `bson:"ai_report" json:"ai_report"`
	Breakdown    []scoring.BreakdownEntry `bson:"breakdown" json:"breakdown"`
	CreatedAt    time.Time                `bson:"created_at" json:"created_at"`
}

// NewVisionResult copies a scoring result into its persisted form.
func NewVisionResult(username string, res scoring.Result, aiReport string) *VisionResult {
	return &VisionResult{
		Username:     username,
		ScorePercent: res.ScorePercent,
		CorrectCount: res.CorrectCount,
		TotalCount:   res.TotalCount,
		Risk:         res.RiskTier,
		WeakAreas:    res.WeakAreas,
		Insights:     res.Insights,
		AIReport:     aiReport,
		Breakdown:    res.Breakdown,
	}
}
