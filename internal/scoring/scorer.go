package scoring

import (
	"math"
	"strings"
)

// RiskTier is the coarse classification of quiz performance.
type RiskTier string

const (
	RiskLow      RiskTier = "Low"
	RiskModerate RiskTier = "Moderate"
	RiskHigh     RiskTier = "High"
)

// Question is the scorer's view of one quiz item. Image and Options are
// carried through for display only; scoring reads Prompt and Answer.
type Question struct {
	Index   int      `bson:"index" json:"index"`
	Prompt  string   `bson:"prompt" json:"prompt"`
	Image   string   `bson:"image" json:"image"`
	Options []string `bson:"options" json:"options"`
	Answer  string   `bson:"answer" json:"answer"`
}

// BreakdownEntry records how a single question was judged, keeping the raw
// and normalized texts for audit.
type BreakdownEntry struct {
	Index         int         `bson:"index" json:"index"`
	Prompt        string      `bson:"prompt" json:"prompt"`
	Image         string      `bson:"image" json:"image"`
	ExpectedRaw   string      `bson:"expected_raw" json:"expected_raw"`
	SubmittedRaw  string      `bson:"submitted_raw" json:"submitted_raw"`
	ExpectedNorm  string      `bson:"expected_norm" json:"expected_norm"`
	SubmittedNorm string      `bson:"submitted_norm" json:"submitted_norm"`
	Match         MatchResult `bson:"match" json:"match"`
}

// Result aggregates a full quiz attempt.
type Result struct {
	ScorePercent int              `bson:"score_percent" json:"score_percent"`
	CorrectCount int              `bson:"correct_count" json:"correct_count"`
	TotalCount   int              `bson:"total_count" json:"total_count"`
	RiskTier     RiskTier         `bson:"risk_tier" json:"risk_tier"`
	WeakAreas    []string         `bson:"weak_areas" json:"weak_areas"`
	Insights     []string         `bson:"insights" json:"insights"`
	Breakdown    []BreakdownEntry `bson:"breakdown" json:"breakdown"`
}

// weakAreaRules maps prompt keywords to weak-area labels. Rules are
// evaluated independently, not as an exclusive chain.
var weakAreaRules = []struct {
	keyword string
	label   string
}{
	{"contrast", "Contrast Sensitivity"},
	{"moving", "Visual Tracking"},
	{"tracking", "Visual Tracking"},
	{"color", "Color Sensitivity"},
}

// defaultWeakArea is reported when no incorrect prompt matches any rule.
const defaultWeakArea = "General visual fatigue"

var tierInsights = map[RiskTier]string{
	RiskLow:      "Overall vision appears healthy.",
	RiskModerate: "Mild visual stress detected. Monitor eye habits.",
	RiskHigh:     "High visual strain detected. Professional consultation advised.",
}

// Score evaluates every question against the submitted answers and derives
// the percentage score, risk tier and weak areas. Answers are keyed by
// question index; a missing entry counts as an empty submission. The
// function is pure: it never errors and always returns a complete Result.
func Score(questions []Question, answers map[int]string) Result {
	breakdown := make([]BreakdownEntry, 0, len(questions))
	correct := 0

	for i, q := range questions {
		submitted := answers[i]
		match := Evaluate(q.Answer, submitted)
		if match.Correct {
			correct++
		}
		breakdown = append(breakdown, BreakdownEntry{
			Index:         i,
			Prompt:        q.Prompt,
			Image:         q.Image,
			ExpectedRaw:   q.Answer,
			SubmittedRaw:  submitted,
			ExpectedNorm:  Normalize(q.Answer),
			SubmittedNorm: Normalize(submitted),
			Match:         match,
		})
	}

	total := len(questions)
	percent := int(math.Round(float64(correct) / float64(max(1, total)) * 100))
	tier := riskTier(correct, total)

	return Result{
		ScorePercent: percent,
		CorrectCount: correct,
		TotalCount:   total,
		RiskTier:     tier,
		WeakAreas:    weakAreas(breakdown),
		Insights:     []string{tierInsights[tier]},
		Breakdown:    breakdown,
	}
}

// riskTier classifies the raw correct count against fractions of the total.
// Boundaries are inclusive upper bounds checked in ascending order, so a
// boundary value lands in the riskier tier. The thresholds intentionally
// work on raw counts while the displayed score is a rounded percentage; the
// two can disagree near boundaries.
func riskTier(correct, total int) RiskTier {
	switch {
	case float64(correct) <= 0.4*float64(total):
		return RiskHigh
	case float64(correct) <= 0.7*float64(total):
		return RiskModerate
	default:
		return RiskLow
	}
}

// weakAreas scans incorrect entries' prompts for keyword rules and collects
// the matched labels in first-seen order, without duplicates.
func weakAreas(breakdown []BreakdownEntry) []string {
	seen := make(map[string]bool)
	areas := make([]string, 0, len(weakAreaRules))
	for _, entry := range breakdown {
		if entry.Match.Correct {
			continue
		}
		prompt := strings.ToLower(entry.Prompt)
		for _, rule := range weakAreaRules {
			if strings.Contains(prompt, rule.keyword) && !seen[rule.label] {
				seen[rule.label] = true
				areas = append(areas, rule.label)
			}
		}
	}
	if len(areas) == 0 {
		areas = append(areas, defaultWeakArea)
	}
	return areas
}
