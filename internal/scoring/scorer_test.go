package scoring

import (
	"fmt"
	"reflect"
	"testing"
)

// sevenQuestions builds a quiz where the answer to question i is "option i".
func sevenQuestions() []Question {
	qs := make([]Question, 7)
	for i := range qs {
		qs[i] = Question{
			Index:  i,
			Prompt: fmt.Sprintf("Identify the shape in image %d", i),
			Answer: fmt.Sprintf("option %d", i),
		}
	}
	return qs
}

// answersFor returns correct submissions for the first n of the questions.
func answersFor(qs []Question, n int) map[int]string {
	answers := make(map[int]string)
	for i := 0; i < n; i++ {
		answers[i] = qs[i].Answer
	}
	return answers
}

func TestScoreEmptyQuiz(t *testing.T) {
	res := Score(nil, nil)
	if res.TotalCount != 0 || res.CorrectCount != 0 {
		t.Errorf("counts = %d/%d, want 0/0", res.CorrectCount, res.TotalCount)
	}
	if res.ScorePercent != 0 {
		t.Errorf("ScorePercent = %d, want 0", res.ScorePercent)
	}
	if res.RiskTier != RiskHigh {
		t.Errorf("RiskTier = %q, want High", res.RiskTier)
	}
	if !reflect.DeepEqual(res.WeakAreas, []string{defaultWeakArea}) {
		t.Errorf("WeakAreas = %v, want default", res.WeakAreas)
	}
}

func TestScorePercentAndRisk(t *testing.T) {
	testCases := []struct {
		correct     int
		wantPercent int
		wantTier    RiskTier
	}{
		{0, 0, RiskHigh},
		{2, 29, RiskHigh},     // 2 <= 0.4*7 = 2.8
		{3, 43, RiskModerate}, // 3 <= 0.7*7 = 4.9
		{5, 71, RiskLow},      // 5 > 4.9
		{7, 100, RiskLow},
	}

	qs := sevenQuestions()
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d_of_7", tc.correct), func(t *testing.T) {
			res := Score(qs, answersFor(qs, tc.correct))
			if res.CorrectCount != tc.correct {
				t.Fatalf("CorrectCount = %d, want %d", res.CorrectCount, tc.correct)
			}
			if res.ScorePercent != tc.wantPercent {
				t.Errorf("ScorePercent = %d, want %d", res.ScorePercent, tc.wantPercent)
			}
			if res.RiskTier != tc.wantTier {
				t.Errorf("RiskTier = %q, want %q", res.RiskTier, tc.wantTier)
			}
		})
	}
}

func TestRiskTierMonotonicity(t *testing.T) {
	severity := map[RiskTier]int{RiskHigh: 2, RiskModerate: 1, RiskLow: 0}

	prev := severity[RiskHigh]
	for correct := 0; correct <= 10; correct++ {
		tier := riskTier(correct, 10)
		if severity[tier] > prev {
			t.Fatalf("severity increased at correct=%d (%q)", correct, tier)
		}
		prev = severity[tier]
	}

	// Boundary values land in the riskier tier.
	if got := riskTier(4, 10); got != RiskHigh {
		t.Errorf("riskTier(4, 10) = %q, want High", got)
	}
	if got := riskTier(7, 10); got != RiskModerate {
		t.Errorf("riskTier(7, 10) = %q, want Moderate", got)
	}
}

func TestScoreWeakAreas(t *testing.T) {
	qs := []Question{
		{Index: 0, Prompt: "Read the low contrast letters", Answer: "e"},
		{Index: 1, Prompt: "Which way is the dot moving?", Answer: "left"},
		{Index: 2, Prompt: "Name the color of the circle", Answer: "red"},
		{Index: 3, Prompt: "Count the contrast bands", Answer: "4"},
		{Index: 4, Prompt: "Which shape is shown?", Answer: "square"},
	}

	// Everything wrong: labels accumulate in first-seen order, deduplicated.
	res := Score(qs, map[int]string{})
	want := []string{"Contrast Sensitivity", "Visual Tracking", "Color Sensitivity"}
	if !reflect.DeepEqual(res.WeakAreas, want) {
		t.Errorf("WeakAreas = %v, want %v", res.WeakAreas, want)
	}

	// Only the keyword-free question wrong: default label.
	answers := answersFor(qs, len(qs))
	delete(answers, 4)
	res = Score(qs, answers)
	if !reflect.DeepEqual(res.WeakAreas, []string{defaultWeakArea}) {
		t.Errorf("WeakAreas = %v, want default", res.WeakAreas)
	}

	// Correct answers contribute no weak areas even with keyword prompts.
	res = Score(qs, answersFor(qs, len(qs)))
	if !reflect.DeepEqual(res.WeakAreas, []string{defaultWeakArea}) {
		t.Errorf("WeakAreas = %v, want default for a clean sheet", res.WeakAreas)
	}
}

func TestScoreBreakdown(t *testing.T) {
	qs := []Question{
		{Index: 0, Prompt: "How many letters?", Image: "questions/q01.png", Answer: "06"},
		{Index: 1, Prompt: "Which word?", Image: "questions/q02.png", Answer: "CIRCLE"},
	}
	answers := map[int]string{0: "6.0", 1: "circl"}

	res := Score(qs, answers)
	if len(res.Breakdown) != 2 {
		t.Fatalf("breakdown length = %d, want 2", len(res.Breakdown))
	}

	first := res.Breakdown[0]
	if first.Match.Strategy != StrategyNumeric || !first.Match.Correct {
		t.Errorf("question 0: %+v, want numeric match", first.Match)
	}
	if first.ExpectedRaw != "06" || first.SubmittedRaw != "6.0" {
		t.Errorf("raw texts not preserved: %+v", first)
	}
	if first.Image != "questions/q01.png" {
		t.Errorf("image not carried through: %q", first.Image)
	}

	second := res.Breakdown[1]
	if second.Match.Strategy != StrategyFuzzy || !second.Match.Correct {
		t.Errorf("question 1: %+v, want fuzzy match", second.Match)
	}
	if second.ExpectedNorm != "circle" || second.SubmittedNorm != "circl" {
		t.Errorf("normalized texts wrong: %+v", second)
	}
}

func TestScoreIsPure(t *testing.T) {
	qs := sevenQuestions()
	answers := answersFor(qs, 4)
	answers[5] = "almost option 5"

	a := Score(qs, answers)
	b := Score(qs, answers)
	if !reflect.DeepEqual(a, b) {
		t.Error("Score is not deterministic for identical inputs")
	}
}

func TestScoreIgnoresOutOfRangeSubmissions(t *testing.T) {
	qs := sevenQuestions()
	answers := answersFor(qs, 2)
	answers[42] = "stray"

	res := Score(qs, answers)
	if res.CorrectCount != 2 || res.TotalCount != 7 {
		t.Errorf("counts = %d/%d, want 2/7", res.CorrectCount, res.TotalCount)
	}
}
