package scoring

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
)

// Strategy names which comparison rule decided a match.
type Strategy string

const (
	StrategyExact   Strategy = "exact"
	StrategyNumeric Strategy = "numeric"
	StrategyFuzzy   Strategy = "fuzzy"
	StrategyNone    Strategy = "none"
)

const (
	// fuzzyThreshold is the minimum sequence-matcher ratio accepted as a
	// match. Tuned against the ratio distribution of this specific metric;
	// do not swap the metric without re-validating the cutoff.
	fuzzyThreshold = 0.78

	// fuzzyMaxLen caps the length of strings eligible for fuzzy comparison.
	// Long free-text answers accidentally reach high ratios too easily.
	fuzzyMaxLen = 40
)

// MatchResult is the evaluator's verdict for one expected/submitted pair.
type MatchResult struct {
	Correct    bool     `bson:"correct" json:"correct"`
	Strategy   Strategy `bson:"strategy" json:"strategy"`
	Similarity float64  `bson:"similarity,omitempty" json:"similarity,omitempty"`
}

var dashReplacer = strings.NewReplacer("–", "-", "—", "-")

// Normalize prepares an answer for comparison: trims, collapses internal
// whitespace to single spaces, unifies en/em dashes to hyphens and
// lower-cases the result.
func Normalize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = dashReplacer.Replace(s)
	return strings.ToLower(s)
}

// numericEqual reports whether both strings parse as numbers whose integer
// truncations are equal, so "06", "6" and "6.0" all compare equal.
func numericEqual(a, b string) bool {
	af, err := strconv.ParseFloat(a, 64)
	if err != nil || math.IsInf(af, 0) || math.IsNaN(af) {
		return false
	}
	bf, err := strconv.ParseFloat(b, 64)
	if err != nil || math.IsInf(bf, 0) || math.IsNaN(bf) {
		return false
	}
	return int64(af) == int64(bf)
}

// ratio computes the symmetric similarity of two strings in [0,1] as the
// sequence matcher's matched-run ratio over the combined length.
func ratio(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

// Evaluate compares a submitted answer against the expected one, applying
// exact, numeric and fuzzy strategies in order and short-circuiting on the
// first success. Malformed input never errors; it falls through to the next
// strategy. An empty expected answer can never match, so an unanswered
// question is never vacuously correct.
func Evaluate(expected, submitted string) MatchResult {
	exp := Normalize(expected)
	sub := Normalize(submitted)

	if exp == sub && exp != "" {
		return MatchResult{Correct: true, Strategy: StrategyExact}
	}

	if numericEqual(exp, sub) {
		return MatchResult{Correct: true, Strategy: StrategyNumeric}
	}

	if exp != "" && sub != "" &&
		utf8.RuneCountInString(exp) <= fuzzyMaxLen &&
		utf8.RuneCountInString(sub) <= fuzzyMaxLen {
		r := ratio(exp, sub)
		if r >= fuzzyThreshold {
			return MatchResult{Correct: true, Strategy: StrategyFuzzy, Similarity: r}
		}
		return MatchResult{Correct: false, Strategy: StrategyNone, Similarity: r}
	}

	return MatchResult{Correct: false, Strategy: StrategyNone}
}
