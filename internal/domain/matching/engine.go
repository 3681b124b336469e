package matching

import (
	"math"
	"strings"
)

// Result partitions the required skills of a job role against a resume.
// Matched and Missing keep the order of the input skill list.
type Result struct {
	Matched []string
	Missing []string
	Percent float64
}

// Evaluate reports which skills occur in text. A skill counts as present when
// its lower-cased form is a substring of the lower-cased text; there is no
// tokenizing, so "go" also matches inside "google".
//
// Surrounding whitespace is trimmed from a skill before the check, so
// " sql " matches "SQL". A blank or whitespace-only skill never matches and
// is reported missing, although the empty string is trivially a substring
// of any text. Catalog writes already reject such names.
func Evaluate(text string, skills []string) Result {
	content := strings.ToLower(text)

	matched := make([]string, 0, len(skills))
	missing := make([]string, 0)

	for _, s := range skills {
		needle := strings.ToLower(strings.TrimSpace(s))
		if needle != "" && strings.Contains(content, needle) {
			matched = append(matched, s)
			continue
		}
		missing = append(missing, s)
	}

	return Result{
		Matched: matched,
		Missing: missing,
		Percent: percent(len(matched), len(skills)),
	}
}

func percent(matched, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(100 * float64(matched) / float64(total))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
