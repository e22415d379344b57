package rating

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Criteria lists the scored dimensions, in prompt order.
var Criteria = []string{
	"separation_of_concerns",
	"documentation",
	"logic_clarity",
	"understandability",
	"efficiency",
	"error_handling",
	"testability",
	"reusability",
	"code_consistency",
	"dependency_management",
	"security_awareness",
	"side_effects",
	"scalability",
	"resource_management",
	"encapsulation",
	"readability",
}

// Verdict is the structured rating for one definition.
type Verdict struct {
	OverallScore     int               `json:"overall_score"`
	OverallFeedback  string            `json:"overall_feedback"`
	CriteriaScores   map[string]int    `json:"criteria_scores"`
	CriteriaFeedback map[string]string `json:"criteria_feedback"`
	Suggestions      []string          `json:"suggestions"`
	Strengths        []string          `json:"strengths"`
}

var (
	fencedJSONRe = regexp.MustCompile("```(?:json)?\\s*(\\{[\\s\\S]*?\\})\\s*```")
	braceSpanRe  = regexp.MustCompile(`\{[\s\S]*\}`)
)

// ParseVerdict extracts a Verdict from raw LLM output. Models wrap the JSON
// in markdown fences or prose despite instructions, so extraction is tried
// in order: fenced block, widest brace span, whole response. A response with
// no parseable JSON yields a zero verdict carrying the failure in
// OverallFeedback rather than an error.
func ParseVerdict(raw string) Verdict {
	if m := fencedJSONRe.FindStringSubmatch(raw); m != nil {
		if v, ok := tryUnmarshal(m[1]); ok {
			return v
		}
	}
	if m := braceSpanRe.FindString(raw); m != "" {
		if v, ok := tryUnmarshal(m); ok {
			return v
		}
	}
	if v, ok := tryUnmarshal(raw); ok {
		return v
	}
	return DefaultVerdict("failed to parse rating response as JSON")
}

func tryUnmarshal(s string) (Verdict, bool) {
	var v Verdict
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return Verdict{}, false
	}
	if v.CriteriaScores == nil {
		v.CriteriaScores = zeroScores()
	}
	if v.CriteriaFeedback == nil {
		v.CriteriaFeedback = map[string]string{}
	}
	return v, true
}

// DefaultVerdict returns a zero verdict with the given reason as feedback.
func DefaultVerdict(reason string) Verdict {
	if reason == "" {
		reason = "unable to parse response"
	}
	return Verdict{
		OverallScore:     0,
		OverallFeedback:  reason,
		CriteriaScores:   zeroScores(),
		CriteriaFeedback: map[string]string{},
		Suggestions:      []string{},
		Strengths:        []string{},
	}
}

func zeroScores() map[string]int {
	scores := make(map[string]int, len(Criteria))
	for _, c := range Criteria {
		scores[c] = 0
	}
	return scores
}

// Format renders a verdict as display text for CLI output.
func (v Verdict) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall Score: %d/10\n", v.OverallScore)
	fmt.Fprintf(&sb, "Feedback: %s\n\n", v.OverallFeedback)

	sb.WriteString("=== Criteria Scores ===\n")
	for _, c := range Criteria {
		if score, ok := v.CriteriaScores[c]; ok {
			fmt.Fprintf(&sb, "%s: %d/10\n", titleCase(c), score)
		}
	}

	detailed := false
	for _, c := range Criteria {
		if fb := v.CriteriaFeedback[c]; fb != "" {
			if !detailed {
				sb.WriteString("\n=== Detailed Feedback ===\n")
				detailed = true
			}
			fmt.Fprintf(&sb, "%s: %s\n", titleCase(c), fb)
		}
	}

	if len(v.Strengths) > 0 {
		sb.WriteString("\n=== Strengths ===\n")
		for _, s := range v.Strengths {
			fmt.Fprintf(&sb, "- %s\n", s)
		}
	}
	if len(v.Suggestions) > 0 {
		sb.WriteString("\n=== Improvement Suggestions ===\n")
		for _, s := range v.Suggestions {
			fmt.Fprintf(&sb, "- %s\n", s)
		}
	}
	return sb.String()
}

func titleCase(criterion string) string {
	words := strings.Split(criterion, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
