// Package review turns the content reviewer's wire output into a typed verdict.
package review

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"social_agent/internal/domain"
)

const RecommendationApprove = "approve"

const verdictSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["recommendation"],
	"properties": {
		"recommendation": {"type": "string"},
		"suggestion": {"type": "string"}
	}
}`

const noSuggestion = "No suggestion"

var schema = mustSchema(verdictSchema)

func mustSchema(s string) *gojsonschema.Schema {
	sch, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("review: compile verdict schema: %v", err))
	}
	return sch
}

type wireVerdict struct {
	Recommendation string  `json:"recommendation"`
	Suggestion     *string `json:"suggestion"`
}

// Parse decodes reviewer output. Anything other than a well-formed document
// whose recommendation is exactly "approve" yields a Rejected verdict. The
// returned error describes why the output was unreadable and is nil for
// well-formed documents; the verdict is always usable.
func Parse(raw string) (domain.Verdict, error) {
	result, err := schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return parseFailure(), fmt.Errorf("decode review: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
		}
		return parseFailure(), fmt.Errorf("invalid review: %s", strings.Join(msgs, "; "))
	}

	var w wireVerdict
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return parseFailure(), fmt.Errorf("decode review: %w", err)
	}

	if w.Recommendation == RecommendationApprove {
		return domain.Approved{}, nil
	}

	suggestion := noSuggestion
	if w.Suggestion != nil {
		suggestion = *w.Suggestion
	}
	return domain.Rejected{Suggestion: suggestion}, nil
}

// Encode renders a verdict in the reviewer wire format.
func Encode(v domain.Verdict) string {
	w := struct {
		Recommendation string `json:"recommendation"`
		Suggestion     string `json:"suggestion"`
	}{Recommendation: "reject", Suggestion: domain.Suggestion(v)}
	if domain.IsApproved(v) {
		w.Recommendation = RecommendationApprove
	}
	b, _ := json.Marshal(w)
	return string(b)
}

func parseFailure() domain.Verdict {
	return domain.Rejected{Suggestion: domain.ReviewParseErrorSuggestion}
}
