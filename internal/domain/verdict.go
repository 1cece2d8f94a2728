package domain

// Verdict is the outcome of a content review. The only variants are Approved
// and Rejected; malformed reviewer output is represented as Rejected.
type Verdict interface {
	verdict()
}

type Approved struct{}

type Rejected struct {
	Suggestion string
}

func (Approved) verdict() {}
func (Rejected) verdict() {}

// ReviewParseErrorSuggestion is attached to verdicts synthesized from unreadable reviewer output.
const ReviewParseErrorSuggestion = "Review parse error"

func IsApproved(v Verdict) bool {
	_, ok := v.(Approved)
	return ok
}

// Suggestion returns the rejection rationale, or "" for approvals and nil verdicts.
func Suggestion(v Verdict) string {
	if r, ok := v.(Rejected); ok {
		return r.Suggestion
	}
	return ""
}
