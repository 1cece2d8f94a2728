package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"social_agent/internal/domain"
)

// State is the position of a session in the pipeline.
type State int

const (
	StateEmpty State = iota
	StateAnalyzed
	StateResearched
	StateDrafted
	StateApproved
	StateRejected
	StateScheduled
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateAnalyzed:
		return "analyzed"
	case StateResearched:
		return "researched"
	case StateDrafted:
		return "drafted"
	case StateApproved:
		return "approved"
	case StateRejected:
		return "rejected"
	case StateScheduled:
		return "scheduled"
	default:
		return "unknown"
	}
}

// Session is the working state of one operator's pass through the pipeline.
// All pipeline operations on a session hold its lock for their full duration,
// so at most one stage call per session is outstanding.
type Session struct {
	ID       uuid.UUID
	Operator string

	mu     sync.Mutex
	logger *slog.Logger

	profile  *domain.ProfileResult
	topics   *domain.TopicSet
	draft    string
	hasDraft bool

	// verdict is only meaningful for reviewedText; edits clear both.
	verdict      domain.Verdict
	reviewedText string

	target    domain.ScheduleTarget
	scheduled bool
}

// Snapshot is a read-only copy of a session for presentation.
type Snapshot struct {
	SessionID uuid.UUID
	Operator  string
	State     State
	Profile   *domain.ProfileResult
	Topics    *domain.TopicSet
	Draft     string
	Verdict   domain.Verdict
	Platform  domain.Platform
	PostTime  time.Time
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID: s.ID,
		Operator:  s.Operator,
		State:     s.state(),
		Draft:     s.draft,
		Verdict:   s.verdict,
		Platform:  s.target.Platform,
		PostTime:  s.target.PostTime,
		Profile:   s.profile.Clone(),
		Topics:    s.topics.Clone(),
	}
	return snap
}

func (s *Session) state() State {
	switch {
	case s.scheduled:
		return StateScheduled
	case s.verdict != nil && domain.IsApproved(s.verdict):
		return StateApproved
	case s.verdict != nil:
		return StateRejected
	case s.hasDraft:
		return StateDrafted
	case s.topics != nil:
		return StateResearched
	case s.profile != nil:
		return StateAnalyzed
	default:
		return StateEmpty
	}
}

func (s *Session) clearVerdict() {
	s.verdict = nil
	s.reviewedText = ""
	s.scheduled = false
}

func (s *Session) setDraft(text string) {
	s.draft = text
	s.hasDraft = true
	s.clearVerdict()
}

func (s *Session) clearDraft() {
	s.draft = ""
	s.hasDraft = false
	s.clearVerdict()
}
