package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// TimeLayout is the canonical layout of HistoryRecord.Time.
const TimeLayout = "2006-01-02 15:04:05"

const (
	StatusScheduled   = "Scheduled"
	StatusRescheduled = "Rescheduled"
)

type ProfileResult struct {
	ProfileReference string   `json:"profile_url"`
	TopInterests     []string `json:"top_interests"`
}

// Clone returns a copy that shares no backing array with p.
func (p *ProfileResult) Clone() *ProfileResult {
	if p == nil {
		return nil
	}
	return &ProfileResult{
		ProfileReference: p.ProfileReference,
		TopInterests:     slices.Clone(p.TopInterests),
	}
}

type TopicSet struct {
	Topics []string `json:"topics"`
}

func (t *TopicSet) Clone() *TopicSet {
	if t == nil {
		return nil
	}
	return &TopicSet{Topics: slices.Clone(t.Topics)}
}

type Platform string

const (
	PlatformTwitter Platform = "twitter"
	PlatformBluesky Platform = "bluesky"
)

// PlatformSet is the closed set of platforms a post may target.
type PlatformSet map[Platform]struct{}

func NewPlatformSet(names ...string) PlatformSet {
	set := make(PlatformSet, len(names))
	for _, n := range names {
		set[Platform(strings.ToLower(strings.TrimSpace(n)))] = struct{}{}
	}
	return set
}

func DefaultPlatforms() PlatformSet {
	return NewPlatformSet(string(PlatformTwitter), string(PlatformBluesky))
}

func (ps PlatformSet) Validate(p Platform) error {
	if _, ok := ps[p]; !ok {
		return fmt.Errorf("%w: unknown platform %q", ErrPrecondition, p)
	}
	return nil
}

type ScheduleTarget struct {
	Platform Platform
	PostTime time.Time
}

// HistoryRecord is one persisted entry of the post history document.
type HistoryRecord struct {
	Time     string `json:"time" db:"post_time"`
	Text     string `json:"text" db:"text"`
	Platform string `json:"platform" db:"platform"`
	Status   string `json:"status" db:"status"`
}

// IndexedRecord pairs a record with its position in storage order.
type IndexedRecord struct {
	Index  int
	Record HistoryRecord
}

func FormatPostTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParsePostTime parses a stored record time in the operator's local zone.
func ParsePostTime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, s, time.Local)
}

const (
	ActionSchedule   = "schedule"
	ActionReschedule = "reschedule"
)

// ScheduledPost is what the scheduling sink receives.
type ScheduledPost struct {
	Text     string    `json:"text"`
	Platform Platform  `json:"platform"`
	Operator string    `json:"operator"`
	PostTime time.Time `json:"post_time"`
	Action   string    `json:"action"`
}
