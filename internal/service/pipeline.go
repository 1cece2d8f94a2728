package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"social_agent/internal/domain"
	"social_agent/internal/metrics"
	"social_agent/internal/review"
)

const (
	stageAnalysis   = "profile_analysis"
	stageResearch   = "topic_research"
	stageCreation   = "content_creation"
	stageReview     = "content_review"
	stageScheduling = "scheduling"
)

// Stages bundles the four content stages the pipeline drives.
type Stages struct {
	Analyzer   ProfileAnalyzer
	Researcher TopicResearcher
	Creator    ContentCreator
	Reviewer   ContentReviewer
}

type Options struct {
	// StageTimeout bounds each stage and sink call. Zero disables it.
	StageTimeout time.Duration
	// RejectPast refuses to schedule new posts dated before now.
	RejectPast      bool
	DefaultPlatform domain.Platform
	Now             func() time.Time
}

// Pipeline sequences the content stages for any number of sessions and
// commits approved posts to the sink and the history store.
type Pipeline struct {
	stages    Stages
	sink      Sink
	history   HistoryStore
	platforms domain.PlatformSet
	metrics   *metrics.Collector
	logger    *slog.Logger
	opts      Options
}

func NewPipeline(
	stages Stages,
	sink Sink,
	history HistoryStore,
	platforms domain.PlatformSet,
	collector *metrics.Collector,
	logger *slog.Logger,
	opts Options,
) *Pipeline {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultPlatform == "" {
		opts.DefaultPlatform = domain.PlatformTwitter
	}
	return &Pipeline{
		stages:    stages,
		sink:      sink,
		history:   history,
		platforms: platforms,
		metrics:   collector,
		logger:    logger.With("component", "pipeline"),
		opts:      opts,
	}
}

// NewSession starts an empty session for operator, targeting the default
// platform one minute from now.
func (p *Pipeline) NewSession(operator string) *Session {
	id := uuid.New()
	return &Session{
		ID:       id,
		Operator: operator,
		logger:   p.logger.With("session", id.String(), "operator", operator),
		target: domain.ScheduleTarget{
			Platform: p.opts.DefaultPlatform,
			PostTime: p.opts.Now().Add(time.Minute),
		},
	}
}

func (p *Pipeline) AnalyzeProfile(ctx context.Context, s *Session, profileRef string) (*domain.ProfileResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profileRef = strings.TrimSpace(profileRef)
	if profileRef == "" {
		return nil, p.refuse(s, "analyze_profile", "profile reference is empty")
	}

	var result *domain.ProfileResult
	err := p.call(ctx, stageAnalysis, func(ctx context.Context) error {
		var err error
		result, err = p.stages.Analyzer.Analyze(ctx, profileRef)
		if err == nil && result == nil {
			err = errors.New("analyzer returned no result")
		}
		return err
	})

	// Topics are derived from the profile, so they go with it either way.
	s.topics = nil
	if err != nil {
		s.profile = nil
		s.logger.Error("profile analysis failed", "profile", profileRef, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrAnalysis, err)
	}

	// The session keeps its own copy so callers cannot reach into it.
	s.profile = result.Clone()
	s.logger.Info("profile analyzed", "profile", result.ProfileReference, "interests", len(result.TopInterests))
	return result.Clone(), nil
}

func (p *Pipeline) ResearchTopics(ctx context.Context, s *Session) (*domain.TopicSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return nil, p.refuse(s, "research_topics", "no analyzed profile")
	}

	var result *domain.TopicSet
	err := p.call(ctx, stageResearch, func(ctx context.Context) error {
		var err error
		result, err = p.stages.Researcher.Research(ctx, s.profile.TopInterests)
		if err == nil && result == nil {
			err = errors.New("researcher returned no result")
		}
		return err
	})
	if err != nil {
		s.topics = nil
		s.logger.Error("topic research failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrResearch, err)
	}

	s.topics = result.Clone()
	s.logger.Info("topics researched", "topics", len(result.Topics))
	return result.Clone(), nil
}

func (p *Pipeline) GeneratePost(ctx context.Context, s *Session) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil || s.topics == nil {
		return "", p.refuse(s, "generate_post", "no researched topics")
	}

	var text string
	err := p.call(ctx, stageCreation, func(ctx context.Context) error {
		var err error
		text, err = p.stages.Creator.Create(ctx, s.profile, s.topics)
		if err == nil && text == "" {
			err = errors.New("creator returned an empty post")
		}
		return err
	})
	if err != nil {
		s.clearDraft()
		s.logger.Error("post generation failed", "error", err)
		return "", fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}

	s.setDraft(text)
	s.logger.Info("post generated", "length", len(text))
	return text, nil
}

// EditDraft replaces the draft text. Any existing verdict is discarded, even
// when the text is unchanged.
func (p *Pipeline) EditDraft(s *Session, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasDraft {
		return p.refuse(s, "edit_draft", "no draft to edit")
	}

	s.setDraft(text)
	s.logger.Debug("draft edited", "length", len(text))
	return nil
}

// ReviewDraft runs the reviewer on the current draft. Unreadable reviewer
// output is recorded as a rejection.
func (p *Pipeline) ReviewDraft(ctx context.Context, s *Session) (domain.Verdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasDraft || strings.TrimSpace(s.draft) == "" {
		return nil, p.refuse(s, "review_draft", "no draft to review")
	}

	text := s.draft
	var raw string
	err := p.call(ctx, stageReview, func(ctx context.Context) error {
		var err error
		raw, err = p.stages.Reviewer.Review(ctx, text)
		return err
	})
	if err != nil {
		s.clearVerdict()
		s.logger.Error("review failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrReview, err)
	}

	verdict, parseErr := review.Parse(raw)
	if parseErr != nil {
		s.logger.Warn("unreadable review, treating as rejection", "error", parseErr)
	}

	s.verdict = verdict
	s.reviewedText = text
	s.scheduled = false

	s.logger.Info("draft reviewed", "approved", domain.IsApproved(verdict), "suggestion", domain.Suggestion(verdict))
	return verdict, nil
}

// SetTarget selects the platform and time the next scheduled post will use.
func (p *Pipeline) SetTarget(s *Session, platform string, postTime time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pl := domain.Platform(strings.ToLower(strings.TrimSpace(platform)))
	if err := p.platforms.Validate(pl); err != nil {
		p.metrics.GateRefused("set_target")
		return fmt.Errorf("set target: %w", err)
	}
	if postTime.IsZero() {
		return p.refuse(s, "set_target", "post time is required")
	}

	s.target = domain.ScheduleTarget{Platform: pl, PostTime: postTime}
	s.scheduled = false
	return nil
}

// SchedulePost hands the approved draft to the sink and logs it. Scheduling is
// refused unless the current text carries an approval.
func (p *Pipeline) SchedulePost(ctx context.Context, s *Session) (domain.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "schedule_post"

	switch {
	case !s.hasDraft:
		return domain.HistoryRecord{}, p.refuse(s, op, "no draft")
	case s.verdict == nil:
		return domain.HistoryRecord{}, p.refuse(s, op, "draft has not been reviewed")
	case s.reviewedText != s.draft:
		return domain.HistoryRecord{}, p.refuse(s, op, "review does not match the current draft")
	case s.scheduled:
		return domain.HistoryRecord{}, p.refuse(s, op, "post already scheduled")
	}

	if !domain.IsApproved(s.verdict) {
		p.metrics.GateRefused(op)
		s.logger.Warn("post flagged by reviewer", "suggestion", domain.Suggestion(s.verdict))
		return domain.HistoryRecord{}, &domain.RejectedError{Suggestion: domain.Suggestion(s.verdict)}
	}

	if err := p.platforms.Validate(s.target.Platform); err != nil {
		p.metrics.GateRefused(op)
		return domain.HistoryRecord{}, fmt.Errorf("schedule post: %w", err)
	}

	if s.target.PostTime.Before(p.opts.Now()) {
		if p.opts.RejectPast {
			return domain.HistoryRecord{}, p.refuse(s, op, "post time is in the past")
		}
		s.logger.Warn("scheduling post in the past", "post_time", domain.FormatPostTime(s.target.PostTime))
	}

	post := domain.ScheduledPost{
		Text:     s.draft,
		Platform: s.target.Platform,
		Operator: s.Operator,
		PostTime: s.target.PostTime,
		Action:   domain.ActionSchedule,
	}
	if err := p.call(ctx, stageScheduling, func(ctx context.Context) error {
		return p.sink.Schedule(ctx, post)
	}); err != nil {
		s.logger.Error("failed to schedule post", "error", err)
		return domain.HistoryRecord{}, fmt.Errorf("%w: %w", domain.ErrScheduling, err)
	}

	record := domain.HistoryRecord{
		Time:     domain.FormatPostTime(post.PostTime),
		Text:     post.Text,
		Platform: string(post.Platform),
		Status:   domain.StatusScheduled,
	}

	// The sink has accepted the post; a retry would publish it twice.
	s.scheduled = true

	if err := p.history.Append(ctx, record); err != nil {
		p.metrics.Inconsistency()
		s.logger.Error("post scheduled but not logged", "error", err)
		return record, &domain.InconsistencyError{
			Op:  op,
			Err: fmt.Errorf("%w: %w", domain.ErrHistoryIO, err),
		}
	}

	p.metrics.PostScheduled(record.Platform, domain.ActionSchedule)
	s.logger.Info("post scheduled", "platform", record.Platform, "post_time", record.Time)
	return record, nil
}

// SearchHistory returns matching records most recent first. Each result keeps
// its storage index.
func (p *Pipeline) SearchHistory(ctx context.Context, query string) ([]domain.IndexedRecord, error) {
	matches, err := p.history.Filter(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrHistoryIO, err)
	}
	return domain.MostRecentFirst(matches), nil
}

// LoadRecordForEdit seeds the session's draft and target from a history
// record. The record's past approval does not carry over.
func (p *Pipeline) LoadRecordForEdit(ctx context.Context, s *Session, index int) (domain.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := p.recordAt(ctx, index)
	if err != nil {
		return domain.HistoryRecord{}, err
	}

	postTime, err := domain.ParsePostTime(record.Time)
	if err != nil {
		s.logger.Warn("stored post time unreadable, using default", "index", index, "time", record.Time)
		postTime = p.opts.Now().Add(time.Minute)
	}

	s.setDraft(record.Text)
	s.target = domain.ScheduleTarget{
		Platform: domain.Platform(record.Platform),
		PostTime: postTime,
	}

	s.logger.Info("history record loaded for edit", "index", index)
	return record, nil
}

// RescheduleRecord sends a logged post to the sink again with its stored
// text, platform and time, without another review, and marks it rescheduled.
// The session's working state is not touched.
func (p *Pipeline) RescheduleRecord(ctx context.Context, s *Session, index int) (domain.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "reschedule_record"

	record, err := p.recordAt(ctx, index)
	if err != nil {
		return domain.HistoryRecord{}, err
	}

	postTime, err := domain.ParsePostTime(record.Time)
	if err != nil {
		return domain.HistoryRecord{}, fmt.Errorf("%w: record %d has invalid time %q: %w", domain.ErrScheduling, index, record.Time, err)
	}

	platform := domain.Platform(record.Platform)
	if err := p.platforms.Validate(platform); err != nil {
		p.metrics.GateRefused(op)
		return domain.HistoryRecord{}, fmt.Errorf("reschedule record %d: %w", index, err)
	}

	post := domain.ScheduledPost{
		Text:     record.Text,
		Platform: platform,
		Operator: s.Operator,
		PostTime: postTime,
		Action:   domain.ActionReschedule,
	}
	if err := p.call(ctx, stageScheduling, func(ctx context.Context) error {
		return p.sink.Schedule(ctx, post)
	}); err != nil {
		s.logger.Error("failed to reschedule post", "index", index, "error", err)
		return domain.HistoryRecord{}, fmt.Errorf("%w: %w", domain.ErrScheduling, err)
	}

	record.Status = domain.StatusRescheduled
	if err := p.history.UpdateAt(ctx, index, record); err != nil {
		p.metrics.Inconsistency()
		s.logger.Error("post rescheduled but not logged", "index", index, "error", err)
		return record, &domain.InconsistencyError{
			Op:  op,
			Err: fmt.Errorf("%w: %w", domain.ErrHistoryIO, err),
		}
	}

	p.metrics.PostScheduled(record.Platform, domain.ActionReschedule)
	s.logger.Info("post rescheduled", "index", index, "platform", record.Platform, "post_time", record.Time)
	return record, nil
}

func (p *Pipeline) recordAt(ctx context.Context, index int) (domain.HistoryRecord, error) {
	records, err := p.history.LoadAll(ctx)
	if err != nil {
		return domain.HistoryRecord{}, fmt.Errorf("%w: %w", domain.ErrHistoryIO, err)
	}
	if index < 0 || index >= len(records) {
		return domain.HistoryRecord{}, fmt.Errorf("%w: record %d of %d: %w", domain.ErrHistoryIO, index, len(records), domain.ErrIndexOutOfRange)
	}
	return records[index], nil
}

// call runs one external collaborator invocation, applying the stage timeout
// and converting panics into errors.
func (p *Pipeline) call(ctx context.Context, stage string, fn func(ctx context.Context) error) (err error) {
	if p.opts.StageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.StageTimeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", stage, r)
		}
		p.metrics.ObserveStage(stage, time.Since(start), err)
	}()

	return fn(ctx)
}

func (p *Pipeline) refuse(s *Session, op, reason string) error {
	p.metrics.GateRefused(op)
	s.logger.Warn("operation refused", "operation", op, "reason", reason)
	return fmt.Errorf("%s: %w: %s", op, domain.ErrPrecondition, reason)
}
