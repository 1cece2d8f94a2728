package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"social_agent/internal/domain"
)

type ProfileAnalyzer interface {
	Analyze(ctx context.Context, profileRef string) (*domain.ProfileResult, error)
}

type TopicResearcher interface {
	Research(ctx context.Context, interests []string) (*domain.TopicSet, error)
}

type ContentCreator interface {
	Create(ctx context.Context, profile *domain.ProfileResult, topics *domain.TopicSet) (string, error)
}

// ContentReviewer returns the reviewer's wire-encoded verdict.
type ContentReviewer interface {
	Review(ctx context.Context, text string) (string, error)
}

type Sink interface {
	Schedule(ctx context.Context, post domain.ScheduledPost) error
}

type HistoryStore interface {
	LoadAll(ctx context.Context) ([]domain.HistoryRecord, error)
	Append(ctx context.Context, record domain.HistoryRecord) error
	UpdateAt(ctx context.Context, index int, record domain.HistoryRecord) error
	Filter(ctx context.Context, query string) ([]domain.IndexedRecord, error)
}
