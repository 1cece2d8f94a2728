// Package llmstage implements the content stages by prompting a generative
// model for JSON documents.
package llmstage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"social_agent/internal/domain"
	"social_agent/internal/llm"
)

type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// Stages runs every model call through a retry policy. Retries cover
// transport failures and responses that do not decode; cancellation and
// deadlines end the call immediately.
type Stages struct {
	client   llm.Client
	executor failsafe.Executor[string]
	logger   *slog.Logger
}

func New(client llm.Client, cfg RetryConfig, logger *slog.Logger) *Stages {
	logger = logger.With("component", "llm_stages")

	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 500 * time.Millisecond
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = cfg.BaseDelay
	}

	policy := retrypolicy.NewBuilder[string]().
		WithBackoff(cfg.BaseDelay, cfg.MaxDelay).
		WithMaxRetries(cfg.MaxRetries).
		WithJitterFactor(0.1).
		HandleIf(func(_ string, err error) bool {
			return err != nil &&
				!errors.Is(err, context.Canceled) &&
				!errors.Is(err, context.DeadlineExceeded)
		}).
		OnRetry(func(e failsafe.ExecutionEvent[string]) {
			logger.Warn("retrying model call", "attempt", e.Attempts(), "error", e.LastError())
		}).
		Build()

	return &Stages{
		client:   client,
		executor: failsafe.With[string](policy),
		logger:   logger,
	}
}

type profileResponse struct {
	TopInterests []string `json:"top_interests"`
}

func (s *Stages) Analyze(ctx context.Context, profileRef string) (*domain.ProfileResult, error) {
	var resp profileResponse
	if _, err := s.generate(ctx, analyzePrompt(profileRef), &resp); err != nil {
		return nil, fmt.Errorf("analyze profile: %w", err)
	}

	return &domain.ProfileResult{
		ProfileReference: profileRef,
		TopInterests:     compact(resp.TopInterests),
	}, nil
}

func (s *Stages) Research(ctx context.Context, interests []string) (*domain.TopicSet, error) {
	if len(interests) == 0 {
		return &domain.TopicSet{Topics: []string{}}, nil
	}

	var resp domain.TopicSet
	if _, err := s.generate(ctx, researchPrompt(interests), &resp); err != nil {
		return nil, fmt.Errorf("research topics: %w", err)
	}
	return &domain.TopicSet{Topics: compact(resp.Topics)}, nil
}

type postResponse struct {
	Post string `json:"post"`
}

func (s *Stages) Create(ctx context.Context, profile *domain.ProfileResult, topics *domain.TopicSet) (string, error) {
	if profile == nil || topics == nil {
		return "", errors.New("create post: profile and topics are required")
	}

	var resp postResponse
	if _, err := s.generate(ctx, createPrompt(profile, topics), &resp); err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}

	text := strings.TrimSpace(resp.Post)
	if text == "" {
		return "", errors.New("create post: model returned an empty post")
	}
	return text, nil
}

// Review returns the model's verdict document as is. Interpreting it is the
// caller's job, so only transport failures are retried here.
func (s *Stages) Review(ctx context.Context, text string) (string, error) {
	raw, err := s.executor.WithContext(ctx).Get(func() (string, error) {
		return s.client.GenerateJSON(ctx, reviewPrompt(text))
	})
	if err != nil {
		return "", fmt.Errorf("review post: %w", err)
	}
	return raw, nil
}

// generate calls the model and decodes its answer into out, retrying when
// either step fails.
func (s *Stages) generate(ctx context.Context, prompt string, out any) (string, error) {
	return s.executor.WithContext(ctx).Get(func() (string, error) {
		raw, err := s.client.GenerateJSON(ctx, prompt)
		if err != nil {
			return "", err
		}
		if err := json.Unmarshal([]byte(raw), out); err != nil {
			s.logger.Debug("undecodable model response", "response", raw)
			return "", fmt.Errorf("decode model response: %w", err)
		}
		return raw, nil
	})
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
