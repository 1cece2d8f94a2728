// Package stage provides deterministic stage implementations that need no
// external model. They produce placeholder content and approve every draft.
package stage

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"social_agent/internal/domain"
	"social_agent/internal/review"
)

var handlePattern = regexp.MustCompile(`^@[A-Za-z0-9_.]{1,50}$`)

type Static struct {
	interests []string
	validate  *validator.Validate
}

// NewStatic returns stages that report interests as every profile's top interests.
func NewStatic(interests []string) *Static {
	return &Static{
		interests: slices.Clone(interests),
		validate:  validator.New(),
	}
}

// Analyze accepts a profile URL or an @handle.
func (s *Static) Analyze(ctx context.Context, profileRef string) (*domain.ProfileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !handlePattern.MatchString(profileRef) {
		if err := s.validate.VarCtx(ctx, profileRef, "required,http_url"); err != nil {
			return nil, fmt.Errorf("profile reference %q is neither a URL nor an @handle", profileRef)
		}
	}

	return &domain.ProfileResult{
		ProfileReference: profileRef,
		TopInterests:     slices.Clone(s.interests),
	}, nil
}

func (s *Static) Research(ctx context.Context, interests []string) (*domain.TopicSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	topics := make([]string, 0, len(interests))
	for _, i := range interests {
		topics = append(topics, "Latest trends in "+i)
	}
	return &domain.TopicSet{Topics: topics}, nil
}

func (s *Static) Create(ctx context.Context, _ *domain.ProfileResult, topics *domain.TopicSet) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if topics == nil || len(topics.Topics) == 0 {
		return "", fmt.Errorf("no topics to write about")
	}

	return fmt.Sprintf("Check out my thoughts on %s!", strings.Join(topics.Topics, ", ")), nil
}

func (s *Static) Review(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return review.Encode(domain.Approved{}), nil
}
