package stage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social_agent/internal/domain"
	"social_agent/internal/review"
)

func TestStatic_Analyze(t *testing.T) {
	s := NewStatic([]string{"AI", "Tech"})

	tests := []struct {
		name    string
		ref     string
		wantErr bool
	}{
		{name: "profile url", ref: "https://x.com/alice"},
		{name: "http url", ref: "http://bsky.app/profile/alice.bsky.social"},
		{name: "handle", ref: "@alice"},
		{name: "handle with dots", ref: "@alice.bsky.social"},
		{name: "bare word", ref: "alice", wantErr: true},
		{name: "at sign only", ref: "@", wantErr: true},
		{name: "handle with spaces", ref: "@alice smith", wantErr: true},
		{name: "non http scheme", ref: "ftp://x.com/alice", wantErr: true},
		{name: "empty", ref: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.Analyze(context.Background(), tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ref, result.ProfileReference)
			assert.Equal(t, []string{"AI", "Tech"}, result.TopInterests)
		})
	}
}

func TestStatic_InterestsAreCopied(t *testing.T) {
	interests := []string{"AI"}
	s := NewStatic(interests)
	interests[0] = "Gardening"

	result, err := s.Analyze(context.Background(), "@alice")
	require.NoError(t, err)
	result.TopInterests[0] = "Cooking"

	again, err := s.Analyze(context.Background(), "@alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"AI"}, again.TopInterests)
}

func TestStatic_Research(t *testing.T) {
	s := NewStatic(nil)

	topics, err := s.Research(context.Background(), []string{"AI", "Tech"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Latest trends in AI", "Latest trends in Tech"}, topics.Topics)

	topics, err = s.Research(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, topics.Topics)
}

func TestStatic_Create(t *testing.T) {
	s := NewStatic(nil)

	text, err := s.Create(context.Background(), nil, &domain.TopicSet{
		Topics: []string{"Latest trends in AI", "Latest trends in Tech"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Check out my thoughts on Latest trends in AI, Latest trends in Tech!", text)

	_, err = s.Create(context.Background(), nil, &domain.TopicSet{})
	assert.Error(t, err)
}

func TestStatic_ReviewApproves(t *testing.T) {
	s := NewStatic(nil)

	raw, err := s.Review(context.Background(), "anything")
	require.NoError(t, err)

	verdict, err := review.Parse(raw)
	require.NoError(t, err)
	assert.True(t, domain.IsApproved(verdict))
}

func TestStatic_CanceledContext(t *testing.T) {
	s := NewStatic([]string{"AI"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Analyze(ctx, "@alice")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.Review(ctx, "text")
	assert.ErrorIs(t, err, context.Canceled)
}
