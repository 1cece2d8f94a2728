package llmstage

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"social_agent/internal/domain"
	"social_agent/internal/llm/mocks"
)

type StagesTestSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	client *mocks.MockClient
	stages *Stages
}

func (s *StagesTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.client = mocks.NewMockClient(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.stages = New(s.client, RetryConfig{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
	}, logger)
}

func (s *StagesTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestStagesTestSuite(t *testing.T) {
	suite.Run(t, new(StagesTestSuite))
}

func (s *StagesTestSuite) TestAnalyze_Success() {
	s.client.EXPECT().GenerateJSON(gomock.Any(), gomock.Any()).
		Return(`{"top_interests": ["AI", " Tech ", ""]}`, nil)

	result, err := s.stages.Analyze(context.Background(), "https://x.com/alice")

	s.NoError(err)
	s.Equal("https://x.com/alice", result.ProfileReference)
	s.Equal([]string{"AI", "Tech"}, result.TopInterests)
}

func (s *StagesTestSuite) TestAnalyze_RetriesUndecodableResponse() {
	gomock.InOrder(
		s.client.EXPECT().GenerateJSON(gomock.Any(), gomock.Any()).Return(`not json`, nil),
		s.client.EXPECT().GenerateJSON(gomock.Any(), gomock.Any()).Return(`{"top_interests": ["AI"]}`, nil),
	)

	result, err := s.stages.Analyze(context.Background(), "@alice")

	s.NoError(err)
	s.Equal([]string{"AI"}, result.TopInterests)
}

func (s *StagesTestSuite) TestAnalyze_GivesUpAfterRetries() {
	s.client.EXPECT().GenerateJSON(gomock.Any(), gomock.Any()).
		Return("", errors.New("503 unavailable")).
		Times(3)

	_, err := s.stages.Analyze(context.Background(), "@alice")

	s.Error(err)
}

func (s *StagesTestSuite) TestAnalyze_DoesNotRetryCancellation() {
	ctx, cancel := context.WithCancel(context.Background())
	s.client.EXPECT().GenerateJSON(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, string) (string, error) {
			cancel()
			return "", context.Canceled
		},
	).Times(1)

	_, err := s.stages.Analyze(ctx, "@alice")

	s.ErrorIs(err, context.Canceled)
}

func (s *StagesTestSuite) TestResearch_PromptsWithInterests() {
	s.client.EXPECT().GenerateJSON(gomock.Any(), gomock.All(
		containsString("AI"),
		containsString("Tech"),
	)).Return(`{"topics": ["Agents in production", "Edge inference"]}`, nil)

	topics, err := s.stages.Research(context.Background(), []string{"AI", "Tech"})

	s.NoError(err)
	s.Equal([]string{"Agents in production", "Edge inference"}, topics.Topics)
}

func (s *StagesTestSuite) TestResearch_NoInterestsSkipsModel() {
	topics, err := s.stages.Research(context.Background(), nil)

	s.NoError(err)
	s.Empty(topics.Topics)
}

func (s *StagesTestSuite) TestCreate_Success() {
	s.client.EXPECT().GenerateJSON(gomock.Any(), containsString("Agents in production")).
		Return(`{"post": "  Shipping agents is mostly plumbing.  "}`, nil)

	text, err := s.stages.Create(context.Background(),
		&domain.ProfileResult{ProfileReference: "@alice", TopInterests: []string{"AI"}},
		&domain.TopicSet{Topics: []string{"Agents in production"}},
	)

	s.NoError(err)
	s.Equal("Shipping agents is mostly plumbing.", text)
}

func (s *StagesTestSuite) TestCreate_EmptyPost() {
	s.client.EXPECT().GenerateJSON(gomock.Any(), gomock.Any()).Return(`{"post": ""}`, nil)

	_, err := s.stages.Create(context.Background(),
		&domain.ProfileResult{ProfileReference: "@alice"},
		&domain.TopicSet{Topics: []string{"x"}},
	)

	s.Error(err)
}

func (s *StagesTestSuite) TestCreate_RequiresInputs() {
	_, err := s.stages.Create(context.Background(), nil, nil)

	s.Error(err)
}

func (s *StagesTestSuite) TestReview_PassesRawOutputThrough() {
	raw := `{"recommendation": "reject", "suggestion": "too promotional"}`
	s.client.EXPECT().GenerateJSON(gomock.Any(), containsString("Buy now")).Return(raw, nil)

	got, err := s.stages.Review(context.Background(), "Buy now")

	s.NoError(err)
	s.Equal(raw, got)
}

func (s *StagesTestSuite) TestReview_MalformedOutputIsNotRetried() {
	s.client.EXPECT().GenerateJSON(gomock.Any(), gomock.Any()).Return(`{"recommendation": approve}`, nil).Times(1)

	got, err := s.stages.Review(context.Background(), "hello")

	s.NoError(err)
	s.Equal(`{"recommendation": approve}`, got)
}

func (s *StagesTestSuite) TestReview_RetriesTransportErrors() {
	gomock.InOrder(
		s.client.EXPECT().GenerateJSON(gomock.Any(), gomock.Any()).Return("", errors.New("connection reset")),
		s.client.EXPECT().GenerateJSON(gomock.Any(), gomock.Any()).Return(`{"recommendation": "approve"}`, nil),
	)

	got, err := s.stages.Review(context.Background(), "hello")

	s.NoError(err)
	s.Equal(`{"recommendation": "approve"}`, got)
}

type containsMatcher string

func containsString(sub string) gomock.Matcher { return containsMatcher(sub) }

func (m containsMatcher) Matches(x any) bool {
	s, ok := x.(string)
	return ok && strings.Contains(s, string(m))
}

func (m containsMatcher) String() string { return "contains " + string(m) }
