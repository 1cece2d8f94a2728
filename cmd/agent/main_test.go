package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"social_agent/internal/domain"
)

type CLITestSuite struct {
	suite.Suite
	dir         string
	configPath  string
	historyPath string
}

func (s *CLITestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.historyPath = filepath.Join(s.dir, "post_history.json")
	s.configPath = filepath.Join(s.dir, "config.yaml")

	cfg := `
log_level: error
operator: tester
platforms: [twitter, bluesky]
history:
  backend: file
  path: ` + s.historyPath + `
sink:
  kind: log
stages:
  kind: static
  interests: [AI, Tech]
`
	s.Require().NoError(os.WriteFile(s.configPath, []byte(cfg), 0o644))
}

func TestCLITestSuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (s *CLITestSuite) execute(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", s.configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (s *CLITestSuite) history() []domain.HistoryRecord {
	data, err := os.ReadFile(s.historyPath)
	if os.IsNotExist(err) {
		return nil
	}
	s.Require().NoError(err)

	var records []domain.HistoryRecord
	s.Require().NoError(json.Unmarshal(data, &records))
	return records
}

func (s *CLITestSuite) schedule() {
	_, err := s.execute("run",
		"--profile", "https://x.com/alice",
		"--platform", "twitter",
		"--at", "2024-01-01 09:00:00",
		"--text", "My take on AI and Tech",
	)
	s.Require().NoError(err)
}

func (s *CLITestSuite) TestRun_SchedulesApprovedPost() {
	out, err := s.execute("run",
		"--profile", "https://x.com/alice",
		"--platform", "twitter",
		"--at", "2024-01-01 09:00:00",
		"--text", "My take on AI and Tech",
	)

	s.Require().NoError(err)
	s.Contains(out, "Interests: AI, Tech")
	s.Contains(out, "Latest trends in AI")
	s.Contains(out, "Draft:     Check out my thoughts on Latest trends in AI, Latest trends in Tech!")
	s.Contains(out, "Review:    approved")
	s.Contains(out, "Scheduled on twitter for 2024-01-01 09:00:00")

	s.Equal([]domain.HistoryRecord{{
		Time:     "2024-01-01 09:00:00",
		Text:     "My take on AI and Tech",
		Platform: "twitter",
		Status:   "Scheduled",
	}}, s.history())
}

func (s *CLITestSuite) TestRun_GeneratedDraftWithDefaults() {
	out, err := s.execute("run", "--profile", "@alice")

	s.Require().NoError(err)
	s.Contains(out, "Scheduled on twitter")
	records := s.history()
	s.Require().Len(records, 1)
	s.Equal("Check out my thoughts on Latest trends in AI, Latest trends in Tech!", records[0].Text)
}

func (s *CLITestSuite) TestRun_UnknownPlatform() {
	_, err := s.execute("run", "--profile", "@alice", "--platform", "myspace")

	s.ErrorIs(err, domain.ErrPrecondition)
	s.Empty(s.history())
}

func (s *CLITestSuite) TestRun_InvalidTime() {
	_, err := s.execute("run", "--profile", "@alice", "--at", "tomorrow")

	s.ErrorContains(err, "invalid --at")
	s.Empty(s.history())
}

func (s *CLITestSuite) TestRun_InvalidProfile() {
	_, err := s.execute("run", "--profile", "alice")

	s.ErrorIs(err, domain.ErrAnalysis)
}

func (s *CLITestSuite) TestRun_RequiresProfile() {
	_, err := s.execute("run")

	s.ErrorContains(err, "profile")
}

func (s *CLITestSuite) TestMissingExplicitConfig() {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(s.dir, "missing.yaml"), "history", "list"})

	err := cmd.Execute()

	s.ErrorIs(err, os.ErrNotExist)
}

func (s *CLITestSuite) TestHistoryList() {
	s.schedule()

	out, err := s.execute("history", "list", "--query", "TECH")

	s.Require().NoError(err)
	s.Contains(out, "My take on AI and Tech")
	s.Contains(out, "Scheduled")

	out, err = s.execute("history", "search", "bluesky")

	s.Require().NoError(err)
	s.Contains(out, "No matching posts.")
}

func (s *CLITestSuite) TestHistoryList_Empty() {
	out, err := s.execute("history", "list")

	s.Require().NoError(err)
	s.Contains(out, "No matching posts.")
}

func (s *CLITestSuite) TestHistoryReschedule() {
	s.schedule()

	out, err := s.execute("history", "reschedule", "0")

	s.Require().NoError(err)
	s.Contains(out, "Rescheduled #0 on twitter for 2024-01-01 09:00:00")
	records := s.history()
	s.Require().Len(records, 1)
	s.Equal(domain.StatusRescheduled, records[0].Status)
}

func (s *CLITestSuite) TestHistoryReschedule_OutOfRange() {
	s.schedule()

	_, err := s.execute("history", "reschedule", "5")

	s.ErrorIs(err, domain.ErrIndexOutOfRange)
	s.Len(s.history(), 1)
}

func (s *CLITestSuite) TestHistoryReschedule_BadIndex() {
	_, err := s.execute("history", "reschedule", "first")

	s.ErrorContains(err, "invalid index")
}

func (s *CLITestSuite) TestHistoryEdit_ReviewsAgainAndAppends() {
	s.schedule()

	out, err := s.execute("history", "edit", "0", "--text", "Second take", "--platform", "bluesky")

	s.Require().NoError(err)
	s.Contains(out, "Loaded:    My take on AI and Tech")
	s.Contains(out, "Review:    approved")
	s.Contains(out, "Scheduled on bluesky for 2024-01-01 09:00:00")

	records := s.history()
	s.Require().Len(records, 2)
	s.Equal(domain.StatusScheduled, records[0].Status)
	s.Equal(domain.HistoryRecord{
		Time:     "2024-01-01 09:00:00",
		Text:     "Second take",
		Platform: "bluesky",
		Status:   "Scheduled",
	}, records[1])
}
