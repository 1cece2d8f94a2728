package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"social_agent/internal/domain"
	"social_agent/internal/service"
)

type runOptions struct {
	profile  string
	platform string
	at       string
	text     string
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline for one profile and schedule the approved post",
		Long: `Runs profile analysis -> topic research -> post generation -> review -> scheduling.

The generated draft can be replaced with --text before review. The post is only
scheduled when the reviewer approves the exact text that will be published.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.profile, "profile", "p", "", "Profile URL or @handle to analyze")
	cmd.Flags().StringVar(&opts.platform, "platform", "", "Target platform (defaults to the first configured platform)")
	cmd.Flags().StringVar(&opts.at, "at", "", "Post time as "+domain.TimeLayout+" (defaults to one minute from now)")
	cmd.Flags().StringVar(&opts.text, "text", "", "Replace the generated draft with this text before review")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func runPipeline(cmd *cobra.Command, root *rootOptions, opts *runOptions) error {
	a, err := openApp(cmd, root)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	p := a.pipeline
	s := p.NewSession(a.cfg.Operator)

	profile, err := p.AnalyzeProfile(ctx, s, opts.profile)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Profile:   %s\nInterests: %s\n", profile.ProfileReference, strings.Join(profile.TopInterests, ", "))

	topics, err := p.ResearchTopics(ctx, s)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Topics:")
	for _, t := range topics.Topics {
		fmt.Fprintf(out, "  - %s\n", t)
	}

	draft, err := p.GeneratePost(ctx, s)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Draft:     %s\n", draft)

	if cmd.Flags().Changed("text") {
		if err := p.EditDraft(s, opts.text); err != nil {
			return err
		}
		fmt.Fprintf(out, "Edited:    %s\n", opts.text)
	}

	return reviewAndSchedule(cmd, p, s, opts.platform, opts.at)
}

// reviewAndSchedule reviews the session's draft, applies the target and
// schedules the post if it was approved.
func reviewAndSchedule(cmd *cobra.Command, p *service.Pipeline, s *service.Session, platform, at string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	verdict, err := p.ReviewDraft(ctx, s)
	if err != nil {
		return err
	}
	printVerdict(out, verdict)

	if err := applyTarget(p, s, platform, at); err != nil {
		return err
	}

	record, err := p.SchedulePost(ctx, s)
	var inconsistency *domain.InconsistencyError
	if errors.As(err, &inconsistency) {
		fmt.Fprintf(out, "Scheduled on %s for %s, but the history entry was not written\n", record.Platform, record.Time)
		return err
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Scheduled on %s for %s\n", record.Platform, record.Time)
	return nil
}

// applyTarget overrides the session's platform and time with whichever of
// the flags were given.
func applyTarget(p *service.Pipeline, s *service.Session, platform, at string) error {
	snap := s.Snapshot()

	if platform == "" {
		platform = string(snap.Platform)
	}
	postTime := snap.PostTime
	if at != "" {
		t, err := domain.ParsePostTime(at)
		if err != nil {
			return fmt.Errorf("invalid --at %q, want %s: %w", at, domain.TimeLayout, err)
		}
		postTime = t
	}

	return p.SetTarget(s, platform, postTime)
}

func printVerdict(out io.Writer, v domain.Verdict) {
	if domain.IsApproved(v) {
		fmt.Fprintln(out, "Review:    approved")
		return
	}
	fmt.Fprintf(out, "Review:    rejected (%s)\n", domain.Suggestion(v))
}
