package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"social_agent/internal/domain"
)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse, edit and reschedule logged posts",
	}

	cmd.AddCommand(
		newHistoryListCmd(root),
		newHistorySearchCmd(root),
		newHistoryRescheduleCmd(root),
		newHistoryEditCmd(root),
	)
	return cmd
}

func newHistoryListCmd(root *rootOptions) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logged posts, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listHistory(cmd, root, query)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only show posts whose text or platform contains this (case-insensitive)")
	return cmd
}

func newHistorySearchCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search logged posts by text or platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistory(cmd, root, args[0])
		},
	}
}

func listHistory(cmd *cobra.Command, root *rootOptions, query string) error {
	a, err := openApp(cmd, root)
	if err != nil {
		return err
	}
	defer a.Close()

	records, err := a.pipeline.SearchHistory(cmd.Context(), query)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching posts.")
		return nil
	}
	return printRecords(cmd.OutOrStdout(), records)
}

func newHistoryRescheduleCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reschedule <index>",
		Short: "Send a logged post to the scheduler again without another review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.Close()

			s := a.pipeline.NewSession(a.cfg.Operator)
			record, err := a.pipeline.RescheduleRecord(cmd.Context(), s, index)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rescheduled #%d on %s for %s\n", index, record.Platform, record.Time)
			return nil
		},
	}
}

type editOptions struct {
	text     string
	platform string
	at       string
}

func newHistoryEditCmd(root *rootOptions) *cobra.Command {
	opts := &editOptions{}

	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Load a logged post as a new draft, review it and schedule it",
		Long: `Seeds a new draft from the logged post's text, platform and time. The draft
goes through review again before it can be scheduled, even when the text is
unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.Close()

			p := a.pipeline
			s := p.NewSession(a.cfg.Operator)

			record, err := p.LoadRecordForEdit(cmd.Context(), s, index)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded:    %s\n", record.Text)

			if cmd.Flags().Changed("text") {
				if err := p.EditDraft(s, opts.text); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Edited:    %s\n", opts.text)
			}

			return reviewAndSchedule(cmd, p, s, opts.platform, opts.at)
		},
	}

	cmd.Flags().StringVar(&opts.text, "text", "", "New text for the post")
	cmd.Flags().StringVar(&opts.platform, "platform", "", "Target platform (defaults to the logged post's)")
	cmd.Flags().StringVar(&opts.at, "at", "", "Post time as "+domain.TimeLayout+" (defaults to the logged post's)")
	return cmd
}

func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", arg, err)
	}
	return index, nil
}

func printRecords(out io.Writer, records []domain.IndexedRecord) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTIME\tPLATFORM\tSTATUS\tTEXT")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.Index, r.Record.Time, r.Record.Platform, r.Record.Status, r.Record.Text)
	}
	return w.Flush()
}
