package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath  string
	metricsAddr string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Social media post pipeline",
		Long: `Analyzes a profile, researches topics, drafts a post and sends it through
an automated review. Only approved posts are scheduled, and every scheduled post
is recorded in a searchable history.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "config.yaml", "Path to config file")
	cmd.PersistentFlags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (overrides metrics.addr)")

	cmd.AddCommand(newRunCmd(opts), newHistoryCmd(opts))
	return cmd
}
