package publisher

import (
	"context"
	"log/slog"

	"social_agent/internal/domain"
)

// LogSink accepts every post and only records it in the log. It stands in
// for a real publishing integration.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger.With("component", "log_sink")}
}

func (l *LogSink) Schedule(ctx context.Context, post domain.ScheduledPost) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.logger.Info("post scheduled",
		"action", post.Action,
		"platform", post.Platform,
		"operator", post.Operator,
		"post_time", domain.FormatPostTime(post.PostTime),
		"text", post.Text,
	)
	return nil
}
