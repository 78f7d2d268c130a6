package mailer

import (
	"context"
	"log/slog"
)

// LogSender only logs outgoing mail. It is used when no mail provider is
// configured.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender returns a Sender that writes one log line per message.
func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.log.InfoContext(ctx, "mock email sent",
		"to", msg.To,
		"subject", msg.Subject,
		"bytes", len(msg.HTML)+len(msg.Text),
	)
	return nil
}
