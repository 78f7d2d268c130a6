package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"

	"google.golang.org/api/option"

	"github.com/pkordes/smarttravel/internal/config"
	"github.com/pkordes/smarttravel/internal/googleauth"
	"github.com/pkordes/smarttravel/internal/mailer"
	"github.com/pkordes/smarttravel/internal/service"
	"github.com/pkordes/smarttravel/internal/sheets"
)

func googleCredentials(cfg config.Config) googleauth.Credentials {
	return googleauth.Credentials{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RefreshToken: cfg.Google.RefreshToken,
	}
}

// newNotifier builds the mailer for MAIL_PROVIDER. The "log" provider only
// writes the rendered message to the log.
func newNotifier(ctx context.Context, cfg config.Config, log *slog.Logger) (*mailer.Mailer, error) {
	from := mail.Address{Name: cfg.Mail.FromName, Address: cfg.Mail.From}

	var sender mailer.Sender
	switch cfg.Mail.Provider {
	case config.MailProviderGmail:
		ts := googleauth.TokenSource(ctx, googleCredentials(cfg))
		gs, err := mailer.NewGmailSender(ctx, from, option.WithTokenSource(ts))
		if err != nil {
			return nil, fmt.Errorf("newNotifier: %w", err)
		}
		sender = gs
	case config.MailProviderSendGrid:
		sender = mailer.NewSendGridSender(cfg.Mail.SendGridAPIKey, from)
	default:
		sender = mailer.NewLogSender(log)
	}
	log.Info("mail provider selected", "provider", cfg.Mail.Provider)

	m, err := mailer.New(sender, cfg.FrontendURL)
	if err != nil {
		return nil, fmt.Errorf("newNotifier: %w", err)
	}
	return m, nil
}

// newSheetAppender returns the Sheets client when a spreadsheet is
// configured and the logging mock otherwise.
func newSheetAppender(ctx context.Context, cfg config.Config, log *slog.Logger) (service.SheetAppender, error) {
	if !cfg.Sheets.Enabled() {
		log.Info("google sheets not configured, using mock")
		return sheets.NewMock(log), nil
	}
	ts := googleauth.TokenSource(ctx, googleCredentials(cfg))
	c, err := sheets.NewClient(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.Range, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("newSheetAppender: %w", err)
	}
	return c, nil
}
