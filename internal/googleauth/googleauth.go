// Package googleauth builds OAuth2 token sources for the Google APIs used by
// the server (Gmail for mail, Sheets for the agent-log push).
package googleauth

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/sheets/v4"
)

// Credentials identify an installed OAuth client and a long-lived refresh
// token obtained for it.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Configured reports whether all three values are present.
func (c Credentials) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// DefaultScopes covers sending mail and appending to spreadsheets.
var DefaultScopes = []string{gmail.GmailSendScope, sheets.SpreadsheetsScope}

// Config returns the oauth2 client configuration for creds.
func Config(creds Credentials, scopes ...string) *oauth2.Config {
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       scopes,
	}
}

// TokenSource exchanges the refresh token for access tokens on demand.
// The returned source caches tokens until they expire.
func TokenSource(ctx context.Context, creds Credentials, scopes ...string) oauth2.TokenSource {
	return Config(creds, scopes...).TokenSource(ctx, &oauth2.Token{
		RefreshToken: creds.RefreshToken,
		Expiry:       time.Now(), // force a refresh on first use
	})
}
