package googleauth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/pkordes/smarttravel/internal/googleauth"
)

func TestCredentials_Configured(t *testing.T) {
	assert.True(t, googleauth.Credentials{ClientID: "id", ClientSecret: "s", RefreshToken: "r"}.Configured())
	assert.False(t, googleauth.Credentials{ClientID: "id", ClientSecret: "s"}.Configured())
	assert.False(t, googleauth.Credentials{}.Configured())
}

func TestConfig_DefaultScopes(t *testing.T) {
	cfg := googleauth.Config(googleauth.Credentials{ClientID: "id", ClientSecret: "secret"})

	assert.Equal(t, "id", cfg.ClientID)
	assert.Equal(t, googleauth.DefaultScopes, cfg.Scopes)

	only := googleauth.Config(googleauth.Credentials{}, "scope-a")
	assert.Equal(t, []string{"scope-a"}, only.Scopes)
}

func TestTokenSource_RefreshesAgainstTokenEndpoint(t *testing.T) {
	var grant, refresh string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		grant = r.PostForm.Get("grant_type")
		refresh = r.PostForm.Get("refresh_token")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "fresh", "token_type": "Bearer", "expires_in": 3600,
		})
	}))
	defer srv.Close()

	creds := googleauth.Credentials{ClientID: "id", ClientSecret: "secret", RefreshToken: "stored"}
	cfg := googleauth.Config(creds)
	cfg.Endpoint = oauth2.Endpoint{TokenURL: srv.URL, AuthStyle: oauth2.AuthStyleInParams}

	tok, err := cfg.TokenSource(context.Background(), &oauth2.Token{RefreshToken: creds.RefreshToken}).Token()

	require.NoError(t, err)
	assert.Equal(t, "fresh", tok.AccessToken)
	assert.Equal(t, "refresh_token", grant)
	assert.Equal(t, "stored", refresh)
}
