package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PocketCal/PC-Backend/internal/auth"
	"golang.org/x/oauth2"
)

// fakeGitHub stands up token and user-emails endpoints on one httptest
// server and returns a client pointed at it.
func fakeGitHub(t *testing.T, exchangeOK bool, emails []map[string]any) (*auth.GitHubClient, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !exchangeOK {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "bad_verification_code"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "gho_testtoken",
			"token_type":   "bearer",
		})
	})
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "token gho_testtoken" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(emails)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &auth.GitHubClient{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		Endpoint: oauth2.Endpoint{
			TokenURL: srv.URL + "/login/oauth/access_token",
		},
		APIBase:    srv.URL,
		HTTPClient: srv.Client(),
	}, srv
}

// TestGitHubEmailSelection covers the primary-and-verified, any-verified and
// first-available fallbacks plus the no-usable-email failure.
func TestGitHubEmailSelection(t *testing.T) {
	cases := []struct {
		name   string
		emails []map[string]any
		want   string
		errIs  error
	}{
		{
			name: "primary verified wins",
			emails: []map[string]any{
				{"email": "old@x.com", "primary": false, "verified": true},
				{"email": "main@x.com", "primary": true, "verified": true},
			},
			want: "main@x.com",
		},
		{
			name: "verified fallback",
			emails: []map[string]any{
				{"email": "unverified@x.com", "primary": true, "verified": false},
				{"email": "backup@x.com", "primary": false, "verified": true},
			},
			want: "backup@x.com",
		},
		{
			name: "first available fallback",
			emails: []map[string]any{
				{"email": "anything@x.com", "primary": false, "verified": false},
			},
			want: "anything@x.com",
		},
		{
			name:   "no emails at all",
			emails: []map[string]any{},
			errIs:  auth.ErrNoUsableEmail,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gh, _ := fakeGitHub(t, true, tc.emails)

			got, err := gh.AccountEmail(context.Background(), "gho_testtoken")
			if tc.errIs != nil {
				if !errors.Is(err, tc.errIs) {
					t.Fatalf("expected %v, got %v", tc.errIs, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("AccountEmail: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

// TestGitHubExchangeRejected verifies a provider rejection maps to
// ErrTokenExchangeFailed.
func TestGitHubExchangeRejected(t *testing.T) {
	gh, _ := fakeGitHub(t, false, nil)

	_, err := gh.ExchangeCode(context.Background(), "stale-code", "http://localhost/callback")
	if !errors.Is(err, auth.ErrTokenExchangeFailed) {
		t.Fatalf("expected ErrTokenExchangeFailed, got %v", err)
	}
}

// TestGitHubLoginEndToEnd drives POST /auth/github against the faked
// provider: a valid code logs in (auto-creating a viewer), a rejected
// exchange returns 400, a missing code returns 400.
func TestGitHubLoginEndToEnd(t *testing.T) {
	email := uniqueEmail(t)
	gh, _ := fakeGitHub(t, true, []map[string]any{
		{"email": email, "primary": true, "verified": true},
	})

	orig := auth.GitHub
	auth.GitHub = gh
	defer func() { auth.GitHub = orig }()

	code, body := postJSON(t, "/auth/github", map[string]string{
		"code":         "good-code",
		"redirect_uri": "http://localhost/callback",
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %v", code, body)
	}
	if body["token"] == "" || body["email"] != email || body["role"] != "viewer" {
		t.Errorf("expected viewer token for %s, got %v", email, body)
	}

	if code, _ := postJSON(t, "/auth/github", map[string]string{}); code != http.StatusBadRequest {
		t.Errorf("missing code: expected 400, got %d", code)
	}

	auth.GitHub, _ = fakeGitHub(t, false, nil)
	code, body = postJSON(t, "/auth/github", map[string]string{
		"code": "stale-code",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("rejected exchange: expected 400, got %d; body: %v", code, body)
	}
	if body["error"] != "GitHub token exchange failed" {
		t.Errorf("expected exchange failed error, got %v", body)
	}
}
