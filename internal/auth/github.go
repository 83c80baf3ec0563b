package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
)

var (
	ErrTokenExchangeFailed = errors.New("GitHub token exchange failed")
	ErrNoUsableEmail       = errors.New("no usable email from GitHub")
)

// GitHub is the OAuth client used by GitHubLoginHandler.
var GitHub = &GitHubClient{}

// GitHubClient exchanges an OAuth authorization code for an access token and
// resolves the account's email. Zero-value fields fall back to the
// environment and the public GitHub endpoints; tests point them elsewhere.
type GitHubClient struct {
	ClientID     string
	ClientSecret string
	Endpoint     oauth2.Endpoint // token endpoint, defaults to github.com
	APIBase      string          // defaults to https://api.github.com
	HTTPClient   *http.Client
}

func (c *GitHubClient) config(redirectURI string) *oauth2.Config {
	clientID := c.ClientID
	if clientID == "" {
		clientID = os.Getenv("GITHUB_CLIENT_ID")
	}
	clientSecret := c.ClientSecret
	if clientSecret == "" {
		clientSecret = os.Getenv("GITHUB_CLIENT_SECRET")
	}
	endpoint := c.Endpoint
	if endpoint.TokenURL == "" {
		endpoint = githuboauth.Endpoint
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     endpoint,
		RedirectURL:  redirectURI,
	}
}

func (c *GitHubClient) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

// ExchangeCode trades the authorization code for an access token.
// A rejection from GitHub (bad or reused code) maps to ErrTokenExchangeFailed;
// transport failures pass through for the caller to treat as server faults.
func (c *GitHubClient) ExchangeCode(ctx context.Context, code, redirectURI string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.client())

	tok, err := c.config(redirectURI).Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return "", ErrTokenExchangeFailed
		}
		return "", fmt.Errorf("exchanging code: %w", err)
	}
	if tok.AccessToken == "" {
		return "", ErrTokenExchangeFailed
	}
	return tok.AccessToken, nil
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// AccountEmail fetches the account's email addresses and picks the
// primary-and-verified one, else any verified one, else the first listed.
func (c *GitHubClient) AccountEmail(ctx context.Context, accessToken string) (string, error) {
	apiBase := c.APIBase
	if apiBase == "" {
		apiBase = "https://api.github.com"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+"/user/emails", nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "token "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching emails: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GitHub emails API returned HTTP %d", resp.StatusCode)
	}

	var emails []githubEmail
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return "", fmt.Errorf("decoding emails: %w", err)
	}

	var verified string
	for _, e := range emails {
		if e.Email == "" {
			continue
		}
		if e.Primary && e.Verified {
			return e.Email, nil
		}
		if e.Verified && verified == "" {
			verified = e.Email
		}
	}
	if verified != "" {
		return verified, nil
	}
	if len(emails) > 0 && emails[0].Email != "" {
		return emails[0].Email, nil
	}
	return "", ErrNoUsableEmail
}
