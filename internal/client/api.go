package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Event mirrors the server's event resource.
type Event struct {
	ID         string  `json:"id"`
	OwnerEmail string  `json:"owner_email"`
	Title      string  `json:"title"`
	Date       string  `json:"date"`
	Start      *string `json:"start"`
	End        *string `json:"end"`
	Notes      *string `json:"notes"`
}

// Remark mirrors the server's remark resource.
type Remark struct {
	OwnerEmail string `json:"owner_email"`
	Remarks    string `json:"remarks"`
}

// Session is what a successful login returns.
type Session struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Client talks to the calendar API. Token is attached to every request
// once set.
type Client struct {
	BaseURL    string
	Token      string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// do sends a JSON request and decodes the JSON response into out (when out
// is non-nil). Non-2xx responses are turned into errors carrying the
// server's error message.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (HTTP %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: HTTP %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *Client) Register(ctx context.Context, email, password, role string) error {
	body := map[string]string{"email": email, "password": password}
	if role != "" {
		body["role"] = role
	}
	return c.do(ctx, http.MethodPost, "/auth/register", body, nil)
}

// Login authenticates with email and password and remembers the returned
// token for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var sess Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &sess); err != nil {
		return Session{}, err
	}
	c.Token = sess.Token
	return sess, nil
}

func (c *Client) ListEvents(ctx context.Context, owner string) ([]Event, error) {
	var events []Event
	if err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(owner), nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) CreateEvent(ctx context.Context, event Event) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/events/", event, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) UpdateEvent(ctx context.Context, event Event) error {
	return c.do(ctx, http.MethodPut, "/events/"+url.PathEscape(event.ID), event, nil)
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/events/"+url.PathEscape(id), nil, nil)
}

func (c *Client) GetRemark(ctx context.Context, owner string) (Remark, error) {
	var remark Remark
	if err := c.do(ctx, http.MethodGet, "/remarks/"+url.PathEscape(owner), nil, &remark); err != nil {
		return Remark{}, err
	}
	return remark, nil
}

func (c *Client) SetRemark(ctx context.Context, owner, text string) error {
	return c.do(ctx, http.MethodPost, "/remarks/", Remark{OwnerEmail: owner, Remarks: text}, nil)
}
