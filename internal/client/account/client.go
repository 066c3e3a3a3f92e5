// Package account provides the HTTP client for the FoodCort account API.
// A cookie jar carries the session cookie on every call, mirroring the web
// client's credentials-included requests.
package account

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
)

// Session is the account record returned by every session-establishing call.
type Session struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Role     string `json:"role"`
}

// APIError is a non-2xx response from the account API. Message is the result
// of the three-tier extraction: a structured {"message": ...} body first,
// then a plain string body, else empty — callers substitute their own
// fallback when Message is empty.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("account api: status %d", e.Status)
	}
	return fmt.Sprintf("account api: %s", e.Message)
}

type Client struct {
	base string
	http *http.Client
}

func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Jar: jar},
	}
}

type SignUpParams struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
	Role     string `json:"role"`
}

func (c *Client) SignUp(ctx context.Context, p SignUpParams) (*Session, error) {
	return c.postSession(ctx, "/api/auth/signup", p)
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return c.postSession(ctx, "/api/auth/signin", map[string]string{
		"email":    email,
		"password": password,
	})
}

// GoogleAuth posts a verified identity assertion to the unified endpoint
// shared by sign-up and sign-in. Mobile and role are empty on the sign-in
// path.
func (c *Client) GoogleAuth(ctx context.Context, fullName, email, mobile, role string) (*Session, error) {
	return c.postSession(ctx, "/api/auth/google-auth", map[string]string{
		"fullName": fullName,
		"email":    email,
		"mobile":   mobile,
		"role":     role,
	})
}

func (c *Client) SignOut(ctx context.Context) error {
	_, err := c.post(ctx, "/api/auth/signout", struct{}{})
	return err
}

func (c *Client) SendOTP(ctx context.Context, email string) error {
	_, err := c.post(ctx, "/api/auth/send-otp", map[string]string{"email": email})
	return err
}

func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	_, err := c.post(ctx, "/api/auth/verify-otp", map[string]string{
		"email": email,
		"otp":   otp,
	})
	return err
}

func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) error {
	_, err := c.post(ctx, "/api/auth/reset-password", map[string]string{
		"email":       email,
		"newPassword": newPassword,
	})
	return err
}

// CurrentSession fetches the account behind the session cookie. Any failure
// is treated as "no session": the caller gets (nil, nil), never an error to
// distinguish.
func (c *Client) CurrentSession(ctx context.Context) (*Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/user/current", nil)
	if err != nil {
		return nil, nil
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil
	}
	var s Session
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, nil
	}
	return &s, nil
}

func (c *Client) postSession(ctx context.Context, path string, body any) (*Session, error) {
	resp, err := c.post(ctx, path, body)
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(resp, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: extractMessage(buf.Bytes())}
	}
	return buf.Bytes(), nil
}

// extractMessage implements the first two tiers of the error-message policy:
// a structured object with a message field wins, then a plain string body.
// An empty result tells the caller to use its path-specific fallback.
func extractMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	var obj map[string]any
	if err := json.Unmarshal(trimmed, &obj); err == nil {
		if msg, ok := obj["message"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := obj["error"].(string); ok && msg != "" {
			return msg
		}
		return ""
	}

	var str string
	if err := json.Unmarshal(trimmed, &str); err == nil {
		return str
	}
	return string(trimmed)
}
