package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSignInDecodesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/signin" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q", r.Method)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["email"] != "alice@example.com" || body["password"] != "secret123" {
			t.Errorf("request body = %v", body)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"id":       "a1",
			"fullName": "Alice Smith",
			"email":    "alice@example.com",
			"role":     "customer",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	s, err := c.SignIn(context.Background(), "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if s.ID != "a1" || s.Email != "alice@example.com" || s.Role != "customer" {
		t.Errorf("session = %+v", s)
	}
}

func TestExtractMessageTiers(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		want        string
	}{
		{"structured message field", 401, "application/json", `{"message":"invalid credentials"}`, "invalid credentials"},
		{"structured error field", 400, "application/json", `{"error":"bad request"}`, "bad request"},
		{"json string body", 500, "application/json", `"backend exploded"`, "backend exploded"},
		{"plain text body", 502, "text/plain", "bad gateway", "bad gateway"},
		{"empty body leaves message empty", 500, "application/json", "", ""},
		{"object without message leaves empty", 500, "application/json", `{"code":13}`, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tc.contentType)
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := New(srv.URL)
			_, err := c.SignIn(context.Background(), "alice@example.com", "secret123")
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *APIError", err)
			}
			if apiErr.Status != tc.status {
				t.Errorf("status = %d, want %d", apiErr.Status, tc.status)
			}
			if apiErr.Message != tc.want {
				t.Errorf("message = %q, want %q", apiErr.Message, tc.want)
			}
		})
	}
}

func TestCookieJarCarriesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/signin":
			http.SetCookie(w, &http.Cookie{Name: "token", Value: "session-token", Path: "/"})
			json.NewEncoder(w).Encode(map[string]string{"id": "a1", "email": "alice@example.com"})
		case "/api/user/current":
			cookie, err := r.Cookie("token")
			if err != nil || cookie.Value != "session-token" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "no session"})
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"id": "a1", "email": "alice@example.com"})
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	// Before signing in, the current-session probe reports no session, not
	// an error.
	s, err := c.CurrentSession(context.Background())
	if err != nil || s != nil {
		t.Fatalf("CurrentSession before sign-in = (%+v, %v), want (nil, nil)", s, err)
	}

	if _, err := c.SignIn(context.Background(), "alice@example.com", "secret123"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	s, err = c.CurrentSession(context.Background())
	if err != nil {
		t.Fatalf("CurrentSession: %v", err)
	}
	if s == nil || s.ID != "a1" {
		t.Fatalf("session = %+v", s)
	}
}

func TestCurrentSessionSwallowsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL)
	s, err := c.CurrentSession(context.Background())
	if err != nil || s != nil {
		t.Fatalf("CurrentSession = (%+v, %v), want (nil, nil)", s, err)
	}
}

func TestRecoveryEndpointsPostExpectedBodies(t *testing.T) {
	var got struct {
		path string
		body map[string]string
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.body = nil
		if err := json.NewDecoder(r.Body).Decode(&got.body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	if err := c.SendOTP(ctx, "alice@example.com"); err != nil {
		t.Fatalf("SendOTP: %v", err)
	}
	if got.path != "/api/auth/send-otp" || got.body["email"] != "alice@example.com" {
		t.Errorf("send-otp sent %q %v", got.path, got.body)
	}

	if err := c.VerifyOTP(ctx, "alice@example.com", "123456"); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if got.path != "/api/auth/verify-otp" || got.body["otp"] != "123456" {
		t.Errorf("verify-otp sent %q %v", got.path, got.body)
	}

	if err := c.ResetPassword(ctx, "alice@example.com", "newsecret1"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if got.path != "/api/auth/reset-password" || got.body["newPassword"] != "newsecret1" {
		t.Errorf("reset-password sent %q %v", got.path, got.body)
	}
}
