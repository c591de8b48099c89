package lastfm

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClient(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		_, err := NewClient(Config{})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		client, err := NewClient(Config{APIKey: "test-api-key"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if client.baseURL != DefaultBaseURL {
			t.Errorf("expected base URL %s, got %s", DefaultBaseURL, client.baseURL)
		}
		if client.httpClient != http.DefaultClient {
			t.Error("expected http.DefaultClient")
		}
		if client.User() == nil || client.Artist() == nil {
			t.Error("expected services to be initialized")
		}
	})
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Debugf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestClientGet(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		response   string
		wantStatus int
		wantCode   int
	}{
		{
			name:       "success",
			statusCode: http.StatusOK,
			response:   `{"ok":true}`,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			response:   `oops`,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			response:   `{"error":6,"message":"not found"}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "api error with ok status",
			statusCode: http.StatusOK,
			response:   `{"error":10,"message":"Invalid API key"}`,
			wantCode:   ErrCodeInvalidAPIKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				if r.Method != http.MethodGet {
					t.Errorf("expected GET request, got %s", r.Method)
				}
				q := r.URL.Query()
				if q.Get("method") != "test.method" {
					t.Errorf("expected method test.method, got %s", q.Get("method"))
				}
				if q.Get("api_key") != "test-api-key" {
					t.Errorf("expected api_key test-api-key, got %s", q.Get("api_key"))
				}
				if q.Get("format") != "json" {
					t.Errorf("expected format json, got %s", q.Get("format"))
				}
				if ua := r.Header.Get("User-Agent"); ua != defaultUserAgent {
					t.Errorf("expected User-Agent %s, got %s", defaultUserAgent, ua)
				}
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.response))
			}))
			defer server.Close()

			logger := &recordingLogger{}
			client, err := NewClient(Config{APIKey: "test-api-key", BaseURL: server.URL, Logger: logger})
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			body, err := client.get(t.Context(), "test.method", nil)

			if calls != 1 {
				t.Errorf("expected exactly 1 request, got %d", calls)
			}
			if len(logger.lines) == 0 {
				t.Error("expected debug logging")
			}

			switch {
			case tt.wantStatus != 0:
				var statusErr *StatusError
				if !errors.As(err, &statusErr) {
					t.Fatalf("expected *StatusError, got %v", err)
				}
				if statusErr.StatusCode != tt.wantStatus {
					t.Errorf("expected status %d, got %d", tt.wantStatus, statusErr.StatusCode)
				}
			case tt.wantCode != 0:
				var apiErr *Error
				if !errors.As(err, &apiErr) {
					t.Fatalf("expected *Error, got %v", err)
				}
				if apiErr.Code != tt.wantCode {
					t.Errorf("expected code %d, got %d", tt.wantCode, apiErr.Code)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if string(body) != tt.response {
					t.Errorf("expected body %s, got %s", tt.response, body)
				}
			}
		})
	}
}

func TestClientGet_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewClient(Config{APIKey: "test-api-key", BaseURL: url})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.get(t.Context(), "test.method", nil); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestErrorTemporary(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{ErrCodeServiceOffline, true},
		{ErrCodeTempUnavailable, true},
		{ErrCodeRateLimitExceeded, true},
		{ErrCodeInvalidParameters, false},
		{ErrCodeInvalidAPIKey, false},
	}

	for _, tt := range tests {
		err := &Error{Code: tt.code}
		if got := err.Temporary(); got != tt.want {
			t.Errorf("code %d: expected Temporary() = %v, got %v", tt.code, tt.want, got)
		}
	}

	if !errors.Is(&Error{Code: 6, Message: "a"}, &Error{Code: 6}) {
		t.Error("expected errors with equal codes to match")
	}
}
