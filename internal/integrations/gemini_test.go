package integrations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiClient_Draft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gemini-test:generateContent" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("X-Goog-Api-Key") != "key" {
			t.Errorf("api key header = %q", r.Header.Get("X-Goog-Api-Key"))
		}
		var req GeminiRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "Summarise" {
			t.Errorf("request = %+v", req)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"## Summary"}]},"finishReason":"STOP"}]}`))
	}))
	defer server.Close()

	text, err := NewGeminiClient("key", "gemini-test").WithBaseURL(server.URL).Draft(context.Background(), "Summarise")
	if err != nil {
		t.Fatalf("Draft() error = %v", err)
	}
	if text != "## Summary" {
		t.Errorf("Draft() = %q", text)
	}
}

func TestGeminiClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "http error", status: http.StatusTooManyRequests, body: `{"error":"quota"}`, wantErr: "status 429"},
		{name: "no candidates", status: http.StatusOK, body: `{"candidates":[]}`, wantErr: "no content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewGeminiClient("key", "").WithBaseURL(server.URL).Draft(context.Background(), "x")
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Draft() error = %v, want %q", err, tt.wantErr)
			}
		})
	}

	if _, err := NewGeminiClient("", "").Draft(context.Background(), "x"); err == nil {
		t.Error("Draft() without key succeeded")
	}
}
