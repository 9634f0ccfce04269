package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pratik-mahalle/proftrack/internal/domain/payment"
	"github.com/pratik-mahalle/proftrack/pkg/client"
	"github.com/spf13/cobra"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prevOut, prevFormat := out, outputFormat
	out = buf
	t.Cleanup(func() {
		out = prevOut
		outputFormat = prevFormat
	})
	return buf
}

func TestBuildWebhookPayload(t *testing.T) {
	body, err := buildWebhookPayload(payment.EventChargeSuccess, "a@x.com", "ref_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev, err := payment.ParseEvent(body)
	if err != nil {
		t.Fatalf("generated payload does not parse: %v", err)
	}
	charge, ok := ev.(payment.ChargeSucceeded)
	if !ok {
		t.Fatalf("expected ChargeSucceeded, got %T", ev)
	}
	if charge.Email != "a@x.com" || charge.Reference != "ref_1" {
		t.Errorf("unexpected charge %+v", charge)
	}
}

func TestBuildWebhookPayload_RandomReference(t *testing.T) {
	body, err := buildWebhookPayload(payment.EventChargeSuccess, "a@x.com", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ev, err := payment.ParseEvent(body)
	if err != nil {
		t.Fatalf("generated payload does not parse: %v", err)
	}
	if ref := ev.(payment.ChargeSucceeded).Reference; !strings.HasPrefix(ref, "cli_") {
		t.Errorf("expected generated reference, got %q", ref)
	}
}

func TestBuildWebhookPayload_Errors(t *testing.T) {
	if _, err := buildWebhookPayload(payment.EventChargeSuccess, "", ""); err == nil {
		t.Error("expected error without email")
	}
	if _, err := buildWebhookPayload("transfer.success", "a@x.com", ""); err == nil {
		t.Error("expected error for unsupported event")
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID("42"); err != nil || id != 42 {
		t.Errorf("parseID(42) = %d, %v", id, err)
	}
	for _, in := range []string{"", "abc", "0", "-3"} {
		if _, err := parseID(in); err == nil {
			t.Errorf("parseID(%q) should fail", in)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abcdef", 3, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestCommandAuth_InheritsFromParent(t *testing.T) {
	parent := withAuth(&cobra.Command{Use: "config"}, authNone)
	child := &cobra.Command{Use: "set"}
	parent.AddCommand(child)

	if got := commandAuth(child); got != authNone {
		t.Errorf("expected child to inherit %q, got %q", authNone, got)
	}
	if got := commandAuth(&cobra.Command{Use: "list"}); got != "" {
		t.Errorf("expected no annotation, got %q", got)
	}
}

func TestTableRender(t *testing.T) {
	buf := captureOutput(t)

	table := NewTable("ID", "TITLE")
	table.AddRow("1", "Bridge survey")
	table.Render()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "--") {
		t.Errorf("expected separator line, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "Bridge survey") {
		t.Errorf("expected row, got %q", lines[2])
	}
}

func TestProjectListCmd_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("unexpected auth header %q", got)
		}
		if got := r.URL.Query().Get("status"); got != "active" {
			t.Errorf("expected status filter, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"data":[{"id":7,"title":"Bridge survey","status":"active"}],"page":1,"page_size":20,"total_items":1,"total_pages":1}}`))
	}))
	defer srv.Close()

	buf := captureOutput(t)
	outputFormat = "json"
	prevClient := apiClient
	apiClient = client.NewClient(client.Config{BaseURL: srv.URL, Token: "tok"})
	t.Cleanup(func() { apiClient = prevClient })

	cmd := newProjectListCmd()
	if err := cmd.Flags().Set("status", "active"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var page client.Page[client.Project]
	if err := json.Unmarshal(buf.Bytes(), &page); err != nil {
		t.Fatalf("output is not JSON: %v: %s", err, buf.String())
	}
	if len(page.Data) != 1 || page.Data[0].ID != 7 {
		t.Errorf("unexpected page %+v", page)
	}
}

func TestBillingCheckoutCmd_RequiresAmount(t *testing.T) {
	captureOutput(t)
	cmd := newBillingCheckoutCmd()
	if err := cmd.RunE(cmd, nil); err == nil {
		t.Error("expected error for missing amount")
	}
}
