package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"go.xrstf.de/release_calendar/pkg/client"
	"go.xrstf.de/release_calendar/pkg/github"
)

func milestoneServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/mozilla-mobile/focus-android/milestones" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	log, _ := test.NewNullLogger()
	cmd := newRootCommand(log)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	server := milestoneServer(t, http.StatusOK, `[
		{"title": "v100", "due_on": "2024-03-01T00:00:00Z"},
		{"title": "v99", "due_on": "2023-12-01T00:00:00Z"},
		{"title": "v101", "due_on": null}
	]`)

	out, err := execute(t, "--base-url", server.URL, "--year", "2024", "mozilla-mobile", "focus-android")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{| class="wikitable" style="padding:10; font-size:100%; text-align:center;"
|-
| '''Title''' || '''Due date''' || '''Release'''
|-
| v100 || Mar 01, 2024 || Mar 08, 2024
|}
`

	if out != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestRootCommand_HeaderOnly(t *testing.T) {
	server := milestoneServer(t, http.StatusOK, `[]`)

	out, err := execute(t, "--base-url", server.URL, "mozilla-mobile", "focus-android")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Count(out, "|-\n") != 1 {
		t.Errorf("expected only the header row, got:\n%s", out)
	}
}

func TestRootCommand_Idempotent(t *testing.T) {
	server := milestoneServer(t, http.StatusOK, `[
		{"title": "b", "due_on": "2024-06-01T00:00:00Z"},
		{"title": "a", "due_on": "2024-01-01T00:00:00Z"}
	]`)

	first, err := execute(t, "--base-url", server.URL, "--year", "2024", "mozilla-mobile", "focus-android")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := execute(t, "--base-url", server.URL, "--year", "2024", "mozilla-mobile", "focus-android")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("output differs between runs:\n%s\n%s", first, second)
	}
}

func TestRootCommand_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{"message": "Not Found"}`,
			check: func(err error) bool {
				var statusErr *client.StatusError
				return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
			},
		},
		{
			name:   "malformed JSON",
			status: http.StatusOK,
			body:   `[{"title": `,
			check: func(err error) bool {
				var shapeErr *github.ShapeError
				return errors.As(err, &shapeErr)
			},
		},
		{
			name:   "missing title",
			status: http.StatusOK,
			body:   `[{"due_on": "2024-03-01T00:00:00Z"}]`,
			check: func(err error) bool {
				var shapeErr *github.ShapeError
				return errors.As(err, &shapeErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := milestoneServer(t, tt.status, tt.body)

			out, err := execute(t, "--base-url", server.URL, "mozilla-mobile", "focus-android")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.check(err) {
				t.Errorf("unexpected error type %T: %v", err, err)
			}
			if out != "" {
				t.Errorf("expected no output, got:\n%s", out)
			}
		})
	}
}

func TestRootCommand_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: []string{}},
		{name: "one argument", args: []string{"mozilla-mobile"}},
		{name: "three arguments", args: []string{"a", "b", "c"}},
		{name: "combined name", args: []string{"mozilla-mobile/focus-android", "x"}},
		{name: "empty owner", args: []string{"", "focus-android"}},
		{name: "relative base URL", args: []string{"--base-url", "api.github.com", "a", "b"}},
		{name: "negative timeout", args: []string{"--timeout=-1s", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRootCommand_MetricsFile(t *testing.T) {
	server := milestoneServer(t, http.StatusOK, `[
		{"title": "v100", "due_on": "2024-03-01T00:00:00Z"},
		{"title": "v101", "due_on": null}
	]`)

	filename := filepath.Join(t.TempDir(), "release_calendar.prom")

	if _, err := execute(t, "--base-url", server.URL, "--year", "2024", "--metrics-file", filename, "mozilla-mobile", "focus-android"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("failed to read metrics file: %v", err)
	}

	for _, line := range []string{
		`release_calendar_api_requests_total{repo="mozilla-mobile/focus-android"} 1`,
		`release_calendar_milestones{repo="mozilla-mobile/focus-android",stage="fetched"} 2`,
		`release_calendar_milestones{repo="mozilla-mobile/focus-android",stage="undated"} 1`,
		`release_calendar_milestones{repo="mozilla-mobile/focus-android",stage="retained"} 1`,
		`release_calendar_rows{repo="mozilla-mobile/focus-android"} 1`,
	} {
		if !strings.Contains(string(content), line) {
			t.Errorf("expected metrics to contain %q, got:\n%s", line, string(content))
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	opt := defaultOptions()
	if err := opt.validate(); err != nil {
		t.Errorf("default options should be valid: %v", err)
	}

	opt.year = -1
	if err := opt.validate(); err == nil {
		t.Error("expected error for negative year, got nil")
	}
}
