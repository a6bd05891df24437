// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands end to end against a reference store over httptest.
package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/harperreed/gymbot/internal/api"
	"github.com/harperreed/gymbot/internal/models"
	"github.com/harperreed/gymbot/internal/pivot"
	"github.com/harperreed/gymbot/internal/server"
	"github.com/harperreed/gymbot/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// setupStore starts a reference store over a temp database and returns
// its API base URL.
func setupStore(t *testing.T) string {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "gymbot.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ts := httptest.NewServer(server.New(db, log.New(io.Discard), server.Info{Version: "test"}))
	t.Cleanup(ts.Close)
	return ts.URL + "/api"
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the CLI with args, feeding stdin, and returns its output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GYMBOT_API_URL", "")
	t.Setenv("GYMBOT_LOG_LEVEL", "error")

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, "", args...)
	if err != nil {
		t.Fatalf("gymbot %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short string no truncation", input: "hello", maxLen: 10, want: "hello"},
		{name: "exact length", input: "hello", maxLen: 5, want: "hello"},
		{name: "needs truncation", input: "hello world this is a long string", maxLen: 10, want: "hello w..."},
		{name: "empty string", input: "", maxLen: 10, want: ""},
		{name: "very short maxLen", input: "hello", maxLen: 3, want: "..."},
		{name: "multi-byte runes", input: "Press à la française", maxLen: 10, want: "Press à..."},
		{name: "multi-byte fits", input: "Développé", maxLen: 9, want: "Développé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{name: "needs padding", input: "hi", length: 5, want: "hi   "},
		{name: "exact length", input: "hello", length: 5, want: "hello"},
		{name: "longer than length", input: "hello world", length: 5, want: "hello world"},
		{name: "empty string", input: "", length: 5, want: "     "},
		{name: "zero length", input: "hello", length: 0, want: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := padRight(tt.input, tt.length)
			if got != tt.want {
				t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
			}
		})
	}
}

func TestPromptYesNo(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"sure\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			got := promptYesNo(strings.NewReader(tt.input), &out, "Delete?")
			if got != tt.want {
				t.Errorf("promptYesNo(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.Contains(out.String(), "[y/N]") {
				t.Errorf("prompt = %q, want [y/N]", out.String())
			}
		})
	}
}

func TestRootCmd(t *testing.T) {
	if rootCmd.Use != "gymbot" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "gymbot")
	}
	for _, name := range []string{"api", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected --%s persistent flag", name)
		}
	}

	apiFlag := rootCmd.PersistentFlags().Lookup("api")
	if apiFlag.DefValue != api.DefaultBaseURL {
		t.Errorf("--api default = %q, want %q", apiFlag.DefValue, api.DefaultBaseURL)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"table", "set", "week", "exercise", "list", "show", "health",
		"export", "import", "serve", "mcp", "install-skill"}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("Expected command %q to be registered", name)
		}
	}
}

func TestSubcommands(t *testing.T) {
	tests := []struct {
		parent *cobra.Command
		want   []string
	}{
		{weekCmd, []string{"add", "show"}},
		{exerciseCmd, []string{"add", "delete"}},
	}

	for _, tt := range tests {
		t.Run(tt.parent.Name(), func(t *testing.T) {
			names := make(map[string]bool)
			for _, c := range tt.parent.Commands() {
				names[c.Name()] = true
			}
			for _, w := range tt.want {
				if !names[w] {
					t.Errorf("Expected %s subcommand %q", tt.parent.Name(), w)
				}
			}
		})
	}
}

func TestExportCmdValidArgs(t *testing.T) {
	expected := map[string]bool{"json": false, "yaml": false, "markdown": false}
	for _, arg := range exportCmd.ValidArgs {
		if _, ok := expected[arg]; ok {
			expected[arg] = true
		}
	}
	for arg, found := range expected {
		if !found {
			t.Errorf("Expected valid arg %q for exportCmd", arg)
		}
	}
}

func TestCellText(t *testing.T) {
	reps := 12
	if got := cellText(pivot.Cell{}); got != "-" {
		t.Errorf("cellText(empty) = %q, want -", got)
	}
	if got := cellText(pivot.Cell{Reps: &reps, ID: "a"}); got != "12" {
		t.Errorf("cellText(12) = %q, want 12", got)
	}
}

func TestRenderGrid(t *testing.T) {
	records := []models.Exercise{
		{ID: "a", Name: "Bench", Category: models.CategoryPush, WeekNumber: 1, MaxReps: 10},
		{ID: "b", Name: "Squat", Category: models.CategoryLeg, WeekNumber: 2, MaxReps: 20},
		{ID: "c", Name: "Bench", Category: models.CategoryPush, WeekNumber: 1, MaxReps: 11},
	}

	var out bytes.Buffer
	renderGrid(&out, pivot.Forward(records))
	got := out.String()

	for _, want := range []string{"PUSH Bench", "LEG Squat", "Week", "10", "20", "-", "warning", "a, c"} {
		if !strings.Contains(got, want) {
			t.Errorf("renderGrid output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "11") {
		t.Errorf("renderGrid should show the first duplicate only:\n%s", got)
	}
}

func TestRenderGridEmpty(t *testing.T) {
	var out bytes.Buffer
	renderGrid(&out, pivot.Forward(nil))
	if !strings.Contains(out.String(), "No exercises yet") {
		t.Errorf("renderGrid(empty) = %q", out.String())
	}
}

func TestGridWorkflow(t *testing.T) {
	url := setupStore(t)

	mustRun(t, "--api", url, "exercise", "add", "Bench", "--category", "push")
	mustRun(t, "--api", url, "exercise", "add", "Row", "-c", "PULL")
	mustRun(t, "--api", url, "set", "1", "Bench", "12")
	out := mustRun(t, "--api", url, "week", "add")
	if !strings.Contains(out, "Added week 2") {
		t.Errorf("week add output = %q", out)
	}
	mustRun(t, "--api", url, "set", "2", "Row", "9")

	out = mustRun(t, "--api", url, "table")
	for _, want := range []string{"PUSH Bench", "PULL Row", "12", "9"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, "--api", url, "list", "--week", "2")
	if !strings.Contains(out, "Bench") || !strings.Contains(out, "Row") {
		t.Errorf("list --week 2 output = %q", out)
	}

	out = mustRun(t, "--api", url, "list", "--category", "pull")
	if strings.Contains(out, "Bench") {
		t.Errorf("list --category pull should not include Bench:\n%s", out)
	}

	out = mustRun(t, "--api", url, "list", "--grouped")
	if !strings.Contains(out, "PUSH (2)") || !strings.Contains(out, "PULL (2)") {
		t.Errorf("list --grouped output = %q", out)
	}

	out = mustRun(t, "--api", url, "week", "show", "1")
	if !strings.Contains(out, "12") {
		t.Errorf("week show 1 output = %q", out)
	}
}

func TestSetErrors(t *testing.T) {
	url := setupStore(t)
	mustRun(t, "--api", url, "exercise", "add", "Bench", "-c", "push")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown exercise", []string{"set", "1", "Curl", "5"}, "unknown exercise"},
		{"invalid reps", []string{"set", "1", "Bench", "lots"}, "reps"},
		{"negative reps", []string{"set", "--", "1", "Bench", "-3"}, "reps"},
		{"invalid week", []string{"set", "zero", "Bench", "5"}, "invalid week"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", append([]string{"--api", url}, tt.args...)...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestExerciseAddRequiresCategory(t *testing.T) {
	url := setupStore(t)
	if _, err := run(t, "", "--api", url, "exercise", "add", "Bench"); err == nil {
		t.Error("Expected error without --category")
	}
	if _, err := run(t, "", "--api", url, "exercise", "add", "Bench", "-c", "arms"); err == nil {
		t.Error("Expected error for unknown category")
	}
}

func TestExerciseDelete(t *testing.T) {
	url := setupStore(t)
	mustRun(t, "--api", url, "exercise", "add", "Bench", "-c", "push")
	mustRun(t, "--api", url, "week", "add")

	out, err := run(t, "n\n", "--api", url, "exercise", "delete", "Bench")
	if err != nil {
		t.Fatalf("delete declined: %v", err)
	}
	if !strings.Contains(out, "Cancelled") {
		t.Errorf("declined output = %q", out)
	}

	out, err = run(t, "y\n", "--api", url, "exercise", "delete", "Bench")
	if err != nil {
		t.Fatalf("delete confirmed: %v", err)
	}
	if !strings.Contains(out, "2 records") {
		t.Errorf("confirmed output = %q", out)
	}

	if _, err := run(t, "", "--api", url, "exercise", "delete", "Bench", "--yes"); err == nil {
		t.Error("Expected error deleting an unknown exercise")
	}
}

func TestShowByPrefix(t *testing.T) {
	url := setupStore(t)
	mustRun(t, "--api", url, "exercise", "add", "Bench", "-c", "push")

	out := mustRun(t, "--api", url, "list")
	prefix := strings.Fields(out)[0]
	if len(prefix) != 8 {
		t.Fatalf("list did not start with an id prefix: %q", out)
	}

	out = mustRun(t, "--api", url, "show", prefix)
	if !strings.Contains(out, "Bench") || !strings.Contains(out, prefix) {
		t.Errorf("show %s output = %q", prefix, out)
	}
}

func TestSetInvalidRepsMessage(t *testing.T) {
	url := setupStore(t)
	mustRun(t, "--api", url, "exercise", "add", "Bench", "-c", "push")

	_, err := run(t, "", "--api", url, "set", "1", "Bench", "abc")
	if err == nil {
		t.Fatal("Expected error for invalid reps")
	}
	if got := strings.Count(err.Error(), `"abc"`); got != 1 {
		t.Errorf("err = %q, want the value quoted once", err)
	}
}

func TestShowNotFound(t *testing.T) {
	url := setupStore(t)
	_, err := run(t, "", "--api", url, "show", "nope")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestHealthCmd(t *testing.T) {
	url := setupStore(t)
	out := mustRun(t, "--api", url, "health")
	for _, want := range []string{"connected", "gymbot", "test"} {
		if !strings.Contains(out, want) {
			t.Errorf("health output missing %q:\n%s", want, out)
		}
	}
}

func TestBackendDown(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL + "/api"
	ts.Close()

	tests := [][]string{
		{"health", "--retry", "1", "--wait", "1ms"},
		{"table"},
		{"list"},
	}
	for _, args := range tests {
		t.Run(args[0], func(t *testing.T) {
			_, err := run(t, "", append([]string{"--api", url}, args...)...)
			if err == nil || err.Error() != api.NoResponseMessage {
				t.Errorf("err = %v, want %q", err, api.NoResponseMessage)
			}
		})
	}
}

func TestExportImport(t *testing.T) {
	src := setupStore(t)
	mustRun(t, "--api", src, "exercise", "add", "Bench", "-c", "push")
	mustRun(t, "--api", src, "set", "1", "Bench", "14")
	mustRun(t, "--api", src, "week", "add")

	file := filepath.Join(t.TempDir(), "backup.json")
	out := mustRun(t, "--api", src, "export", "json", "-o", file)
	if !strings.Contains(out, "Exported 2 records") {
		t.Errorf("export output = %q", out)
	}
	if _, err := os.Stat(file); err != nil {
		t.Fatalf("export file missing: %v", err)
	}

	dst := setupStore(t)
	out = mustRun(t, "--api", dst, "import", file)
	if !strings.Contains(out, "Imported 2 records") {
		t.Errorf("import output = %q", out)
	}
	out = mustRun(t, "--api", dst, "import", file)
	if !strings.Contains(out, "2 already present") {
		t.Errorf("re-import output = %q", out)
	}

	out = mustRun(t, "--api", dst, "export", "markdown")
	if !strings.Contains(out, "## PUSH") || !strings.Contains(out, "14") {
		t.Errorf("markdown export = %q", out)
	}

	if _, err := run(t, "", "--api", dst, "export", "csv"); err == nil {
		t.Error("Expected error for unknown format")
	}
}
