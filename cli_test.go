package main

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBinary string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "nlcal-test")
	if err != nil {
		panic(err)
	}
	testBinary = filepath.Join(dir, "nlcal")
	cmd := exec.Command("go", "build", "-o", testBinary, ".") //nolint:gosec // test binary path is controlled by TestMain
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("build failed: " + err.Error())
	}
	code := m.Run()
	_ = os.RemoveAll(dir) //nolint:gosec // best-effort cleanup
	os.Exit(code)
}

// runCLI executes the built binary with args in an isolated temp HOME directory.
// It returns stdout, stderr, and the process exit code.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	return runCLIHome(t, t.TempDir(), args...)
}

// runCLIHome executes the binary against a caller-provided HOME so that
// multiple invocations can share one store.
func runCLIHome(t *testing.T, home string, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()

	cmd := exec.Command(testBinary, args...) //nolint:gosec // test binary path controlled by test setup
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"XDG_DATA_HOME="+filepath.Join(home, ".local", "share"),
		"XDG_CONFIG_HOME="+filepath.Join(home, ".config"),
	)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	exitCode = 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("failed to run CLI: %v", err)
		}
	}

	return stdoutBuf.String(), stderrBuf.String(), exitCode
}

// --- parse command ---

func TestCLI_ParseJSON(t *testing.T) {
	stdout, _, exitCode := runCLI(t, "parse", "Book meeting tomorrow at 10am", "--json")

	assert.Equal(t, 0, exitCode, "parse should exit 0")

	var result struct {
		Events []struct {
			Title string `json:"title"`
			Date  string `json:"date"`
			Time  string `json:"time"`
		} `json:"events"`
		Warning string `json:"warning"`
	}
	err := json.Unmarshal([]byte(strings.TrimSpace(stdout)), &result)
	require.NoError(t, err, "stdout should be valid JSON")
	require.Len(t, result.Events, 1)
	assert.Equal(t, "Book meeting", result.Events[0].Title)
	assert.Equal(t, "10:00", result.Events[0].Time)
	assert.Empty(t, result.Warning)
}

func TestCLI_ParseUnrecognizedJSON(t *testing.T) {
	stdout, _, exitCode := runCLI(t, "parse", "gibberish text without a date", "--json")

	assert.Equal(t, 0, exitCode, "unrecognized input is data, not an error")

	var result struct {
		Events  []json.RawMessage `json:"events"`
		Warning string            `json:"warning"`
	}
	err := json.Unmarshal([]byte(strings.TrimSpace(stdout)), &result)
	require.NoError(t, err)
	assert.Empty(t, result.Events)
	assert.NotEmpty(t, result.Warning)
}

func TestCLI_ParsePipedStdin(t *testing.T) {
	home := t.TempDir()
	cmd := exec.Command(testBinary, "parse", "--json") //nolint:gosec // test binary
	cmd.Env = append(os.Environ(), "HOME="+home)
	cmd.Stdin = strings.NewReader("Dentist next friday\n")

	out, err := cmd.Output()
	require.NoError(t, err)

	var result struct {
		Events []json.RawMessage `json:"events"`
	}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(out), &result))
	assert.Len(t, result.Events, 1)
}

// --- add command ---

func TestCLI_AddAndAgenda(t *testing.T) {
	home := t.TempDir()

	stdout, _, exitCode := runCLIHome(t, home, "add", "Team lunch 2999-06-20 at 12:30", "--json")
	require.Equal(t, 0, exitCode, "add should exit 0")

	var saved struct {
		Status string `json:"status"`
		ID     string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(stdout)), &saved))
	assert.Equal(t, "saved", saved.Status)
	assert.NotEmpty(t, saved.ID)

	stdout, _, exitCode = runCLIHome(t, home, "agenda", "--json")
	require.Equal(t, 0, exitCode)

	var entries []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Date  string `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(stdout)), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Team lunch", entries[0].Title)
	assert.Equal(t, "2999-06-20", entries[0].Date)
}

func TestCLI_AddNoDate(t *testing.T) {
	_, stderr, exitCode := runCLI(t, "add", "no date in here at all really", "--json")

	assert.Equal(t, ExitInvalidInput, exitCode, "add without a date should fail")

	var resp map[string]any
	err := json.Unmarshal([]byte(strings.TrimSpace(stderr)), &resp)
	require.NoError(t, err, "stderr should be valid JSON error")
	assert.Equal(t, "error", resp["status"])
	assert.Equal(t, "no_date", resp["error"])
}

func TestCLI_AddDryRunSavesNothing(t *testing.T) {
	home := t.TempDir()

	stdout, _, exitCode := runCLIHome(t, home, "add", "Standup tomorrow at 9", "--dry-run", "--json")
	require.Equal(t, 0, exitCode)

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(stdout)), &resp))
	assert.Equal(t, "dry_run", resp["status"])

	stdout, _, _ = runCLIHome(t, home, "agenda", "--json")
	var entries []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(stdout)), &entries))
	assert.Empty(t, entries, "dry run must not persist anything")
}

// --- rm command ---

func TestCLI_RmByPrefix(t *testing.T) {
	home := t.TempDir()

	stdout, _, exitCode := runCLIHome(t, home, "add", "Gym 2999-01-05", "--json")
	require.Equal(t, 0, exitCode)

	var saved struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(stdout)), &saved))

	_, _, exitCode = runCLIHome(t, home, "rm", saved.ID[:8])
	assert.Equal(t, 0, exitCode, "rm by prefix should succeed")

	stdout, _, _ = runCLIHome(t, home, "agenda", "--json")
	var entries []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(stdout)), &entries))
	assert.Empty(t, entries)
}

func TestCLI_RmNotFound(t *testing.T) {
	_, stderr, exitCode := runCLI(t, "rm", "deadbeef")

	assert.Equal(t, ExitInvalidInput, exitCode)
	assert.Contains(t, stderr, "deadbeef")
}

// --- export command ---

func TestCLI_Export(t *testing.T) {
	home := t.TempDir()

	_, _, exitCode := runCLIHome(t, home, "add", "Flight 2999-06-20 at 6:30am", "--json")
	require.Equal(t, 0, exitCode)

	stdout, _, exitCode := runCLIHome(t, home, "export")
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout, "BEGIN:VCALENDAR")
	assert.Contains(t, stdout, "SUMMARY:Flight")
}

// --- config command ---

func TestCLI_ConfigRoundTrip(t *testing.T) {
	home := t.TempDir()

	_, _, exitCode := runCLIHome(t, home, "config", "--week-start", "sun", "--clock", "12")
	require.Equal(t, 0, exitCode)

	stdout, _, exitCode := runCLIHome(t, home, "config", "--json")
	require.Equal(t, 0, exitCode)

	var cfg struct {
		WeekStart string `json:"week_start"`
		Clock     int    `json:"clock"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(stdout)), &cfg))
	assert.Equal(t, "sun", cfg.WeekStart)
	assert.Equal(t, 12, cfg.Clock)
}

func TestCLI_ConfigRejectsInvalid(t *testing.T) {
	_, _, exitCode := runCLI(t, "config", "--week-start", "wed")
	assert.Equal(t, ExitInvalidInput, exitCode)
}

// --- agenda command ---

func TestCLI_AgendaEmpty(t *testing.T) {
	stdout, _, exitCode := runCLI(t, "agenda")

	assert.Equal(t, 0, exitCode, "agenda should exit 0 with no events")
	assert.Contains(t, stdout, "No events")
}

func TestCLI_AgendaEmptyJSON(t *testing.T) {
	stdout, _, exitCode := runCLI(t, "agenda", "--json")

	assert.Equal(t, 0, exitCode)

	var entries []json.RawMessage
	err := json.Unmarshal([]byte(strings.TrimSpace(stdout)), &entries)
	require.NoError(t, err, "stdout should be valid JSON array")
	assert.Empty(t, entries)
}

// --- guide command ---

func TestCLI_Guide(t *testing.T) {
	stdout, _, exitCode := runCLI(t, "guide")

	assert.Equal(t, 0, exitCode, "guide should exit 0")
	assert.NotEmpty(t, stdout, "guide output should not be empty")
	assert.Contains(t, stdout, "nlcal", "guide should mention the tool name")
}

// --- no arguments (should show help) ---

func TestCLI_NoArgs(t *testing.T) {
	_, stderr, exitCode := runCLI(t)

	assert.NotEqual(t, 0, exitCode, "running with no args should fail")
	// Kong prints an error listing available commands.
	assert.Contains(t, stderr, "expected one of", "should list available commands")
}

// --- help flag ---

func TestCLI_Help(t *testing.T) {
	stdout, _, exitCode := runCLI(t, "--help")

	assert.Equal(t, 0, exitCode, "--help should exit 0")
	assert.Contains(t, stdout, "parse", "help should mention the parse command")
	assert.Contains(t, stdout, "add", "help should mention the add command")
	assert.Contains(t, stdout, "agenda", "help should mention the agenda command")
	assert.Contains(t, stdout, "pick", "help should mention the pick command")
	assert.Contains(t, stdout, "export", "help should mention the export command")
	assert.Contains(t, stdout, "guide", "help should mention the guide command")
}
