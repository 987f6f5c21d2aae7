package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCommand executes the search command with the given args and returns
// its stdout.
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	ExitCode = 0

	cmd := NewSearchCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatalf("writing log: %v", err)
	}
	return path
}

func TestSearch_BasicMatch(t *testing.T) {
	log := writeLog(t,
		"Oct  5 10:00:00 host app: started",
		"Oct  5 10:00:01 host app: ERROR boom",
		"Oct  5 10:00:02 host app: recovered",
	)

	out, err := runCommand(t, "", "--color", "never", "-f", log, "ERROR")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "Oct  5 10:00:01 host app: ERROR boom\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}
}

func TestSearch_NoMatchExitCode(t *testing.T) {
	log := writeLog(t, "Oct  5 10:00:00 all quiet")

	out, err := runCommand(t, "", "--color", "never", "-f", log, "ERROR")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "" {
		t.Errorf("output = %q, want empty", out)
	}
	if ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode)
	}
}

func TestSearch_Stdin(t *testing.T) {
	stdin := "INFO a\nERROR b\nINFO c\n"

	out, err := runCommand(t, stdin, "--color", "never", "ERROR")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "ERROR b\n" {
		t.Errorf("output = %q, want %q", out, "ERROR b\n")
	}
}

func TestSearch_ContextAround(t *testing.T) {
	log := writeLog(t, "L1", "L2 MATCH", "L3", "L4", "L5")

	out, err := runCommand(t, "", "--color", "never", "-C", "1", "-f", log, "MATCH")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "L1\nL2 MATCH\nL3\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestSearch_InvertMatch(t *testing.T) {
	log := writeLog(t, "INFO a", "ERROR b", "INFO c")

	out, err := runCommand(t, "", "--color", "never", "-v", "-f", log, "ERROR")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "INFO a\nINFO c\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestSearch_Since(t *testing.T) {
	log := writeLog(t,
		"Oct  5 09:00:00 ERROR too early",
		"Oct  5 11:00:00 ERROR in range",
	)

	out, err := runCommand(t, "", "--color", "never", "--since", "Oct  5 10:00:00", "-f", log, "ERROR")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "Oct  5 11:00:00 ERROR in range\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestSearch_SinceUnparseable(t *testing.T) {
	log := writeLog(t, "x")

	if _, err := runCommand(t, "", "--since", "half past never", "-f", log, "x"); err == nil {
		t.Error("Execute() expected error for unparseable --since")
	}
}

func TestSearch_InvalidRegex(t *testing.T) {
	log := writeLog(t, "x")

	if _, err := runCommand(t, "", "-f", log, "[unclosed"); err == nil {
		t.Error("Execute() expected error for invalid regex")
	}
}

func TestSearch_NoPatterns(t *testing.T) {
	if _, err := runCommand(t, ""); err == nil {
		t.Error("Execute() expected usage error without patterns")
	}
}

func TestSearch_LineNumbers(t *testing.T) {
	log := writeLog(t, "a", "b MATCH", "c")

	out, err := runCommand(t, "", "--color", "never", "-n", "-B", "1", "-f", log, "MATCH")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "1-a\n2:b MATCH\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestSearch_JSONOutput(t *testing.T) {
	log := writeLog(t, "ERROR boom")

	out, err := runCommand(t, "", "-o", "json", "-f", log, "ERROR")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(out, `"line":"ERROR boom"`) || !strings.Contains(out, `"match":true`) {
		t.Errorf("output = %q, want JSONL record", out)
	}
}

func TestSearch_UnknownOutputFormat(t *testing.T) {
	log := writeLog(t, "x")

	if _, err := runCommand(t, "", "-o", "xml", "-f", log, "x"); err == nil {
		t.Error("Execute() expected error for unknown output format")
	}
}

func TestSearch_MultipleFilesPrefix(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"one.log": "ERROR in one\n",
		"two.log": "ERROR in two\n",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("writing log: %v", err)
		}
	}

	out, err := runCommand(t, "", "--color", "never", "-f", filepath.Join(dir, "*.log"), "ERROR")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(out, "one.log:ERROR in one") || !strings.Contains(out, "two.log:ERROR in two") {
		t.Errorf("output = %q, want file-prefixed matches from both files", out)
	}
}

func TestSearch_MissingFile(t *testing.T) {
	if _, err := runCommand(t, "", "-f", "/does/not/exist.log", "x"); err == nil {
		t.Error("Execute() expected error for missing file")
	}
}

func TestSearch_ConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "loggrep.yaml")
	if err := os.WriteFile(cfgPath, []byte("color: never\nbefore_context: 1\n"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	log := writeLog(t, "a", "b MATCH", "c")

	out, err := runCommand(t, "", "--config", cfgPath, "-f", log, "MATCH")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "a\nb MATCH\n"
	if out != want {
		t.Errorf("output = %q, want %q (before_context from config)", out, want)
	}
}

func TestSearch_ConfigCustomFormat(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "loggrep.yaml")
	cfg := `
color: never
formats:
  - name: bracketed
    pattern: '^\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\]'
    layout: "2006-01-02 15:04:05"
`
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	log := writeLog(t,
		"[2025-10-05 09:00:00] ERROR early",
		"[2025-10-05 11:00:00] ERROR late",
	)

	out, err := runCommand(t, "", "--config", cfgPath, "--since", "2025-10-05 10:00:00", "-f", log, "ERROR")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "[2025-10-05 11:00:00] ERROR late\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestDetect_Table(t *testing.T) {
	log := writeLog(t,
		"2025-10-05T10:30:00Z started",
		"2025-10-05T10:30:01Z working",
	)

	cmd := NewDetectCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{log})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "RFC 3339") {
		t.Errorf("output = %q, want detected format name", out)
	}
	if !strings.Contains(out, "100%") {
		t.Errorf("output = %q, want confidence", out)
	}
}

func TestDetect_JSON(t *testing.T) {
	log := writeLog(t, "Oct  5 10:00:00 host app: x")

	cmd := NewDetectCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"-o", "json", log})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(buf.String(), `"format": "Syslog (BSD)"`) {
		t.Errorf("output = %q, want syslog grammar in JSON", buf.String())
	}
}

func TestDetect_MissingFile(t *testing.T) {
	cmd := NewDetectCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"/does/not/exist.log"})

	if err := cmd.Execute(); err == nil {
		t.Error("Execute() expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "loggrep.yaml")
	cfg := `
color: auto
formats:
  - name: bracketed
    pattern: '^\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\]'
    layout: "2006-01-02 15:04:05"
`
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cmd := NewValidateCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{cfgPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Configuration valid!") {
		t.Errorf("output = %q, want validation success", buf.String())
	}
}

func TestValidate_Invalid(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "loggrep.yaml")
	if err := os.WriteFile(cfgPath, []byte("color: sometimes"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cmd := NewValidateCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{cfgPath})

	if err := cmd.Execute(); err == nil {
		t.Error("Execute() expected error for invalid config")
	}
}

func TestVersion(t *testing.T) {
	cmd := NewVersionCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs(nil)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(buf.String(), "loggrep") {
		t.Errorf("output = %q, want version string", buf.String())
	}
}
