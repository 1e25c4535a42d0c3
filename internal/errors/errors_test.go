package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/studyslot/internal/storage"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("timetable not found"),
			expected: "Error: timetable not found",
		},
		{
			name:     "wrapped error",
			err:      errors.Join(errors.New("failed to load assignments"), errors.New("database is locked")),
			expected: "Error: failed to load assignments\n  database is locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		args     []interface{}
		expected string
	}{
		{
			name:     "simple message",
			format:   "no free periods",
			args:     nil,
			expected: "Error: no free periods",
		},
		{
			name:     "formatted message",
			format:   "class %s on %s overlaps",
			args:     []interface{}{"09:00-10:00", "Mon"},
			expected: "Error: class 09:00-10:00 on Mon overlaps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Formatf(tt.format, tt.args...)
			if result != tt.expected {
				t.Errorf("Formatf(%q, %v) = %q, want %q", tt.format, tt.args, result, tt.expected)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("boom"), ExitFailure},
		{"not initialized", storage.ErrNotInitialized, ExitNotInitialized},
		{"wrapped not found", fmt.Errorf("assignment %q: %w", "essay", storage.ErrNotFound), ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFatalUsesExitCode(t *testing.T) {
	var code int
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = os.Exit })

	Fatal(fmt.Errorf("loading store: %w", storage.ErrNotInitialized))
	if code != ExitNotInitialized {
		t.Errorf("Fatal() exit code = %d, want %d", code, ExitNotInitialized)
	}

	code = -1
	Fatal(nil)
	if code != -1 {
		t.Errorf("Fatal(nil) called exit with %d", code)
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	report(&buf, errors.Join(errors.New("2 conflicts"), errors.New("Mon 09:00-10:00 overlaps")))
	want := "Error: 2 conflicts\n  Mon 09:00-10:00 overlaps\n"
	if buf.String() != want {
		t.Errorf("report() = %q, want %q", buf.String(), want)
	}
}

// TestFatal runs Fatal in a subprocess and checks its exit code and output
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}

func TestFatalf(t *testing.T) {
	if os.Getenv("GO_TEST_FATALF") == "1" {
		Fatalf("timetable %q has no classes", "spring")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatalf")
	cmd.Env = append(os.Environ(), "GO_TEST_FATALF=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatalf() exit code = %d, want 1", e.ExitCode())
		}
		want := `Error: timetable "spring" has no classes`
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("Fatalf() stderr = %q, want to contain %q", stderr.String(), want)
		}
	} else {
		t.Errorf("Fatalf() did not exit with error: %v", err)
	}
}
