// Package errors renders command failures for the terminal and maps them
// to process exit codes.
package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/studyslot/internal/logger"
	"github.com/julianstephens/studyslot/internal/storage"
)

const (
	ExitFailure        = 1
	ExitNotInitialized = 2
	ExitNotFound       = 3
)

// exit is swapped in tests.
var exit = os.Exit

// Format prefixes err with "Error: " and indents continuation lines so
// joined errors and validation reports stay readable.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + strings.ReplaceAll(err.Error(), "\n", "\n  ")
}

func Formatf(format string, args ...interface{}) string {
	return Format(fmt.Errorf(format, args...))
}

// ExitCode maps storage sentinels to distinct codes so scripts can tell a
// missing database from a missing record.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, storage.ErrNotInitialized):
		return ExitNotInitialized
	case stderrors.Is(err, storage.ErrNotFound):
		return ExitNotFound
	default:
		return ExitFailure
	}
}

// Fatal reports err and exits with ExitCode(err). A nil err is ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	report(os.Stderr, err)
	exit(ExitCode(err))
}

func Fatalf(format string, args ...interface{}) {
	Fatal(fmt.Errorf(format, args...))
}

func report(w io.Writer, err error) {
	logger.Error("Command failed", "error", err, "exit_code", ExitCode(err))
	fmt.Fprintln(w, Format(err))
}
