// Package instance keeps a second TUI from opening the same database.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/studyslot/internal/constants"
	"github.com/julianstephens/studyslot/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrAlreadyRunning is returned by Acquire when the lockfile names a live
// studyslot process.
var ErrAlreadyRunning = errors.New("another studyslot TUI is already running")

type Lock struct {
	path string
}

// LockPath is the lockfile location inside dir.
func LockPath(dir string) string {
	return filepath.Join(dir, constants.LockfileName)
}

// Acquire writes the current PID to dir's lockfile. A lockfile left by a
// dead or unrelated process is replaced.
func Acquire(dir string) (*Lock, error) {
	path := LockPath(dir)

	if pid, ok := readPID(path); ok {
		if pid != getpidFunc() && isStudyslot(pid) {
			return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
		}
		logger.Debug("Replacing stale lockfile", "path", path, "pid", pid)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(getpidFunc())+"\n"), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path}, nil
}

// Release removes the lockfile if it still names this process.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if pid, ok := readPID(l.path); ok && pid != getpidFunc() {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func readPID(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

func isStudyslot(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}
