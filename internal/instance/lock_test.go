package instance

import (
	"errors"
	"os"
	"testing"

	ps "github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func withProcesses(t *testing.T, self int, procs map[int]string) {
	t.Helper()
	origFind, origPid := findProcessFunc, getpidFunc
	findProcessFunc = func(pid int) (ps.Process, error) {
		if exe, ok := procs[pid]; ok {
			return &mockProcess{pid: pid, executable: exe}, nil
		}
		return nil, nil
	}
	getpidFunc = func() int { return self }
	t.Cleanup(func() {
		findProcessFunc, getpidFunc = origFind, origPid
	})
}

func writeLock(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(LockPath(dir), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestAcquire(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		procs    map[int]string
		wantErr  error
	}{
		{name: "no lockfile"},
		{name: "dead process", existing: "4242\n"},
		{name: "unrelated process", existing: "4242", procs: map[int]string{4242: "vim"}},
		{name: "malformed lockfile", existing: "garbage"},
		{name: "own pid", existing: "100", procs: map[int]string{100: "studyslot"}},
		{name: "live studyslot", existing: "4242", procs: map[int]string{4242: "studyslot"}, wantErr: ErrAlreadyRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			withProcesses(t, 100, tt.procs)
			if tt.existing != "" {
				writeLock(t, dir, tt.existing)
			}

			lock, err := Acquire(dir)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Acquire() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Acquire() error = %v", err)
			}

			pid, ok := readPID(LockPath(dir))
			if !ok || pid != 100 {
				t.Errorf("lockfile pid = %d, %v, want 100", pid, ok)
			}

			if err := lock.Release(); err != nil {
				t.Fatalf("Release() error = %v", err)
			}
			if _, err := os.Stat(LockPath(dir)); !os.IsNotExist(err) {
				t.Error("lockfile still exists after Release")
			}
		})
	}
}

func TestReleaseKeepsForeignLock(t *testing.T) {
	dir := t.TempDir()
	withProcesses(t, 100, nil)

	lock, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	// Another instance took over after this one was considered stale
	writeLock(t, dir, "555")
	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if pid, ok := readPID(LockPath(dir)); !ok || pid != 555 {
		t.Errorf("Release removed a lock owned by pid 555")
	}
}

func TestReleaseNil(t *testing.T) {
	var lock *Lock
	if err := lock.Release(); err != nil {
		t.Errorf("nil Release() error = %v", err)
	}
}
