package e2e

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const TEST_COMMAND_TIMEOUT = 30 * time.Second

// studyslotEnv runs the binary against an isolated HOME so config, logs and
// backups stay inside the test's temp dir.
type studyslotEnv struct {
	t       *testing.T
	cliPath string
	env     []string
	home    string
}

func setupEnv(t *testing.T) *studyslotEnv {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get cwd: %v", err)
	}

	// Allow overriding bin dir via env var, default to ../../bin (relative to tests/e2e)
	binDir := os.Getenv("STUDYSLOT_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)

	cliPath := filepath.Join(binDir, "studyslot")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Fatalf("CLI binary not found at %s. Build it first with: go build -o bin/studyslot ./cmd/studyslot", cliPath)
	}

	home := t.TempDir()
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "STUDYSLOT_") {
			continue
		}
		env = append(env, e)
	}
	env = append(env,
		fmt.Sprintf("HOME=%s", home),
		fmt.Sprintf("STUDYSLOT_DATABASE=%s", filepath.Join(home, "studyslot.db")),
	)
	return &studyslotEnv{t: t, cliPath: cliPath, env: env, home: home}
}

func (e *studyslotEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.exec(args...)
	if err != nil {
		e.t.Fatalf("Command studyslot %v failed: %v\nOutput: %s", args, err, out)
	}
	return out
}

func (e *studyslotEnv) exec(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), TEST_COMMAND_TIMEOUT)
	defer cancel()
	cmd := exec.CommandContext(ctx, e.cliPath, args...)
	cmd.Env = e.env
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestEndToEndWorkflow(t *testing.T) {
	e := setupEnv(t)

	t.Log("Initializing storage...")
	e.run("init")

	t.Log("Building the week...")
	e.run("class", "add", "mon", "9", "10", "Math")
	e.run("class", "add", "월", "10시", "11시", "English")
	if out, err := e.exec("class", "add", "mon", "9:30", "10:30", "Clash"); err == nil {
		t.Fatalf("overlapping class was accepted:\n%s", out)
	}

	t.Log("Adding assignments...")
	e.run("assignment", "add", "Essay", "--estimate", "50", "--priority", "low")
	e.run("assignment", "add", "Problem set", "--estimate", "40", "--priority", "high", "--due", "2026-11-02")
	list := e.run("assignment", "list")
	if !strings.Contains(list, "Essay") || !strings.Contains(list, "Problem set") {
		t.Fatalf("assignment list missing entries:\n%s", list)
	}

	t.Log("Recommending...")
	e.run("prefs", "avoid", "12:00", "13:00")
	recs := e.run("recommend", "--accept", "--yes")
	if !strings.Contains(recs, "Mon 11:00-12:00") || !strings.Contains(recs, "Saved plan revision 1") {
		t.Fatalf("unexpected recommendations:\n%s", recs)
	}
	if strings.Index(recs, "Problem set") > strings.Index(recs, "Essay") {
		t.Errorf("high priority assignment should come first:\n%s", recs)
	}
	if plan := e.run("plan", "show"); !strings.Contains(plan, "revision 1") {
		t.Errorf("plan show did not find the saved plan:\n%s", plan)
	}

	t.Log("Checking backups...")
	if backups := e.run("backup", "list"); !strings.Contains(backups, "studyslot-") {
		t.Errorf("expected an automatic backup before accepting:\n%s", backups)
	}

	t.Log("Exporting and importing...")
	snapshot := filepath.Join(e.home, "snapshot.yaml")
	e.run("export", snapshot)
	other := filepath.Join(e.home, "other.db")
	e.run("--database", other, "init")
	e.run("--database", other, "import", snapshot)
	imported := e.run("--database", other, "assignment", "list")
	if !strings.Contains(imported, "Essay") {
		t.Errorf("import lost assignments:\n%s", imported)
	}

	t.Log("Running doctor...")
	doctor := e.run("doctor")
	if !strings.Contains(doctor, "Database reachable: OK") {
		t.Errorf("unexpected doctor output:\n%s", doctor)
	}
}
