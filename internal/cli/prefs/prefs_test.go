package prefs

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/studyslot/internal/cli"
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/scheduler"
	"github.com/julianstephens/studyslot/internal/storage/sqlite"
	"github.com/julianstephens/studyslot/internal/validation"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	sched := scheduler.NewDefault()
	return &cli.Context{
		Store:     store,
		Scheduler: sched,
		Validator: validation.New(sched.Catalog().LongestPeriodMin()),
		Out:       out,
	}, out
}

func TestParseRange(t *testing.T) {
	got, err := ParseRange("12시", "1330")
	if err != nil {
		t.Fatalf("ParseRange failed: %v", err)
	}
	if want := (models.TimeRange{Start: "12:00", End: "13:30"}); got != want {
		t.Errorf("ParseRange() = %+v, want %+v", got, want)
	}
	if _, err := ParseRange("noon", "13:00"); err == nil {
		t.Error("expected an error for a non-numeric time")
	}
}

func TestAvoidPreferClear(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&PrefsAvoidCmd{Start: "12", End: "13"}).Run(ctx); err != nil {
		t.Fatalf("avoid failed: %v", err)
	}
	if err := (&PrefsPreferCmd{Start: "14:00", End: "17:00"}).Run(ctx); err != nil {
		t.Fatalf("prefer failed: %v", err)
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if len(prefs.Avoid) != 1 || len(prefs.Preferred) != 1 {
		t.Fatalf("unexpected preferences: %+v", prefs)
	}

	out.Reset()
	if err := (&PrefsShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out.String(), "12:00-13:00") || !strings.Contains(out.String(), "14:00-17:00") {
		t.Errorf("unexpected show output:\n%s", out.String())
	}

	if err := (&PrefsClearCmd{Avoid: true}).Run(ctx); err != nil {
		t.Fatalf("clear --avoid failed: %v", err)
	}
	prefs, _ = ctx.Store.GetPreferences()
	if len(prefs.Avoid) != 0 || len(prefs.Preferred) != 1 {
		t.Errorf("clear --avoid should keep preferred: %+v", prefs)
	}

	if err := (&PrefsClearCmd{}).Run(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	prefs, _ = ctx.Store.GetPreferences()
	if !prefs.IsEmpty() {
		t.Errorf("expected empty preferences, got %+v", prefs)
	}
}

func TestAddRangeRejectsConflicts(t *testing.T) {
	ctx, _ := setupTestContext(t)

	if err := (&PrefsAvoidCmd{Start: "15:00", End: "14:00"}).Run(ctx); err == nil {
		t.Error("expected an error for a reversed range")
	}

	if err := (&PrefsAvoidCmd{Start: "9", End: "12"}).Run(ctx); err != nil {
		t.Fatalf("avoid failed: %v", err)
	}
	err := (&PrefsPreferCmd{Start: "10", End: "11"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "avoided") {
		t.Errorf("expected a fully avoided error, got %v", err)
	}

	prefs, _ := ctx.Store.GetPreferences()
	if len(prefs.Preferred) != 0 {
		t.Error("rejected range must not be saved")
	}
}
