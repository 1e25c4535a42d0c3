package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/studyslot/internal/constants"
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/storage/sqlite"
)

// setupTestDB creates an initialized database holding one assignment.
func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "studyslot.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init test database: %v", err)
	}
	if err := store.AddAssignment(models.Assignment{ID: "a1", Title: "Essay", EstimatedMin: 30}); err != nil {
		t.Fatalf("failed to add assignment: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close test database: %v", err)
	}
	return dbPath
}

// steppingClock advances one minute per call.
func steppingClock() func() time.Time {
	t := time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func countAssignments(t *testing.T, dbPath string) int {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load database: %v", err)
	}
	defer store.Close()

	all, err := store.GetAllAssignments()
	if err != nil {
		t.Fatalf("GetAllAssignments() error = %v", err)
	}
	return len(all)
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	info, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if info.Size == 0 {
		t.Error("backup size is 0")
	}
	if filepath.Dir(info.Path) != mgr.BackupDir() {
		t.Errorf("backup written to %s, want %s", filepath.Dir(info.Path), mgr.BackupDir())
	}
	if err := Verify(info.Path); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
	if got := countAssignments(t, info.Path); got != 1 {
		t.Errorf("backup holds %d assignments, want 1", got)
	}
}

func TestCreateWithoutDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Error("Create() succeeded without a database")
	}
}

func TestSameSecondBackupsGetCounter(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2026, 3, 2, 8, 15, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	first, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.Path == second.Path {
		t.Fatal("second backup overwrote the first")
	}
	if filepath.Base(second.Path) != constants.BackupFilePrefix+"20260302-081500-1"+constants.BackupFileSuffix {
		t.Errorf("second backup name = %s", filepath.Base(second.Path))
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("List() returned %d backups, want 2", len(backups))
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock()

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create() #%d error = %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("got %d backups after rotation, want %d", len(backups), constants.MaxBackups)
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backup %d is newer than backup %d", i, i-1)
		}
	}

	latest, err := mgr.Latest()
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest.Path != backups[0].Path {
		t.Errorf("Latest() = %s, want %s", latest.Path, backups[0].Path)
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "studyslot.db"))

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() on missing dir error = %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("List() = %v, want empty", backups)
	}
	if _, err := mgr.Latest(); err != ErrNoBackups {
		t.Errorf("Latest() error = %v, want ErrNoBackups", err)
	}

	if err := os.MkdirAll(mgr.BackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "studyslot-garbage.db", "studyslot-20260302-081500-x.db", "studyslot-20260302-081500.db"} {
		if err := os.WriteFile(filepath.Join(mgr.BackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err = mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("List() returned %d entries, want 1", len(backups))
	}
	if filepath.Base(backups[0].Path) != "studyslot-20260302-081500.db" {
		t.Errorf("unexpected backup %s", backups[0].Path)
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name   string
		wantOK bool
	}{
		{"studyslot-20260302-081500.db", true},
		{"studyslot-20260302-081500-3.db", true},
		{"studyslot-20260302-081500-.db", false},
		{"studyslot-2026.db", false},
		{"other-20260302-081500.db", false},
		{"studyslot-20260302-081500.sqlite", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := parseName(tt.name); ok != tt.wantOK {
				t.Errorf("parseName(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
		})
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock()

	info, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Change the live database after the backup
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := store.AddAssignment(models.Assignment{ID: "a2", Title: "Quiz prep", EstimatedMin: 20}); err != nil {
		t.Fatalf("AddAssignment() error = %v", err)
	}
	store.Close()
	if got := countAssignments(t, dbPath); got != 2 {
		t.Fatalf("live database holds %d assignments, want 2", got)
	}

	safety, err := mgr.Restore(info.Path)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if safety == "" {
		t.Error("Restore() did not back up the current database")
	}
	if got := countAssignments(t, dbPath); got != 1 {
		t.Errorf("restored database holds %d assignments, want 1", got)
	}
	if got := countAssignments(t, safety); got != 2 {
		t.Errorf("safety backup holds %d assignments, want 2", got)
	}
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(bogus); err == nil {
		t.Error("Restore() accepted a corrupted backup")
	}
	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("Restore() accepted a missing file")
	}
	if got := countAssignments(t, dbPath); got != 1 {
		t.Errorf("database changed after failed restore: %d assignments", got)
	}
}
