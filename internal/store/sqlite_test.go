package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nvandessel/lasercircuit/internal/circuit"
	"github.com/nvandessel/lasercircuit/internal/models"
)

func newTestStore(t *testing.T) *SQLiteRunStore {
	t.Helper()
	s, err := NewSQLiteRunStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewSQLiteRunStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func finishedCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()
	c := circuit.New(4, 1, circuit.DefaultConfig())
	if err := c.AddEmitter(models.NewEmitter("A", 0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := c.AddReceiver(models.NewReceiver("R0", 2, 0)); err != nil {
		t.Fatal(err)
	}
	if err := c.AddReceiver(models.NewReceiver("R1", 3, 0)); err != nil {
		t.Fatal(err)
	}
	if err := c.SetPulse("A", 9, models.East); err != nil {
		t.Fatal(err)
	}
	c.Run(nil)
	return c
}

func TestNewSQLiteRunStore(t *testing.T) {
	tmpDir := t.TempDir()

	s, err := NewSQLiteRunStore(tmpDir)
	if err != nil {
		t.Fatalf("NewSQLiteRunStore() error = %v", err)
	}
	defer s.Close()

	// Verify .lasercircuit directory was created
	if _, err := os.Stat(filepath.Join(tmpDir, ".lasercircuit")); os.IsNotExist(err) {
		t.Error(".lasercircuit directory was not created")
	}
	if _, err := os.Stat(s.Path()); os.IsNotExist(err) {
		t.Error("history.db was not created")
	}
}

func TestNewSQLiteRunStore_Reopen(t *testing.T) {
	tmpDir := t.TempDir()
	ctx := context.Background()

	s, err := NewSQLiteRunStore(tmpDir)
	if err != nil {
		t.Fatalf("NewSQLiteRunStore() error = %v", err)
	}
	run := NewRun("", "session", finishedCircuit(t))
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	s.Close()

	// Reopening runs the integrity checks on the existing schema
	s2, err := NewSQLiteRunStore(tmpDir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s2.Close()

	if _, err := s2.GetRun(ctx, run.ID); err != nil {
		t.Errorf("GetRun() after reopen error = %v", err)
	}
}

func TestSQLiteRunStore_SaveGetRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := finishedCircuit(t)
	run := NewRun("", "scenario:demo.yaml", c)
	run.TickLog = "/tmp/ticks.jsonl.zst"
	if run.ID == "" {
		t.Fatal("NewRun() should generate an ID")
	}

	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	got, err := s.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if got.Source != "scenario:demo.yaml" || got.Width != 4 || got.Height != 1 {
		t.Errorf("GetRun() = %+v", got)
	}
	if got.Clock != 2 || got.Activated != 1 || got.ReceiverCount != 2 || got.EmitterCount != 1 {
		t.Errorf("counts = clock %d activated %d receivers %d emitters %d",
			got.Clock, got.Activated, got.ReceiverCount, got.EmitterCount)
	}
	if got.TickLog != run.TickLog {
		t.Errorf("TickLog = %q, want %q", got.TickLog, run.TickLog)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, run.CreatedAt)
	}

	want := []ReceiverResult{
		{Symbol: "R0", Activated: true, ActivatedAt: 2, Energy: 9},
		{Symbol: "R1", Activated: false, Energy: 0},
	}
	if len(got.Results) != len(want) {
		t.Fatalf("Results = %+v, want %+v", got.Results, want)
	}
	for i := range want {
		if got.Results[i] != want[i] {
			t.Errorf("Results[%d] = %+v, want %+v", i, got.Results[i], want[i])
		}
	}
}

func TestValidateIntegrity(t *testing.T) {
	tests := []struct {
		name    string
		corrupt string
		wantErr string
	}{
		{
			name: "consistent history",
		},
		{
			name: "orphan receiver result",
			corrupt: `INSERT INTO receiver_results (run_id, symbol, activated, energy)
				VALUES ('gone', 'R9', 0, 0)`,
			wantErr: "reference missing runs",
		},
		{
			name:    "activated count drift",
			corrupt: `UPDATE runs SET activated = activated + 1`,
			wantErr: "disagree with their receiver results",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			ctx := context.Background()
			if err := s.SaveRun(ctx, NewRun("", "session", finishedCircuit(t))); err != nil {
				t.Fatalf("SaveRun() error = %v", err)
			}

			if tt.corrupt != "" {
				if _, err := s.db.ExecContext(ctx, `PRAGMA foreign_keys = OFF`); err != nil {
					t.Fatal(err)
				}
				if _, err := s.db.ExecContext(ctx, tt.corrupt); err != nil {
					t.Fatalf("corrupting database: %v", err)
				}
			}

			err := ValidateIntegrity(ctx, s.db)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateIntegrity() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateIntegrity() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSQLiteRunStore_GetRunNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetRun(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetRun() error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteRunStore_SaveRunDuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := NewRun("fixed-id", "session", finishedCircuit(t))
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	if err := s.SaveRun(ctx, run); err == nil {
		t.Error("SaveRun() with duplicate ID should fail")
	}
	if err := s.SaveRun(ctx, Run{}); err == nil {
		t.Error("SaveRun() without ID should fail")
	}
}

func TestSQLiteRunStore_ListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := finishedCircuit(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ids := []string{"first", "second", "third"}
	for i, id := range ids {
		run := NewRun(id, "session", c)
		run.CreatedAt = base.Add(time.Duration(i) * 100 * time.Millisecond)
		if err := s.SaveRun(ctx, run); err != nil {
			t.Fatalf("SaveRun(%s) error = %v", id, err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"all", 0, []string{"third", "second", "first"}},
		{"limited", 2, []string{"third", "second"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := s.ListRuns(ctx, tt.limit)
			if err != nil {
				t.Fatalf("ListRuns() error = %v", err)
			}
			if len(runs) != len(tt.want) {
				t.Fatalf("ListRuns() returned %d runs, want %d", len(runs), len(tt.want))
			}
			for i, id := range tt.want {
				if runs[i].ID != id {
					t.Errorf("runs[%d].ID = %s, want %s", i, runs[i].ID, id)
				}
				if len(runs[i].Results) != 2 {
					t.Errorf("runs[%d] has %d results, want 2", i, len(runs[i].Results))
				}
			}
		})
	}
}

func TestPaths(t *testing.T) {
	if got := DBPath("/proj"); got != filepath.Join("/proj", ".lasercircuit", "history.db") {
		t.Errorf("DBPath() = %q", got)
	}
}
