package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/dori/tackle/internal/model"
	"github.com/dori/tackle/internal/store"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	db, err := Open(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if want := filepath.Join(dir, FileName); db.Path != want {
		t.Fatalf("Path = %q, want %q", db.Path, want)
	}
	if _, err := os.Stat(db.Path); err != nil {
		t.Fatalf("database file missing: %v", err)
	}

	// Reopening an up-to-date database runs no migrations and succeeds.
	again, err := Open(context.Background(), dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	again.Close()
}

func TestReadMissingSnapshot(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Read(context.Background(), store.StateKey); !errors.Is(err, store.ErrNoSnapshot) {
		t.Fatalf("Read on empty database = %v, want ErrNoSnapshot", err)
	}
}

func TestWriteOverwrites(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, v := range []string{"one", "two"} {
		if err := db.Write(ctx, "k", []byte(v)); err != nil {
			t.Fatal(err)
		}
	}
	got, err := db.Read(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "two" {
		t.Fatalf("Read = %q", got)
	}
}

func TestHistoryIsPruned(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for i := 0; i < HistoryLimit+5; i++ {
		if err := db.Write(ctx, "k", []byte(fmt.Sprintf("rev-%d", i))); err != nil {
			t.Fatal(err)
		}
	}
	revs, err := db.History(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if len(revs) != HistoryLimit {
		t.Fatalf("history has %d revisions, want %d", len(revs), HistoryLimit)
	}
	for i := 1; i < len(revs); i++ {
		if revs[i].ID >= revs[i-1].ID {
			t.Fatal("history is not newest first")
		}
	}

	// The newest archived revision is the write before the current one.
	data, err := db.Restore(ctx, "k", revs[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	want := fmt.Sprintf("rev-%d", HistoryLimit+3)
	if string(data) != want {
		t.Fatalf("Restore = %q, want %q", data, want)
	}
	if cur, _ := db.Read(ctx, "k"); string(cur) != want {
		t.Fatalf("current after restore = %q", cur)
	}

	if _, err := db.Restore(ctx, "k", -1); !errors.Is(err, store.ErrNoSnapshot) {
		t.Fatalf("Restore of unknown revision = %v", err)
	}
}

// TestStoreRoundTrip reopens a store on the same database file and checks
// that every list and problem comes back.
func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	logger := log.New(io.Discard, "", 0)

	db, err := Open(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}
	s := store.Open(ctx, db, store.WithLogger(logger))

	l, err := s.AddList(ctx, store.NewList{Name: "Garden", Emoji: "🌱"})
	if err != nil {
		t.Fatal(err)
	}
	due := model.NewDate(2024, 6, 20)
	parent, err := s.AddProblem(ctx, l.ID, "", store.NewProblem{Name: "Beds", DueDate: &due})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddProblem(ctx, l.ID, parent.ID, store.NewProblem{Name: "Compost", Priority: model.PriorityToday}); err != nil {
		t.Fatal(err)
	}
	start := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	rec := model.NewSessionRecord(start, start.Add(25*time.Minute))
	if err := s.UpdateProblem(ctx, l.ID, parent.ID, store.ProblemPatch{AppendSessions: []model.SessionRecord{rec}}); err != nil {
		t.Fatal(err)
	}
	want := s.Snapshot()
	db.Close()

	db, err = Open(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	got := store.Open(ctx, db, store.WithLogger(logger)).Snapshot()

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("reopened state differs\n got: %+v\nwant: %+v", got, want)
	}
}
