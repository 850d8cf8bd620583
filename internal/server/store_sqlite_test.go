package server

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/roamio/globetrotter/internal/database"
	"github.com/roamio/globetrotter/internal/globetrotter"
	"github.com/roamio/globetrotter/internal/migrations"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	return setupStoreAt(t, ":memory:")
}

func setupStoreAt(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := migrations.Run(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewSQLiteStore(db)
}

func TestReserveNewUsername(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	ident, rec, err := store.Reserve(ctx, "alice", 7, false)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if ident.Username != "alice" || ident.GamesPlayed != 1 || ident.LastScore != 7 {
		t.Fatalf("unexpected identity: %+v", ident)
	}
	if rec.ID == "" {
		t.Fatal("expected a game record id")
	}
	if rec.Username != "alice" || rec.Score != 7 {
		t.Fatalf("unexpected record: %+v", rec)
	}

	got, gotIdent, err := store.GetGameRecord(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get game record: %v", err)
	}
	if got.Score != 7 || got.Username != "alice" {
		t.Fatalf("unexpected stored record: %+v", got)
	}
	if gotIdent.GamesPlayed != 1 {
		t.Fatalf("unexpected joined identity: %+v", gotIdent)
	}
}

func TestReserveTakenUsername(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if _, _, err := store.Reserve(ctx, "alice", 7, false); err != nil {
		t.Fatalf("first reserve: %v", err)
	}

	_, _, err := store.Reserve(ctx, "alice", 3, false)
	if !errors.Is(err, globetrotter.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	// The losing call must leave no trace.
	ident, err := store.FindIdentity(ctx, "alice")
	if err != nil {
		t.Fatalf("find identity: %v", err)
	}
	if ident.GamesPlayed != 1 || ident.LastScore != 7 {
		t.Fatalf("identity mutated by rejected reserve: %+v", ident)
	}
}

func TestReserveReturningPlayer(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, first, err := store.Reserve(ctx, "alice", 7, false)
	if err != nil {
		t.Fatalf("first reserve: %v", err)
	}

	ident, second, err := store.Reserve(ctx, "alice", 4, true)
	if err != nil {
		t.Fatalf("returning reserve: %v", err)
	}
	if ident.GamesPlayed != 2 || ident.LastScore != 4 {
		t.Fatalf("unexpected identity after return: %+v", ident)
	}
	if second.ID == first.ID {
		t.Fatal("each reservation must mint a fresh game record")
	}

	// Both records stay readable: the first challenge link keeps working.
	if got, _, err := store.GetGameRecord(ctx, first.ID); err != nil || got.Score != 7 {
		t.Fatalf("first record changed: %+v, %v", got, err)
	}
	if got, _, err := store.GetGameRecord(ctx, second.ID); err != nil || got.Score != 4 {
		t.Fatalf("second record wrong: %+v, %v", got, err)
	}
}

func TestReserveInvalidUsernames(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for _, name := range []string{"ab", "a b", "", "no-dashes", "emoji🌍"} {
		t.Run(name, func(t *testing.T) {
			_, _, err := store.Reserve(ctx, name, 5, false)
			if !errors.Is(err, globetrotter.ErrInvalidUsername) {
				t.Fatalf("Reserve(%q) = %v, want ErrInvalidUsername", name, err)
			}
		})
	}

	// Nothing should have been written.
	if _, err := store.FindIdentity(ctx, "ab"); !errors.Is(err, globetrotter.ErrNotFound) {
		t.Fatalf("invalid username was persisted: %v", err)
	}
}

// Two concurrent first-time claims of the same name: exactly one wins, the
// other sees ErrUsernameTaken, and exactly one identity row exists after.
func TestReserveRace(t *testing.T) {
	store := setupStoreAt(t, t.TempDir()+"/race.db")
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, results[i] = store.Reserve(ctx, "alice", i, false)
		}(i)
	}
	wg.Wait()

	var wins, taken int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, globetrotter.ErrUsernameTaken):
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || taken != 1 {
		t.Fatalf("expected exactly one winner, got wins=%d taken=%d", wins, taken)
	}

	ident, err := store.FindIdentity(ctx, "alice")
	if err != nil {
		t.Fatalf("find identity: %v", err)
	}
	if ident.GamesPlayed != 1 {
		t.Fatalf("expected a single recorded game, got %d", ident.GamesPlayed)
	}
}

func TestGetGameRecordNotFound(t *testing.T) {
	store := setupStore(t)

	_, _, err := store.GetGameRecord(context.Background(), "nope")
	if !errors.Is(err, globetrotter.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDestinationsRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	d, err := store.CreateDestination(ctx, globetrotter.Destination{
		City:     "Paris",
		Country:  "France",
		Clues:    []string{"c1", "c2"},
		FunFacts: []string{"f1"},
	})
	if err != nil {
		t.Fatalf("create destination: %v", err)
	}
	if d.ID == "" {
		t.Fatal("expected generated id")
	}

	_, err = store.CreateDestination(ctx, globetrotter.Destination{
		City: "Paris", Country: "France", Clues: []string{"x"},
	})
	if !errors.Is(err, globetrotter.ErrDuplicateDestination) {
		t.Fatalf("expected ErrDuplicateDestination, got %v", err)
	}

	destinations, err := store.ListDestinations(ctx)
	if err != nil {
		t.Fatalf("list destinations: %v", err)
	}
	if len(destinations) != 1 {
		t.Fatalf("expected 1 destination, got %d", len(destinations))
	}
	got := destinations[0]
	if got.City != "Paris" || len(got.Clues) != 2 || len(got.FunFacts) != 1 {
		t.Fatalf("unexpected destination: %+v", got)
	}

	// Fetching twice with no mutation returns the same content.
	again, err := store.ListDestinations(ctx)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if len(again) != 1 || again[0].City != got.City || again[0].Clues[0] != got.Clues[0] {
		t.Fatalf("catalog fetch not idempotent: %+v vs %+v", got, again[0])
	}

	if err := store.DeleteDestination(ctx, d.ID); err != nil {
		t.Fatalf("delete destination: %v", err)
	}
	if err := store.DeleteDestination(ctx, d.ID); !errors.Is(err, globetrotter.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	count, err := store.CountDestinations(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty catalog, got %d", count)
	}
}
