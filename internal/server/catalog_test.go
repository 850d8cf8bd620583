package server

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/roamio/globetrotter/internal/globetrotter"
)

// countingSource counts how many times the underlying catalog is hit.
type countingSource struct {
	destinations []globetrotter.Destination
	calls        atomic.Int64
}

func (c *countingSource) ListDestinations(context.Context) ([]globetrotter.Destination, error) {
	c.calls.Add(1)
	return c.destinations, nil
}

func setupCachedCatalog(t *testing.T) (*CachedCatalog, *countingSource, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	source := &countingSource{destinations: []globetrotter.Destination{
		{ID: "1", City: "Paris", Country: "France", Clues: []string{"a"}, FunFacts: []string{"b"}},
		{ID: "2", City: "Tokyo", Country: "Japan", Clues: []string{"c"}},
	}}
	return NewCachedCatalog(client, source, time.Minute), source, mr
}

func TestCachedCatalogHitsSourceOnce(t *testing.T) {
	catalog, source, _ := setupCachedCatalog(t)
	ctx := context.Background()

	first, err := catalog.ListDestinations(ctx)
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	second, err := catalog.ListDestinations(ctx)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}

	if got := source.calls.Load(); got != 1 {
		t.Fatalf("expected 1 source call, got %d", got)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 destinations, got %d and %d", len(first), len(second))
	}
	if second[0].City != first[0].City || second[0].Clues[0] != first[0].Clues[0] {
		t.Fatalf("cached content differs: %+v vs %+v", first[0], second[0])
	}
}

func TestCachedCatalogInvalidate(t *testing.T) {
	catalog, source, _ := setupCachedCatalog(t)
	ctx := context.Background()

	if _, err := catalog.ListDestinations(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}

	catalog.Invalidate(ctx)

	if _, err := catalog.ListDestinations(ctx); err != nil {
		t.Fatalf("list after invalidate: %v", err)
	}
	if got := source.calls.Load(); got != 2 {
		t.Fatalf("invalidate should force a reload, got %d source calls", got)
	}
}

func TestCachedCatalogExpiry(t *testing.T) {
	catalog, source, mr := setupCachedCatalog(t)
	ctx := context.Background()

	if _, err := catalog.ListDestinations(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := catalog.ListDestinations(ctx); err != nil {
		t.Fatalf("list after expiry: %v", err)
	}
	if got := source.calls.Load(); got != 2 {
		t.Fatalf("expired entry should reload, got %d source calls", got)
	}
}
