package index_test

import (
	"context"
	"testing"
	"time"

	"reelstore/internal/index"
	"reelstore/internal/testsupport"
)

func testRecord(id, title string) index.Record {
	return index.Record{
		ID:             id,
		Title:          title,
		Duration:       125.7,
		DurationString: "02:05",
		SceneCount:     3,
		Date:           time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestUpsertInsertsThenUpdates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenIndex(t, cfg)
	ctx := context.Background()

	result, err := store.Upsert(ctx, index.CollectionMovies, testRecord("m1", "First"))
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if result != index.Inserted {
		t.Fatalf("expected Inserted, got %v", result)
	}

	record := testRecord("m1", "Renamed")
	record.SceneCount = 5
	result, err = store.Upsert(ctx, index.CollectionMovies, record)
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if result != index.Updated {
		t.Fatalf("expected Updated, got %v", result)
	}

	fetched, err := store.Get(ctx, index.CollectionMovies, "m1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fetched == nil || fetched.Title != "Renamed" || fetched.SceneCount != 5 {
		t.Fatalf("unexpected record %#v", fetched)
	}

	// Exactly one row for the id.
	records, err := store.List(ctx, index.CollectionMovies)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestInsertRejectsDuplicate(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenIndex(t, cfg)
	ctx := context.Background()

	if err := store.Insert(ctx, index.CollectionAssets, testRecord("a1", "Starter")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, index.CollectionAssets, testRecord("a1", "Starter again")); err == nil {
		t.Fatal("expected duplicate insert to fail")
	}
}

func TestCollectionsAreIsolated(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenIndex(t, cfg)
	ctx := context.Background()

	record := testRecord("same-id", "In movies")
	if err := store.Insert(ctx, index.CollectionMovies, record); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	fromAssets, err := store.Get(ctx, index.CollectionAssets, "same-id")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fromAssets != nil {
		t.Fatalf("expected no record in assets, got %#v", fromAssets)
	}

	found, err := store.Find(ctx, "same-id")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if found == nil || found.Collection != index.CollectionMovies {
		t.Fatalf("unexpected Find result %#v", found)
	}
}

func TestTypeTagSurvivesRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenIndex(t, cfg)
	ctx := context.Background()

	record := testRecord("starter1", "Template")
	record.Type = index.TypeMovie
	if err := store.Insert(ctx, index.CollectionAssets, record); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	fetched, err := store.Get(ctx, index.CollectionAssets, "starter1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fetched.Type != index.TypeMovie {
		t.Fatalf("expected type tag %q, got %q", index.TypeMovie, fetched.Type)
	}
}

func TestDeleteReportsAffected(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenIndex(t, cfg)
	ctx := context.Background()

	if err := store.Insert(ctx, index.CollectionMovies, testRecord("m1", "Doomed")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	removed, err := store.Delete(ctx, index.CollectionMovies, "m1")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !removed {
		t.Fatal("expected delete to report a removed row")
	}

	removed, err = store.Delete(ctx, index.CollectionMovies, "m1")
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if removed {
		t.Fatal("expected second delete to report nothing removed")
	}
}

func TestListOrdersByDateDescending(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenIndex(t, cfg)
	ctx := context.Background()

	older := testRecord("old", "Older")
	older.Date = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := testRecord("new", "Newer")
	newer.Date = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	if err := store.Insert(ctx, index.CollectionMovies, older); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, index.CollectionMovies, newer); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	records, err := store.List(ctx, index.CollectionMovies)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 || records[0].ID != "new" || records[1].ID != "old" {
		t.Fatalf("unexpected order: %#v", records)
	}
}

func TestCollectionStats(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenIndex(t, cfg)
	ctx := context.Background()

	if err := store.Insert(ctx, index.CollectionMovies, testRecord("m1", "A")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, index.CollectionMovies, testRecord("m2", "B")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, index.CollectionAssets, testRecord("a1", "T")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	stats, err := store.CollectionStats(ctx)
	if err != nil {
		t.Fatalf("CollectionStats failed: %v", err)
	}
	if stats.Movies != 2 || stats.Assets != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestUnknownCollectionRejected(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenIndex(t, cfg)
	ctx := context.Background()

	if err := store.Insert(ctx, index.Collection("junk"), testRecord("x", "X")); err == nil {
		t.Fatal("expected insert into unknown collection to fail")
	}
	if _, err := store.Upsert(ctx, index.Collection("junk"), testRecord("x", "X")); err == nil {
		t.Fatal("expected upsert into unknown collection to fail")
	}
}
