package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"reelstore/internal/config"
)

// Store manages project metadata records backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the index database under the configured
// index directory.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := os.MkdirAll(cfg.Store.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Store.IndexDir, "index.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the index database file path.
func (s *Store) Path() string {
	return s.path
}

// Insert adds a fresh record. It fails if a record already exists for the
// same (collection, id); upload paths that must never overwrite use this.
func (s *Store) Insert(ctx context.Context, collection Collection, record Record) error {
	if !collection.Valid() {
		return fmt.Errorf("unknown collection %q", collection)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO records (
            collection, id, title, duration, duration_string, scene_count,
            type, date, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(collection),
		record.ID,
		record.Title,
		record.Duration,
		record.DurationString,
		record.SceneCount,
		nullableString(record.Type),
		record.Date.UTC().Format(time.RFC3339Nano),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// Upsert writes a record, updating in place when one already exists for the
// same (collection, id). The result reports which path was taken.
func (s *Store) Upsert(ctx context.Context, collection Collection, record Record) (UpsertResult, error) {
	if !collection.Valid() {
		return Inserted, fmt.Errorf("unknown collection %q", collection)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`UPDATE records
         SET title = ?, duration = ?, duration_string = ?, scene_count = ?,
             type = ?, date = ?, updated_at = ?
         WHERE collection = ? AND id = ?`,
		record.Title,
		record.Duration,
		record.DurationString,
		record.SceneCount,
		nullableString(record.Type),
		record.Date.UTC().Format(time.RFC3339Nano),
		now,
		string(collection),
		record.ID,
	)
	if err != nil {
		return Inserted, fmt.Errorf("update record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Inserted, fmt.Errorf("rows affected: %w", err)
	}
	if affected > 0 {
		return Updated, nil
	}

	if err := s.Insert(ctx, collection, record); err != nil {
		return Inserted, err
	}
	return Inserted, nil
}

// Get fetches a record by collection and id. A missing record returns nil.
func (s *Store) Get(ctx context.Context, collection Collection, id string) (*Record, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+recordColumns+` FROM records WHERE collection = ? AND id = ?`,
		string(collection),
		id,
	)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return record, nil
}

// Find looks id up across every collection, returning the first match.
func (s *Store) Find(ctx context.Context, id string) (*Record, error) {
	for _, collection := range Collections() {
		record, err := s.Get(ctx, collection, id)
		if err != nil {
			return nil, err
		}
		if record != nil {
			return record, nil
		}
	}
	return nil, nil
}

// Delete removes a record by collection and id, reporting whether a row was
// removed.
func (s *Store) Delete(ctx context.Context, collection Collection, id string) (bool, error) {
	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM records WHERE collection = ? AND id = ?`,
		string(collection),
		id,
	)
	if err != nil {
		return false, fmt.Errorf("delete record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// List returns a collection's records ordered by date, newest first.
func (s *Store) List(ctx context.Context, collection Collection) ([]*Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+recordColumns+` FROM records WHERE collection = ? ORDER BY date DESC, id`,
		string(collection),
	)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// CollectionStats returns a count of records per collection.
func (s *Store) CollectionStats(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT collection, COUNT(1) FROM records GROUP BY collection`)
	if err != nil {
		return Stats{}, fmt.Errorf("index stats: %w", err)
	}
	defer rows.Close()

	var stats Stats
	for rows.Next() {
		var collection string
		var count int
		if err := rows.Scan(&collection, &count); err != nil {
			return Stats{}, err
		}
		switch Collection(collection) {
		case CollectionMovies:
			stats.Movies = count
		case CollectionAssets:
			stats.Assets = count
		}
	}
	return stats, rows.Err()
}

const recordColumns = "collection, id, title, duration, duration_string, scene_count, type, date, created_at, updated_at"

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		collection  string
		id          string
		title       string
		duration    float64
		durationStr string
		sceneCount  int
		recordType  sql.NullString
		dateRaw     string
		createdRaw  string
		updatedRaw  string
	)

	if err := scanner.Scan(
		&collection,
		&id,
		&title,
		&duration,
		&durationStr,
		&sceneCount,
		&recordType,
		&dateRaw,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	record := &Record{
		ID:             id,
		Collection:     Collection(collection),
		Title:          title,
		Duration:       duration,
		DurationString: durationStr,
		SceneCount:     sceneCount,
		Type:           recordType.String,
	}
	if date, err := parseTimeString(dateRaw); err == nil {
		record.Date = date
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		record.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		record.UpdatedAt = updated
	}
	return record, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
