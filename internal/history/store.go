package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jfmyers9/toptags/internal/collector"
	_ "modernc.org/sqlite"
)

// Store keeps a history of tag rankings using SQLite
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Snapshot is one recorded ranking
type Snapshot struct {
	ID        int64
	RunID     string
	User      string
	CreatedAt time.Time
	TagCount  int
	TotalPlay int64
}

// TagPoint is a tag's play count in one snapshot
type TagPoint struct {
	SnapshotID int64
	CreatedAt  time.Time
	PlayCount  int64
	Rank       int // 1 is the heaviest tag of the snapshot
}

// Open creates a new history store backed by SQLite
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases consistent
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			username TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS snapshot_tags (
			snapshot_id INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			play_count INTEGER NOT NULL,
			rank INTEGER NOT NULL,
			PRIMARY KEY (snapshot_id, name)
		);

		CREATE INDEX IF NOT EXISTS idx_snapshot_tags_name ON snapshot_tags(name);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores a ranking. Tags are expected in ascending play count order,
// as produced by the collector; rank 1 is given to the last tag.
func (s *Store) Record(ctx context.Context, runID, user string, tags []collector.TopTag) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		"INSERT INTO snapshots (run_id, username, created_at) VALUES (?, ?, ?)",
		runID, user, s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO snapshot_tags (snapshot_id, name, play_count, rank) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, tag := range tags {
		rank := len(tags) - i
		if _, err := stmt.ExecContext(ctx, id, tag.Name, int64(tag.PlayCount), rank); err != nil {
			return fmt.Errorf("failed to insert tag %s: %w", tag.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Snapshots lists recorded snapshots, newest first
// Optionally limits the number of results
func (s *Store) Snapshots(ctx context.Context, limit int) ([]Snapshot, error) {
	query := `
		SELECT s.id, s.run_id, s.username, s.created_at,
			COUNT(t.name), COALESCE(SUM(t.play_count), 0)
		FROM snapshots s
		LEFT JOIN snapshot_tags t ON t.snapshot_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC, s.id DESC
	`

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		var createdUnix int64

		if err := rows.Scan(&snap.ID, &snap.RunID, &snap.User, &createdUnix, &snap.TagCount, &snap.TotalPlay); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}

		snap.CreatedAt = time.Unix(createdUnix, 0)
		snapshots = append(snapshots, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return snapshots, nil
}

// TagHistory returns a tag's play count and rank across snapshots, oldest first
func (s *Store) TagHistory(ctx context.Context, name string) ([]TagPoint, error) {
	query := `
		SELECT s.id, s.created_at, t.play_count, t.rank
		FROM snapshot_tags t
		JOIN snapshots s ON s.id = t.snapshot_id
		WHERE t.name = ?
		ORDER BY s.created_at ASC, s.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query tag history: %w", err)
	}
	defer rows.Close()

	var points []TagPoint
	for rows.Next() {
		var p TagPoint
		var createdUnix int64

		if err := rows.Scan(&p.SnapshotID, &createdUnix, &p.PlayCount, &p.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan tag point: %w", err)
		}

		p.CreatedAt = time.Unix(createdUnix, 0)
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag history: %w", err)
	}

	return points, nil
}

// Prune removes snapshots older than maxAge
func (s *Store) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := s.now().Add(-maxAge).Unix()

	result, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}
