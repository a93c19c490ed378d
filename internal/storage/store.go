package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps SQLite-backed persistence for search cursors and decoded logs.
type Store struct {
	db *sql.DB
}

// Open initializes a SQLite database and runs minimal schema setup.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := configure(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("store not initialized")
	}
	return s.db.PingContext(ctx)
}

func configure(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	pragmas := []string{
		"PRAGMA foreign_keys = ON;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("set pragma %q: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	schema := `
CREATE TABLE IF NOT EXISTS cursors (
  contract    TEXT PRIMARY KEY,
  height      INTEGER NOT NULL,
  updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS logs (
  tx_hash       TEXT NOT NULL,
  log_index     INTEGER NOT NULL,
  contract      TEXT NOT NULL,
  event         TEXT,
  resolved      INTEGER NOT NULL,
  block_number  INTEGER NOT NULL,
  payload_json  TEXT,
  created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY(tx_hash, log_index)
);

CREATE INDEX IF NOT EXISTS logs_contract_height ON logs(contract, block_number);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// UpsertCursor records the last block searched for a contract.
func (s *Store) UpsertCursor(ctx context.Context, contract string, height uint64) error {
	if contract == "" {
		return errors.New("contract required")
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO cursors (contract, height, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(contract) DO UPDATE SET
  height=excluded.height,
  updated_at=CURRENT_TIMESTAMP;
`, contract, height)
	if err != nil {
		return fmt.Errorf("upsert cursor: %w", err)
	}
	return nil
}

// GetCursor retrieves the cursor for a contract.
func (s *Store) GetCursor(ctx context.Context, contract string) (height uint64, ok bool, err error) {
	row := s.db.QueryRowContext(ctx, `
SELECT height FROM cursors WHERE contract = ?;
`, contract)
	switch err = row.Scan(&height); err {
	case nil:
		return height, true, nil
	case sql.ErrNoRows:
		return 0, false, nil
	default:
		return 0, false, fmt.Errorf("get cursor: %w", err)
	}
}

// LogRecord is one decoded (or unresolved) log kept for later export.
type LogRecord struct {
	TxHash      string
	LogIndex    int
	Contract    string
	Event       string
	Resolved    bool
	BlockNumber uint64
	PayloadJSON string
	CreatedAt   time.Time
}

// InsertLog stores a log record; the primary key dedupes replays of the same
// search window. Returns false when the record was already present.
func (s *Store) InsertLog(ctx context.Context, rec LogRecord) (bool, error) {
	if rec.TxHash == "" || rec.Contract == "" {
		return false, errors.New("tx_hash and contract required")
	}
	res, err := s.db.ExecContext(ctx, `
INSERT OR IGNORE INTO logs (tx_hash, log_index, contract, event, resolved, block_number, payload_json)
VALUES (?, ?, ?, ?, ?, ?, ?);
`, rec.TxHash, rec.LogIndex, rec.Contract, rec.Event, rec.Resolved, rec.BlockNumber, rec.PayloadJSON)
	if err != nil {
		return false, fmt.Errorf("insert log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert log: %w", err)
	}
	return n > 0, nil
}

// ListLogs returns stored logs for a contract in chain order, up to limit.
// A zero limit returns everything.
func (s *Store) ListLogs(ctx context.Context, contract string, limit int) ([]LogRecord, error) {
	q := `
SELECT tx_hash, log_index, contract, event, resolved, block_number, payload_json, created_at
FROM logs WHERE contract = ? ORDER BY block_number, log_index`
	args := []any{contract}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q+";", args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var out []LogRecord
	for rows.Next() {
		var rec LogRecord
		if err := rows.Scan(&rec.TxHash, &rec.LogIndex, &rec.Contract, &rec.Event, &rec.Resolved, &rec.BlockNumber, &rec.PayloadJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return out, nil
}

// WithTx executes a callback inside a transaction for callers needing atomicity.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
