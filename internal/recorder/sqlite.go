package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"DeviationSentinel/internal/model"
)

// SQLiteRecorder persists analysis output to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc readers don't block the analyzer's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_rows (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			code          TEXT NOT NULL,
			name          TEXT,
			window_days   INTEGER NOT NULL,
			threshold_pct REAL NOT NULL,
			row_offset    INTEGER NOT NULL,
			kind          TEXT,
			target_date   TEXT,
			base_date     TEXT,
			actual_pct    REAL,
			deviation_pct REAL,
			triggered     INTEGER,
			trigger_price REAL,
			left_space    REAL,
			room_pct      REAL,
			max_boards    INTEGER,
			degraded      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rows_code_ts ON analysis_rows(code, timestamp)`,

		`CREATE TABLE IF NOT EXISTS summaries (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			code          TEXT NOT NULL,
			name          TEXT,
			price         TEXT,
			window_days   INTEGER NOT NULL,
			threshold_pct REAL NOT NULL,
			label         TEXT NOT NULL,
			trade_date    TEXT,
			deviation     TEXT,
			trigger_price TEXT,
			room_pct      TEXT,
			boards        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_code_ts ON summaries(code, timestamp)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordWindow stores every analysis row of one window run.
func (r *SQLiteRecorder) RecordWindow(rec *WindowRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO analysis_rows
		(timestamp, code, name, window_days, threshold_pct, row_offset, kind, target_date, base_date,
		 actual_pct, deviation_pct, triggered, trigger_price, left_space, room_pct, max_boards, degraded)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, row := range rec.Rows {
		if _, err := stmt.Exec(now, rec.Code, rec.Name, rec.WindowDays, rec.ThresholdPct,
			row.Offset, string(row.Kind), row.TargetDate, row.BaseDate,
			row.ActualPct, row.DeviationPct, boolInt(row.Triggered), row.TriggerPrice,
			row.LeftSpace, row.RoomPct, row.MaxBoards, boolInt(row.Degraded)); err != nil {
			return fmt.Errorf("insert analysis row: %w", err)
		}
	}
	return tx.Commit()
}

// RecordSummary stores the per-label projection of one window.
func (r *SQLiteRecorder) RecordSummary(sum *model.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO summaries
		(timestamp, code, name, price, window_days, threshold_pct, label, trade_date, deviation, trigger_price, room_pct, boards)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	if _, err := stmt.Exec(now, sum.Code, sum.Name, sum.Price, sum.WindowDays, sum.ThresholdPct,
		"T", "", sum.TodayDev, "", "", ""); err != nil {
		return fmt.Errorf("insert summary row: %w", err)
	}
	for _, d := range sum.Days {
		if _, err := stmt.Exec(now, sum.Code, sum.Name, sum.Price, sum.WindowDays, sum.ThresholdPct,
			d.Label, d.Date, "", d.TriggerPrice, d.RoomPct, d.Boards); err != nil {
			return fmt.Errorf("insert summary row: %w", err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
