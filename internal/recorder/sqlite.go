package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"TickerSignal/internal/model"
)

// DefaultHistoryLimit caps History when the caller passes a non-positive limit.
const DefaultHistoryLimit = 10

// SQLiteRecorder persists decisions to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the API can read while the scheduler writes.
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
		`CREATE TABLE IF NOT EXISTS decisions (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL,
			symbol      TEXT NOT NULL,
			source      TEXT,
			label       TEXT NOT NULL,
			reason      TEXT,
			rsi         REAL,
			sma         REAL,
			sma_window  INTEGER,
			close       REAL,
			bar_time    INTEGER,
			analyzed_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_symbol_ts ON decisions(symbol, analyzed_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNullable(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return model.Float(n.Float64)
}

// RecordAnalysis stores the decision and the values that triggered it.
func (r *SQLiteRecorder) RecordAnalysis(a *model.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := model.NewDecisionRecord(a)
	analyzedAt := rec.AnalyzedAt
	if analyzedAt.IsZero() {
		analyzedAt = time.Now()
	}
	var barTime int64
	if !rec.BarTime.IsZero() {
		barTime = rec.BarTime.Unix()
	}

	_, err := r.db.Exec(`INSERT INTO decisions
		(run_id, symbol, source, label, reason, rsi, sma, sma_window, close, bar_time, analyzed_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		rec.RunID, strings.ToUpper(rec.Symbol), rec.Source, string(rec.Label), rec.Reason,
		nullable(rec.RSI), nullable(rec.SMA), rec.SMAWindow, rec.Close,
		barTime, analyzedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}
	return nil
}

// History returns the latest decisions for symbol, newest first.
func (r *SQLiteRecorder) History(symbol string, limit int) ([]model.DecisionRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := r.db.Query(`SELECT id, run_id, symbol, source, label, reason, rsi, sma,
		sma_window, close, bar_time, analyzed_at
		FROM decisions WHERE symbol = ? ORDER BY analyzed_at DESC, id DESC LIMIT ?`,
		strings.ToUpper(symbol), limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []model.DecisionRecord
	for rows.Next() {
		var (
			rec                 model.DecisionRecord
			source, reason      sql.NullString
			label               string
			rsi, sma            sql.NullFloat64
			barTime, analyzedAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Symbol, &source, &label, &reason,
			&rsi, &sma, &rec.SMAWindow, &rec.Close, &barTime, &analyzedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		rec.Source = source.String
		rec.Reason = reason.String
		rec.Label = model.Label(label)
		rec.RSI = fromNullable(rsi)
		rec.SMA = fromNullable(sma)
		if barTime != 0 {
			rec.BarTime = time.Unix(barTime, 0).UTC()
		}
		rec.AnalyzedAt = time.Unix(analyzedAt, 0).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
