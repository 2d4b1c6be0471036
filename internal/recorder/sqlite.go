package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
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

	// WAL mode for better concurrent read performance (dashboards read while the daemon writes).
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
		`CREATE TABLE IF NOT EXISTS analysis_snapshots (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			period      TEXT,
			price       REAL,
			ma200       REAL,
			bias        REAL,
			drawdown    REAL,
			rsi         REAL,
			macd        REAL,
			signal_line REAL,
			trend       TEXT,
			risk        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_ts ON analysis_snapshots(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_symbol ON analysis_snapshots(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS valuations (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			total_invested  REAL,
			total_value     REAL,
			total_profit    REAL,
			profit_rate_pct REAL,
			xirr_pct        REAL,
			xirr_converged  INTEGER,
			fx_rate         REAL,
			fx_fallback     INTEGER,
			symbols         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_valuations_ts ON valuations(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullable maps NaN to SQL NULL so undefined indicators never masquerade
// as real zeros in the history tables.
func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func (r *SQLiteRecorder) RecordAnalysis(snap *AnalysisSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO analysis_snapshots
		(timestamp, symbol, period, price, ma200, bias, drawdown, rsi, macd, signal_line, trend, risk)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		snap.TakenAt.Unix(), snap.Symbol, snap.Period,
		nullable(snap.Price), nullable(snap.MA200), nullable(snap.Bias),
		nullable(snap.Drawdown), nullable(snap.RSI),
		nullable(snap.MACD), nullable(snap.Signal),
		snap.Trend, snap.Risk,
	)
	return err
}

func (r *SQLiteRecorder) RecordValuation(rec *ValuationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	symbols, err := json.Marshal(rec.Symbols)
	if err != nil {
		return fmt.Errorf("marshal symbol detail: %w", err)
	}

	_, err = r.db.Exec(`INSERT INTO valuations
		(timestamp, total_invested, total_value, total_profit, profit_rate_pct,
		 xirr_pct, xirr_converged, fx_rate, fx_fallback, symbols)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		rec.TakenAt.Unix(), rec.TotalInvestedCNY, rec.TotalValueCNY,
		rec.TotalProfitCNY, rec.ProfitRatePct,
		rec.XIRRPct, rec.XIRRConverged, rec.FXRate, rec.FXFallback,
		string(symbols),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
