package storage

// sqlite.go — histórico de sweeps en SQLite (pure Go, sin CGo).
//
//   - `sweeps`: una fila-resumen por run (variante, combinaciones, duración,
//     mejor resultado). Pesa decenas de bytes: nunca hace falta podar.
//   - `results`: los top-K de cada run, una fila por puesto. El grid completo
//     (decenas o cientos de miles de combinaciones) NO se persiste: solo
//     aporta señal el podio.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/gridbot/internal/domain"
	"github.com/alejandrodnm/gridbot/internal/ports"
	_ "modernc.org/sqlite"
)

const schema = `
-- Resumen ligero por sweep
CREATE TABLE IF NOT EXISTS sweeps (
    run_id      TEXT PRIMARY KEY,
    variant     TEXT     NOT NULL,
    started_at  DATETIME NOT NULL,
    duration_ms INTEGER  NOT NULL DEFAULT 0,
    workers     INTEGER  NOT NULL DEFAULT 0,
    combos      INTEGER  NOT NULL DEFAULT 0,
    excluded    INTEGER  NOT NULL DEFAULT 0,
    best_params TEXT,
    best_pnl    REAL     NOT NULL DEFAULT 0
);

-- Top-K de cada sweep, una fila por puesto
CREATE TABLE IF NOT EXISTS results (
    run_id     TEXT    NOT NULL,
    rank       INTEGER NOT NULL,
    params     TEXT    NOT NULL,
    pnl        REAL    NOT NULL DEFAULT 0,
    total_fees REAL    NOT NULL DEFAULT 0,
    trades     INTEGER NOT NULL DEFAULT 0,
    voided     INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (run_id, rank)
);

CREATE INDEX IF NOT EXISTS idx_sweeps_at ON sweeps(started_at DESC);
`

// resultados que se persisten por run
const keepResults = 10

// Compile-time interface check.
var _ ports.Storage = (*SQLiteStorage)(nil)

// SQLiteStorage implementa ports.Storage usando SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada y aplica
// el schema.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// SaveSweep persiste el resumen del run y sus mejores resultados en una
// transacción.
func (s *SQLiteStorage) SaveSweep(ctx context.Context, run *domain.SweepRun) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveSweep: begin: %w", err)
	}
	defer tx.Rollback()

	bestParams := ""
	bestPnL := 0.0
	if best, ok := run.Best(); ok {
		bestParams = best.Params.Label()
		bestPnL = best.PnL
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sweeps (run_id, variant, started_at, duration_ms, workers, combos, excluded, best_params, best_pnl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Variant, run.StartedAt, run.Duration.Milliseconds(),
		run.Workers, run.Total, run.Excluded, bestParams, bestPnL,
	)
	if err != nil {
		return fmt.Errorf("storage.SaveSweep: insert sweep: %w", err)
	}

	for rank, res := range run.TopK(keepResults) {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO results (run_id, rank, params, pnl, total_fees, trades, voided)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, rank+1, res.Params.Label(), res.PnL, res.TotalFees, res.Trades, res.VoidedOrders,
		)
		if err != nil {
			return fmt.Errorf("storage.SaveSweep: insert result %d: %w", rank+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveSweep: commit: %w", err)
	}
	return nil
}

// ListSweeps devuelve los resúmenes más recientes, el último primero.
func (s *SQLiteStorage) ListSweeps(ctx context.Context, limit int) ([]domain.SweepSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, variant, started_at, duration_ms, combos, excluded, best_params, best_pnl
		FROM sweeps ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage.ListSweeps: query: %w", err)
	}
	defer rows.Close()

	var out []domain.SweepSummary
	for rows.Next() {
		var sum domain.SweepSummary
		var durMS int64
		var startedAt time.Time
		if err := rows.Scan(&sum.ID, &sum.Variant, &startedAt, &durMS,
			&sum.Total, &sum.Excluded, &sum.BestParams, &sum.BestPnL); err != nil {
			return nil, fmt.Errorf("storage.ListSweeps: scan: %w", err)
		}
		sum.StartedAt = startedAt.UTC()
		sum.Duration = time.Duration(durMS) * time.Millisecond
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.ListSweeps: rows: %w", err)
	}
	return out, nil
}

// Close cierra la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
