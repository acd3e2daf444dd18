// internal/store/store.go
// Package store persists runs and their per-sequence verdicts in SQLite.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"knotscan-core/predict"

	"knotscan/internal/report"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	config_json TEXT NOT NULL,
	total       INTEGER NOT NULL,
	analyzed    INTEGER NOT NULL,
	failed      INTEGER NOT NULL,
	skipped     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id       TEXT NOT NULL,
	sequence_id  TEXT NOT NULL,
	source       TEXT,
	window_start INTEGER,
	window_end   INTEGER,
	length       INTEGER NOT NULL,
	gc           REAL,
	tm_c         REAL,
	homopolymer  REAL,
	entropy      REAL,
	codon_bias   REAL,
	crossings    INTEGER,
	complexity   REAL,
	score        REAL,
	level        TEXT,
	flags        TEXT,
	error        TEXT,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
`

// Store manages run history in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and runs migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun writes the run row and its results in one transaction. The config
// snapshot is stored as JSON so past verdicts stay interpretable after the
// defaults change.
func (s *Store) SaveRun(rep report.Report, cfg any, results []predict.Result) (string, error) {
	runID := rep.RunID
	if runID == "" {
		runID = uuid.New().String()
	}
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, started_at, finished_at, config_json, total, analyzed, failed, skipped)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		rep.StartedAt.UTC().Format(time.RFC3339Nano),
		rep.FinishedAt.UTC().Format(time.RFC3339Nano),
		string(cfgJSON),
		rep.Total, rep.Analyzed, rep.Failed, rep.Skipped,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO results (run_id, sequence_id, source, window_start, window_end, length,
		                      gc, tm_c, homopolymer, entropy, codon_bias,
		                      crossings, complexity, score, level, flags, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, res := range results {
		if _, err := stmt.Exec(resultArgs(runID, res)...); err != nil {
			return "", fmt.Errorf("insert result %s: %w", res.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

func resultArgs(runID string, res predict.Result) []any {
	var source any
	if res.Source != "" {
		source = res.Source
	}
	var winStart, winEnd any
	if res.Window != nil {
		winStart, winEnd = res.Window.Start, res.Window.End
	}
	if res.Err != nil {
		return []any{
			runID, res.ID, source, winStart, winEnd, res.Length,
			nil, nil, nil, nil, nil,
			nil, nil, nil, nil, nil,
			res.Err.Error(),
		}
	}
	var flags any
	if elevated := res.Risk.ElevatedSignals(); len(elevated) > 0 {
		flags = strings.Join(elevated, ",")
	}
	return []any{
		runID, res.ID, source, winStart, winEnd, res.Length,
		res.Metrics.GC, res.Metrics.TmC, res.Metrics.Homopolymer,
		res.Metrics.Entropy, res.Metrics.CodonBias,
		res.Topology.Crossings, res.Topology.Complexity,
		res.Risk.Score, res.Risk.Level.String(), flags,
		nil,
	}
}

// RunRecord is one stored run.
type RunRecord struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	ConfigJSON string
	Total      int
	Analyzed   int
	Failed     int
	Skipped    int
}

// Run reads a stored run by id.
func (s *Store) Run(runID string) (RunRecord, error) {
	var rec RunRecord
	var started, finished string
	err := s.db.QueryRow(
		`SELECT run_id, started_at, finished_at, config_json, total, analyzed, failed, skipped
		 FROM runs WHERE run_id = ?`, runID,
	).Scan(&rec.ID, &started, &finished, &rec.ConfigJSON,
		&rec.Total, &rec.Analyzed, &rec.Failed, &rec.Skipped)
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	rec.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	rec.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
	return rec, nil
}

// Runs lists stored runs, most recent first.
func (s *Store) Runs() ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, started_at, finished_at, config_json, total, analyzed, failed, skipped
		 FROM runs ORDER BY started_at DESC, run_id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var started, finished string
		if err := rows.Scan(&rec.ID, &started, &finished, &rec.ConfigJSON,
			&rec.Total, &rec.Analyzed, &rec.Failed, &rec.Skipped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		rec.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ResultRecord is one stored verdict. Metric fields are zero and Error is
// set for records that failed analysis.
type ResultRecord struct {
	SequenceID  string
	Source      string
	Window      *predict.Window
	Length      int
	GC          float64
	TmC         float64
	Homopolymer float64
	Entropy     float64
	CodonBias   float64
	Crossings   int
	Complexity  float64
	Score       float64
	Level       string
	Flags       []string
	Error       string
}

// Results reads a run's verdicts in insertion order.
func (s *Store) Results(runID string) ([]ResultRecord, error) {
	rows, err := s.db.Query(
		`SELECT sequence_id, source, window_start, window_end, length,
		        gc, tm_c, homopolymer, entropy, codon_bias,
		        crossings, complexity, score, level, flags, error
		 FROM results WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var records []ResultRecord
	for rows.Next() {
		var (
			seqID                         string
			length                        int
			source, level, flags, errText sql.NullString
			winStart, winEnd, crossings   sql.NullInt64
			gc, tm, homo, entropy, bias   sql.NullFloat64
			complexity, score             sql.NullFloat64
		)
		if err := rows.Scan(&seqID, &source, &winStart, &winEnd, &length,
			&gc, &tm, &homo, &entropy, &bias,
			&crossings, &complexity, &score, &level, &flags, &errText); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		out := ResultRecord{
			SequenceID:  seqID,
			Source:      source.String,
			Length:      length,
			GC:          gc.Float64,
			TmC:         tm.Float64,
			Homopolymer: homo.Float64,
			Entropy:     entropy.Float64,
			CodonBias:   bias.Float64,
			Crossings:   int(crossings.Int64),
			Complexity:  complexity.Float64,
			Score:       score.Float64,
			Level:       level.String,
			Error:       errText.String,
		}
		if winStart.Valid && winEnd.Valid {
			out.Window = &predict.Window{Start: int(winStart.Int64), End: int(winEnd.Int64)}
		}
		if flags.Valid && flags.String != "" {
			out.Flags = strings.Split(flags.String, ",")
		}
		records = append(records, out)
	}
	return records, rows.Err()
}
