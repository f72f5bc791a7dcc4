package stats

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id               TEXT PRIMARY KEY,
	created_at           TEXT NOT NULL,
	data_root            TEXT NOT NULL,
	splits               TEXT NOT NULL,
	overlap_threshold    REAL NOT NULL,
	method               TEXT NOT NULL,
	num_sequences        INTEGER NOT NULL,
	total_frames         INTEGER NOT NULL,
	total_instances      INTEGER NOT NULL,
	total_pairs          INTEGER NOT NULL,
	total_overlaps       INTEGER NOT NULL,
	mean_pairs_per_frame REAL NOT NULL,
	std_pairs_per_frame  REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS sequence_stats (
	run_id    TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
	seq_id    INTEGER NOT NULL,
	name      TEXT NOT NULL,
	split     TEXT NOT NULL,
	frames    INTEGER NOT NULL,
	instances INTEGER,
	pairs     INTEGER,
	overlaps  INTEGER,
	PRIMARY KEY (run_id, seq_id)
);
`

const (
	queryInsertRun = `
INSERT INTO runs (run_id, created_at, data_root, splits, overlap_threshold,
	method, num_sequences, total_frames, total_instances, total_pairs,
	total_overlaps, mean_pairs_per_frame, std_pairs_per_frame)
VALUES (:run_id, :created_at, :data_root, :splits, :overlap_threshold,
	:method, :num_sequences, :total_frames, :total_instances, :total_pairs,
	:total_overlaps, :mean_pairs_per_frame, :std_pairs_per_frame)`

	queryInsertSequence = `
INSERT INTO sequence_stats (run_id, seq_id, name, split, frames, instances,
	pairs, overlaps)
VALUES (:run_id, :seq_id, :name, :split, :frames, :instances, :pairs,
	:overlaps)`

	queryGetRun = `SELECT * FROM runs WHERE run_id = ?`

	queryGetSequences = `
SELECT seq_id, name, split, frames, instances, pairs, overlaps
FROM sequence_stats WHERE run_id = ? ORDER BY rowid`
)

// runRow is the runs table row of a Summary
type runRow struct {
	RunID             string  `db:"run_id"`
	CreatedAt         string  `db:"created_at"`
	DataRoot          string  `db:"data_root"`
	Splits            string  `db:"splits"`
	OverlapThreshold  float64 `db:"overlap_threshold"`
	Method            string  `db:"method"`
	NumSequences      int     `db:"num_sequences"`
	TotalFrames       int     `db:"total_frames"`
	TotalInstances    int     `db:"total_instances"`
	TotalPairs        int     `db:"total_pairs"`
	TotalOverlaps     int     `db:"total_overlaps"`
	MeanPairsPerFrame float64 `db:"mean_pairs_per_frame"`
	StdPairsPerFrame  float64 `db:"std_pairs_per_frame"`
}

// sequenceRow is a sequence_stats table row
type sequenceRow struct {
	RunID string `db:"run_id"`
	SequenceStats
}

// SQLiteStore keeps summaries of every run in a SQLite database
type SQLiteStore struct {
	db *sqlx.DB
}

// OpenSQLite opens, creating when needed, the database at path
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {

	db, err := sqlx.Open("sqlite", path)

	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite database")
	}

	// a single connection keeps in memory databases shared across calls
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "enabling foreign keys")
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save inserts the run and its sequences in one transaction
func (s *SQLiteStore) Save(ctx context.Context, sum *Summary) error {

	tx, err := s.db.BeginTxx(ctx, nil)

	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}

	defer tx.Rollback()

	run := runRow{
		RunID:             sum.RunID,
		CreatedAt:         sum.CreatedAt.UTC().Format(time.RFC3339Nano),
		DataRoot:          sum.DataRoot,
		Splits:            strings.Join(sum.Splits, ","),
		OverlapThreshold:  sum.OverlapThreshold,
		Method:            sum.Method,
		NumSequences:      sum.NumSequences,
		TotalFrames:       sum.TotalFrames,
		TotalInstances:    sum.TotalInstances,
		TotalPairs:        sum.TotalPairs,
		TotalOverlaps:     sum.TotalOverlaps,
		MeanPairsPerFrame: sum.MeanPairsPerFrame,
		StdPairsPerFrame:  sum.StdPairsPerFrame,
	}

	if _, err := tx.NamedExecContext(ctx, queryInsertRun, run); err != nil {
		return errors.Wrap(err, "inserting run")
	}

	for _, seq := range sum.Sequences {
		row := sequenceRow{RunID: sum.RunID, SequenceStats: seq}

		if _, err := tx.NamedExecContext(ctx, queryInsertSequence, row); err != nil {
			return errors.Wrapf(err, "inserting sequence %s", seq.Name)
		}
	}

	return errors.Wrap(tx.Commit(), "committing run")
}

// Load returns the summary of a stored run
func (s *SQLiteStore) Load(ctx context.Context, runID string) (*Summary, error) {

	var run runRow

	if err := s.db.GetContext(ctx, &run, queryGetRun, runID); err != nil {
		return nil, errors.Wrapf(err, "loading run %s", runID)
	}

	created, err := time.Parse(time.RFC3339Nano, run.CreatedAt)

	if err != nil {
		return nil, errors.Wrapf(err, "parsing created_at of run %s", runID)
	}

	var seqs []SequenceStats

	if err := s.db.SelectContext(ctx, &seqs, queryGetSequences, runID); err != nil {
		return nil, errors.Wrapf(err, "loading sequences of run %s", runID)
	}

	sum := &Summary{
		RunID:             run.RunID,
		CreatedAt:         created,
		DataRoot:          run.DataRoot,
		OverlapThreshold:  run.OverlapThreshold,
		Method:            run.Method,
		NumSequences:      run.NumSequences,
		TotalFrames:       run.TotalFrames,
		TotalInstances:    run.TotalInstances,
		TotalPairs:        run.TotalPairs,
		TotalOverlaps:     run.TotalOverlaps,
		MeanPairsPerFrame: run.MeanPairsPerFrame,
		StdPairsPerFrame:  run.StdPairsPerFrame,
		Sequences:         seqs,
	}

	if run.Splits != "" {
		sum.Splits = strings.Split(run.Splits, ",")
	}

	for _, seq := range seqs {
		if err := sum.index(seq); err != nil {
			return nil, err
		}
	}

	return sum, nil
}
