package report

import (
	"fmt"

	"github.com/ehdc-llpg/linkage/internal/db"
	"github.com/ehdc-llpg/linkage/internal/record"
)

// PgSink is the optional Postgres persistence sink for a completed
// linkage run, generalising internal/match/engine.go
// SaveResults from UPRN-specific columns (src_id/candidate_uprn) to
// record-linkage-generic ones (record_id/candidate_id/group_id). The
// engine itself stays stateless between runs; this
// is a driver/CLI-level convenience, not core state.
type PgSink struct {
	conn *db.Connection
}

// NewPgSink opens and pings a Postgres connection via internal/db.
func NewPgSink(databaseURL string) (*PgSink, error) {
	conn, err := db.Connect(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return &PgSink{conn: conn}, nil
}

// Close closes the underlying connection.
func (s *PgSink) Close() error { return s.conn.Close() }

// EnsureSchema creates the match_run/match_result/match_accepted tables
// if they don't already exist, generalised from
// PROJECT_SPECIFICATION.md schema.
func (s *PgSink) EnsureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS match_run (
			run_id BIGSERIAL PRIMARY KEY,
			run_label TEXT NOT NULL,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS match_result (
			run_id BIGINT NOT NULL REFERENCES match_run(run_id),
			record_id TEXT NOT NULL,
			candidate_id TEXT NOT NULL,
			score DOUBLE PRECISION NOT NULL,
			tie_rank INT NOT NULL,
			decided BOOLEAN NOT NULL,
			decision TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS match_accepted (
			record_id TEXT PRIMARY KEY,
			candidate_id TEXT NOT NULL,
			group_id TEXT,
			score DOUBLE PRECISION NOT NULL,
			run_id BIGINT NOT NULL REFERENCES match_run(run_id),
			accepted_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.conn.DB.Exec(stmt); err != nil {
			return fmt.Errorf("report: ensuring schema: %w", err)
		}
	}
	return nil
}

// Result is one record's ranked, scored candidates plus the decision
// reached for it, the unit SaveRun persists per source record.
type Result struct {
	RecordID string
	Candidates []record.Pair // A is the query record, B the candidate
	Scores []float64 // parallel to Candidates
	Decision string
	GroupID string // empty if ungrouped
}

// SaveRun persists a labelled batch of results inside one transaction,
// mirroring SaveResults: insert a match_run row, then one
// match_result row per ranked candidate (capped at the top 10, as the
// teacher capped it), then upsert match_accepted for auto-accepted
// records.
func (s *PgSink) SaveRun(runLabel string, results []Result) (runID int64, err error) {
	tx, err := s.conn.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("report: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRow(
		`INSERT INTO match_run (run_label, notes) VALUES ($1, $2) RETURNING run_id`,
		runLabel, "linkage engine run",
	).Scan(&runID); err != nil {
		return 0, fmt.Errorf("report: creating match_run: %w", err)
	}

	resultStmt, err := tx.Prepare(`
		INSERT INTO match_result (run_id, record_id, candidate_id, score, tie_rank, decided, decision)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		`)
	if err != nil {
		return runID, fmt.Errorf("report: preparing match_result: %w", err)
	}
	defer resultStmt.Close()

	acceptedStmt, err := tx.Prepare(`
		INSERT INTO match_accepted (record_id, candidate_id, group_id, score, run_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (record_id) DO UPDATE SET
		candidate_id = EXCLUDED.candidate_id,
		group_id = EXCLUDED.group_id,
		score = EXCLUDED.score,
		run_id = EXCLUDED.run_id,
		accepted_at = now()
		`)
	if err != nil {
		return runID, fmt.Errorf("report: preparing match_accepted: %w", err)
	}
	defer acceptedStmt.Close()

	for _, result := range results {
		decided := result.Decision == "auto_accept"
		for rank, pair := range result.Candidates {
			if rank >= 10 {
				break
			}
			if _, err := resultStmt.Exec(runID, result.RecordID, pair.B.Key(), result.Scores[rank], rank+1, decided, result.Decision); err != nil {
				return runID, fmt.Errorf("report: inserting match_result: %w", err)
			}
		}
		if decided && len(result.Candidates) > 0 {
			top := result.Candidates[0]
			if _, err := acceptedStmt.Exec(result.RecordID, top.B.Key(), result.GroupID, result.Scores[0], runID); err != nil {
				return runID, fmt.Errorf("report: upserting match_accepted: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return runID, fmt.Errorf("report: committing: %w", err)
	}
	return runID, nil
}
