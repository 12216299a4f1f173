package data

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/Roxrite0509/medguard/pkg/qhi"
	"github.com/Roxrite0509/medguard/pkg/sample"
)

const (
	insertRunSQL = `INSERT INTO run (
			created_at, n_train, n_test, auc_roc, avg_precision, f1_score,
			pearson_r, avg_latency_ms, p95_latency_ms,
			pct_auto_use, pct_review, pct_block
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	insertScoreSQL = `INSERT INTO score (
			run_id, created_at, qhi, uncertainty, risk_score, violation_prob,
			gate, inference_ms, text_length, n_entities, specialty,
			true_label, true_severity
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectRunsSQL = `SELECT
			id, created_at, n_train, n_test, auc_roc, avg_precision,
			f1_score, pearson_r, avg_latency_ms, p95_latency_ms,
			pct_auto_use, pct_review, pct_block
		FROM run
		ORDER BY id DESC
		LIMIT ?
	`
)

// RunRecord is one persisted benchmark run.
type RunRecord struct {
	ID           int64   `json:"id"`
	CreatedAt    string  `json:"created_at"`
	NTrain       int     `json:"n_train"`
	NTest        int     `json:"n_test"`
	AUCROC       float64 `json:"auc_roc"`
	AvgPrecision float64 `json:"avg_precision"`
	F1Score      float64 `json:"f1_score"`
	PearsonR     float64 `json:"pearson_r"`
	AvgLatencyMS float64 `json:"avg_latency_ms"`
	P95LatencyMS float64 `json:"p95_latency_ms"`
	PctAutoUse   float64 `json:"pct_auto_use"`
	PctReview    float64 `json:"pct_review"`
	PctBlock     float64 `json:"pct_block"`
}

// SaveRun persists a benchmark report and returns the new run ID.
func SaveRun(db *sql.DB, m *qhi.BenchmarkMetrics, nTrain int) (int64, error) {
	if db == nil {
		return 0, errors.New("database not initialized")
	}
	if m == nil {
		return 0, errors.New("metrics required")
	}

	res, err := db.Exec(insertRunSQL,
		time.Now().UTC().Format(time.RFC3339),
		nTrain, m.NTest, m.AUCROC, m.AvgPrecision, m.F1Score,
		m.PearsonR, m.AvgLatencyMS, m.P95LatencyMS,
		m.GateDistribution[qhi.GateAutoUse],
		m.GateDistribution[qhi.GateReview],
		m.GateDistribution[qhi.GateBlock],
	)
	if err != nil {
		return 0, errors.Wrap(err, "failed to insert run")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get run id")
	}
	return id, nil
}

// SaveScores persists scored samples in one transaction, keyed to a run.
func SaveScores(db *sql.DB, runID int64, samples []*sample.Sample, scores []*qhi.Score) error {
	if db == nil {
		return errors.New("database not initialized")
	}
	if len(samples) != len(scores) {
		return errors.Errorf("sample/score count mismatch: %d vs %d", len(samples), len(scores))
	}

	stmt, err := db.Prepare(insertScoreSQL)
	if err != nil {
		return errors.Wrap(err, "failed to prepare batch statement")
	}
	defer stmt.Close()

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, sc := range scores {
		_, err = tx.Stmt(stmt).Exec(
			runID, now, sc.QHI, sc.Uncertainty, sc.RiskScore,
			sc.ViolationProb, string(sc.Gate), sc.InferenceMS,
			sc.Details.TextLength, sc.Details.NumEntities,
			sc.Details.Specialty,
			samples[i].TrueLabel, samples[i].TrueSeverity,
		)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return errors.Wrap(rbErr, "failed to rollback transaction")
			}
			return errors.Wrap(err, "failed to execute batch statement")
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// ListRuns returns the most recent benchmark runs, newest first.
func ListRuns(db *sql.DB, limit int) ([]*RunRecord, error) {
	if db == nil {
		return nil, errors.New("database not initialized")
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := db.Query(selectRunsSQL, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query runs")
	}
	defer rows.Close()

	var runs []*RunRecord
	for rows.Next() {
		r := &RunRecord{}
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.NTrain, &r.NTest,
			&r.AUCROC, &r.AvgPrecision, &r.F1Score, &r.PearsonR,
			&r.AvgLatencyMS, &r.P95LatencyMS,
			&r.PctAutoUse, &r.PctReview, &r.PctBlock); err != nil {
			return nil, errors.Wrap(err, "failed to scan run row")
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read run rows")
	}
	return runs, nil
}
