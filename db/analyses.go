package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

func scanAnalysisRows(rows *sql.Rows) (Analysis, error) {
	var a Analysis
	var matterID, summary, risks, tags, errMsg sql.NullString
	err := rows.Scan(
		&a.ID, &matterID, &a.Title, &a.DocumentText, &a.Status,
		&summary, &risks, &tags, &errMsg, &a.Attempts, &a.CreatedAt, &a.UpdatedAt,
	)
	a.MatterID = StringPtr(matterID)
	a.Summary = StringPtr(summary)
	a.Risks = StringPtr(risks)
	a.Tags = StringPtr(tags)
	a.Error = StringPtr(errMsg)
	return a, err
}

func scanAnalysisRow(row *sql.Row) (Analysis, error) {
	var a Analysis
	var matterID, summary, risks, tags, errMsg sql.NullString
	err := row.Scan(
		&a.ID, &matterID, &a.Title, &a.DocumentText, &a.Status,
		&summary, &risks, &tags, &errMsg, &a.Attempts, &a.CreatedAt, &a.UpdatedAt,
	)
	a.MatterID = StringPtr(matterID)
	a.Summary = StringPtr(summary)
	a.Risks = StringPtr(risks)
	a.Tags = StringPtr(tags)
	a.Error = StringPtr(errMsg)
	return a, err
}

const analysisColumns = "id, matter_id, title, document_text, status, summary, risks, tags, error, attempts, created_at, updated_at"

// ListAnalyses returns all analyses, newest first
func ListAnalyses() ([]Analysis, error) {
	return Select(
		"SELECT "+analysisColumns+" FROM analyses ORDER BY created_at DESC",
		nil, scanAnalysisRows,
	)
}

// GetAnalysis returns an analysis by id, nil if not found
func GetAnalysis(id string) (*Analysis, error) {
	return SelectOne(
		"SELECT "+analysisColumns+" FROM analyses WHERE id = ?",
		[]QueryParam{id}, scanAnalysisRow,
	)
}

// EnqueueAnalysis creates a new analysis job in todo state
func EnqueueAnalysis(matterID *string, title, documentText string) (*Analysis, error) {
	now := NowMs()
	a := Analysis{
		ID:           uuid.New().String(),
		MatterID:     matterID,
		Title:        title,
		DocumentText: documentText,
		Status:       AnalysisStatusTodo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := Run(`
		INSERT INTO analyses (id, matter_id, title, document_text, status, attempts, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 0, ?, ?)
	`, a.ID, NullString(a.MatterID), a.Title, a.DocumentText, a.Status, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// ClaimNextAnalysis atomically moves the oldest todo analysis to running and
// returns it. Returns nil when the queue is empty. Safe with a single sqlite
// connection since the UPDATE and re-read happen on the same handle.
func ClaimNextAnalysis() (*Analysis, error) {
	var claimed *Analysis

	err := Transaction(func(tx *sql.Tx) error {
		row := tx.QueryRow(
			"SELECT id FROM analyses WHERE status = ? ORDER BY created_at ASC LIMIT 1",
			AnalysisStatusTodo,
		)
		var id string
		if err := row.Scan(&id); err == sql.ErrNoRows {
			return nil
		} else if err != nil {
			return err
		}

		_, err := tx.Exec(
			"UPDATE analyses SET status = ?, attempts = attempts + 1, updated_at = ? WHERE id = ?",
			AnalysisStatusRunning, NowMs(), id,
		)
		if err != nil {
			return err
		}

		a, err := scanAnalysisTx(tx, id)
		if err != nil {
			return err
		}
		claimed = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	return claimed, nil
}

func scanAnalysisTx(tx *sql.Tx, id string) (*Analysis, error) {
	row := tx.QueryRow("SELECT "+analysisColumns+" FROM analyses WHERE id = ?", id)
	a, err := scanAnalysisRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CompleteAnalysis stores the verdict and marks the job done
func CompleteAnalysis(id, summary, risksJSON, tagsJSON string) error {
	result, err := Run(`
		UPDATE analyses
		SET status = ?, summary = ?, risks = ?, tags = ?, error = NULL, updated_at = ?
		WHERE id = ?
	`, AnalysisStatusDone, summary, risksJSON, tagsJSON, NowMs(), id)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("analysis not found: %s", id)
	}
	return nil
}

// FailAnalysis records the failure. Jobs under the retry budget go back to
// todo; exhausted jobs stay failed.
func FailAnalysis(id, errMsg string, maxAttempts int) error {
	a, err := GetAnalysis(id)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("analysis not found: %s", id)
	}

	status := AnalysisStatusFailed
	if a.Attempts < maxAttempts {
		status = AnalysisStatusTodo
	}

	_, err = Run(
		"UPDATE analyses SET status = ?, error = ?, updated_at = ? WHERE id = ?",
		status, errMsg, NowMs(), id,
	)
	return err
}

// RequeueStuckAnalyses resets running jobs back to todo. Called on startup to
// recover jobs orphaned by an unclean shutdown.
func RequeueStuckAnalyses() (int64, error) {
	result, err := Run(
		"UPDATE analyses SET status = ?, updated_at = ? WHERE status = ?",
		AnalysisStatusTodo, NowMs(), AnalysisStatusRunning,
	)
	if err != nil {
		return 0, err
	}
	affected, _ := result.RowsAffected()
	return affected, nil
}

// DeleteAnalysis removes an analysis record
func DeleteAnalysis(id string) error {
	result, err := Run("DELETE FROM analyses WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("analysis not found: %s", id)
	}
	return nil
}
