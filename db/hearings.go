package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

func scanHearingRows(rows *sql.Rows) (Hearing, error) {
	var h Hearing
	var courtroom, judge, outcome sql.NullString
	err := rows.Scan(
		&h.ID, &h.MatterID, &h.ScheduledAt, &h.Purpose,
		&courtroom, &judge, &outcome, &h.Reminded, &h.CreatedAt, &h.UpdatedAt,
	)
	h.Courtroom = StringPtr(courtroom)
	h.Judge = StringPtr(judge)
	h.Outcome = StringPtr(outcome)
	return h, err
}

func scanHearingRow(row *sql.Row) (Hearing, error) {
	var h Hearing
	var courtroom, judge, outcome sql.NullString
	err := row.Scan(
		&h.ID, &h.MatterID, &h.ScheduledAt, &h.Purpose,
		&courtroom, &judge, &outcome, &h.Reminded, &h.CreatedAt, &h.UpdatedAt,
	)
	h.Courtroom = StringPtr(courtroom)
	h.Judge = StringPtr(judge)
	h.Outcome = StringPtr(outcome)
	return h, err
}

const hearingColumns = "id, matter_id, scheduled_at, purpose, courtroom, judge, outcome, reminded, created_at, updated_at"

// ListHearings returns hearings for a matter ordered by schedule
func ListHearings(matterID string) ([]Hearing, error) {
	return Select(
		"SELECT "+hearingColumns+" FROM hearings WHERE matter_id = ? ORDER BY scheduled_at ASC",
		[]QueryParam{matterID}, scanHearingRows,
	)
}

// ListUpcomingHearings returns hearings scheduled within [from, to)
func ListUpcomingHearings(fromMs, toMs int64) ([]Hearing, error) {
	return Select(
		"SELECT "+hearingColumns+" FROM hearings WHERE scheduled_at >= ? AND scheduled_at < ? ORDER BY scheduled_at ASC",
		[]QueryParam{fromMs, toMs}, scanHearingRows,
	)
}

// UnremindedHearings returns hearings in [from, to) that have not been
// reminded yet. The reminder worker marks them after pushing a notification.
func UnremindedHearings(fromMs, toMs int64) ([]Hearing, error) {
	return Select(
		"SELECT "+hearingColumns+" FROM hearings WHERE scheduled_at >= ? AND scheduled_at < ? AND reminded = 0 ORDER BY scheduled_at ASC",
		[]QueryParam{fromMs, toMs}, scanHearingRows,
	)
}

// MarkHearingReminded flags a hearing so the reminder fires only once
func MarkHearingReminded(id string) error {
	_, err := Run("UPDATE hearings SET reminded = 1, updated_at = ? WHERE id = ?", NowMs(), id)
	return err
}

// GetHearing returns a hearing by id, nil if not found
func GetHearing(id string) (*Hearing, error) {
	return SelectOne(
		"SELECT "+hearingColumns+" FROM hearings WHERE id = ?",
		[]QueryParam{id}, scanHearingRow,
	)
}

// CreateHearing schedules a hearing for a matter
func CreateHearing(matterID string, scheduledAt int64, purpose string, courtroom, judge *string) (*Hearing, error) {
	exists, err := Exists("SELECT 1 FROM matters WHERE id = ?", matterID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("matter not found: %s", matterID)
	}

	now := NowMs()
	h := Hearing{
		ID:          uuid.New().String(),
		MatterID:    matterID,
		ScheduledAt: scheduledAt,
		Purpose:     purpose,
		Courtroom:   courtroom,
		Judge:       judge,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = Run(`
		INSERT INTO hearings (id, matter_id, scheduled_at, purpose, courtroom, judge, reminded, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)
	`, h.ID, h.MatterID, h.ScheduledAt, h.Purpose, NullString(h.Courtroom), NullString(h.Judge), h.CreatedAt, h.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &h, nil
}

// UpdateHearing updates a hearing. Rescheduling resets the reminded flag so
// the new time gets its own reminder.
func UpdateHearing(id string, scheduledAt int64, purpose string, courtroom, judge, outcome *string) (*Hearing, error) {
	existing, err := GetHearing(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("hearing not found: %s", id)
	}

	reminded := existing.Reminded
	if scheduledAt != existing.ScheduledAt {
		reminded = false
	}

	_, err = Run(`
		UPDATE hearings
		SET scheduled_at = ?, purpose = ?, courtroom = ?, judge = ?, outcome = ?, reminded = ?, updated_at = ?
		WHERE id = ?
	`, scheduledAt, purpose, NullString(courtroom), NullString(judge), NullString(outcome), reminded, NowMs(), id)
	if err != nil {
		return nil, err
	}

	return GetHearing(id)
}

// DeleteHearing removes a hearing
func DeleteHearing(id string) error {
	result, err := Run("DELETE FROM hearings WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("hearing not found: %s", id)
	}
	return nil
}

// CountUpcomingHearings returns the number of hearings scheduled at or after the given time
func CountUpcomingHearings(fromMs int64) (int64, error) {
	return Count("SELECT COUNT(*) FROM hearings WHERE scheduled_at >= ?", fromMs)
}
