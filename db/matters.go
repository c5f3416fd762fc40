package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

func scanMatterRows(rows *sql.Rows) (Matter, error) {
	var m Matter
	var cnr sql.NullString
	err := rows.Scan(
		&m.ID, &cnr, &m.Title, &m.ClientName, &m.MatterType,
		&m.Court, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	m.CNR = StringPtr(cnr)
	return m, err
}

func scanMatterRow(row *sql.Row) (Matter, error) {
	var m Matter
	var cnr sql.NullString
	err := row.Scan(
		&m.ID, &cnr, &m.Title, &m.ClientName, &m.MatterType,
		&m.Court, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	m.CNR = StringPtr(cnr)
	return m, err
}

const matterColumns = "id, cnr, title, client_name, matter_type, court, status, created_at, updated_at"

// ListMatters returns matters, optionally filtered by status, newest first
func ListMatters(status string) ([]Matter, error) {
	if status != "" {
		return Select(
			"SELECT "+matterColumns+" FROM matters WHERE status = ? ORDER BY updated_at DESC",
			[]QueryParam{status}, scanMatterRows,
		)
	}
	return Select(
		"SELECT "+matterColumns+" FROM matters ORDER BY updated_at DESC",
		nil, scanMatterRows,
	)
}

// GetMatter returns a matter by id, nil if not found
func GetMatter(id string) (*Matter, error) {
	return SelectOne(
		"SELECT "+matterColumns+" FROM matters WHERE id = ?",
		[]QueryParam{id}, scanMatterRow,
	)
}

// CreateMatter inserts a new matter and returns it
func CreateMatter(cnr *string, title, clientName, matterType, court string) (*Matter, error) {
	now := NowMs()
	m := Matter{
		ID:         uuid.New().String(),
		CNR:        cnr,
		Title:      title,
		ClientName: clientName,
		MatterType: matterType,
		Court:      court,
		Status:     MatterStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := Run(`
		INSERT INTO matters (id, cnr, title, client_name, matter_type, court, status, search_dirty, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
	`, m.ID, NullString(m.CNR), m.Title, m.ClientName, m.MatterType, m.Court, m.Status, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// UpdateMatter updates mutable fields of a matter and returns the updated record
func UpdateMatter(id string, cnr *string, title, clientName, matterType, court, status string) (*Matter, error) {
	result, err := Run(`
		UPDATE matters
		SET cnr = ?, title = ?, client_name = ?, matter_type = ?, court = ?, status = ?,
		    search_dirty = 1, updated_at = ?
		WHERE id = ?
	`, NullString(cnr), title, clientName, matterType, court, status, NowMs(), id)
	if err != nil {
		return nil, err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return nil, fmt.Errorf("matter not found: %s", id)
	}

	return GetMatter(id)
}

// DeleteMatter removes a matter (parties and hearings cascade)
func DeleteMatter(id string) error {
	result, err := Run("DELETE FROM matters WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("matter not found: %s", id)
	}
	return nil
}

// DirtyMatters returns matters pending search-index sync
func DirtyMatters(limit int) ([]Matter, error) {
	return Select(
		"SELECT "+matterColumns+" FROM matters WHERE search_dirty = 1 ORDER BY updated_at ASC LIMIT ?",
		[]QueryParam{limit}, scanMatterRows,
	)
}

// MarkMattersSynced clears the search-dirty flag after a successful index push
func MarkMattersSynced(ids []string) error {
	for _, id := range ids {
		if _, err := Run("UPDATE matters SET search_dirty = 0 WHERE id = ?", id); err != nil {
			return err
		}
	}
	return nil
}

// CountMattersByStatus returns matter counts grouped by status
func CountMattersByStatus() (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	rows, err := Select(
		"SELECT status, COUNT(*) FROM matters GROUP BY status",
		nil,
		func(rows *sql.Rows) (statusCount, error) {
			var sc statusCount
			err := rows.Scan(&sc.Status, &sc.Count)
			return sc, err
		},
	)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, sc := range rows {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}
