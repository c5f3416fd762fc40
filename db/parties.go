package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

func scanPartyRows(rows *sql.Rows) (Party, error) {
	var p Party
	var contact sql.NullString
	err := rows.Scan(&p.ID, &p.MatterID, &p.Name, &p.Role, &contact, &p.CreatedAt, &p.UpdatedAt)
	p.Contact = StringPtr(contact)
	return p, err
}

func scanPartyRow(row *sql.Row) (Party, error) {
	var p Party
	var contact sql.NullString
	err := row.Scan(&p.ID, &p.MatterID, &p.Name, &p.Role, &contact, &p.CreatedAt, &p.UpdatedAt)
	p.Contact = StringPtr(contact)
	return p, err
}

const partyColumns = "id, matter_id, name, role, contact, created_at, updated_at"

// GetParty returns a party by id, nil if not found
func GetParty(id string) (*Party, error) {
	return SelectOne(
		"SELECT "+partyColumns+" FROM parties WHERE id = ?",
		[]QueryParam{id}, scanPartyRow,
	)
}

// ListParties returns all parties for a matter
func ListParties(matterID string) ([]Party, error) {
	return Select(
		"SELECT "+partyColumns+" FROM parties WHERE matter_id = ? ORDER BY created_at ASC",
		[]QueryParam{matterID}, scanPartyRows,
	)
}

// CreateParty attaches a party to a matter
func CreateParty(matterID, name, role string, contact *string) (*Party, error) {
	exists, err := Exists("SELECT 1 FROM matters WHERE id = ?", matterID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("matter not found: %s", matterID)
	}

	now := NowMs()
	p := Party{
		ID:        uuid.New().String(),
		MatterID:  matterID,
		Name:      name,
		Role:      role,
		Contact:   contact,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = Run(`
		INSERT INTO parties (id, matter_id, name, role, contact, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.MatterID, p.Name, p.Role, NullString(p.Contact), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// UpdateParty updates a party's details
func UpdateParty(id, name, role string, contact *string) (*Party, error) {
	result, err := Run(`
		UPDATE parties SET name = ?, role = ?, contact = ?, updated_at = ? WHERE id = ?
	`, name, role, NullString(contact), NowMs(), id)
	if err != nil {
		return nil, err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return nil, fmt.Errorf("party not found: %s", id)
	}

	return SelectOne(
		"SELECT "+partyColumns+" FROM parties WHERE id = ?",
		[]QueryParam{id}, scanPartyRow,
	)
}

// DeleteParty removes a party
func DeleteParty(id string) error {
	result, err := Run("DELETE FROM parties WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("party not found: %s", id)
	}
	return nil
}
