package db

import (
	"database/sql"

	"github.com/lawmasters-app/lawmasters/appstate"
)

// AppStatePersister stores the persisted subset of session state as a
// single settings row keyed by the app-store storage key. It implements
// appstate.Persister.
type AppStatePersister struct{}

// NewAppStatePersister returns a persister backed by the settings table
func NewAppStatePersister() *AppStatePersister {
	return &AppStatePersister{}
}

// Load reads the stored payload, nil if nothing has been stored yet
func (AppStatePersister) Load() ([]byte, error) {
	var value string
	err := GetDB().QueryRow(
		"SELECT value FROM settings WHERE key = ?", appstate.StorageKey,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// Save upserts the payload under the app-store key (last-write-wins)
func (AppStatePersister) Save(data []byte) error {
	return SetSetting(appstate.StorageKey, string(data))
}
