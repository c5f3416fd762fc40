package db

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	code := m.Run()
	Close()
	os.RemoveAll("./data")
	os.Exit(code)
}

func TestGetParty(t *testing.T) {
	matter, err := CreateMatter(nil, "Sharma v. State", "R. Sharma", "civil", "Delhi HC")
	require.NoError(t, err)

	contact := "sharma@example.com"
	created, err := CreateParty(matter.ID, "R. Sharma", PartyRolePetitioner, &contact)
	require.NoError(t, err)

	got, err := GetParty(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, matter.ID, got.MatterID)
	assert.Equal(t, "R. Sharma", got.Name)
	assert.Equal(t, PartyRolePetitioner, got.Role)
	require.NotNil(t, got.Contact)
	assert.Equal(t, contact, *got.Contact)
}

func TestGetPartyNotFound(t *testing.T) {
	got, err := GetParty("no-such-party")
	require.NoError(t, err)
	assert.Nil(t, got)
}
