package db

import (
	"database/sql"
	"time"
)

// Matter statuses
const (
	MatterStatusActive = "active"
	MatterStatusOnHold = "on-hold"
	MatterStatusClosed = "closed"
)

// Party roles
const (
	PartyRolePetitioner = "petitioner"
	PartyRoleRespondent = "respondent"
	PartyRoleWitness    = "witness"
	PartyRoleAdvocate   = "advocate"
)

// Analysis statuses
const (
	AnalysisStatusTodo    = "todo"
	AnalysisStatusRunning = "running"
	AnalysisStatusDone    = "done"
	AnalysisStatusFailed  = "failed"
)

// Matter represents a legal matter (case) record
type Matter struct {
	ID         string  `json:"id"`
	CNR        *string `json:"cnr,omitempty"` // eCourts Case Number Record
	Title      string  `json:"title"`
	ClientName string  `json:"clientName"`
	MatterType string  `json:"matterType"`
	Court      string  `json:"court"`
	Status     string  `json:"status"`
	CreatedAt  int64   `json:"createdAt"`
	UpdatedAt  int64   `json:"updatedAt"`
}

// Party represents a party attached to a matter
type Party struct {
	ID        string  `json:"id"`
	MatterID  string  `json:"matterId"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	Contact   *string `json:"contact,omitempty"`
	CreatedAt int64   `json:"createdAt"`
	UpdatedAt int64   `json:"updatedAt"`
}

// Hearing represents a scheduled court hearing for a matter
type Hearing struct {
	ID          string  `json:"id"`
	MatterID    string  `json:"matterId"`
	ScheduledAt int64   `json:"scheduledAt"` // epoch ms
	Purpose     string  `json:"purpose"`
	Courtroom   *string `json:"courtroom,omitempty"`
	Judge       *string `json:"judge,omitempty"`
	Outcome     *string `json:"outcome,omitempty"`
	Reminded    bool    `json:"reminded"`
	CreatedAt   int64   `json:"createdAt"`
	UpdatedAt   int64   `json:"updatedAt"`
}

// Analysis represents an AI document-analysis job and its result
type Analysis struct {
	ID           string  `json:"id"`
	MatterID     *string `json:"matterId,omitempty"`
	Title        string  `json:"title"`
	DocumentText string  `json:"-"` // not echoed back in list responses
	Status       string  `json:"status"`
	Summary      *string `json:"summary,omitempty"`
	Risks        *string `json:"risks,omitempty"` // JSON array
	Tags         *string `json:"tags,omitempty"`  // JSON array
	Error        *string `json:"error,omitempty"`
	Attempts     int     `json:"attempts"`
	CreatedAt    int64   `json:"createdAt"`
	UpdatedAt    int64   `json:"updatedAt"`
}

// Setting represents a settings record
type Setting struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
}

// NowMs returns the current time as Unix milliseconds (int64)
func NowMs() int64 {
	return time.Now().UnixMilli()
}

// NullString converts *string to sql.NullString
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// StringPtr converts sql.NullString to *string
func StringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
