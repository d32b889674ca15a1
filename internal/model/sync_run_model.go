package model

import (
	"time"

	"github.com/google/uuid"
)

type SyncRun struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Status           string    `gorm:"type:varchar(50)" json:"status"` // e.g. "running", "completed", "failed", "partial"
	PersonID         int64     `json:"person_id"`
	PersonAction     string    `gorm:"type:varchar(50)" json:"person_action"` // "created" or "updated"
	DocumentsCreated int       `json:"documents_created"`
	DocumentsUpdated int       `json:"documents_updated"`
	Error            string    `gorm:"type:text" json:"error"`
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SyncResult is the in-memory outcome of a single run.
type SyncResult struct {
	PersonID         int64
	PersonAction     string
	DocumentsCreated int
	DocumentsUpdated int
	DocumentsFailed  int
}
