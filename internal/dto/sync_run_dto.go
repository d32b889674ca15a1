package dto

import (
	"time"

	"github.com/google/uuid"
)

type SyncRunDTO struct {
	ID               uuid.UUID `json:"id"`
	Status           string    `json:"status"` // e.g. "running", "completed", "failed", "partial"
	PersonID         int64     `json:"person_id"`
	PersonAction     string    `json:"person_action"`
	DocumentsCreated int       `json:"documents_created"`
	DocumentsUpdated int       `json:"documents_updated"`
	Error            string    `json:"error,omitempty"`
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
}
