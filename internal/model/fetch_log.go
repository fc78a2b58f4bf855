package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FetchLog records one upstream provider call
type FetchLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	Provider   string    `gorm:"size:32;not null" json:"provider"`
	Category   string    `gorm:"size:16" json:"category,omitempty"`
	Diet       string    `gorm:"size:32" json:"diet,omitempty"`
	Query      string    `gorm:"size:255" json:"query,omitempty"`
	Status     string    `gorm:"size:16;not null" json:"status"`
	ErrorType  string    `gorm:"size:32" json:"error_type,omitempty"`
	Error      string    `gorm:"type:text" json:"error,omitempty"`
	Candidates int       `json:"candidates"`
	DurationMS int64     `json:"duration_ms"`
}

// BeforeCreate assigns the primary key
func (f *FetchLog) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Fetch log statuses
const (
	FetchOK     = "ok"
	FetchEmpty  = "empty"
	FetchFailed = "failed"
)
