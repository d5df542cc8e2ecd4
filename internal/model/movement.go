package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovementAction represents what happened to a file.
type MovementAction string

const (
	MovementActionRegistered MovementAction = "registered"
	MovementActionMoved      MovementAction = "moved"
	MovementActionRetrieved  MovementAction = "retrieved"
	MovementActionDestroyed  MovementAction = "destroyed"
)

// Valid reports whether a is a known movement action.
func (a MovementAction) Valid() bool {
	switch a {
	case MovementActionRegistered, MovementActionMoved, MovementActionRetrieved, MovementActionDestroyed:
		return true
	}
	return false
}

// Movement is an immutable log entry narrating a state or location change of a file.
type Movement struct {
	ID          uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	FileID      uuid.UUID      `json:"file" gorm:"column:file_id;type:char(36);not null;index"`
	Action      MovementAction `json:"action" gorm:"type:varchar(20);not null;index"`
	Details     string         `json:"details" gorm:"type:text"`
	Destination string         `json:"destination,omitempty" gorm:"size:255"`
	Timestamp   time.Time      `json:"timestamp" gorm:"type:datetime(6);not null;index"`

	// Relations
	File *File `json:"fileInfo,omitempty" gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID and timestamp before creating the record.
func (m *Movement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	return nil
}
