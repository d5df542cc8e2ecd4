package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileStatus represents the lifecycle status of an archived case file.
type FileStatus string

const (
	FileStatusArchived  FileStatus = "archived"
	FileStatusRetrieved FileStatus = "retrieved"
	FileStatusDestroyed FileStatus = "destroyed"
)

// Valid reports whether s is a known file status.
func (s FileStatus) Valid() bool {
	switch s {
	case FileStatusArchived, FileStatusRetrieved, FileStatusDestroyed:
		return true
	}
	return false
}

// Well-known locations that drive status changes when a file moves there.
const (
	LocationArchives = "Archives"
	LocationRegistry = "Registry"
)

// CaseCodes lists the accepted case code prefixes.
var CaseCodes = []string{"CR", "TR", "SO", "CC", "MCCHCC"}

// File represents one archived case folder. Only metadata is tracked.
type File struct {
	ID              uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Date            string     `json:"date" gorm:"size:10;not null"`
	PartyName       string     `json:"partyName" gorm:"size:255;not null;index"`
	CaseCode        string     `json:"caseCode" gorm:"size:10;not null;uniqueIndex:idx_files_case_identifier,priority:1"`
	CaseNumber      string     `json:"caseNumber" gorm:"size:50;not null;uniqueIndex:idx_files_case_identifier,priority:2"`
	CaseYear        string     `json:"caseYear" gorm:"size:4;not null;uniqueIndex:idx_files_case_identifier,priority:3"`
	LastActivity    string     `json:"lastActivity" gorm:"size:10;not null"`
	Status          FileStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	ComingFrom      string     `json:"comingFrom" gorm:"size:255;not null"`
	Destination     string     `json:"destination" gorm:"size:255;not null"`
	Reason          string     `json:"reason" gorm:"type:text;not null"`
	StorageLocation string     `json:"storageLocation" gorm:"size:255"`
	CurrentLocation string     `json:"currentLocation" gorm:"size:255"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// SameCase reports whether f carries the given case identifier.
func (f *File) SameCase(caseCode, caseNumber, caseYear string) bool {
	return f.CaseCode == caseCode && f.CaseNumber == caseNumber && f.CaseYear == caseYear
}
