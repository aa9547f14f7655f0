package models

import (
	"time"

	"github.com/google/uuid"
)

// CV is the metadata of an uploaded curriculum file
type CV struct {
	ID               uuid.UUID `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	SavedFilename    string    `json:"saved_filename"`
	UploadTime       time.Time `json:"upload_time"`
	UserID           string    `json:"user_id"`
}

// TableName returns the table name for the CV model
func (CV) TableName() string {
	return "cvs"
}

// NewCV records an upload stored under savedFilename
func NewCV(originalFilename, savedFilename, userID string) *CV {
	return &CV{
		ID:               uuid.New(),
		OriginalFilename: originalFilename,
		SavedFilename:    savedFilename,
		UploadTime:       time.Now().UTC(),
		UserID:           userID,
	}
}
