package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationType identifies what a notification is about
type NotificationType string

const (
	NotificationNewApplication NotificationType = "NEW_APPLICATION"
	NotificationNewJob         NotificationType = "NEW_JOB"
)

// Notification is a message addressed to one user
type Notification struct {
	ID            uuid.UUID        `json:"id"`
	UserID        string           `json:"userId"`
	Type          NotificationType `json:"type"`
	JobID         *uuid.UUID       `json:"jobId,omitempty"`
	JobTitle      string           `json:"jobTitle,omitempty"`
	Company       string           `json:"company,omitempty"`
	ApplicationID *uuid.UUID       `json:"applicationId,omitempty"`
	CandidateName string           `json:"candidateName,omitempty"`
	Message       string           `json:"message"`
	Read          bool             `json:"read"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// TableName returns the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

// NewApplicationNotification tells the recruiter of app's job about a new application
func NewApplicationNotification(app *Application) *Notification {
	jobID := app.Job.ID
	appID := app.ID
	return &Notification{
		ID:            uuid.New(),
		UserID:        app.Job.RecruiterID,
		Type:          NotificationNewApplication,
		JobID:         &jobID,
		JobTitle:      app.Job.Title,
		ApplicationID: &appID,
		CandidateName: app.Candidate.Name,
		Message:       fmt.Sprintf("Nouvelle candidature pour %s", app.Job.Title),
		CreatedAt:     time.Now().UTC(),
	}
}

// NewJobNotification tells a candidate about a newly published job
func NewJobNotification(userID string, jobID uuid.UUID, jobTitle, company string) *Notification {
	return &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      NotificationNewJob,
		JobID:     &jobID,
		JobTitle:  jobTitle,
		Company:   company,
		Message:   fmt.Sprintf("Une nouvelle offre d'emploi '%s' chez %s pourrait vous intéresser.", jobTitle, company),
		CreatedAt: time.Now().UTC(),
	}
}
