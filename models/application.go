package models

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus represents the review state of an application
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is a known status
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// ApplicationJob is the job snapshot stored on an application
type ApplicationJob struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	RecruiterID   string    `json:"recruiter_id"`
	RecruiterName string    `json:"recruiter_name"`
	Company       string    `json:"company"`
}

// ApplicationCandidate identifies the applying candidate
type ApplicationCandidate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Application represents a candidate's application to a job
type Application struct {
	ID         uuid.UUID            `json:"id"`
	Job        ApplicationJob       `json:"job"`
	Candidate  ApplicationCandidate `json:"candidate"`
	CVURL      string               `json:"cv_url"`
	Status     ApplicationStatus    `json:"status"`
	MatchScore float64              `json:"match_score"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  *time.Time           `json:"updated_at,omitempty"`
}

// TableName returns the table name for the Application model
func (Application) TableName() string {
	return "applications"
}

// NewApplication creates a pending application of candidate to job
func NewApplication(job *Job, jobTitle string, candidate ApplicationCandidate, cvURL string, matchScore float64) *Application {
	return &Application{
		ID: uuid.New(),
		Job: ApplicationJob{
			ID:            job.ID,
			Title:         jobTitle,
			RecruiterID:   job.RecruiterID,
			RecruiterName: job.RecruiterName,
			Company:       job.Company,
		},
		Candidate:  candidate,
		CVURL:      cvURL,
		Status:     ApplicationPending,
		MatchScore: matchScore,
		CreatedAt:  time.Now().UTC(),
	}
}
