package models

import (
	"time"

	"github.com/google/uuid"
)

// Job represents a job offer published by a recruiter
type Job struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Company     string    `json:"company" db:"company"`
	Location    string    `json:"location" db:"location"`
	Skills      []string  `json:"skills" db:"skills"`
	RecruiterID string    `json:"recruiter_id" db:"recruiter_id"`
	// RecruiterName is denormalised onto applications when set
	RecruiterName string    `json:"recruiter_name,omitempty" db:"recruiter_name"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Job model
func (Job) TableName() string {
	return "jobs"
}

// NewJob creates a new Job owned by recruiterID
func NewJob(recruiterID, title, description, company, location string, skills []string) *Job {
	now := time.Now().UTC()
	if skills == nil {
		skills = []string{}
	}
	return &Job{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Company:     company,
		Location:    location,
		Skills:      skills,
		RecruiterID: recruiterID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// JobUpdate carries the optional fields of a partial job update
type JobUpdate struct {
	Title       *string
	Description *string
	Company     *string
	Location    *string
	Skills      *[]string
}

// IsEmpty reports whether the update changes nothing
func (u JobUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Company == nil && u.Location == nil && u.Skills == nil
}

// Apply copies the set fields of u onto j
func (j *Job) Apply(u JobUpdate) {
	if u.Title != nil {
		j.Title = *u.Title
	}
	if u.Description != nil {
		j.Description = *u.Description
	}
	if u.Company != nil {
		j.Company = *u.Company
	}
	if u.Location != nil {
		j.Location = *u.Location
	}
	if u.Skills != nil {
		j.Skills = *u.Skills
	}
	j.UpdatedAt = time.Now().UTC()
}
