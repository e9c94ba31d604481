package models

import "time"

const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
)

func ValidProjectStatus(status string) bool {
	return status == ProjectStatusActive || status == ProjectStatusCompleted
}

type Project struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectUpdate lists the fields a caller may change. Nil means unchanged.
type ProjectUpdate struct {
	Title       *string
	Description *string
	Status      *string
}

func (u ProjectUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil
}

func (u ProjectUpdate) Apply(p *Project) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
}
