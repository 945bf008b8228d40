package domain

import (
	"errors"
	"time"
)

var (
	ErrMissionNotFound = errors.New("mission not found")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")
)

type MissionID string

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Mission is a single assignable unit of work inside a Section.
// CompletedAt is latched on the first transition into StatusCompleted and
// is never cleared afterwards, even if the status moves away again.
type Mission struct {
	ID               MissionID  `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	SectionID        SectionID  `json:"sectionId"`
	AssignedToUserID UserID     `json:"assignedToUserId"`
	Status           Status     `json:"status"`
	Priority         Priority   `json:"priority"`
	DueDate          *time.Time `json:"dueDate,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
