package domain

import (
	"errors"
	"time"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrSectionNotFound = errors.New("section not found")
)

type (
	RoomID    string
	SectionID string
)

type Room struct {
	ID          RoomID    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Section belongs to exactly one Room. The room reference must name an
// existing Room at creation time; the store never creates orphans.
type Section struct {
	ID          SectionID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	RoomID      RoomID    `json:"roomId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
