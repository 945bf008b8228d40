package http

import "github.com/dkeye/Homeboard/internal/domain"

type loginRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type createRoomRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type createSectionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	RoomID      string `json:"roomId" binding:"required"`
}

type createMissionRequest struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	SectionID        string `json:"sectionId" binding:"required"`
	AssignedToUserID string `json:"assignedToUserId" binding:"required"`
	Priority         string `json:"priority" binding:"required"`
	DueDate          string `json:"dueDate"`
}

// updateMissionRequest is a partial update; absent fields keep their
// stored value, which is why everything is a pointer.
type updateMissionRequest struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	SectionID        *string `json:"sectionId"`
	AssignedToUserID *string `json:"assignedToUserId"`
	Status           *string `json:"status"`
	Priority         *string `json:"priority"`
	DueDate          *string `json:"dueDate"`
}
