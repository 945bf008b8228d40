package http

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Homeboard/internal/app"
	"github.com/dkeye/Homeboard/internal/domain"
)

// Handlers binds the use-case layer to gin. Every handler converts errors
// to the `{error: string}` body at its own boundary; nothing propagates.
type Handlers struct {
	svc  *app.Service
	auth *app.Auth
}

func NewHandlers(svc *app.Service, auth *app.Auth) *Handlers {
	return &Handlers{svc: svc, auth: auth}
}

// writeError applies the default taxonomy: unknown id → 404, bad input →
// 400, bad credentials → 401, everything else → opaque 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
	case errors.Is(err, domain.ErrSectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
	case errors.Is(err, domain.ErrMissionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Mission not found"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, domain.ErrDuplicateUserName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User with this name already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, domain.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
	case errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
	case errors.Is(err, domain.ErrInvalidPriority):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
	case errors.Is(err, app.ErrInvalidDueDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date"})
	case errors.Is(err, domain.ErrNameEmpty), errors.Is(err, domain.ErrNameTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Str("module", "adapters.http").Err(err).Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *Handlers) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func (h *Handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and password are required"})
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), domain.UserID(req.UserID), req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	session := sessions.Default(c)
	session.Set("user_id", string(user.ID))
	if err := session.Save(); err != nil {
		log.Error().Str("module", "adapters.http").Err(err).Msg("session save failed")
	}
	c.JSON(http.StatusOK, loginResponse{User: user, Token: token})
}

func (h *Handlers) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Error().Str("module", "adapters.http").Err(err).Msg("session save failed")
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) listUsers(c *gin.Context) {
	users, err := h.auth.Users(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handlers) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}
	role := domain.Role(req.Role)
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}
	user, err := h.auth.CreateUser(c.Request.Context(), req.Name, req.Password, role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handlers) deleteUser(c *gin.Context) {
	if err := h.auth.DeleteUser(c.Request.Context(), domain.UserID(c.Param("userId"))); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) listRooms(c *gin.Context) {
	rooms, err := h.svc.Rooms(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if rooms == nil {
		rooms = []domain.Room{}
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *Handlers) createRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room name is required"})
		return
	}
	room, err := h.svc.CreateRoom(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *Handlers) deleteRoom(c *gin.Context) {
	if err := h.svc.DeleteRoom(c.Request.Context(), domain.RoomID(c.Param("roomId"))); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) listSections(c *gin.Context) {
	sections, err := h.svc.Sections(c.Request.Context(), domain.RoomID(c.Param("roomId")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sections)
}

func (h *Handlers) createSection(c *gin.Context) {
	var req createSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Section name and room ID are required"})
		return
	}
	section, err := h.svc.CreateSection(c.Request.Context(), req.Name, req.Description, domain.RoomID(req.RoomID))
	if err != nil {
		// Referencing an unknown room is a client mistake on create, not a
		// missing resource.
		if errors.Is(err, domain.ErrRoomNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Room not found"})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, section)
}

func (h *Handlers) deleteSection(c *gin.Context) {
	if err := h.svc.DeleteSection(c.Request.Context(), domain.SectionID(c.Param("sectionId"))); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) listMissions(c *gin.Context) {
	missions, err := h.svc.Missions(c.Request.Context(), domain.UserID(c.Query("userId")))
	if err != nil {
		writeError(c, err)
		return
	}
	if missions == nil {
		missions = []domain.Mission{}
	}
	c.JSON(http.StatusOK, missions)
}

func (h *Handlers) createMission(c *gin.Context) {
	var req createMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, section ID, assigned user ID, and priority are required"})
		return
	}
	mission, err := h.svc.CreateMission(c.Request.Context(), app.CreateMission{
		Title:            req.Title,
		Description:      req.Description,
		SectionID:        domain.SectionID(req.SectionID),
		AssignedToUserID: domain.UserID(req.AssignedToUserID),
		Priority:         domain.Priority(req.Priority),
		DueDate:          req.DueDate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSectionNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Section not found"})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mission)
}

func (h *Handlers) updateMission(c *gin.Context) {
	var req updateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	patch := app.MissionPatch{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.SectionID != nil {
		id := domain.SectionID(*req.SectionID)
		patch.SectionID = &id
	}
	if req.AssignedToUserID != nil {
		id := domain.UserID(*req.AssignedToUserID)
		patch.AssignedToUserID = &id
	}
	if req.Status != nil {
		s := domain.Status(*req.Status)
		patch.Status = &s
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		patch.Priority = &p
	}
	mission, err := h.svc.UpdateMission(c.Request.Context(), domain.MissionID(c.Param("missionId")), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mission)
}

func (h *Handlers) deleteMission(c *gin.Context) {
	if err := h.svc.DeleteMission(c.Request.Context(), domain.MissionID(c.Param("missionId"))); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
