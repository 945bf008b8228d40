// Package app holds the use-case layer: validation beyond request shape,
// the cascade rules and the update-merge rules. Handlers translate HTTP to
// these calls; stores only move records.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Homeboard/internal/domain"
	"github.com/dkeye/Homeboard/internal/store"
)

var ErrInvalidDueDate = errors.New("invalid due date")

// Service exposes the room/section/mission operations.
type Service struct {
	store store.Store
	now   func() time.Time
}

func NewService(s store.Store) *Service {
	return &Service{store: s, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) Rooms(ctx context.Context) ([]domain.Room, error) {
	return s.store.ListRooms(ctx)
}

func (s *Service) CreateRoom(ctx context.Context, name, description string) (domain.Room, error) {
	room, err := s.store.CreateRoom(ctx, domain.Room{Name: name, Description: description})
	if err != nil {
		return domain.Room{}, err
	}
	log.Info().Str("module", "app.service").Str("room", string(room.ID)).Msg("room created")
	return room, nil
}

func (s *Service) DeleteRoom(ctx context.Context, id domain.RoomID) error {
	if err := s.store.DeleteRoom(ctx, id); err != nil {
		return err
	}
	log.Info().Str("module", "app.service").Str("room", string(id)).Msg("room deleted with cascade")
	return nil
}

func (s *Service) Sections(ctx context.Context, roomID domain.RoomID) ([]domain.Section, error) {
	return s.store.ListSectionsByRoom(ctx, roomID)
}

func (s *Service) CreateSection(ctx context.Context, name, description string, roomID domain.RoomID) (domain.Section, error) {
	section, err := s.store.CreateSection(ctx, domain.Section{Name: name, Description: description, RoomID: roomID})
	if err != nil {
		return domain.Section{}, err
	}
	log.Info().Str("module", "app.service").Str("section", string(section.ID)).Str("room", string(roomID)).Msg("section created")
	return section, nil
}

func (s *Service) DeleteSection(ctx context.Context, id domain.SectionID) error {
	if err := s.store.DeleteSection(ctx, id); err != nil {
		return err
	}
	log.Info().Str("module", "app.service").Str("section", string(id)).Msg("section deleted with cascade")
	return nil
}

// Missions returns every mission, or only those assigned to userID when it
// is non-empty. Insertion order is preserved either way.
func (s *Service) Missions(ctx context.Context, userID domain.UserID) ([]domain.Mission, error) {
	if userID != "" {
		return s.store.ListMissionsByAssignee(ctx, userID)
	}
	return s.store.ListMissions(ctx)
}

type CreateMission struct {
	Title            string
	Description      string
	SectionID        domain.SectionID
	AssignedToUserID domain.UserID
	Priority         domain.Priority
	DueDate          string
}

// CreateMission stores a new mission in the pending state.
func (s *Service) CreateMission(ctx context.Context, in CreateMission) (domain.Mission, error) {
	if !in.Priority.Valid() {
		return domain.Mission{}, domain.ErrInvalidPriority
	}
	mi := domain.Mission{
		Title:            in.Title,
		Description:      in.Description,
		SectionID:        in.SectionID,
		AssignedToUserID: in.AssignedToUserID,
		Status:           domain.StatusPending,
		Priority:         in.Priority,
	}
	if in.DueDate != "" {
		due, err := parseDueDate(in.DueDate)
		if err != nil {
			return domain.Mission{}, err
		}
		mi.DueDate = &due
	}
	created, err := s.store.CreateMission(ctx, mi)
	if err != nil {
		return domain.Mission{}, err
	}
	log.Info().Str("module", "app.service").Str("mission", string(created.ID)).Str("assignee", string(created.AssignedToUserID)).Msg("mission created")
	return created, nil
}

// MissionPatch carries a partial update; nil fields keep their current
// value.
type MissionPatch struct {
	Title            *string
	Description      *string
	SectionID        *domain.SectionID
	AssignedToUserID *domain.UserID
	Status           *domain.Status
	Priority         *domain.Priority
	DueDate          *string
}

// UpdateMission shallow-merges the patch into the stored mission. The first
// transition into the completed status stamps CompletedAt; the stamp is
// never cleared afterwards.
func (s *Service) UpdateMission(ctx context.Context, id domain.MissionID, patch MissionPatch) (domain.Mission, error) {
	mi, err := s.store.GetMission(ctx, id)
	if err != nil {
		return domain.Mission{}, err
	}
	wasCompleted := mi.Status == domain.StatusCompleted

	if patch.Title != nil {
		mi.Title = *patch.Title
	}
	if patch.Description != nil {
		mi.Description = *patch.Description
	}
	if patch.SectionID != nil {
		mi.SectionID = *patch.SectionID
	}
	if patch.AssignedToUserID != nil {
		mi.AssignedToUserID = *patch.AssignedToUserID
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return domain.Mission{}, domain.ErrInvalidStatus
		}
		mi.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return domain.Mission{}, domain.ErrInvalidPriority
		}
		mi.Priority = *patch.Priority
	}
	if patch.DueDate != nil && *patch.DueDate != "" {
		due, err := parseDueDate(*patch.DueDate)
		if err != nil {
			return domain.Mission{}, err
		}
		mi.DueDate = &due
	}
	if mi.Status == domain.StatusCompleted && !wasCompleted {
		completed := s.now()
		mi.CompletedAt = &completed
	}

	updated, err := s.store.UpdateMission(ctx, mi)
	if err != nil {
		return domain.Mission{}, err
	}
	log.Info().Str("module", "app.service").Str("mission", string(id)).Str("status", string(updated.Status)).Msg("mission updated")
	return updated, nil
}

func (s *Service) DeleteMission(ctx context.Context, id domain.MissionID) error {
	if err := s.store.DeleteMission(ctx, id); err != nil {
		return err
	}
	log.Info().Str("module", "app.service").Str("mission", string(id)).Msg("mission deleted")
	return nil
}

func parseDueDate(v string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDueDate
}
