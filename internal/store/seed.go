package store

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dkeye/Homeboard/internal/domain"
)

// Seed fills an empty store with the default household fixture: two users
// (one admin), three rooms, three sections and two open missions. Password
// hashing happens here so plaintext secrets never reach a repository.
func Seed(ctx context.Context, s Store) error {
	users := []struct {
		name     string
		role     domain.Role
		password string
	}{
		{"Mom", domain.RoleAdmin, "admin123"},
		{"Family Member", domain.RoleMember, "member123"},
	}
	var userIDs []domain.UserID
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed: hash password: %w", err)
		}
		created, err := s.CreateUser(ctx, domain.User{Name: u.name, Role: u.role, PasswordHash: string(hash)})
		if err != nil {
			return fmt.Errorf("seed: create user %q: %w", u.name, err)
		}
		userIDs = append(userIDs, created.ID)
	}

	var roomIDs []domain.RoomID
	for _, name := range []string{"Kitchen", "Living Room", "Bathroom"} {
		created, err := s.CreateRoom(ctx, domain.Room{Name: name})
		if err != nil {
			return fmt.Errorf("seed: create room %q: %w", name, err)
		}
		roomIDs = append(roomIDs, created.ID)
	}

	sections := []struct {
		name string
		room domain.RoomID
	}{
		{"Counters", roomIDs[0]},
		{"Appliances", roomIDs[0]},
		{"Seating Area", roomIDs[1]},
	}
	var sectionIDs []domain.SectionID
	for _, sec := range sections {
		created, err := s.CreateSection(ctx, domain.Section{Name: sec.name, RoomID: sec.room})
		if err != nil {
			return fmt.Errorf("seed: create section %q: %w", sec.name, err)
		}
		sectionIDs = append(sectionIDs, created.ID)
	}

	missions := []domain.Mission{
		{
			Title:            "Clean the kitchen counters",
			SectionID:        sectionIDs[0],
			AssignedToUserID: userIDs[1],
			Status:           domain.StatusPending,
			Priority:         domain.PriorityHigh,
		},
		{
			Title:            "Vacuum the living room",
			SectionID:        sectionIDs[2],
			AssignedToUserID: userIDs[1],
			Status:           domain.StatusInProgress,
			Priority:         domain.PriorityMedium,
		},
	}
	for _, mi := range missions {
		if _, err := s.CreateMission(ctx, mi); err != nil {
			return fmt.Errorf("seed: create mission %q: %w", mi.Title, err)
		}
	}
	return nil
}
