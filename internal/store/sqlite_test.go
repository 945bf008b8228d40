package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dkeye/Homeboard/internal/domain"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	room, err := s.CreateRoom(ctx, domain.Room{Name: "Kitchen", Description: "ground floor"})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	got, err := s.GetRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("get room: %v", err)
	}
	if got.Name != "Kitchen" || got.Description != "ground floor" {
		t.Fatalf("unexpected room %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set: %+v", got)
	}
}

func TestSQLiteCascadeDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)
	if err := Seed(ctx, s); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := s.DeleteRoom(ctx, "1"); err != nil {
		t.Fatalf("delete room: %v", err)
	}

	if _, err := s.GetRoom(ctx, "1"); err != domain.ErrRoomNotFound {
		t.Fatalf("expected room gone, got %v", err)
	}
	sections, err := s.ListSectionsByRoom(ctx, "1")
	if err != nil {
		t.Fatalf("list sections: %v", err)
	}
	if len(sections) != 0 {
		t.Fatalf("expected no sections, got %d", len(sections))
	}
	missions, err := s.ListMissions(ctx)
	if err != nil {
		t.Fatalf("list missions: %v", err)
	}
	if len(missions) != 1 {
		t.Fatalf("expected 1 mission to survive, got %d", len(missions))
	}
	if missions[0].SectionID == "1" || missions[0].SectionID == "2" {
		t.Fatalf("surviving mission references deleted section %s", missions[0].SectionID)
	}
}

func TestSQLiteUpdateMission(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)
	if err := Seed(ctx, s); err != nil {
		t.Fatalf("seed: %v", err)
	}

	mi, err := s.GetMission(ctx, "1")
	if err != nil {
		t.Fatalf("get mission: %v", err)
	}
	mi.Status = domain.StatusInProgress
	mi.Priority = domain.PriorityLow

	updated, err := s.UpdateMission(ctx, mi)
	if err != nil {
		t.Fatalf("update mission: %v", err)
	}
	if updated.Status != domain.StatusInProgress || updated.Priority != domain.PriorityLow {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Fatalf("updatedAt not refreshed: %+v", updated)
	}
}

func TestSQLiteNotFound(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	if _, err := s.GetMission(ctx, "1"); err != domain.ErrMissionNotFound {
		t.Fatalf("expected ErrMissionNotFound, got %v", err)
	}
	if err := s.DeleteMission(ctx, "1"); err != domain.ErrMissionNotFound {
		t.Fatalf("expected ErrMissionNotFound, got %v", err)
	}
	if err := s.DeleteUser(ctx, "1"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := s.CreateSection(ctx, domain.Section{Name: "x", RoomID: "9"}); err != domain.ErrRoomNotFound {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

// Assignee ids are opaque strings and are never validated against the
// users table, so a non-numeric value must survive the round trip instead
// of breaking every later read.
func TestSQLiteNonNumericAssignee(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	room, err := s.CreateRoom(ctx, domain.Room{Name: "Kitchen"})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	section, err := s.CreateSection(ctx, domain.Section{Name: "Counters", RoomID: room.ID})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	created, err := s.CreateMission(ctx, domain.Mission{
		Title: "Wipe down", SectionID: section.ID, AssignedToUserID: "abc",
		Status: domain.StatusPending, Priority: domain.PriorityLow,
	})
	if err != nil {
		t.Fatalf("create mission: %v", err)
	}

	missions, err := s.ListMissions(ctx)
	if err != nil {
		t.Fatalf("list missions: %v", err)
	}
	if len(missions) != 1 || missions[0].AssignedToUserID != "abc" {
		t.Fatalf("assignee mangled: %+v", missions)
	}
	filtered, err := s.ListMissionsByAssignee(ctx, "abc")
	if err != nil {
		t.Fatalf("list by assignee: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("expected 1 mission for assignee, got %d", len(filtered))
	}
	if _, err := s.GetMission(ctx, created.ID); err != nil {
		t.Fatalf("get mission: %v", err)
	}
}

// A malformed stored timestamp must surface as an error, not as a silent
// zero time.
func TestSQLiteCorruptTimestamp(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	room, err := s.CreateRoom(ctx, domain.Room{Name: "Kitchen"})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE rooms SET created_at = 'garbage' WHERE id = ?`, string(room.ID)); err != nil {
		t.Fatalf("corrupt row: %v", err)
	}
	if _, err := s.GetRoom(ctx, room.ID); err == nil {
		t.Fatalf("expected error for corrupt timestamp")
	}
}

func TestSQLiteDuplicateUserName(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)
	if _, err := s.CreateUser(ctx, domain.User{Name: "Mom", Role: domain.RoleAdmin, PasswordHash: "x"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := s.CreateUser(ctx, domain.User{Name: "Mom", Role: domain.RoleMember, PasswordHash: "y"}); err != domain.ErrDuplicateUserName {
		t.Fatalf("expected ErrDuplicateUserName, got %v", err)
	}
}
