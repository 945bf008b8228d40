// Package store provides the entity repositories behind the service layer.
// Two implementations exist: an in-memory one used by default and in tests,
// and a SQLite one for deployments that want the data to survive restarts.
// ID assignment differs between the two (monotonic counter vs. database
// rowid) and the strategies must never be mixed within one deployment.
package store

import (
	"context"

	"github.com/dkeye/Homeboard/internal/domain"
)

// Store is the repository contract the service layer is written against.
// Deletes of rooms and sections cascade to their dependents atomically;
// deleting a user never touches the missions assigned to them.
type Store interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id domain.UserID) (domain.User, error)
	GetUserByName(ctx context.Context, name string) (domain.User, error)
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)
	DeleteUser(ctx context.Context, id domain.UserID) error

	ListRooms(ctx context.Context) ([]domain.Room, error)
	GetRoom(ctx context.Context, id domain.RoomID) (domain.Room, error)
	CreateRoom(ctx context.Context, r domain.Room) (domain.Room, error)
	DeleteRoom(ctx context.Context, id domain.RoomID) error

	ListSectionsByRoom(ctx context.Context, roomID domain.RoomID) ([]domain.Section, error)
	GetSection(ctx context.Context, id domain.SectionID) (domain.Section, error)
	CreateSection(ctx context.Context, s domain.Section) (domain.Section, error)
	DeleteSection(ctx context.Context, id domain.SectionID) error

	ListMissions(ctx context.Context) ([]domain.Mission, error)
	ListMissionsByAssignee(ctx context.Context, userID domain.UserID) ([]domain.Mission, error)
	GetMission(ctx context.Context, id domain.MissionID) (domain.Mission, error)
	CreateMission(ctx context.Context, m domain.Mission) (domain.Mission, error)
	UpdateMission(ctx context.Context, m domain.Mission) (domain.Mission, error)
	DeleteMission(ctx context.Context, id domain.MissionID) error

	Close() error
}
