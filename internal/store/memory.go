package store

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/dkeye/Homeboard/internal/domain"
)

// Memory keeps every collection as an insertion-ordered slice behind one
// RWMutex. Reads return copies; cascades run under a single write hold so
// a concurrent reader never observes a dangling foreign key.
type Memory struct {
	mu       sync.RWMutex
	users    []domain.User
	rooms    []domain.Room
	sections []domain.Section
	missions []domain.Mission

	// Monotonic per-collection counters. Never reused after deletes, so
	// IDs stay unique for the lifetime of the process.
	nextUser    int64
	nextRoom    int64
	nextSection int64
	nextMission int64

	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		nextUser:    1,
		nextRoom:    1,
		nextSection: 1,
		nextMission: 1,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (m *Memory) Close() error { return nil }

func (m *Memory) ListUsers(ctx context.Context) ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.User, len(m.users))
	copy(out, m.users)
	return out, nil
}

func (m *Memory) GetUser(ctx context.Context, id domain.UserID) (domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (m *Memory) GetUserByName(ctx context.Context, name string) (domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Name == name {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (m *Memory) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Name == u.Name {
			return domain.User{}, domain.ErrDuplicateUserName
		}
	}
	now := m.now()
	u.ID = domain.UserID(strconv.FormatInt(m.nextUser, 10))
	u.CreatedAt = now
	u.UpdatedAt = now
	m.nextUser++
	m.users = append(m.users, u)
	return u, nil
}

func (m *Memory) DeleteUser(ctx context.Context, id domain.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (m *Memory) ListRooms(ctx context.Context) ([]domain.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Room, len(m.rooms))
	copy(out, m.rooms)
	return out, nil
}

func (m *Memory) GetRoom(ctx context.Context, id domain.RoomID) (domain.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Room{}, domain.ErrRoomNotFound
}

func (m *Memory) CreateRoom(ctx context.Context, r domain.Room) (domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	r.ID = domain.RoomID(strconv.FormatInt(m.nextRoom, 10))
	r.CreatedAt = now
	r.UpdatedAt = now
	m.nextRoom++
	m.rooms = append(m.rooms, r)
	return r, nil
}

// DeleteRoom removes the room, its sections and their missions under one
// write hold, so the cascade is all-or-nothing for observers.
func (m *Memory) DeleteRoom(ctx context.Context, id domain.RoomID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := -1
	for i, r := range m.rooms {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.ErrRoomNotFound
	}

	doomed := make(map[domain.SectionID]struct{})
	kept := m.sections[:0:0]
	for _, s := range m.sections {
		if s.RoomID == id {
			doomed[s.ID] = struct{}{}
			continue
		}
		kept = append(kept, s)
	}

	keptMissions := m.missions[:0:0]
	for _, mi := range m.missions {
		if _, gone := doomed[mi.SectionID]; gone {
			continue
		}
		keptMissions = append(keptMissions, mi)
	}

	m.missions = keptMissions
	m.sections = kept
	m.rooms = append(m.rooms[:idx], m.rooms[idx+1:]...)
	return nil
}

func (m *Memory) ListSectionsByRoom(ctx context.Context, roomID domain.RoomID) ([]domain.Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Section{}
	for _, s := range m.sections {
		if s.RoomID == roomID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *Memory) GetSection(ctx context.Context, id domain.SectionID) (domain.Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sections {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Section{}, domain.ErrSectionNotFound
}

func (m *Memory) CreateSection(ctx context.Context, s domain.Section) (domain.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	roomExists := false
	for _, r := range m.rooms {
		if r.ID == s.RoomID {
			roomExists = true
			break
		}
	}
	if !roomExists {
		return domain.Section{}, domain.ErrRoomNotFound
	}
	now := m.now()
	s.ID = domain.SectionID(strconv.FormatInt(m.nextSection, 10))
	s.CreatedAt = now
	s.UpdatedAt = now
	m.nextSection++
	m.sections = append(m.sections, s)
	return s, nil
}

func (m *Memory) DeleteSection(ctx context.Context, id domain.SectionID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := -1
	for i, s := range m.sections {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.ErrSectionNotFound
	}
	kept := m.missions[:0:0]
	for _, mi := range m.missions {
		if mi.SectionID != id {
			kept = append(kept, mi)
		}
	}
	m.missions = kept
	m.sections = append(m.sections[:idx], m.sections[idx+1:]...)
	return nil
}

func (m *Memory) ListMissions(ctx context.Context) ([]domain.Mission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Mission, len(m.missions))
	copy(out, m.missions)
	return out, nil
}

func (m *Memory) ListMissionsByAssignee(ctx context.Context, userID domain.UserID) ([]domain.Mission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Mission{}
	for _, mi := range m.missions {
		if mi.AssignedToUserID == userID {
			out = append(out, mi)
		}
	}
	return out, nil
}

func (m *Memory) GetMission(ctx context.Context, id domain.MissionID) (domain.Mission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, mi := range m.missions {
		if mi.ID == id {
			return mi, nil
		}
	}
	return domain.Mission{}, domain.ErrMissionNotFound
}

func (m *Memory) CreateMission(ctx context.Context, mi domain.Mission) (domain.Mission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sectionExists := false
	for _, s := range m.sections {
		if s.ID == mi.SectionID {
			sectionExists = true
			break
		}
	}
	if !sectionExists {
		return domain.Mission{}, domain.ErrSectionNotFound
	}
	now := m.now()
	mi.ID = domain.MissionID(strconv.FormatInt(m.nextMission, 10))
	mi.CreatedAt = now
	mi.UpdatedAt = now
	m.nextMission++
	m.missions = append(m.missions, mi)
	return mi, nil
}

func (m *Memory) UpdateMission(ctx context.Context, mi domain.Mission) (domain.Mission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.missions {
		if existing.ID == mi.ID {
			mi.CreatedAt = existing.CreatedAt
			mi.UpdatedAt = m.now()
			m.missions[i] = mi
			return mi, nil
		}
	}
	return domain.Mission{}, domain.ErrMissionNotFound
}

func (m *Memory) DeleteMission(ctx context.Context, id domain.MissionID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, mi := range m.missions {
		if mi.ID == id {
			m.missions = append(m.missions[:i], m.missions[i+1:]...)
			return nil
		}
	}
	return domain.ErrMissionNotFound
}
