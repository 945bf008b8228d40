package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dkeye/Homeboard/internal/domain"
)

// SQLite backs the repositories with a single database file. IDs are
// database-assigned rowids exposed as decimal strings; cascades run in one
// transaction so a failure partway through rolls everything back.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc.org/sqlite serializes writes itself, but a single connection
	// avoids SQLITE_BUSY on concurrent handlers.
	db.SetMaxOpenConns(1)
	s := &SQLite{db: db, now: func() time.Time { return time.Now().UTC() }}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('admin','member')),
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS rooms (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			room_id INTEGER NOT NULL REFERENCES rooms(id),
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS missions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			section_id INTEGER NOT NULL REFERENCES sections(id),
			assigned_to_user_id TEXT NOT NULL,
			status TEXT NOT NULL CHECK(status IN ('pending','in_progress','completed')),
			priority TEXT NOT NULL CHECK(priority IN ('low','medium','high')),
			due_date TEXT,
			completed_at TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

const timeLayout = time.RFC3339Nano

func (s *SQLite) stamp() (time.Time, string) {
	now := s.now()
	return now, now.Format(timeLayout)
}

func parseStamp(v string) (time.Time, error) {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt stored timestamp %q: %w", v, err)
	}
	return t, nil
}

func parseStampPtr(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := parseStamp(v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatStampPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(timeLayout)
}

func (s *SQLite) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, role, password_hash, created_at, updated_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(r rowScanner) (domain.User, error) {
	var (
		id                   int64
		name, role, hash     string
		createdAt, updatedAt string
	)
	if err := r.Scan(&id, &name, &role, &hash, &createdAt, &updatedAt); err != nil {
		return domain.User{}, err
	}
	created, err := parseStamp(createdAt)
	if err != nil {
		return domain.User{}, err
	}
	updated, err := parseStamp(updatedAt)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:           domain.UserID(strconv.FormatInt(id, 10)),
		Name:         name,
		Role:         domain.Role(role),
		PasswordHash: hash,
		CreatedAt:    created,
		UpdatedAt:    updated,
	}, nil
}

func (s *SQLite) GetUser(ctx context.Context, id domain.UserID) (domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, role, password_hash, created_at, updated_at FROM users WHERE id = ?`, string(id))
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, err
}

func (s *SQLite) GetUserByName(ctx context.Context, name string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, role, password_hash, created_at, updated_at FROM users WHERE name = ?`, name)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, err
}

func (s *SQLite) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	now, stamp := s.stamp()
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE name = ?)`, u.Name).Scan(&exists); err != nil {
		return domain.User{}, err
	}
	if exists {
		return domain.User{}, domain.ErrDuplicateUserName
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (name, role, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		u.Name, string(u.Role), u.PasswordHash, stamp, stamp)
	if err != nil {
		return domain.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}
	u.ID = domain.UserID(strconv.FormatInt(id, 10))
	u.CreatedAt = now
	u.UpdatedAt = now
	return u, nil
}

func (s *SQLite) DeleteUser(ctx context.Context, id domain.UserID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *SQLite) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM rooms ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Room
	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanRoom(r rowScanner) (domain.Room, error) {
	var (
		id                   int64
		name, desc           string
		createdAt, updatedAt string
	)
	if err := r.Scan(&id, &name, &desc, &createdAt, &updatedAt); err != nil {
		return domain.Room{}, err
	}
	created, err := parseStamp(createdAt)
	if err != nil {
		return domain.Room{}, err
	}
	updated, err := parseStamp(updatedAt)
	if err != nil {
		return domain.Room{}, err
	}
	return domain.Room{
		ID:          domain.RoomID(strconv.FormatInt(id, 10)),
		Name:        name,
		Description: desc,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

func (s *SQLite) GetRoom(ctx context.Context, id domain.RoomID) (domain.Room, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM rooms WHERE id = ?`, string(id))
	r, err := scanRoom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return r, err
}

func (s *SQLite) CreateRoom(ctx context.Context, r domain.Room) (domain.Room, error) {
	now, stamp := s.stamp()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO rooms (name, description, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		r.Name, r.Description, stamp, stamp)
	if err != nil {
		return domain.Room{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Room{}, err
	}
	r.ID = domain.RoomID(strconv.FormatInt(id, 10))
	r.CreatedAt = now
	r.UpdatedAt = now
	return r, nil
}

// DeleteRoom removes missions first, then sections, then the room, all in
// one transaction. Rollback on any failure keeps the graph consistent.
func (s *SQLite) DeleteRoom(ctx context.Context, id domain.RoomID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM missions WHERE section_id IN (SELECT id FROM sections WHERE room_id = ?)`,
		string(id)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sections WHERE room_id = ?`, string(id)); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrRoomNotFound
	}
	return tx.Commit()
}

func (s *SQLite) ListSectionsByRoom(ctx context.Context, roomID domain.RoomID) ([]domain.Section, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, room_id, created_at, updated_at FROM sections WHERE room_id = ? ORDER BY id`,
		string(roomID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Section{}
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sec)
	}
	return out, rows.Err()
}

func scanSection(r rowScanner) (domain.Section, error) {
	var (
		id, roomID           int64
		name, desc           string
		createdAt, updatedAt string
	)
	if err := r.Scan(&id, &name, &desc, &roomID, &createdAt, &updatedAt); err != nil {
		return domain.Section{}, err
	}
	created, err := parseStamp(createdAt)
	if err != nil {
		return domain.Section{}, err
	}
	updated, err := parseStamp(updatedAt)
	if err != nil {
		return domain.Section{}, err
	}
	return domain.Section{
		ID:          domain.SectionID(strconv.FormatInt(id, 10)),
		Name:        name,
		Description: desc,
		RoomID:      domain.RoomID(strconv.FormatInt(roomID, 10)),
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

func (s *SQLite) GetSection(ctx context.Context, id domain.SectionID) (domain.Section, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, room_id, created_at, updated_at FROM sections WHERE id = ?`, string(id))
	sec, err := scanSection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Section{}, domain.ErrSectionNotFound
	}
	return sec, err
}

func (s *SQLite) CreateSection(ctx context.Context, sec domain.Section) (domain.Section, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM rooms WHERE id = ?)`, string(sec.RoomID)).Scan(&exists); err != nil {
		return domain.Section{}, err
	}
	if !exists {
		return domain.Section{}, domain.ErrRoomNotFound
	}
	now, stamp := s.stamp()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sections (name, description, room_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		sec.Name, sec.Description, string(sec.RoomID), stamp, stamp)
	if err != nil {
		return domain.Section{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Section{}, err
	}
	sec.ID = domain.SectionID(strconv.FormatInt(id, 10))
	sec.CreatedAt = now
	sec.UpdatedAt = now
	return sec, nil
}

func (s *SQLite) DeleteSection(ctx context.Context, id domain.SectionID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM missions WHERE section_id = ?`, string(id)); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM sections WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrSectionNotFound
	}
	return tx.Commit()
}

const missionColumns = `id, title, description, section_id, assigned_to_user_id, status, priority, due_date, completed_at, created_at, updated_at`

func scanMission(r rowScanner) (domain.Mission, error) {
	var (
		id, sectionID        int64
		title, desc          string
		assignee             string
		status, priority     string
		dueDate, completedAt sql.NullString
		createdAt, updatedAt string
	)
	if err := r.Scan(&id, &title, &desc, &sectionID, &assignee, &status, &priority,
		&dueDate, &completedAt, &createdAt, &updatedAt); err != nil {
		return domain.Mission{}, err
	}
	due, err := parseStampPtr(dueDate)
	if err != nil {
		return domain.Mission{}, err
	}
	completed, err := parseStampPtr(completedAt)
	if err != nil {
		return domain.Mission{}, err
	}
	created, err := parseStamp(createdAt)
	if err != nil {
		return domain.Mission{}, err
	}
	updated, err := parseStamp(updatedAt)
	if err != nil {
		return domain.Mission{}, err
	}
	return domain.Mission{
		ID:               domain.MissionID(strconv.FormatInt(id, 10)),
		Title:            title,
		Description:      desc,
		SectionID:        domain.SectionID(strconv.FormatInt(sectionID, 10)),
		AssignedToUserID: domain.UserID(assignee),
		Status:           domain.Status(status),
		Priority:         domain.Priority(priority),
		DueDate:          due,
		CompletedAt:      completed,
		CreatedAt:        created,
		UpdatedAt:        updated,
	}, nil
}

func (s *SQLite) ListMissions(ctx context.Context) ([]domain.Mission, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+missionColumns+` FROM missions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Mission{}
	for rows.Next() {
		mi, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, mi)
	}
	return out, rows.Err()
}

func (s *SQLite) ListMissionsByAssignee(ctx context.Context, userID domain.UserID) ([]domain.Mission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+missionColumns+` FROM missions WHERE assigned_to_user_id = ? ORDER BY id`, string(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Mission{}
	for rows.Next() {
		mi, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, mi)
	}
	return out, rows.Err()
}

func (s *SQLite) GetMission(ctx context.Context, id domain.MissionID) (domain.Mission, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+missionColumns+` FROM missions WHERE id = ?`, string(id))
	mi, err := scanMission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Mission{}, domain.ErrMissionNotFound
	}
	return mi, err
}

func (s *SQLite) CreateMission(ctx context.Context, mi domain.Mission) (domain.Mission, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM sections WHERE id = ?)`, string(mi.SectionID)).Scan(&exists); err != nil {
		return domain.Mission{}, err
	}
	if !exists {
		return domain.Mission{}, domain.ErrSectionNotFound
	}
	now, stamp := s.stamp()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO missions (title, description, section_id, assigned_to_user_id, status, priority, due_date, completed_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		mi.Title, mi.Description, string(mi.SectionID), string(mi.AssignedToUserID),
		string(mi.Status), string(mi.Priority), formatStampPtr(mi.DueDate), formatStampPtr(mi.CompletedAt), stamp, stamp)
	if err != nil {
		return domain.Mission{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Mission{}, err
	}
	mi.ID = domain.MissionID(strconv.FormatInt(id, 10))
	mi.CreatedAt = now
	mi.UpdatedAt = now
	return mi, nil
}

func (s *SQLite) UpdateMission(ctx context.Context, mi domain.Mission) (domain.Mission, error) {
	_, stamp := s.stamp()
	res, err := s.db.ExecContext(ctx,
		`UPDATE missions SET title = ?, description = ?, section_id = ?, assigned_to_user_id = ?,
		 status = ?, priority = ?, due_date = ?, completed_at = ?, updated_at = ? WHERE id = ?`,
		mi.Title, mi.Description, string(mi.SectionID), string(mi.AssignedToUserID),
		string(mi.Status), string(mi.Priority), formatStampPtr(mi.DueDate), formatStampPtr(mi.CompletedAt),
		stamp, string(mi.ID))
	if err != nil {
		return domain.Mission{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Mission{}, err
	}
	if n == 0 {
		return domain.Mission{}, domain.ErrMissionNotFound
	}
	return s.GetMission(ctx, mi.ID)
}

func (s *SQLite) DeleteMission(ctx context.Context, id domain.MissionID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM missions WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrMissionNotFound
	}
	return nil
}
