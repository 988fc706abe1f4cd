package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lessonlog/lessonlog/internal/domain"
)

// UserStore implements user persistence backed by SQLite.
type UserStore struct {
	db *DB
}

// NewUserStore creates a new SQLite-backed user store.
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// GetOrCreate returns the user with the given name, creating one on first
// use. The insert ignores a username conflict so a concurrent creator
// loses harmlessly and the follow-up select wins.
func (s *UserStore) GetOrCreate(name string) (*domain.User, error) {
	u, err := s.GetByName(name)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	u = domain.NewUser(name)
	_, err = s.db.Exec(`
		INSERT INTO users (id, username, total_points, created_at, last_accessed)
		VALUES (?, ?, 0, ?, ?)
		ON CONFLICT(username) DO NOTHING`,
		u.ID, u.Name, u.CreatedAt, u.LastAccessed,
	)
	if err != nil {
		return nil, domain.Storagef("create user", err)
	}
	return s.GetByName(name)
}

// Get retrieves a user by ID.
func (s *UserStore) Get(id string) (*domain.User, error) {
	row := s.db.QueryRow(`
		SELECT id, username, total_points, created_at, last_accessed
		FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetByName retrieves a user by display name.
func (s *UserStore) GetByName(name string) (*domain.User, error) {
	row := s.db.QueryRow(`
		SELECT id, username, total_points, created_at, last_accessed
		FROM users WHERE username = ?`, name)
	return scanUser(row)
}

// TouchLastAccessed bumps the user's last-accessed timestamp.
func (s *UserStore) TouchLastAccessed(id string) error {
	result, err := s.db.Exec("UPDATE users SET last_accessed = ? WHERE id = ?", time.Now(), id)
	if err != nil {
		return domain.Storagef("touch user", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddPoints adds points to the user's running score total.
func (s *UserStore) AddPoints(id string, points int) error {
	result, err := s.db.Exec("UPDATE users SET total_points = total_points + ? WHERE id = ?", points, id)
	if err != nil {
		return domain.Storagef("add points", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.TotalPoints, &u.CreatedAt, &u.LastAccessed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.Storagef("scan user", err)
	}
	return &u, nil
}
