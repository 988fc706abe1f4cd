package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lessonlog/lessonlog/internal/domain"
)

// ProgressStore implements per-lesson progress persistence backed by SQLite.
type ProgressStore struct {
	db *DB
}

// NewProgressStore creates a new SQLite-backed progress store.
func NewProgressStore(db *DB) *ProgressStore {
	return &ProgressStore{db: db}
}

// Save upserts a progress entry keyed by (user, lesson). All fields of an
// existing row are overwritten; TimeSpent is the latest reported value,
// not a running total. Saving also bumps the owning user's last-accessed
// timestamp, in the same transaction.
func (s *ProgressStore) Save(e *domain.ProgressEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return domain.Storagef("begin save progress", err)
	}

	_, err = tx.Exec(`
		INSERT INTO progress (user_id, lesson_id, completed, time_spent, quiz_score, completion_date)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, lesson_id) DO UPDATE SET
			completed=excluded.completed,
			time_spent=excluded.time_spent,
			quiz_score=excluded.quiz_score,
			completion_date=excluded.completion_date`,
		e.UserID, e.LessonID, boolToInt(e.Completed), e.TimeSpent, e.QuizScore, e.CompletedAt,
	)
	if err != nil {
		tx.Rollback()
		return domain.Storagef("upsert progress", err)
	}

	if _, err := tx.Exec("UPDATE users SET last_accessed = ? WHERE id = ?", time.Now(), e.UserID); err != nil {
		tx.Rollback()
		return domain.Storagef("touch user", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Storagef("commit save progress", err)
	}
	return nil
}

// Get retrieves the entry for one (user, lesson) pair.
func (s *ProgressStore) Get(userID, lessonID string) (*domain.ProgressEntry, error) {
	row := s.db.QueryRow(`
		SELECT user_id, lesson_id, completed, time_spent, quiz_score, completion_date, notes
		FROM progress WHERE user_id = ? AND lesson_id = ?`, userID, lessonID)

	e, err := scanProgress(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.Storagef("scan progress", err)
	}
	return e, nil
}

// GetAll returns the user's progress keyed by lesson ID. A user with no
// progress yet gets an empty map, not an error.
func (s *ProgressStore) GetAll(userID string) (map[string]domain.ProgressEntry, error) {
	rows, err := s.db.Query(`
		SELECT user_id, lesson_id, completed, time_spent, quiz_score, completion_date, notes
		FROM progress WHERE user_id = ?`, userID)
	if err != nil {
		return nil, domain.Storagef("query progress", err)
	}
	defer rows.Close()

	out := make(map[string]domain.ProgressEntry)
	for rows.Next() {
		e, err := scanProgress(rows.Scan)
		if err != nil {
			return nil, domain.Storagef("scan progress", err)
		}
		out[e.LessonID] = *e
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storagef("iterate progress", err)
	}
	return out, nil
}

// ListWithLegacyNotes returns every entry whose legacy notes column still
// holds text, feeding the one-time notes migration.
func (s *ProgressStore) ListWithLegacyNotes() ([]domain.ProgressEntry, error) {
	rows, err := s.db.Query(`
		SELECT user_id, lesson_id, completed, time_spent, quiz_score, completion_date, notes
		FROM progress WHERE notes IS NOT NULL AND notes != ''`)
	if err != nil {
		return nil, domain.Storagef("query legacy notes", err)
	}
	defer rows.Close()

	var out []domain.ProgressEntry
	for rows.Next() {
		e, err := scanProgress(rows.Scan)
		if err != nil {
			return nil, domain.Storagef("scan progress", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storagef("iterate legacy notes", err)
	}
	return out, nil
}

func scanProgress(scan func(...any) error) (*domain.ProgressEntry, error) {
	var (
		e         domain.ProgressEntry
		completed int
		legacy    sql.NullString
	)
	err := scan(&e.UserID, &e.LessonID, &completed, &e.TimeSpent, &e.QuizScore, &e.CompletedAt, &legacy)
	if err != nil {
		return nil, err
	}
	e.Completed = completed != 0
	e.LegacyNotes = legacy.String
	return &e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
