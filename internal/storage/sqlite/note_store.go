package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lessonlog/lessonlog/internal/domain"
	"github.com/lessonlog/lessonlog/internal/notes"
)

// NoteStore implements note persistence backed by SQLite.
type NoteStore struct {
	db *DB
}

// NewNoteStore creates a new SQLite-backed note store.
func NewNoteStore(db *DB) *NoteStore {
	return &NoteStore{db: db}
}

// Insert persists a new note.
func (s *NoteStore) Insert(n *domain.Note) error {
	tags, err := json.Marshal(n.Tags)
	if err != nil {
		return domain.Storagef("marshal tags", err)
	}

	var lessonID *string
	if n.LessonID != "" {
		lessonID = &n.LessonID
	}

	_, err = s.db.Exec(`
		INSERT INTO notes (id, user_id, lesson_id, module_name, topic, content, tags, favorite, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, lessonID, n.Module, n.Topic, n.Content,
		string(tags), boolToInt(n.Favorite), n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return domain.Storagef("insert note", err)
	}
	return nil
}

// Get retrieves a note by ID.
func (s *NoteStore) Get(id string) (*domain.Note, error) {
	row := s.db.QueryRow(noteColumns+" FROM notes WHERE id = ?", id)
	n, err := scanNote(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

// List returns a user's notes, optionally narrowed by a case-insensitive
// substring search over content and topic and by module, in the order the
// filter asks for. An unrecognized sort order falls back to newest-first.
func (s *NoteStore) List(userID string, f notes.Filter) ([]*domain.Note, error) {
	query := noteColumns + " FROM notes WHERE user_id = ?"
	args := []any{userID}

	if f.Search != "" {
		query += " AND (instr(lower(content), lower(?)) > 0 OR instr(lower(topic), lower(?)) > 0)"
		args = append(args, f.Search, f.Search)
	}
	if f.Module != "" {
		query += " AND module_name = ?"
		args = append(args, f.Module)
	}

	switch f.SortBy {
	case notes.SortCreatedAsc:
		query += " ORDER BY created_at ASC"
	case notes.SortTitleAsc:
		query += " ORDER BY topic COLLATE NOCASE ASC, created_at DESC"
	case notes.SortFavoritesFirst:
		query += " ORDER BY favorite DESC, created_at DESC"
	default:
		query += " ORDER BY created_at DESC"
	}

	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, domain.Storagef("query notes", err)
	}
	defer rows.Close()

	var out []*domain.Note
	for rows.Next() {
		n, err := scanNote(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storagef("iterate notes", err)
	}
	return out, nil
}

// Update applies a partial update: nil content leaves content alone, nil
// tags leaves tags alone. Returns ErrNotFound for an unknown ID.
func (s *NoteStore) Update(id string, content *string, tags []string) error {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now()}

	if content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *content)
	}
	if tags != nil {
		data, err := json.Marshal(domain.NormalizeTags(tags))
		if err != nil {
			return domain.Storagef("marshal tags", err)
		}
		sets = append(sets, "tags = ?")
		args = append(args, string(data))
	}
	args = append(args, id)

	result, err := s.db.Exec("UPDATE notes SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return domain.Storagef("update note", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ToggleFavorite flips the favorite flag and returns the new state.
func (s *NoteStore) ToggleFavorite(id string) (bool, error) {
	result, err := s.db.Exec("UPDATE notes SET favorite = 1 - favorite, updated_at = ? WHERE id = ?", time.Now(), id)
	if err != nil {
		return false, domain.Storagef("toggle favorite", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return false, domain.ErrNotFound
	}

	var favorite int
	if err := s.db.QueryRow("SELECT favorite FROM notes WHERE id = ?", id).Scan(&favorite); err != nil {
		return false, domain.Storagef("read favorite", err)
	}
	return favorite != 0, nil
}

// Delete removes a note, reporting whether a row existed. Deleting an
// absent ID is not an error.
func (s *NoteStore) Delete(id string) (bool, error) {
	result, err := s.db.Exec("DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return false, domain.Storagef("delete note", err)
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// DeleteOrphaned removes notes bound to a lesson that is no longer part of
// the curriculum. Notes without a lesson reference are never touched.
func (s *NoteStore) DeleteOrphaned(validLessonIDs []string) (int, error) {
	query := "DELETE FROM notes WHERE lesson_id IS NOT NULL AND lesson_id != ''"
	var args []any
	if len(validLessonIDs) > 0 {
		query += " AND lesson_id NOT IN (?" + strings.Repeat(", ?", len(validLessonIDs)-1) + ")"
		for _, id := range validLessonIDs {
			args = append(args, id)
		}
	}

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, domain.Storagef("delete orphaned notes", err)
	}
	n, _ := result.RowsAffected()
	return int(n), nil
}

// Stats returns aggregate counts over a user's notes.
func (s *NoteStore) Stats(userID string) (notes.Statistics, error) {
	stats := notes.Statistics{PerModule: make(map[string]int)}

	weekAgo := time.Now().AddDate(0, 0, -7)
	err := s.db.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(favorite), 0),
			COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0)
		FROM notes WHERE user_id = ?`, weekAgo, userID,
	).Scan(&stats.Total, &stats.Favorites, &stats.CreatedLastWeek)
	if err != nil {
		return stats, domain.Storagef("count notes", err)
	}

	rows, err := s.db.Query(`
		SELECT module_name, COUNT(*) FROM notes
		WHERE user_id = ? GROUP BY module_name`, userID)
	if err != nil {
		return stats, domain.Storagef("count notes by module", err)
	}
	defer rows.Close()

	for rows.Next() {
		var module string
		var count int
		if err := rows.Scan(&module, &count); err != nil {
			return stats, domain.Storagef("scan module count", err)
		}
		stats.PerModule[module] = count
	}
	if err := rows.Err(); err != nil {
		return stats, domain.Storagef("iterate module counts", err)
	}
	return stats, nil
}

// DrainLegacyNotes moves free-text notes still embedded in progress rows
// into note records tagged "migrated". Each row migrates in its own
// transaction that also clears the source column, so a re-run only sees
// rows that have not been drained yet.
func (s *NoteStore) DrainLegacyNotes() (int, error) {
	rows, err := s.db.Query(`
		SELECT user_id, lesson_id, notes FROM progress
		WHERE notes IS NOT NULL AND notes != ''`)
	if err != nil {
		return 0, domain.Storagef("query legacy notes", err)
	}

	type legacy struct {
		userID, lessonID, text string
	}
	var pending []legacy
	for rows.Next() {
		var l legacy
		if err := rows.Scan(&l.userID, &l.lessonID, &l.text); err != nil {
			rows.Close()
			return 0, domain.Storagef("scan legacy note", err)
		}
		pending = append(pending, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, domain.Storagef("iterate legacy notes", err)
	}

	migrated := 0
	for _, l := range pending {
		n := domain.NewNote(l.userID, l.lessonID, "", fmt.Sprintf("Lesson %s notes", l.lessonID), l.text, []string{"migrated"})

		tx, err := s.db.Begin()
		if err != nil {
			return migrated, domain.Storagef("begin legacy migration", err)
		}
		tags, _ := json.Marshal(n.Tags)
		if _, err := tx.Exec(`
			INSERT INTO notes (id, user_id, lesson_id, module_name, topic, content, tags, favorite, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
			n.ID, n.UserID, n.LessonID, n.Module, n.Topic, n.Content, string(tags), n.CreatedAt, n.UpdatedAt,
		); err != nil {
			tx.Rollback()
			return migrated, domain.Storagef("insert migrated note", err)
		}
		if _, err := tx.Exec(`
			UPDATE progress SET notes = NULL WHERE user_id = ? AND lesson_id = ?`,
			l.userID, l.lessonID,
		); err != nil {
			tx.Rollback()
			return migrated, domain.Storagef("clear legacy note", err)
		}
		if err := tx.Commit(); err != nil {
			return migrated, domain.Storagef("commit legacy migration", err)
		}
		migrated++
	}
	return migrated, nil
}

const noteColumns = "SELECT id, user_id, lesson_id, module_name, topic, content, tags, favorite, created_at, updated_at"

func scanNote(scan func(...any) error) (*domain.Note, error) {
	var (
		n        domain.Note
		lessonID sql.NullString
		tagsJSON string
		favorite int
	)
	err := scan(&n.ID, &n.UserID, &lessonID, &n.Module, &n.Topic, &n.Content,
		&tagsJSON, &favorite, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, domain.Storagef("scan note", err)
	}
	n.LessonID = lessonID.String
	n.Favorite = favorite != 0
	if err := json.Unmarshal([]byte(tagsJSON), &n.Tags); err != nil {
		return nil, domain.Storagef("unmarshal tags", err)
	}
	return &n, nil
}
