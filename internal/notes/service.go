// Package notes manages study notes: CRUD, search, statistics, export and
// the one-time migration of legacy free-text notes out of progress rows.
package notes

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lessonlog/lessonlog/internal/domain"
)

// Service provides note operations over an injected store. It is
// stateless; all persistence goes through the store.
type Service struct {
	store Store
}

// NewService creates a notes service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// SaveRequest carries the fields for a new note.
type SaveRequest struct {
	UserID   string
	LessonID string
	Module   string
	Topic    string
	Content  string
	Tags     []string
}

// Save validates and inserts a new note, returning its generated ID.
func (s *Service) Save(req SaveRequest) (string, error) {
	if strings.TrimSpace(req.Content) == "" {
		return "", fmt.Errorf("%w: note content is empty", domain.ErrInvalidInput)
	}

	n := domain.NewNote(req.UserID, req.LessonID, req.Module, req.Topic, req.Content, req.Tags)
	if err := s.store.Insert(n); err != nil {
		return "", err
	}
	return n.ID, nil
}

// Get retrieves a single note by ID.
func (s *Service) Get(id string) (*domain.Note, error) {
	return s.store.Get(id)
}

// List returns the user's notes per the filter. A brand-new user gets an
// empty slice, not an error.
func (s *Service) List(userID string, f Filter) ([]*domain.Note, error) {
	return s.store.List(userID, f)
}

// Update applies a partial update: nil content keeps the existing content,
// nil tags keep the existing tags. Updating an unknown ID is an error.
func (s *Service) Update(id string, content *string, tags []string) error {
	if content == nil && tags == nil {
		return nil
	}
	if content != nil && strings.TrimSpace(*content) == "" {
		return fmt.Errorf("%w: note content is empty", domain.ErrInvalidInput)
	}
	return s.store.Update(id, content, tags)
}

// ToggleFavorite flips the favorite flag and returns the new state.
func (s *Service) ToggleFavorite(id string) (bool, error) {
	return s.store.ToggleFavorite(id)
}

// Delete removes a note. Deleting an ID that does not exist returns false
// rather than an error.
func (s *Service) Delete(id string) (bool, error) {
	return s.store.Delete(id)
}

// Statistics summarizes the user's notes.
func (s *Service) Statistics(userID string) (Statistics, error) {
	return s.store.Stats(userID)
}

// CleanupOrphaned deletes notes referencing lessons no longer in the
// curriculum and returns how many were removed.
func (s *Service) CleanupOrphaned(validLessonIDs []string) (int, error) {
	n, err := s.store.DeleteOrphaned(validLessonIDs)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Info("removed orphaned notes", "count", n)
	}
	return n, nil
}

// MigrateLegacy drains free-text notes left in progress rows into proper
// note records tagged "migrated". Safe to re-run: each drained row has its
// source column cleared in the same transaction as the insert.
func (s *Service) MigrateLegacy() (int, error) {
	n, err := s.store.DrainLegacyNotes()
	if err != nil {
		return n, err
	}
	if n > 0 {
		slog.Info("migrated legacy notes", "count", n)
	}
	return n, nil
}
