// Package progress derives learner-facing views from raw per-lesson
// progress records.
package progress

import (
	"errors"

	"github.com/lessonlog/lessonlog/internal/domain"
)

// Service computes derived progress views. It holds no state beyond the
// injected stores.
type Service struct {
	store Store
	users UserStore
}

// NewService creates a progress service.
func NewService(store Store, users UserStore) *Service {
	return &Service{store: store, users: users}
}

// SaveProgress upserts the user's entry for a lesson. TimeSpent is the
// latest reported value; repeated saves overwrite it.
func (s *Service) SaveProgress(userID, lessonID string, completed bool, timeSpent int, quizScore *float64) error {
	e := &domain.ProgressEntry{
		UserID:    userID,
		LessonID:  lessonID,
		TimeSpent: timeSpent,
		QuizScore: quizScore,
	}
	if completed {
		e.MarkCompleted()
	}
	return s.store.Save(e)
}

// GetProgress returns the user's progress keyed by lesson ID; empty map
// for a user with no progress yet.
func (s *Service) GetProgress(userID string) (map[string]domain.ProgressEntry, error) {
	return s.store.GetAll(userID)
}

// CompletionPercentage returns completed lessons over totalLessons as a
// percentage. A zero totalLessons yields 0.0, not an error.
func (s *Service) CompletionPercentage(userID string, totalLessons int) (float64, error) {
	if totalLessons == 0 {
		return 0.0, nil
	}
	entries, err := s.store.GetAll(userID)
	if err != nil {
		return 0, err
	}
	completed := 0
	for _, e := range entries {
		if e.Completed {
			completed++
		}
	}
	return float64(completed) / float64(totalLessons) * 100, nil
}

// FirstIncompleteLesson scans the ordered lesson list and returns the
// first lesson the user has not completed. The second result is false
// when every lesson is complete. A linear scan is plenty at curriculum
// scale.
func (s *Service) FirstIncompleteLesson(userID string, orderedLessonIDs []string) (string, bool, error) {
	entries, err := s.store.GetAll(userID)
	if err != nil {
		return "", false, err
	}
	for _, id := range orderedLessonIDs {
		e, ok := entries[id]
		if !ok || !e.Completed {
			return id, true, nil
		}
	}
	return "", false, nil
}

// MarkComplete records a lesson as completed and adds points to the
// user's running total. Completing an already-completed lesson does not
// award points again. Point accumulation happens only here; the stores
// treat every save as a plain overwrite.
func (s *Service) MarkComplete(userID, lessonID string, points int) error {
	existing, err := s.store.Get(userID, lessonID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	e := &domain.ProgressEntry{UserID: userID, LessonID: lessonID}
	if existing != nil {
		*e = *existing
	}
	alreadyCompleted := e.Completed
	e.MarkCompleted()

	if err := s.store.Save(e); err != nil {
		return err
	}
	if points > 0 && !alreadyCompleted {
		return s.users.AddPoints(userID, points)
	}
	return nil
}
