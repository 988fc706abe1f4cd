package progress

import "github.com/lessonlog/lessonlog/internal/domain"

// Store defines the progress persistence interface the service depends
// on. The SQLite progress store implements it.
type Store interface {
	Save(e *domain.ProgressEntry) error
	Get(userID, lessonID string) (*domain.ProgressEntry, error)
	GetAll(userID string) (map[string]domain.ProgressEntry, error)
}

// UserStore is the slice of user persistence the service needs: the
// running score total lives on the user record.
type UserStore interface {
	AddPoints(id string, points int) error
}
