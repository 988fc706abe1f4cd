package notes

import "github.com/lessonlog/lessonlog/internal/domain"

// SortOrder selects how List orders its results.
type SortOrder string

const (
	SortCreatedDesc    SortOrder = "created_desc"
	SortCreatedAsc     SortOrder = "created_asc"
	SortTitleAsc       SortOrder = "title_asc"
	SortFavoritesFirst SortOrder = "favorites_first"
)

// Filter narrows and orders a note listing. Search matches content and
// topic as a case-insensitive substring; Module matches exactly. An
// unrecognized SortBy behaves as SortCreatedDesc.
type Filter struct {
	Search string
	Module string
	SortBy SortOrder

	// Limit caps the result count; zero means no cap. Offset skips rows
	// for pagination and only applies with a Limit.
	Limit  int
	Offset int
}

// Statistics summarizes a user's notes.
type Statistics struct {
	Total           int            `json:"total"`
	Favorites       int            `json:"favorites"`
	CreatedLastWeek int            `json:"created_last_week"`
	PerModule       map[string]int `json:"per_module"`
}

// Store defines the persistence interface the notes service depends on.
// The SQLite note store implements it.
type Store interface {
	Insert(n *domain.Note) error
	Get(id string) (*domain.Note, error)
	List(userID string, f Filter) ([]*domain.Note, error)
	Update(id string, content *string, tags []string) error
	ToggleFavorite(id string) (bool, error)
	Delete(id string) (bool, error)
	DeleteOrphaned(validLessonIDs []string) (int, error)
	Stats(userID string) (Statistics, error)
	DrainLegacyNotes() (int, error)
}
