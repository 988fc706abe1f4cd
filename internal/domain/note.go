package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Note is a free-form study note. A note may reference a lesson (LessonID
// non-empty) or stand alone; Module is a free-text grouping used for
// filtering and statistics.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	LessonID  string    `json:"lesson_id,omitempty"`
	Module    string    `json:"module"`
	Topic     string    `json:"topic"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Favorite  bool      `json:"favorite"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote creates a note with a generated ID and current timestamps.
// Content validation happens in the notes service, not here.
func NewNote(userID, lessonID, module, topic, content string, tags []string) *Note {
	now := time.Now()
	return &Note{
		ID:        uuid.New().String(),
		UserID:    userID,
		LessonID:  lessonID,
		Module:    module,
		Topic:     topic,
		Content:   content,
		Tags:      NormalizeTags(tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasTag reports whether the note carries the given tag.
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NormalizeTags deduplicates and sorts a tag list, dropping empty strings.
// Tags behave as a set; order is not meaningful.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
