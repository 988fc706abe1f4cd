package domain

import "time"

// ProgressEntry records a user's state for a single lesson. There is at
// most one entry per (user, lesson) pair; saving again overwrites the
// previous values, including TimeSpent, which holds the latest reported
// duration rather than an accumulated total.
type ProgressEntry struct {
	UserID      string     `json:"user_id"`
	LessonID    string     `json:"lesson_id"`
	Completed   bool       `json:"completed"`
	TimeSpent   int        `json:"time_spent"` // seconds
	QuizScore   *float64   `json:"quiz_score,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// LegacyNotes is the free-text notes column from before notes became
	// records of their own. It is drained into Note rows by the legacy
	// migration and empty afterwards.
	LegacyNotes string `json:"-"`
}

// MarkCompleted flips the entry to completed and stamps the completion
// time, preserving an existing stamp on repeated calls.
func (e *ProgressEntry) MarkCompleted() {
	e.Completed = true
	if e.CompletedAt == nil {
		now := time.Now()
		e.CompletedAt = &now
	}
}
