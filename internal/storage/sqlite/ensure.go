package sqlite

import (
	"github.com/lessonlog/lessonlog/internal/notes"
	"github.com/lessonlog/lessonlog/internal/progress"
)

// Ensure SQLite stores implement the service interfaces.
var (
	_ progress.Store     = (*ProgressStore)(nil)
	_ progress.UserStore = (*UserStore)(nil)
	_ notes.Store        = (*NoteStore)(nil)
)
