package notes_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/lessonlog/lessonlog/internal/domain"
	"github.com/lessonlog/lessonlog/internal/notes"
	"github.com/lessonlog/lessonlog/internal/storage/sqlite"
)

// setupService opens a migrated store and returns a service bound to it
// plus a test user.
func setupService(t *testing.T) (*notes.Service, *domain.User) {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	u, err := sqlite.NewUserStore(db).GetOrCreate("alice")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	return notes.NewService(sqlite.NewNoteStore(db)), u
}

func TestService_Save(t *testing.T) {
	svc, u := setupService(t)

	id, err := svc.Save(notes.SaveRequest{
		UserID:  u.ID,
		Module:  "General",
		Topic:   "Intro thought",
		Content: "Binary search halves the space each step.",
		Tags:    []string{"algorithms"},
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if id == "" {
		t.Fatal("Save() returned empty id")
	}

	list, err := svc.List(u.ID, notes.Filter{Search: "halves"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("List() returned %d notes; want 1", len(list))
	}
	if list[0].ID != id {
		t.Errorf("listed ID = %q; want %q", list[0].ID, id)
	}
}

func TestService_Save_EmptyContent(t *testing.T) {
	svc, u := setupService(t)

	tests := []string{"", "   ", "\n\t"}
	for _, content := range tests {
		_, err := svc.Save(notes.SaveRequest{UserID: u.ID, Topic: "t", Content: content})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Save(content=%q) error = %v; want ErrInvalidInput", content, err)
		}
	}
}

func TestService_Update_EmptyContent(t *testing.T) {
	svc, u := setupService(t)

	id, _ := svc.Save(notes.SaveRequest{UserID: u.ID, Topic: "t", Content: "fine"})

	empty := "  "
	if err := svc.Update(id, &empty, nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Update(empty content) error = %v; want ErrInvalidInput", err)
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc, _ := setupService(t)

	content := "new"
	err := svc.Update("nonexistent", &content, nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update() error = %v; want ErrNotFound", err)
	}
}

func TestService_Delete_AbsentID(t *testing.T) {
	svc, _ := setupService(t)

	deleted, err := svc.Delete("nonexistent")
	if err != nil {
		t.Fatalf("Delete() error = %v; absence is not an error", err)
	}
	if deleted {
		t.Error("Delete() = true; want false for absent id")
	}
}

func TestService_ToggleFavorite_Pair(t *testing.T) {
	svc, u := setupService(t)

	id, _ := svc.Save(notes.SaveRequest{UserID: u.ID, Topic: "t", Content: "c"})

	on, err := svc.ToggleFavorite(id)
	if err != nil || !on {
		t.Fatalf("first toggle = (%v, %v); want (true, nil)", on, err)
	}
	off, err := svc.ToggleFavorite(id)
	if err != nil || off {
		t.Fatalf("second toggle = (%v, %v); want (false, nil)", off, err)
	}
}

func TestService_CleanupOrphaned(t *testing.T) {
	svc, u := setupService(t)

	svc.Save(notes.SaveRequest{UserID: u.ID, LessonID: "arrays", Topic: "kept", Content: "c"})
	svc.Save(notes.SaveRequest{UserID: u.ID, Topic: "free", Content: "c"})
	svc.Save(notes.SaveRequest{UserID: u.ID, LessonID: "gone", Topic: "orphan", Content: "c"})

	removed, err := svc.CleanupOrphaned([]string{"arrays"})
	if err != nil {
		t.Fatalf("CleanupOrphaned() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("CleanupOrphaned() = %d; want 1", removed)
	}

	list, _ := svc.List(u.ID, notes.Filter{})
	if len(list) != 2 {
		t.Errorf("%d notes remain; want 2", len(list))
	}
}

func TestService_Statistics(t *testing.T) {
	svc, u := setupService(t)

	svc.Save(notes.SaveRequest{UserID: u.ID, Module: "Searching", Topic: "a", Content: "c"})
	svc.Save(notes.SaveRequest{UserID: u.ID, Module: "Sorting", Topic: "b", Content: "c"})

	stats, err := svc.Statistics(u.ID)
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}
	if stats.Total != 2 || stats.CreatedLastWeek != 2 {
		t.Errorf("stats = %+v; want total 2, last week 2", stats)
	}
	if stats.PerModule["Searching"] != 1 || stats.PerModule["Sorting"] != 1 {
		t.Errorf("PerModule = %v", stats.PerModule)
	}
}
