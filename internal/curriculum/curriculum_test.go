package curriculum

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Default(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(c.Modules) == 0 {
		t.Fatal("default curriculum has no modules")
	}
	if c.TotalLessons() == 0 {
		t.Fatal("default curriculum has no lessons")
	}
	if len(c.OrderedLessonIDs()) != c.TotalLessons() {
		t.Error("OrderedLessonIDs() length disagrees with TotalLessons()")
	}
}

func TestLoad_MissingFileFallsBack(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.TotalLessons() == 0 {
		t.Error("missing override should fall back to the default plan")
	}
}

func TestLoad_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curriculum.yaml")
	content := `modules:
  - name: Custom
    lessons:
      - id: only_lesson
        title: The Only Lesson
        points: 5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.TotalLessons() != 1 {
		t.Fatalf("TotalLessons() = %d; want 1", c.TotalLessons())
	}

	lesson, module, ok := c.Find("only_lesson")
	if !ok {
		t.Fatal("Find() did not locate the lesson")
	}
	if lesson.Title != "The Only Lesson" || lesson.Points != 5 {
		t.Errorf("lesson = %+v", lesson)
	}
	if module.Name != "Custom" {
		t.Errorf("module = %q; want Custom", module.Name)
	}
}

func TestParse_DuplicateLessonID(t *testing.T) {
	_, err := parse([]byte(`modules:
  - name: A
    lessons:
      - id: dup
        title: One
  - name: B
    lessons:
      - id: dup
        title: Two
`))
	if err == nil {
		t.Error("duplicate lesson ids should be rejected")
	}
}

func TestParse_MissingLessonID(t *testing.T) {
	_, err := parse([]byte(`modules:
  - name: A
    lessons:
      - title: Anonymous
`))
	if err == nil {
		t.Error("a lesson without an id should be rejected")
	}
}

func TestFind_Absent(t *testing.T) {
	c, _ := Load("")
	if _, _, ok := c.Find("no_such_lesson"); ok {
		t.Error("Find() located a lesson that does not exist")
	}
}
