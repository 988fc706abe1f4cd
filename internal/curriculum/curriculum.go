// Package curriculum loads the ordered lesson plan the progress views are
// computed against. A default plan is compiled in; a curriculum.yaml in
// the data directory overrides it.
package curriculum

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Lesson is one unit of the curriculum.
type Lesson struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title"`
	Points int    `yaml:"points"`
}

// Module groups an ordered run of lessons under a name.
type Module struct {
	Name    string   `yaml:"name"`
	Lessons []Lesson `yaml:"lessons"`
}

// Curriculum is the full ordered lesson plan.
type Curriculum struct {
	Modules []Module `yaml:"modules"`
}

// Load reads a curriculum from path, falling back to the embedded default
// when path is empty or the file does not exist.
func Load(path string) (*Curriculum, error) {
	data := defaultYAML
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			data = b
		case os.IsNotExist(err):
			// keep the default
		default:
			return nil, fmt.Errorf("read curriculum: %w", err)
		}
	}
	return parse(data)
}

func parse(data []byte) (*Curriculum, error) {
	var c Curriculum
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse curriculum: %w", err)
	}

	seen := make(map[string]struct{})
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			if l.ID == "" {
				return nil, fmt.Errorf("curriculum: lesson without id in module %q", m.Name)
			}
			if _, dup := seen[l.ID]; dup {
				return nil, fmt.Errorf("curriculum: duplicate lesson id %q", l.ID)
			}
			seen[l.ID] = struct{}{}
		}
	}
	return &c, nil
}

// OrderedLessonIDs returns every lesson ID in curriculum order.
func (c *Curriculum) OrderedLessonIDs() []string {
	var ids []string
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

// TotalLessons returns the number of lessons across all modules.
func (c *Curriculum) TotalLessons() int {
	n := 0
	for _, m := range c.Modules {
		n += len(m.Lessons)
	}
	return n
}

// Find returns the lesson with the given ID and the module holding it.
func (c *Curriculum) Find(id string) (*Lesson, *Module, bool) {
	for i := range c.Modules {
		m := &c.Modules[i]
		for j := range m.Lessons {
			if m.Lessons[j].ID == id {
				return &m.Lessons[j], m, true
			}
		}
	}
	return nil, nil, false
}
