package main

import (
	"github.com/lessonlog/lessonlog/internal/config"
	"github.com/lessonlog/lessonlog/internal/curriculum"
	"github.com/lessonlog/lessonlog/internal/domain"
	"github.com/lessonlog/lessonlog/internal/notes"
	"github.com/lessonlog/lessonlog/internal/progress"
	"github.com/lessonlog/lessonlog/internal/storage/sqlite"
)

// app wires the gateway and services together for one CLI invocation.
// The store is opened once here and every service receives it by
// reference; nothing else touches the database.
type app struct {
	cfg        *config.Config
	db         *sqlite.DB
	curriculum *curriculum.Curriculum
	user       *domain.User

	users    *sqlite.UserStore
	progress *progress.Service
	notes    *notes.Service
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, err
	}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	cur, err := curriculum.Load(cfg.CurriculumPath)
	if err != nil {
		db.Close()
		return nil, err
	}

	users := sqlite.NewUserStore(db)
	user, err := users.GetOrCreate(cfg.User)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &app{
		cfg:        cfg,
		db:         db,
		curriculum: cur,
		user:       user,
		users:      users,
		progress:   progress.NewService(sqlite.NewProgressStore(db), users),
		notes:      notes.NewService(sqlite.NewNoteStore(db)),
	}, nil
}

// Close releases the store handle.
func (a *app) Close() error {
	return a.db.Close()
}
