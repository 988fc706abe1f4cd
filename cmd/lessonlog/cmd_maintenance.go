package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lessonlog/lessonlog/internal/config"
)

// cmdInit sets up the data directory and writes the default config. The
// store itself was already created when the app opened.
func (a *app) cmdInit() error {
	fmt.Println("lessonlog - First-Time Setup")
	fmt.Println("============================")

	fmt.Printf("Data directory: %s\n", a.cfg.DataDir)

	configPath := filepath.Join(a.cfg.DataDir, "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := config.SaveFileConfig(a.cfg.DataDir, config.DefaultFileConfig()); err != nil {
			return err
		}
		fmt.Println("Wrote default config.yaml")
	} else {
		fmt.Println("config.yaml already exists")
	}

	fmt.Printf("Store: %s (schema up to date)\n", a.cfg.DBPath)
	fmt.Printf("Active user: %s\n", a.user.Name)
	fmt.Println("\nRun 'lessonlog continue' to get started.")
	return nil
}

// cmdMigrate drains legacy lesson notes into proper note records.
func (a *app) cmdMigrate() error {
	n, err := a.notes.MigrateLegacy()
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Println("No legacy notes to migrate.")
	} else {
		fmt.Printf("Migrated %d legacy note(s); they now carry the 'migrated' tag.\n", n)
	}
	return nil
}
