package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		printUsage()
		return fmt.Errorf("no command given")
	}

	switch args[0] {
	case "help", "-h", "--help":
		printUsage()
		return nil
	case "version", "-v", "--version":
		fmt.Printf("lessonlog %s\n", Version)
		return nil
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	// The store handle must be released on every exit path; run is the
	// only frame that outlives a command.
	defer app.Close()

	if app.cfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	switch args[0] {
	case "init":
		return app.cmdInit()
	case "continue":
		return app.cmdContinue()
	case "progress":
		return app.cmdProgress()
	case "complete":
		return app.cmdComplete(args[1:])
	case "note", "notes":
		return app.cmdNote(args[1:])
	case "migrate":
		return app.cmdMigrate()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		printUsage()
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func printUsage() {
	fmt.Println(`lessonlog - local learning progress and notes

Usage:
  lessonlog <command> [arguments]

Learning Commands:
  continue        Show the next lesson to work on
  progress        Show completion status across the curriculum
  complete        Mark a lesson as completed

Note Commands:
  note add        Add a study note
  note list       List notes (search, filter, sort)
  note show       Show one note in full
  note edit       Update a note's content or tags
  note favorite   Toggle a note's favorite flag
  note delete     Delete a note
  note stats      Show note statistics
  note export     Export notes (markdown, json, html, xlsx)
  note cleanup    Remove notes referencing removed lessons

Maintenance Commands:
  init            Create the data directory and default config
  migrate         Move legacy lesson notes into note records

Other Commands:
  version         Show version
  help            Show this help

The active user comes from LESSONLOG_USER or default_user in
~/.lessonlog/config.yaml; the store path from LESSONLOG_DB.`)
}

// renderProgressBar creates a visual progress bar for a 0..1 value.
func renderProgressBar(value float64, width int) string {
	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
