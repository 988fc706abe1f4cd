package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/lessonlog/lessonlog/internal/notes"
)

// cmdNote dispatches the note subcommands.
func (a *app) cmdNote(args []string) error {
	if len(args) < 1 {
		fmt.Println(`Note commands:

  lessonlog note add -topic <t> [-module <m>] [-lesson <id>] [-tags a,b] <content>
  lessonlog note list [-search <q>] [-module <m>] [-sort <order>] [-limit <n>] [-page <n>]
  lessonlog note show <id>
  lessonlog note edit <id> [-content <text>] [-tags a,b]
  lessonlog note favorite <id>
  lessonlog note delete <id>
  lessonlog note stats
  lessonlog note export [-format markdown|json|html|xlsx] [-o <file>]
  lessonlog note cleanup`)
		return nil
	}

	switch args[0] {
	case "add":
		return a.cmdNoteAdd(args[1:])
	case "list":
		return a.cmdNoteList(args[1:])
	case "show":
		return a.cmdNoteShow(args[1:])
	case "edit":
		return a.cmdNoteEdit(args[1:])
	case "favorite":
		return a.cmdNoteFavorite(args[1:])
	case "delete":
		return a.cmdNoteDelete(args[1:])
	case "stats":
		return a.cmdNoteStats()
	case "export":
		return a.cmdNoteExport(args[1:])
	case "cleanup":
		return a.cmdNoteCleanup()
	default:
		return fmt.Errorf("unknown note command: %s", args[0])
	}
}

func (a *app) cmdNoteAdd(args []string) error {
	fs := flag.NewFlagSet("note add", flag.ContinueOnError)
	topic := fs.String("topic", "", "short note title")
	module := fs.String("module", "General", "module grouping")
	lesson := fs.String("lesson", "", "lesson id this note refers to")
	tags := fs.String("tags", "", "comma-separated tags")
	if err := fs.Parse(args); err != nil {
		return err
	}

	content := strings.Join(fs.Args(), " ")
	if *lesson != "" {
		if _, _, found := a.curriculum.Find(*lesson); !found {
			return fmt.Errorf("unknown lesson: %s", *lesson)
		}
	}

	id, err := a.notes.Save(notes.SaveRequest{
		UserID:   a.user.ID,
		LessonID: *lesson,
		Module:   *module,
		Topic:    *topic,
		Content:  content,
		Tags:     splitTags(*tags),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added note %s\n", id)
	return nil
}

func (a *app) cmdNoteList(args []string) error {
	fs := flag.NewFlagSet("note list", flag.ContinueOnError)
	search := fs.String("search", "", "substring to match in content or topic")
	module := fs.String("module", "", "only notes in this module")
	sortBy := fs.String("sort", "created_desc", "created_desc, created_asc, title_asc or favorites_first")
	limit := fs.Int("limit", 0, "page size (0 = all)")
	page := fs.Int("page", 1, "page number, starting at 1")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f := notes.Filter{
		Search: *search,
		Module: *module,
		SortBy: notes.SortOrder(*sortBy),
		Limit:  *limit,
	}
	if *limit > 0 && *page > 1 {
		f.Offset = (*page - 1) * *limit
	}

	list, err := a.notes.List(a.user.ID, f)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No notes found.")
		return nil
	}

	for _, n := range list {
		marker := " "
		if n.Favorite {
			marker = "*"
		}
		fmt.Printf("%s %s  %s\n", marker, n.ID[:8], n.Topic)
		fmt.Printf("    %s | %s", n.Module, n.CreatedAt.Format("2006-01-02"))
		if len(n.Tags) > 0 {
			fmt.Printf(" | %s", strings.Join(n.Tags, ", "))
		}
		fmt.Println()
	}
	fmt.Printf("\n%d note(s)\n", len(list))
	return nil
}

func (a *app) cmdNoteShow(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("note id required")
	}
	id, err := a.resolveNoteID(args[0])
	if err != nil {
		return err
	}
	n, err := a.notes.Get(id)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", n.Topic)
	fmt.Println(strings.Repeat("=", len(n.Topic)))
	fmt.Println(n.Content)
	fmt.Println()
	fmt.Printf("id:       %s\n", n.ID)
	fmt.Printf("module:   %s\n", n.Module)
	if n.LessonID != "" {
		fmt.Printf("lesson:   %s\n", n.LessonID)
	}
	if len(n.Tags) > 0 {
		fmt.Printf("tags:     %s\n", strings.Join(n.Tags, ", "))
	}
	fmt.Printf("favorite: %v\n", n.Favorite)
	fmt.Printf("created:  %s\n", n.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("updated:  %s\n", n.UpdatedAt.Format("2006-01-02 15:04"))
	return nil
}

func (a *app) cmdNoteEdit(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("note id required")
	}
	fs := flag.NewFlagSet("note edit", flag.ContinueOnError)
	content := fs.String("content", "", "replacement content")
	tags := fs.String("tags", "", "replacement comma-separated tags")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	id, err := a.resolveNoteID(args[0])
	if err != nil {
		return err
	}

	var newContent *string
	if *content != "" {
		newContent = content
	}
	var newTags []string
	if *tags != "" {
		newTags = splitTags(*tags)
	}
	if newContent == nil && newTags == nil {
		return fmt.Errorf("nothing to update (use -content or -tags)")
	}

	if err := a.notes.Update(id, newContent, newTags); err != nil {
		return err
	}
	fmt.Println("Note updated.")
	return nil
}

func (a *app) cmdNoteFavorite(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("note id required")
	}
	id, err := a.resolveNoteID(args[0])
	if err != nil {
		return err
	}
	favorite, err := a.notes.ToggleFavorite(id)
	if err != nil {
		return err
	}
	if favorite {
		fmt.Println("Marked as favorite.")
	} else {
		fmt.Println("Removed from favorites.")
	}
	return nil
}

func (a *app) cmdNoteDelete(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("note id required")
	}
	id, err := a.resolveNoteID(args[0])
	if err != nil {
		return err
	}
	deleted, err := a.notes.Delete(id)
	if err != nil {
		return err
	}
	if deleted {
		fmt.Println("Note deleted.")
	} else {
		fmt.Println("No such note; nothing to delete.")
	}
	return nil
}

func (a *app) cmdNoteStats() error {
	stats, err := a.notes.Statistics(a.user.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Note Statistics for %s\n", a.user.Name)
	fmt.Println("==========================")
	fmt.Printf("Total:        %d\n", stats.Total)
	fmt.Printf("Favorites:    %d\n", stats.Favorites)
	fmt.Printf("Last 7 days:  %d\n", stats.CreatedLastWeek)

	if len(stats.PerModule) > 0 {
		fmt.Println("\nBy Module")
		fmt.Println("---------")
		modules := make([]string, 0, len(stats.PerModule))
		for m := range stats.PerModule {
			modules = append(modules, m)
		}
		sort.Strings(modules)
		for _, m := range modules {
			fmt.Printf("  %-20s %d\n", m, stats.PerModule[m])
		}
	}
	return nil
}

func (a *app) cmdNoteExport(args []string) error {
	fs := flag.NewFlagSet("note export", flag.ContinueOnError)
	format := fs.String("format", "markdown", "markdown, json, html or xlsx")
	out := fs.String("o", "", "output file (default stdout; required for xlsx)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := notes.ParseFormat(*format)
	if err != nil {
		return err
	}
	if f == notes.FormatXLSX && *out == "" {
		return fmt.Errorf("xlsx export needs an output file (use -o)")
	}

	data, err := a.notes.Export(a.user.ID, f)
	if err != nil {
		return err
	}

	if *out == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Printf("Exported notes to %s\n", *out)
	return nil
}

func (a *app) cmdNoteCleanup() error {
	valid := a.curriculum.OrderedLessonIDs()
	removed, err := a.notes.CleanupOrphaned(valid)
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d orphaned note(s).\n", removed)
	return nil
}

// resolveNoteID accepts a full note ID or an unambiguous prefix, as shown
// by 'note list'.
func (a *app) resolveNoteID(arg string) (string, error) {
	list, err := a.notes.List(a.user.ID, notes.Filter{})
	if err != nil {
		return "", err
	}
	var match string
	for _, n := range list {
		if n.ID == arg {
			return arg, nil
		}
		if strings.HasPrefix(n.ID, arg) {
			if match != "" {
				return "", fmt.Errorf("ambiguous note id prefix: %s", arg)
			}
			match = n.ID
		}
	}
	if match == "" {
		// Let the store produce its not-found error for a consistent
		// message, or the caller may be deleting an already-gone note.
		return arg, nil
	}
	return match, nil
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
