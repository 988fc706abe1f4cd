package main

import (
	"flag"
	"fmt"
)

// cmdContinue shows the next lesson the user should work on.
func (a *app) cmdContinue() error {
	next, ok, err := a.progress.FirstIncompleteLesson(a.user.ID, a.curriculum.OrderedLessonIDs())
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("All lessons complete. Nothing left to do!")
		return nil
	}

	lesson, module, found := a.curriculum.Find(next)
	if !found {
		// Curriculum changed between lookup and render; just show the ID.
		fmt.Printf("Next up: %s\n", next)
		return nil
	}
	fmt.Printf("Next up: %s (%s)\n", lesson.Title, module.Name)
	fmt.Printf("  lesson id: %s | points: %d\n", lesson.ID, lesson.Points)
	return nil
}

// cmdProgress shows completion across the curriculum.
func (a *app) cmdProgress() error {
	total := a.curriculum.TotalLessons()
	pct, err := a.progress.CompletionPercentage(a.user.ID, total)
	if err != nil {
		return err
	}
	entries, err := a.progress.GetProgress(a.user.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Progress for %s\n", a.user.Name)
	fmt.Println("========================")
	fmt.Printf("Overall: %s %.1f%% (%d lessons, %d points)\n\n",
		renderProgressBar(pct/100, 20), pct, total, a.user.TotalPoints)

	for _, m := range a.curriculum.Modules {
		completed := 0
		for _, l := range m.Lessons {
			if e, ok := entries[l.ID]; ok && e.Completed {
				completed++
			}
		}
		fmt.Printf("%s (%d/%d)\n", m.Name, completed, len(m.Lessons))
		for _, l := range m.Lessons {
			marker := "[ ]"
			detail := ""
			if e, ok := entries[l.ID]; ok {
				if e.Completed {
					marker = "[x]"
				}
				if e.QuizScore != nil {
					detail = fmt.Sprintf(" (quiz %.1f%%)", *e.QuizScore)
				}
			}
			fmt.Printf("  %s %s%s\n", marker, l.Title, detail)
		}
		fmt.Println()
	}
	return nil
}

// cmdComplete marks a lesson as completed.
func (a *app) cmdComplete(args []string) error {
	fs := flag.NewFlagSet("complete", flag.ContinueOnError)
	timeSpent := fs.Int("time", 0, "time spent in seconds")
	score := fs.Float64("score", -1, "quiz score percentage (0-100)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("lesson id required (see 'lessonlog progress' for ids)")
	}
	lessonID := fs.Arg(0)

	lesson, _, found := a.curriculum.Find(lessonID)
	if !found {
		return fmt.Errorf("unknown lesson: %s", lessonID)
	}

	var quizScore *float64
	if *score >= 0 {
		if *score > 100 {
			return fmt.Errorf("quiz score must be between 0 and 100")
		}
		quizScore = score
	}

	if quizScore != nil || *timeSpent > 0 {
		// Record the reported time/score first; MarkComplete preserves
		// them. Keep the current completion state so points are not
		// awarded twice for a lesson completed earlier.
		entries, err := a.progress.GetProgress(a.user.ID)
		if err != nil {
			return err
		}
		alreadyDone := entries[lessonID].Completed
		if err := a.progress.SaveProgress(a.user.ID, lessonID, alreadyDone, *timeSpent, quizScore); err != nil {
			return err
		}
	}
	if err := a.progress.MarkComplete(a.user.ID, lessonID, lesson.Points); err != nil {
		return err
	}

	fmt.Printf("Completed %s (+%d points)\n", lesson.Title, lesson.Points)
	return nil
}
