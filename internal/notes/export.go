package notes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/lessonlog/lessonlog/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Format selects the rendering for Export.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
	FormatXLSX     Format = "xlsx"
)

// ParseFormat maps a user-supplied format name to a Format. Unsupported
// names are an input error.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "html":
		return FormatHTML, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: unsupported export format %q", domain.ErrInvalidInput, s)
	}
}

// Export renders all of the user's notes, newest first, as a single blob
// in the given format.
func (s *Service) Export(userID string, format Format) ([]byte, error) {
	list, err := s.store.List(userID, Filter{SortBy: SortCreatedDesc})
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatMarkdown:
		return exportMarkdown(list), nil
	case FormatJSON:
		return exportJSON(list)
	case FormatHTML:
		return exportHTML(list)
	case FormatXLSX:
		return exportXLSX(list)
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q", domain.ErrInvalidInput, format)
	}
}

func exportMarkdown(list []*domain.Note) []byte {
	var b strings.Builder
	b.WriteString("# Notes\n")
	for _, n := range list {
		fmt.Fprintf(&b, "\n## %s\n\n", n.Topic)
		b.WriteString(n.Content)
		b.WriteString("\n")
		if len(n.Tags) > 0 {
			fmt.Fprintf(&b, "\nTags: %s\n", strings.Join(n.Tags, ", "))
		}
		fmt.Fprintf(&b, "\nCreated: %s\n", n.CreatedAt.Format("2006-01-02 15:04"))
	}
	return []byte(b.String())
}

func exportJSON(list []*domain.Note) ([]byte, error) {
	// Keep the output an array even when there are no notes.
	if list == nil {
		list = []*domain.Note{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal notes: %w", err)
	}
	return data, nil
}

var htmlTemplate = template.Must(template.New("notes").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Notes</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; }
section { border-bottom: 1px solid #ddd; padding: 1rem 0; }
.tags { color: #567; font-size: 0.9rem; }
.date { color: #999; font-size: 0.8rem; }
</style>
</head>
<body>
<h1>Notes</h1>
{{range .}}<section>
<h2>{{.Topic}}</h2>
<p>{{.Content}}</p>
{{if .Tags}}<p class="tags">Tags: {{range $i, $t := .Tags}}{{if $i}}, {{end}}{{$t}}{{end}}</p>{{end}}
<p class="date">Created: {{.CreatedAt.Format "2006-01-02 15:04"}}</p>
</section>
{{end}}</body>
</html>
`))

func exportHTML(list []*domain.Note) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, list); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

func exportXLSX(list []*domain.Note) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Notes"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"Topic", "Module", "Lesson", "Content", "Tags", "Favorite", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, n := range list {
		values := []any{
			n.Topic, n.Module, n.LessonID, n.Content,
			strings.Join(n.Tags, ", "), n.Favorite,
			n.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
