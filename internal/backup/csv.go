package backup

import (
	"fmt"
	"io"
	"strings"

	"taskify/internal/category"
	"taskify/internal/task"
)

const csvHeader = "Title,Description,Priority,Category,Completed,Due Date,Created At"

// WriteCSV writes one row per task in a fixed column order. Title and
// description are always quoted with embedded quotes doubled; category ids
// resolve to names, dates render as UTC calendar days.
func WriteCSV(w io.Writer, tasks []task.Task, categories []category.Category) error {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for _, t := range tasks {
		completed := "No"
		if t.IsCompleted {
			completed = "Yes"
		}
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.UTC().Format("2006-01-02")
		}
		row := []string{
			quoteCSV(t.Title),
			quoteCSV(t.Description),
			string(t.Priority),
			names[t.CategoryID],
			completed,
			due,
			t.CreatedAt.UTC().Format("2006-01-02"),
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
