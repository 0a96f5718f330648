package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pomoterm/internal/modules/history/domain"
	historyout "pomoterm/internal/modules/history/port/out"
	"pomoterm/internal/platform/markdown"
	"pomoterm/internal/platform/slug"
)

// MarkdownExporter writes a report as a markdown document with YAML
// frontmatter, named after the slugged title and the generation date.
type MarkdownExporter struct{}

func NewMarkdownExporter() historyout.ReportExporter {
	return MarkdownExporter{}
}

func (MarkdownExporter) Export(_ context.Context, dir string, report domain.Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	meta := map[string]any{
		"title":        report.Title,
		"generated_at": report.GeneratedAt.Format(time.RFC3339),
		"sessions":     len(report.Rows),
	}
	content, err := markdown.RenderFrontmatter(meta, renderBody(report))
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%s.md", slug.Make(report.Title), report.GeneratedAt.Format("2006-01-02"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

func renderBody(report domain.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", report.Title)

	if len(report.Stats) > 0 {
		b.WriteString("## Totals\n\n")
		b.WriteString("| Kind | Sessions | Time |\n")
		b.WriteString("| --- | ---: | ---: |\n")
		for _, row := range report.Stats {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", row.Kind, row.Sessions, formatDuration(row.TotalSeconds))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Sessions\n\n")
	if len(report.Rows) == 0 {
		b.WriteString("No sessions recorded.\n")
		return b.String()
	}
	for _, row := range report.Rows {
		line := fmt.Sprintf("- %s %s (%s, %s)", row.StartTime.Format("2006-01-02 15:04"), row.Kind, formatDuration(row.DurationSeconds), row.Status)
		if row.Goal != "" {
			line += fmt.Sprintf(": %s", row.Goal)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func formatDuration(seconds int) string {
	d := time.Duration(seconds) * time.Second
	if d >= time.Hour {
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), seconds%60)
}
