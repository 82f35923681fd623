package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"worklog/internal/modules/tracking/domain"
	trackingout "worklog/internal/modules/tracking/port/out"
	"worklog/internal/platform/markdown"
	"worklog/internal/platform/timefmt"
)

const (
	sessionsBlockStart = "<!-- worklog:sessions:start -->"
	sessionsBlockEnd   = "<!-- worklog:sessions:end -->"
)

// MarkdownDayExporter writes one journal note per day under
// <root>/YYYY/MM/DD.md. Text outside the generated session table and any
// frontmatter keys it does not own are kept across exports.
type MarkdownDayExporter struct {
	root string
}

func NewMarkdownDayExporter(root string) trackingout.DayExporter {
	return &MarkdownDayExporter{root: root}
}

func (e *MarkdownDayExporter) Export(_ context.Context, day domain.DayLog) (string, error) {
	path := filepath.Join(e.root,
		fmt.Sprintf("%04d", day.Date.Year),
		fmt.Sprintf("%02d", int(day.Date.Month)),
		fmt.Sprintf("%02d.md", day.Date.Day))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create journal directory: %w", err)
	}

	meta := map[string]any{}
	body := ""
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		// A note that cannot be split is left alone rather than rewritten.
		rest, splitErr := markdown.SplitFrontmatter(string(existing), &meta)
		if splitErr != nil {
			return "", fmt.Errorf("read journal note %s: %w", path, splitErr)
		}
		body = rest
	case !os.IsNotExist(err):
		return "", fmt.Errorf("read journal note: %w", err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	if strings.TrimSpace(body) == "" {
		body = fmt.Sprintf("# %s\n", day.Date)
	}
	body = markdown.ReplaceManagedBlock(body, sessionsBlockStart, sessionsBlockEnd, sessionTable(day))

	meta["date"] = day.Date.String()
	meta["work"] = timefmt.Clock(day.Totals.Work)
	meta["break"] = timefmt.Clock(day.Totals.Break)
	meta["sessions"] = len(day.Sessions)
	meta["schema"] = domain.SchemaVersion

	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write journal note: %w", err)
	}
	return path, nil
}

func sessionTable(day domain.DayLog) string {
	loc := day.Location
	if loc == nil {
		loc = time.Local
	}
	b := strings.Builder{}
	b.WriteString("| Start | End | Type | Time | Note |\n")
	b.WriteString("|---|---|---|---|---|\n")
	// Oldest first reads naturally in a journal.
	for i := len(day.Sessions) - 1; i >= 0; i-- {
		s := day.Sessions[i]
		end := "Active"
		spent := ""
		if s.EndTime != nil {
			end = s.EndTime.In(loc).Format("15:04:05")
			spent = timefmt.Clock(s.Duration(*s.EndTime))
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			s.StartTime.In(loc).Format("15:04"), end, s.Kind, spent, escapeCell(s.Note))
	}
	return b.String()
}

func escapeCell(text string) string {
	text = strings.ReplaceAll(text, "|", `\|`)
	return strings.ReplaceAll(text, "\n", " ")
}
