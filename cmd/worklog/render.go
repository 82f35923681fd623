package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"worklog/internal/modules/tracking/dto"
	"worklog/internal/platform/timefmt"
)

func kindLabel(kind, label string) string {
	switch kind {
	case "Work":
		return color.New(color.FgGreen, color.Bold).Sprint(label)
	case "Break":
		return color.New(color.FgYellow, color.Bold).Sprint(label)
	default:
		return color.New(color.FgRed, color.Bold).Sprint(label)
	}
}

func renderStatus(out dto.StatusOutput) string {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true

	tbl.AddRow("date", out.Date)
	if !out.HasLast {
		tbl.AddRow("last", "no sessions recorded")
	} else {
		last := out.Last
		state := "running"
		switch {
		case out.Stale:
			state = "open, stale"
		case last.End != nil:
			state = "ended " + last.End.Format("15:04")
		}
		tbl.AddRow("last", fmt.Sprintf("%s since %s (%s, %s)",
			kindLabel(last.Kind, last.Label), last.Start.Format("15:04"), timefmt.Clock(last.Duration), state))
		if last.Note != "" {
			tbl.AddRow("note", last.Note)
		}
	}
	tbl.AddRow("work", timefmt.Clock(out.Work))
	tbl.AddRow("break", timefmt.Clock(out.Break))
	tbl.AddRow("sessions", fmt.Sprintf("%d today, %d total", out.TodayCount, out.Sessions))
	return tbl.String()
}

func renderReportPlain(out dto.ReportOutput) string {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("DATE", "WORK", "BREAK", "SESSIONS")
	for _, day := range out.Days {
		tbl.AddRow(day.Date, timefmt.Clock(day.Work), timefmt.Clock(day.Break), day.Sessions)
	}
	tbl.AddRow("total", timefmt.Clock(out.Work), timefmt.Clock(out.Break), "")
	return tbl.String()
}

func reportMarkdown(out dto.ReportOutput) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "# Work report %s to %s\n\n", out.From, out.To)
	b.WriteString("| Date | Work | Break | Sessions |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	for _, day := range out.Days {
		fmt.Fprintf(&b, "| %s | %s | %s | %d |\n", day.Date, timefmt.Clock(day.Work), timefmt.Clock(day.Break), day.Sessions)
	}
	fmt.Fprintf(&b, "| **Total** | **%s** | **%s** | |\n", timefmt.Clock(out.Work), timefmt.Clock(out.Break))
	return b.String()
}

func renderReportMarkdown(out dto.ReportOutput) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(reportMarkdown(out))
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return rendered, nil
}
