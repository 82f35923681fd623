package dto

import "time"

type IntentKind int

const (
	IntentTick IntentKind = iota
	IntentToggle
	IntentStop
	IntentPrevDay
	IntentNextDay
	IntentSelectNext
	IntentSelectPrev
	IntentClearSelection
	IntentDeleteSelected
	IntentEditCurrent
	IntentEditSelected
	IntentCommitEdit
	IntentCancelEdit
	IntentInsertRune
	IntentBackspace
)

// Intent is one user signal for the tracker. Rune is only read for IntentInsertRune.
type Intent struct {
	Kind IntentKind
	Rune rune
}

type SessionView struct {
	ID       string
	Kind     string
	Label    string
	Start    time.Time
	End      *time.Time
	Duration time.Duration
	Note     string
}

type Row struct {
	SessionView
	Active   bool
	Selected bool
}

// Snapshot is everything the dashboard renders for one frame.
type Snapshot struct {
	Now         time.Time
	Active      SessionView
	HasActive   bool
	Date        string
	IsToday     bool
	Work        time.Duration
	Break       time.Duration
	Ratio       float64
	Rows        []Row
	Selected    int
	Editing     bool
	EditingPast bool
	Buffer      string
	Frame       int
}

type StatusOutput struct {
	Last       SessionView
	HasLast    bool
	Open       bool
	Stale      bool
	Date       string
	Work       time.Duration
	Break      time.Duration
	Sessions   int
	TodayCount int
}

type ReindexOutput struct {
	Sessions int
}

type ReportInput struct {
	Days int
}

type DayReport struct {
	Date     string
	Work     time.Duration
	Break    time.Duration
	Sessions int
}

type ReportOutput struct {
	From  string
	To    string
	Days  []DayReport
	Work  time.Duration
	Break time.Duration
}

type ExportInput struct {
	Date string
}

type ExportOutput struct {
	Path     string
	Date     string
	Sessions int
}
