package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"worklog/internal/modules/tracking/dto"
	"worklog/internal/ui/theme"
)

const defaultTick = 200 * time.Millisecond

// trackerPort is the slice of the tracking module the dashboard needs.
type trackerPort interface {
	Send(ctx context.Context, kind dto.IntentKind)
	Type(ctx context.Context, r rune)
	Snapshot(ctx context.Context) dto.Snapshot
}

type tickMsg time.Time

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Toggle key.Binding
	Stop   key.Binding
	Note   key.Binding
	Delete key.Binding
	Up     key.Binding
	Down   key.Binding
	Edit   key.Binding
	Clear  key.Binding
	Prev   key.Binding
	Next   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Stop:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Note:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "note")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Edit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Clear:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Prev:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev day")),
		Next:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next day")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Stop, k.Note, k.Delete, k.Up, k.Down, k.Edit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Stop, k.Note},
		{k.Up, k.Down, k.Edit, k.Delete, k.Clear},
		{k.Prev, k.Next},
		{k.Help, k.Quit},
	}
}

type editKeyMap struct {
	Commit    key.Binding
	Cancel    key.Binding
	Backspace key.Binding
	Quit      key.Binding
}

func defaultEditKeys() editKeyMap {
	return editKeyMap{
		Commit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k editKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Cancel, k.Backspace}
}

func (k editKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the dashboard. Every key press becomes one tracker intent; the
// model only keeps the latest snapshot and layout state.
type Model struct {
	tracker  trackerPort
	interval time.Duration

	keys     keyMap
	editKeys editKeyMap
	help     help.Model
	gauge    progress.Model

	snap   dto.Snapshot
	width  int
	height int
}

func NewModel(tracker trackerPort, interval time.Duration) Model {
	if interval <= 0 {
		interval = defaultTick
	}
	gauge := progress.New(
		progress.WithSolidFill(string(theme.Green)),
		progress.WithoutPercentage(),
	)
	gauge.EmptyColor = string(theme.Yellow)
	return Model{
		tracker:  tracker,
		interval: interval,
		keys:     defaultKeys(),
		editKeys: defaultEditKeys(),
		help:     help.New(),
		gauge:    gauge,
		snap:     tracker.Snapshot(context.Background()),
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.send(dto.IntentTick)
		return m, tickCmd(m.interval)

	case tea.KeyMsg:
		if m.snap.Editing {
			return m.updateEditing(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Toggle):
		m.send(dto.IntentToggle)
	case key.Matches(msg, m.keys.Stop):
		m.send(dto.IntentStop)
	case key.Matches(msg, m.keys.Note):
		m.send(dto.IntentEditCurrent)
	case key.Matches(msg, m.keys.Delete):
		m.send(dto.IntentDeleteSelected)
	case key.Matches(msg, m.keys.Up):
		m.send(dto.IntentSelectPrev)
	case key.Matches(msg, m.keys.Down):
		m.send(dto.IntentSelectNext)
	case key.Matches(msg, m.keys.Edit):
		m.send(dto.IntentEditSelected)
	case key.Matches(msg, m.keys.Clear):
		m.send(dto.IntentClearSelection)
	case key.Matches(msg, m.keys.Prev):
		m.send(dto.IntentPrevDay)
	case key.Matches(msg, m.keys.Next):
		m.send(dto.IntentNextDay)
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.editKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.editKeys.Commit):
		m.send(dto.IntentCommitEdit)
	case key.Matches(msg, m.editKeys.Cancel):
		m.send(dto.IntentCancelEdit)
	case key.Matches(msg, m.editKeys.Backspace):
		m.send(dto.IntentBackspace)
	case msg.Type == tea.KeySpace:
		m.typeRunes([]rune{' '})
	case msg.Type == tea.KeyRunes:
		m.typeRunes(msg.Runes)
	}
	return m, nil
}

// send applies one intent and refreshes the snapshot.
func (m *Model) send(kind dto.IntentKind) {
	ctx := context.Background()
	m.tracker.Send(ctx, kind)
	m.snap = m.tracker.Snapshot(ctx)
}

func (m *Model) typeRunes(runes []rune) {
	ctx := context.Background()
	for _, r := range runes {
		if r == '\n' || r == '\r' || r == '\t' {
			r = ' '
		}
		m.tracker.Type(ctx, r)
	}
	m.snap = m.tracker.Snapshot(ctx)
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
