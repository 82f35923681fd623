package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"worklog/internal/ui/theme"
)

// Companion frames are all the same height so the panel never jumps.
var (
	workFrames = []string{
		`
     *
   /\_/\
  ( o.o )
  /|   |\_
 [=======]`,
		`
        *
   /\_/\
  ( o.o )
 _/|   |\
 [=======]`,
		`
     .
   /\_/\
  ( ^.^ )
  /|   |\_
 [=======]`,
		`
        .
   /\_/\
  ( o.o )
 _/|   |\
 [=======]`,
	}

	breakFrames = []string{
		`
    ( (
     ) )
  .______.
  |      |]
  '------'`,
		`
     ) )
    ( (
  .______.
  |      |]
  '------'`,
	}

	idleFrame = `
          z
   /\_/\ z
  ( -.- )
   > ^ <
  (______)`
)

// CompanionFrame picks the art for kind at animation step frame. Idle never
// animates.
func CompanionFrame(kind string, frame int) string {
	var frames []string
	switch kind {
	case "Work":
		frames = workFrames
	case "Break":
		frames = breakFrames
	default:
		return strings.TrimPrefix(idleFrame, "\n")
	}
	if frame < 0 {
		frame = -frame
	}
	return strings.TrimPrefix(frames[frame%len(frames)], "\n")
}

// Companion renders the framed, colored companion panel.
func Companion(kind string, frame, width, height int) string {
	art := lipgloss.NewStyle().Foreground(theme.KindColor(kind)).Render(CompanionFrame(kind, frame))
	return theme.Pane.
		BorderForeground(theme.KindColor(kind)).
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(art)
}
