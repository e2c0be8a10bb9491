package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize/english"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/skimreader/skim/reader"
)

var (
	chunkStyle = lipgloss.NewStyle().Bold(true)
	focusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
)

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "\n  initializing..."
	}

	snap := m.session.Snapshot()

	if m.showPreview {
		return m.previewView(snap)
	}
	return m.readerView(snap)
}

func (m model) readerView(snap reader.SessionState) string {
	var b strings.Builder

	b.WriteString("\n" + m.titleLine() + "\n\n")

	// Vertical filler puts the chunk roughly a third down the screen.
	filler := m.height/3 - 4
	for i := 0; i < filler; i++ {
		b.WriteByte('\n')
	}

	b.WriteString(m.chunkLine(snap) + "\n\n")
	b.WriteString(m.centered(m.progress.ViewAs(snap.Progress)) + "\n\n")
	b.WriteString(m.centered(m.statusLine(snap)) + "\n")
	if m.note != "" {
		b.WriteString(m.centered(noteStyle.Render(m.note)) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m model) previewView(snap reader.SessionState) string {
	var b strings.Builder
	b.WriteString("\n" + m.titleLine() + "\n\n")
	b.WriteString(m.preview)
	b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("  chunk %d of %d · tab to return", snap.Index+1, max(snap.TotalChunks, 1))))
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m model) titleLine() string {
	title := m.cfg.Path
	if title == "" {
		title = "(stdin)"
	}
	return "  " + titleStyle.Render("skim") + " " + dimStyle.Render(title)
}

// chunkLine renders the current chunk with its focus letter highlighted
// and placed at the horizontal center of the terminal.
func (m model) chunkLine(snap reader.SessionState) string {
	if snap.Current == nil {
		text := "press space to start"
		if snap.Processing && snap.TotalChunks == 0 {
			text = m.spinner.View() + " segmenting..."
		} else if snap.State == reader.StateFinished {
			text = "done · space to replay"
		}
		return m.centered(dimStyle.Render(text))
	}

	left, focus, right := splitFocus(snap.Current.Text)

	// Pad so the focus letter sits at the center column.
	pad := m.width/2 - runewidth.StringWidth(left)
	if pad < 0 {
		pad = 0
	}

	return strings.Repeat(" ", pad) +
		chunkStyle.Render(left) +
		focusStyle.Render(focus) +
		chunkStyle.Render(right)
}

// splitFocus splits a chunk around the focus letter of its middle word.
func splitFocus(text string) (left, focus, right string) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return "", text, ""
	}
	mid := len(words) / 2

	runes := []rune(words[mid])
	idx := focusIndex(len(runes))

	prefix := strings.Join(words[:mid], " ")
	if prefix != "" {
		prefix += " "
	}
	suffix := strings.Join(words[mid+1:], " ")
	if suffix != "" {
		suffix = " " + suffix
	}

	left = prefix + string(runes[:idx])
	focus = string(runes[idx])
	right = string(runes[idx+1:]) + suffix
	return left, focus, right
}

// focusIndex picks the optimal recognition point for a word of n runes:
// slightly left of center, like hardware RSVP readers do.
func focusIndex(n int) int {
	switch {
	case n <= 1:
		return 0
	case n <= 5:
		return 1
	case n <= 9:
		return 2
	case n <= 13:
		return 3
	default:
		return 4
	}
}

func (m model) statusLine(snap reader.SessionState) string {
	cfg := m.session.Timing()

	parts := []string{
		stateLabel(snap.State),
		fmt.Sprintf("%d/%s", snap.Index+1, english.Plural(snap.TotalChunks, "chunk", "")),
		fmt.Sprintf("%d wpm set", cfg.BaseWPM),
	}
	if snap.InstantWPM > 0 {
		parts = append(parts, fmt.Sprintf("%d now", snap.InstantWPM))
	}
	if snap.AverageWPM > 0 {
		parts = append(parts, fmt.Sprintf("%d avg", snap.AverageWPM))
	}
	if snap.Processing {
		parts = append(parts, m.spinner.View()+" streaming")
	}

	return dimStyle.Render(strings.Join(parts, " · "))
}

func stateLabel(state reader.PlaybackState) string {
	switch state {
	case reader.StatePlaying:
		return "▶ playing"
	case reader.StatePaused:
		return "⏸ paused"
	case reader.StateFinished:
		return "■ finished"
	default:
		return "○ idle"
	}
}

// centered centers a rendered line within the terminal width.
func (m model) centered(s string) string {
	pad := (m.width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

// renderPreview renders the source document for the preview pane.
func (m model) renderPreview() string {
	width := m.width - 4
	if m.cfg.GlamourMaxWidth > 0 && int(m.cfg.GlamourMaxWidth) < width {
		width = int(m.cfg.GlamourMaxWidth)
	}
	if width < 20 {
		width = 20
	}

	if m.cfg.GlamourEnabled {
		opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
		if m.cfg.GlamourStyle == "" || m.cfg.GlamourStyle == "auto" {
			opts = append(opts, glamour.WithAutoStyle())
		} else {
			opts = append(opts, glamour.WithStylePath(m.cfg.GlamourStyle))
		}
		if r, err := glamour.NewTermRenderer(opts...); err == nil {
			if out, err := r.Render(m.document); err == nil {
				return out
			}
		}
	}

	return wordwrap.String(m.document, width)
}
