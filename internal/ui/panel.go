package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/idilsaglam/lostfound/internal/model"
)

// Output targets; tests swap them for buffers.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

func OK(msg string) {
	t := Current()
	fmt.Fprintln(Stdout, t.Success.Render(t.SymOK+" "+msg))
}

func Fail(msg string) {
	t := Current()
	fmt.Fprintln(Stderr, t.Error.Render(t.SymFail+" "+msg))
}

// Hint prints a muted follow-up line on stderr.
func Hint(msg string) {
	fmt.Fprintln(Stderr, Current().Muted.Render(msg))
}

// PanelString frames inner with the theme border.
func PanelString(inner string) string {
	t := Current()
	border := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return border.Render(inner)
}

// Panel draws a framed box.
func Panel(lines []string) {
	fmt.Fprintln(Stdout, PanelString(strings.Join(lines, "\n")))
}

// ProgressBar renders a Unicode progress bar with a done/total counter.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 0 {
		width = 28
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf("] %d/%d", done, total)
}

// Truncate shortens s to at most width terminal cells.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

// ScoreBadge renders "<score>% Match" coloured by tier.
func ScoreBadge(m model.MatchCandidate) string {
	t := Current()
	label := fmt.Sprintf("%d%% Match", m.Score)
	switch m.Tier() {
	case model.TierHigh:
		return t.High.Render(label)
	case model.TierMedium:
		return t.Medium.Render(label)
	}
	return t.Low.Render(label)
}

// RouteLabel is the route name preceded by a dot in the route colour.
func RouteLabel(r model.Route, ok bool) string {
	if !ok {
		return Current().Muted.Render("unknown route")
	}
	color := r.Color
	if color == "" {
		color = "#6B7280"
	}
	dot := "●"
	if !Current().Plain {
		dot = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(dot)
	}
	return dot + " " + Current().Title.Render(r.Name)
}

func KindLabel(k model.Kind) string {
	t := Current()
	if k == model.KindFound {
		return t.Found.Render(t.SymFound)
	}
	return t.Lost.Render(t.SymLost)
}

func StatusLabel(s model.Status) string {
	t := Current()
	switch s {
	case model.StatusOpen:
		return t.Pending.Render(s.String())
	case model.StatusClaimed:
		return t.Accent.Render(s.String())
	}
	return t.Success.Render(s.String())
}
