package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box border.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Lost, Found                                   lipgloss.Style
	High, Medium, Low                             lipgloss.Style
	Border                                        lipgloss.Border
	BorderColor                                   lipgloss.TerminalColor
	SymOK, SymFail, SymLost, SymFound             string
	Plain                                         bool // no colors (route dots render as text)
}

var current = classic()

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		t := classic()
		t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
		t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		t.BorderColor = lipgloss.Color("13")
		current = t
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Title: plain.Bold(true), Muted: plain, Accent: plain,
			Success: plain, Error: plain, Pending: plain,
			Lost: plain, Found: plain,
			High: plain, Medium: plain, Low: plain,
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.NoColor{},
			SymOK:       "ok",
			SymFail:     "error:",
			SymLost:     "LOST",
			SymFound:    "FOUND",
			Plain:       true,
		}
	default:
		current = classic()
	}
}

func classic() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Bold(true),
		Muted:       lipgloss.NewStyle().Faint(true),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Lost:        lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
		Found:       lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
		High:        lipgloss.NewStyle().Foreground(lipgloss.Color("22")).Background(lipgloss.Color("157")).Padding(0, 1),
		Medium:      lipgloss.NewStyle().Foreground(lipgloss.Color("94")).Background(lipgloss.Color("229")).Padding(0, 1),
		Low:         lipgloss.NewStyle().Foreground(lipgloss.Color("236")).Background(lipgloss.Color("252")).Padding(0, 1),
		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),
		SymOK:       "✔",
		SymFail:     "✖",
		SymLost:     "LOST",
		SymFound:    "FOUND",
	}
}

// Current exposes the active theme to renderers.
func Current() Theme { return current }
