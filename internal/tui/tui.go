package tui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"golang.org/x/term"

	"github.com/idilsaglam/lostfound/internal/matcher"
	"github.com/idilsaglam/lostfound/internal/model"
	"github.com/idilsaglam/lostfound/internal/ui"
)

// Saver persists the full item collection when the browser quits.
type Saver interface {
	Save(items []model.Item) error
}

// listItem adapts an Item to bubbles/list.Item
type listItem struct {
	item  model.Item
	route string
}

func (i listItem) Title() string { return i.item.Description }
func (i listItem) Description() string {
	return fmt.Sprintf("%s · %s · %s · %s", i.item.Category, i.item.Location, i.item.Date.Display(), i.route)
}
func (i listItem) FilterValue() string {
	return i.item.Description + " " + i.item.Location + " " + i.item.Category
}

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	closedStyle   = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	text := ui.Truncate(it.item.Description, 50)
	if !it.item.IsOpen() {
		text = closedStyle.Render(text)
	}
	line := fmt.Sprintf("%-5s %s  %s  %s",
		ui.KindLabel(it.item.Kind), text,
		ui.StatusLabel(it.item.Status),
		ui.Current().Muted.Render(it.item.Location))
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// fuzzyFilter ranks list entries with sahilm/fuzzy, best first.
func fuzzyFilter(needle string, targets []string) []list.Rank {
	matches := fuzzy.Find(needle, targets)
	sort.Stable(matches)
	ranks := make([]list.Rank, len(matches))
	for i, m := range matches {
		ranks[i] = list.Rank{Index: m.Index, MatchedIndexes: m.MatchedIndexes}
	}
	return ranks
}

type modelTUI struct {
	list    list.Model
	items   []model.Item // full collection, including filtered-out entries
	filter  model.Filter
	routes  []model.Route
	matches []model.MatchCandidate
	changed bool

	showMatches bool
	width       int
	height      int

	// Inline edit of the description
	editing bool
	editID  string
	ti      textinput.Model
	editErr string

	// Undo support (single-level)
	canUndo   bool
	undoIndex int
	undoItem  *model.Item
}

func newModel(items []model.Item, routes []model.Route, f model.Filter) modelTUI {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Filter = fuzzyFilter
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("report", "reports")

	statusBind := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "status"))
	deleteBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	undoBind := key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	matchBind := key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "matches"))
	extra := func() []key.Binding { return []key.Binding{statusBind, deleteBind, editBind, undoBind, matchBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	m := modelTUI{
		list:   l,
		items:  append([]model.Item(nil), items...),
		filter: f,
		routes: routes,
		width:  80,
		height: 24,
	}
	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.CharLimit = 200
	m.refresh()
	return m
}

// refresh rebuilds the list entries, header counts and match proposals
// from m.items.
func (m *modelTUI) refresh() {
	li := make([]list.Item, 0, len(m.items))
	for _, it := range m.items {
		if !m.filter.Matches(it) {
			continue
		}
		r, ok := model.FindRoute(m.routes, it.RouteID)
		name := "unknown route"
		if ok {
			name = r.Name
		}
		li = append(li, listItem{item: it, route: name})
	}
	m.list.SetItems(li)

	s := model.CountStats(m.items)
	t := ui.Current()
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render("Lost & Found"),
		t.Lost.Render("lost"), s.OpenLost,
		t.Found.Render("found"), s.OpenFound,
		t.Success.Render("resolved"), s.Resolved(),
	)
	m.matches = matcher.FindMatches(m.items)
}

func (m modelTUI) selected() (model.Item, int, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, -1, false
	}
	for i, it := range m.items {
		if it.ID == li.item.ID {
			return it, i, true
		}
	}
	return model.Item{}, -1, false
}

// Update and View implement Bubble Tea's Model on modelTUI
func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
	}

	// edit mode
	if m.editing {
		var cmd tea.Cmd
		if x, ok := msg.(tea.KeyMsg); ok {
			switch x.String() {
			case "enter":
				desc := strings.TrimSpace(m.ti.Value())
				if desc == "" {
					m.editErr = "Description cannot be empty"
					return m, nil
				}
				for i := range m.items {
					if m.items[i].ID == m.editID {
						m.items[i].Description = desc
						m.changed = true
					}
				}
				m.refresh()
				m.stopEditing()
				return m, nil
			case "esc":
				m.stopEditing()
				return m, nil
			}
		}
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	// while the filter prompt is open every key belongs to it
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				m.list.ResetFilter()
				return m, nil
			}
			return m, tea.Quit
		case "q":
			return m, tea.Quit
		case " ":
			if _, i, ok := m.selected(); ok {
				m.items[i].Status = m.items[i].Status.Next()
				m.changed = true
				m.refresh()
			}
			return m, nil
		case "d":
			if it, i, ok := m.selected(); ok {
				tmp := it
				m.undoItem = &tmp
				m.undoIndex = i
				m.canUndo = true
				m.items = append(m.items[:i], m.items[i+1:]...)
				m.changed = true
				m.refresh()
			}
			return m, nil
		case "u":
			if m.canUndo && m.undoItem != nil {
				idx := min(max(m.undoIndex, 0), len(m.items))
				m.items = append(m.items[:idx], append([]model.Item{*m.undoItem}, m.items[idx:]...)...)
				m.changed = true
				m.canUndo = false
				m.undoItem = nil
				m.refresh()
			}
			return m, nil
		case "e":
			if it, _, ok := m.selected(); ok {
				m.editing = true
				m.editID = it.ID
				m.ti.SetValue(it.Description)
				m.ti.CursorEnd()
				m.ti.Placeholder = "Describe the item..."
				m.ti.Focus()
			}
			return m, nil
		case "m":
			m.showMatches = !m.showMatches
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *modelTUI) stopEditing() {
	m.editing = false
	m.editErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m modelTUI) View() string {
	listHeight := m.height - 4
	if m.editing {
		listHeight -= 4
	}
	if m.showMatches {
		listHeight = listHeight / 2
	}
	m.list.SetSize(m.width-4, max(listHeight, 3))

	content := m.list.View()
	if m.showMatches {
		content += "\n" + m.matchesView()
	}
	if m.editing {
		title := "Edit description"
		if m.editErr != "" {
			title += ": " + ui.Current().Error.Render(m.editErr)
		}
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return ui.PanelString(content)
}

func (m modelTUI) matchesView() string {
	t := ui.Current()
	if len(m.matches) == 0 {
		return t.Muted.Render("No potential matches")
	}
	lines := []string{t.Title.Render(fmt.Sprintf("Potential Matches (%d)", len(m.matches)))}
	limit := max((m.height-4)/2-1, 1)
	for i, c := range m.matches {
		if i >= limit {
			lines = append(lines, t.Muted.Render(fmt.Sprintf("… %d more", len(m.matches)-limit)))
			break
		}
		lines = append(lines, fmt.Sprintf("%s  %s ↔ %s  %s",
			ui.ScoreBadge(c),
			ui.Truncate(c.Lost.Description, 28),
			ui.Truncate(c.Found.Description, 28),
			t.Muted.Render(strings.Join(c.Reasons, ", "))))
	}
	return strings.Join(lines, "\n")
}

// Run starts the interactive browser over the items f selects and saves the
// whole collection through s when the user quits after changing something.
func Run(s Saver, items []model.Item, routes []model.Route, f model.Filter) error {
	m := newModel(items, routes, f)
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		m.width, m.height = w, h
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	fm, ok := finalModel.(modelTUI)
	if !ok || !fm.changed {
		return nil
	}
	if err := s.Save(fm.items); err != nil {
		return err
	}
	ui.OK("saved")
	return nil
}
