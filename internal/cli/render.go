package cli

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/lostfound/internal/model"
	"github.com/idilsaglam/lostfound/internal/ui"
)

// -------------- rendering helpers --------------

func statsHeader(s model.Stats, total int) string {
	t := ui.Current()
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s %d  %s %d",
		t.Title.Render("Lost & Found"),
		t.Lost.Render("lost"), s.OpenLost,
		t.Found.Render("found"), s.OpenFound,
		t.Accent.Render("claimed"), s.Claimed,
		t.Success.Render("returned"), s.Returned,
		t.Muted.Render("total"), total,
	)
}

func itemLines(items []model.Item, routes []model.Route) []string {
	if len(items) == 0 {
		return []string{ui.Current().Muted.Render("no items")}
	}
	out := make([]string, 0, len(items)*2)
	for _, it := range items {
		r, ok := model.FindRoute(routes, it.RouteID)
		out = append(out, fmt.Sprintf("%s %s  %s  %s",
			ui.Current().Muted.Render(fmt.Sprintf("%-8s", ui.Truncate(it.ID, 8))),
			ui.KindLabel(it.Kind),
			ui.Truncate(it.Description, 60),
			ui.StatusLabel(it.Status),
		))
		out = append(out, ui.Current().Muted.Render(fmt.Sprintf("         %s · %s · %s · %s",
			it.Category, it.Location, it.Date.Display(), routeName(r, ok))))
	}
	return out
}

func groupLines(items []model.Item, routes []model.Route) []string {
	var lost, found []model.Item
	for _, it := range items {
		if it.Kind == model.KindFound {
			found = append(found, it)
		} else {
			lost = append(lost, it)
		}
	}
	var lines []string
	lines = append(lines, ui.Current().Accent.Render("Lost"))
	if len(lost) == 0 {
		lines = append(lines, ui.Current().Muted.Render("(none)"))
	} else {
		lines = append(lines, itemLines(lost, routes)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.Current().Accent.Render("Found"))
	if len(found) == 0 {
		lines = append(lines, ui.Current().Muted.Render("(none)"))
	} else {
		lines = append(lines, itemLines(found, routes)...)
	}
	return lines
}

// matchLines is one candidate card: route and score, both reports, the
// reasons and who to contact.
func matchLines(m model.MatchCandidate, routes []model.Route) []string {
	t := ui.Current()
	r, ok := model.FindRoute(routes, m.Lost.RouteID)
	side := func(it model.Item) []string {
		return []string{
			ui.KindLabel(it.Kind) + "  " + ui.Truncate(it.Description, 60),
			t.Muted.Render(fmt.Sprintf("      %s • %s", it.Location, it.Date.Display())),
		}
	}

	lines := []string{ui.RouteLabel(r, ok) + "   " + ui.ScoreBadge(m), ""}
	lines = append(lines, side(m.Lost)...)
	lines = append(lines, side(m.Found)...)
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render(strings.Join(m.Reasons, " · ")))
	lines = append(lines, t.Muted.Render(fmt.Sprintf("Lost by: %s (%s)   Found by: %s (%s)",
		m.Lost.ReportedBy, m.Lost.ContactEmail, m.Found.ReportedBy, m.Found.ContactEmail)))
	return lines
}

func routeName(r model.Route, ok bool) string {
	if !ok {
		return "unknown route"
	}
	return r.Name
}
