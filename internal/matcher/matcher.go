// Package matcher proposes pairings between open lost and open found reports
// that likely describe the same object.
package matcher

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/idilsaglam/lostfound/internal/model"
)

const (
	categoryPoints   = 40
	locationPoints   = 30
	sameDayPoints    = 20
	nearDatePoints   = 10
	keywordPoints    = 10
	keywordCap       = 30
	sameDayMaxDays   = 1
	nearDateMaxDays  = 3
	minKeywordLength = 4

	// MinScore is the lowest score a pairing needs to be reported.
	MinScore = 40
)

const (
	ReasonSameCategory = "Same category"
	ReasonSameLocation = "Same location"
	ReasonSameDay      = "Same day"
	ReasonWithin3Days  = "Within 3 days"
)

// FindMatches scores every open lost/found pair on the same route and returns
// the pairs scoring at least MinScore, best first. Equal scores keep lost-order
// then found-order. It never fails and never modifies items.
func FindMatches(items []model.Item) []model.MatchCandidate {
	lost := make([]model.Item, 0, len(items))
	found := make([]model.Item, 0, len(items))
	for _, it := range items {
		if !it.IsOpen() {
			continue
		}
		switch it.Kind {
		case model.KindLost:
			lost = append(lost, it)
		case model.KindFound:
			found = append(found, it)
		}
	}

	matches := make([]model.MatchCandidate, 0)
	for _, l := range lost {
		for _, f := range found {
			if l.RouteID != f.RouteID {
				continue
			}
			score, reasons := Score(l, f)
			if score < MinScore {
				continue
			}
			matches = append(matches, model.MatchCandidate{
				Lost:    l,
				Found:   f,
				Score:   score,
				Reasons: reasons,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// Score rates a single lost/found pair. It does not look at route or status.
func Score(lost, found model.Item) (int, []string) {
	score := 0
	reasons := make([]string, 0, 4)

	if lost.Category == found.Category {
		score += categoryPoints
		reasons = append(reasons, ReasonSameCategory)
	}

	if lost.Location == found.Location {
		score += locationPoints
		reasons = append(reasons, ReasonSameLocation)
	}

	// unknown dates score nothing
	if days, ok := model.DaysBetween(lost.Date, found.Date); ok {
		switch {
		case days <= sameDayMaxDays:
			score += sameDayPoints
			reasons = append(reasons, ReasonSameDay)
		case days <= nearDateMaxDays:
			score += nearDatePoints
			reasons = append(reasons, ReasonWithin3Days)
		}
	}

	if n := KeywordOverlap(lost.Description, found.Description); n > 0 {
		score += min(n*keywordPoints, keywordCap)
		reasons = append(reasons, fmt.Sprintf("Similar description (%d matching keywords)", n))
	}

	return score, reasons
}

// KeywordOverlap counts the lost-description tokens longer than three
// characters that also occur in the found description. Repeated lost tokens
// count once per occurrence. Punctuation stays attached to its token.
func KeywordOverlap(lostDesc, foundDesc string) int {
	foundWords := tokenize(foundDesc)
	if len(foundWords) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(foundWords))
	for _, w := range foundWords {
		set[w] = struct{}{}
	}

	n := 0
	for _, w := range tokenize(lostDesc) {
		if utf8.RuneCountInString(w) < minKeywordLength {
			continue
		}
		if _, ok := set[w]; ok {
			n++
		}
	}
	return n
}

func tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}
