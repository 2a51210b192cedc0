package matcher

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/idilsaglam/lostfound/internal/model"
)

func item(id, route string, kind model.Kind, category, location, date, desc string) model.Item {
	return model.Item{
		ID:           id,
		RouteID:      route,
		Kind:         kind,
		Category:     category,
		Description:  desc,
		Location:     location,
		Date:         model.ParseDate(date),
		Status:       model.StatusOpen,
		ReportedBy:   "someone",
		ContactEmail: "someone@example.com",
	}
}

func TestFindMatches_SameEverything(t *testing.T) {
	t.Parallel()

	items := []model.Item{
		item("1", "1", model.KindLost, "Electronics", "Tinkune", "2026-01-15", "Samsung Galaxy phone with red cover"),
		item("2", "1", model.KindFound, "Electronics", "Tinkune", "2026-01-15", "Samsung smartphone with red protective case"),
	}

	got := FindMatches(items)
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	m := got[0]
	// "samsung" and "with" are shared; "red" is too short
	if m.Score != 40+30+20+20 {
		t.Errorf("score = %d, want 110", m.Score)
	}
	want := []string{
		"Same category",
		"Same location",
		"Same day",
		"Similar description (2 matching keywords)",
	}
	if !reflect.DeepEqual(m.Reasons, want) {
		t.Errorf("reasons = %q, want %q", m.Reasons, want)
	}
	if m.Lost.ID != "1" || m.Found.ID != "2" {
		t.Errorf("pair = %s, want 1-2", m.Key())
	}
}

func TestFindMatches_FarDatesStillAboveThreshold(t *testing.T) {
	t.Parallel()

	items := []model.Item{
		item("1", "1", model.KindLost, "Clothing", "Airport", "2026-01-01", "blue scarf"),
		item("2", "1", model.KindFound, "Clothing", "Airport", "2026-01-11", "woolen gloves"),
	}

	got := FindMatches(items)
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].Score != 70 {
		t.Errorf("score = %d, want 70", got[0].Score)
	}
	if !reflect.DeepEqual(got[0].Reasons, []string{"Same category", "Same location"}) {
		t.Errorf("unexpected reasons %q", got[0].Reasons)
	}
}

func TestFindMatches_NothingInCommon(t *testing.T) {
	t.Parallel()

	items := []model.Item{
		item("1", "1", model.KindLost, "Clothing", "Airport", "2026-01-01", "blue scarf"),
		item("2", "1", model.KindFound, "Documents", "Tinkune", "2026-01-11", "passport booklet"),
	}
	if got := FindMatches(items); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestFindMatches_Empty(t *testing.T) {
	t.Parallel()

	got := FindMatches(nil)
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestFindMatches_OtherRouteIgnored(t *testing.T) {
	t.Parallel()

	items := []model.Item{
		item("1", "1", model.KindLost, "Electronics", "Ratnapark", "2026-01-15", "black phone"),
		item("2", "2", model.KindFound, "Electronics", "Ratnapark", "2026-01-15", "black phone"),
	}
	if got := FindMatches(items); len(got) != 0 {
		t.Fatalf("expected no cross-route matches, got %+v", got)
	}
}

func TestFindMatches_OnlyOpenItems(t *testing.T) {
	t.Parallel()

	lost := item("1", "1", model.KindLost, "Electronics", "Airport", "2026-01-15", "")
	claimed := item("2", "1", model.KindFound, "Electronics", "Airport", "2026-01-15", "")
	claimed.Status = model.StatusClaimed
	returned := item("3", "1", model.KindFound, "Electronics", "Airport", "2026-01-15", "")
	returned.Status = model.StatusReturned

	if got := FindMatches([]model.Item{lost, claimed, returned}); len(got) != 0 {
		t.Fatalf("expected closed items to be skipped, got %+v", got)
	}
}

func TestFindMatches_SampleData(t *testing.T) {
	t.Parallel()

	items := []model.Item{
		item("1", "1", model.KindLost, "Electronics", "Tinkune", "2026-01-15", "Samsung Galaxy phone with red cover"),
		item("2", "2", model.KindFound, "Personal Items", "Ratnapark", "2026-01-16", "Black leather wallet with 5000 cash"),
		item("3", "1", model.KindFound, "Electronics", "Sinamangal", "2026-01-15", "Samsung smartphone with red protective case"),
		item("4", "2", model.KindLost, "Personal Items", "Maharajgunj", "2026-01-16", "Black wallet with citizenship and ID cards"),
	}

	got := FindMatches(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	// phone: 40 + 20 + 2 keywords; wallet: 40 + 20 + 3 keywords (black, wallet, with)
	if got[0].Key() != "4-2" || got[0].Score != 90 {
		t.Errorf("first = %s (%d), want 4-2 (90)", got[0].Key(), got[0].Score)
	}
	if got[1].Key() != "1-3" || got[1].Score != 80 {
		t.Errorf("second = %s (%d), want 1-3 (80)", got[1].Key(), got[1].Score)
	}
}

func TestFindMatches_TiesKeepInsertionOrder(t *testing.T) {
	t.Parallel()

	items := []model.Item{
		item("L1", "1", model.KindLost, "Other", "Airport", "", ""),
		item("L2", "1", model.KindLost, "Other", "Airport", "", ""),
		item("F1", "1", model.KindFound, "Other", "Airport", "", ""),
		item("F2", "1", model.KindFound, "Other", "Airport", "", ""),
	}

	got := FindMatches(items)
	var keys []string
	for _, m := range got {
		keys = append(keys, m.Key())
	}
	want := []string{"L1-F1", "L1-F2", "L2-F1", "L2-F2"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("order = %v, want %v", keys, want)
	}
}

func TestScore_DateBands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		lost       string
		found      string
		wantScore  int
		wantReason string
	}{
		{"same day", "2026-01-15", "2026-01-15", 20, ReasonSameDay},
		{"next day", "2026-01-15", "2026-01-16", 20, ReasonSameDay},
		{"found before lost", "2026-01-16", "2026-01-15", 20, ReasonSameDay},
		{"two days", "2026-01-15", "2026-01-17", 10, ReasonWithin3Days},
		{"three days", "2026-01-15", "2026-01-18", 10, ReasonWithin3Days},
		{"four days", "2026-01-15", "2026-01-19", 0, ""},
		{"across months", "2026-01-31", "2026-02-01", 20, ReasonSameDay},
		{"unparseable lost", "yesterday", "2026-01-15", 0, ""},
		{"missing found", "2026-01-15", "", 0, ""},
		{"timestamp", "2026-01-15T23:30:00Z", "2026-01-17", 10, ReasonWithin3Days},
		{"timestamp in another offset", "2026-01-16T01:00:00+05:45", "2026-01-19", 0, ""},
		{"centuries apart", "0024-01-15", "2024-01-15", 0, ""},
		{"centuries apart reversed", "2024-01-15", "0024-01-15", 0, ""},
		{"1700 vs 2026", "1700-01-01", "2026-01-01", 0, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := item("1", "1", model.KindLost, "A", "X", tt.lost, "")
			f := item("2", "1", model.KindFound, "B", "Y", tt.found, "")
			score, reasons := Score(l, f)
			if score != tt.wantScore {
				t.Errorf("score = %d, want %d", score, tt.wantScore)
			}
			if tt.wantReason == "" {
				if len(reasons) != 0 {
					t.Errorf("expected no reasons, got %q", reasons)
				}
				return
			}
			if len(reasons) != 1 || reasons[0] != tt.wantReason {
				t.Errorf("reasons = %q, want [%q]", reasons, tt.wantReason)
			}
		})
	}
}

func TestScore_UnknownDateDoesNotHideOtherTerms(t *testing.T) {
	t.Parallel()

	l := item("1", "1", model.KindLost, "Documents", "Kalimati", "not a date", "citizenship id")
	f := item("2", "1", model.KindFound, "Documents", "Kalimati", "2026-01-15", "citizenship id")
	score, reasons := Score(l, f)
	if score != 40+30+10 {
		t.Errorf("score = %d, want 80", score)
	}
	want := []string{"Same category", "Same location", "Similar description (1 matching keywords)"}
	if !reflect.DeepEqual(reasons, want) {
		t.Errorf("reasons = %q, want %q", reasons, want)
	}
}

func TestFindMatches_TypoYearDoesNotCountAsSameDay(t *testing.T) {
	t.Parallel()

	for _, dates := range [][2]string{{"0024-01-15", "2024-01-15"}, {"2024-01-15", "0024-01-15"}} {
		items := []model.Item{
			item("1", "1", model.KindLost, "Electronics", "Tinkune", dates[0], "phone"),
			item("2", "1", model.KindFound, "Electronics", "Airport", dates[1], "charger"),
		}
		got := FindMatches(items)
		if len(got) != 1 {
			t.Fatalf("%v: expected 1 match, got %d", dates, len(got))
		}
		if got[0].Score != 40 || !reflect.DeepEqual(got[0].Reasons, []string{ReasonSameCategory}) {
			t.Errorf("%v: score = %d, reasons = %q", dates, got[0].Score, got[0].Reasons)
		}
	}
}

func TestScore_CategoryAndLocationAreCaseSensitive(t *testing.T) {
	t.Parallel()

	l := item("1", "1", model.KindLost, "electronics", "airport", "", "")
	f := item("2", "1", model.KindFound, "Electronics", "Airport", "", "")
	if score, _ := Score(l, f); score != 0 {
		t.Errorf("score = %d, want 0", score)
	}
}

func TestKeywordOverlap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lost  string
		found string
		want  int
	}{
		{"empty", "", "", 0},
		{"empty found", "black wallet", "", 0},
		{"short words ignored", "red bag cap", "red bag cap", 0},
		{"case folded", "BLACK Wallet", "black wallet", 2},
		{"repeated lost words count", "wallet wallet wallet wallet", "wallet", 4},
		{"repeated found words count once", "wallet", "wallet wallet", 1},
		{"punctuation kept", "wallet, black", "wallet black", 1},
		{"whitespace runs", "  black\t\twallet\n", "wallet   black", 2},
		{"multibyte length", "café", "café", 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := KeywordOverlap(tt.lost, tt.found); got != tt.want {
				t.Errorf("KeywordOverlap(%q, %q) = %d, want %d", tt.lost, tt.found, got, tt.want)
			}
		})
	}
}

func TestScore_KeywordPointsCapped(t *testing.T) {
	t.Parallel()

	l := item("1", "1", model.KindLost, "A", "X", "", "wallet wallet wallet wallet wallet")
	f := item("2", "1", model.KindFound, "B", "Y", "", "wallet")
	score, reasons := Score(l, f)
	if score != 30 {
		t.Errorf("score = %d, want 30", score)
	}
	if len(reasons) != 1 || reasons[0] != "Similar description (5 matching keywords)" {
		t.Errorf("reasons = %q", reasons)
	}
}

func TestFindMatches_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	items := []model.Item{
		item("1", "1", model.KindLost, "Electronics", "Tinkune", "2026-01-15", "phone"),
		item("2", "1", model.KindFound, "Electronics", "Tinkune", "2026-01-15", "phone"),
	}
	before := make([]model.Item, len(items))
	copy(before, items)

	_ = FindMatches(items)
	if !reflect.DeepEqual(items, before) {
		t.Fatal("FindMatches modified its input")
	}
}

func TestFindMatches_Properties(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(42))
	categories := []string{"Electronics", "Clothing", "Documents"}
	stops := []string{"Ratnapark", "Tinkune", "Airport"}
	words := []string{"black", "wallet", "phone", "with", "red", "case", "samsung", "bag"}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for round := 0; round < 50; round++ {
		n := r.Intn(30)
		items := make([]model.Item, 0, n)
		for i := 0; i < n; i++ {
			desc := ""
			for w := r.Intn(6); w > 0; w-- {
				desc += words[r.Intn(len(words))] + " "
			}
			date := base.AddDate(0, 0, r.Intn(8)).Format("2006-01-02")
			if r.Intn(10) == 0 {
				date = "garbage"
			}
			it := item(fmt.Sprintf("%d-%d", round, i), fmt.Sprint(r.Intn(3)),
				model.Kind(r.Intn(2)+1), categories[r.Intn(len(categories))],
				stops[r.Intn(len(stops))], date, desc)
			it.Status = model.Status(r.Intn(3) + 1)
			items = append(items, it)
		}

		got := FindMatches(items)
		for i, m := range got {
			if i > 0 && got[i-1].Score < m.Score {
				t.Fatalf("round %d: not sorted at %d", round, i)
			}
			if m.Lost.RouteID != m.Found.RouteID {
				t.Fatalf("round %d: cross-route match %s", round, m.Key())
			}
			if !m.Lost.IsOpen() || !m.Found.IsOpen() {
				t.Fatalf("round %d: closed item in %s", round, m.Key())
			}
			if m.Lost.Kind != model.KindLost || m.Found.Kind != model.KindFound {
				t.Fatalf("round %d: wrong kinds in %s", round, m.Key())
			}
			if m.Score < MinScore {
				t.Fatalf("round %d: score %d below threshold", round, m.Score)
			}
		}
		if again := FindMatches(items); !reflect.DeepEqual(got, again) {
			t.Fatalf("round %d: second run differs", round)
		}
	}
}
