package utils

import (
	"strings"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/cases"

	"github.com/kevinsgzcode/dashboard-bets-core/models"
)

// PickFilter carries the optional dashboard list filters.
type PickFilter struct {
	Team   string
	Result string
	From   string // YYYY-MM-DD, inclusive
	To     string // YYYY-MM-DD, inclusive
}

var foldCaser = cases.Fold()

// foldTeam strips accents and case so "Atlético" matches "atletico".
func foldTeam(name string) string {
	return foldCaser.String(unidecode.Unidecode(strings.TrimSpace(name)))
}

// FilterPicks applies the filters in memory. Team matching is a
// case-insensitive substring; date bounds are inclusive on both ends.
// Picks without a match date are excluded by any date bound.
func FilterPicks(picks []models.Pick, f PickFilter) []models.Pick {
	team := foldTeam(f.Team)

	out := make([]models.Pick, 0, len(picks))
	for _, p := range picks {
		if f.Team != "" && !strings.Contains(foldTeam(p.Team), team) {
			continue
		}
		if f.Result != "" && p.Result != f.Result {
			continue
		}
		if f.From != "" && (p.MatchDate == "" || p.MatchDate < f.From) {
			continue
		}
		if f.To != "" && (p.MatchDate == "" || p.MatchDate > f.To) {
			continue
		}
		out = append(out, p)
	}
	return out
}
