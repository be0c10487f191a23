package services

import (
	"strings"

	"github.com/gosimple/slug"

	"github.com/kevinsgzcode/dashboard-bets-core/models"
	"github.com/kevinsgzcode/dashboard-bets-core/workers"
)

// MatchedEvent is an event paired with the side the pick's team plays on.
// Carrying the side here keeps the reconciler free of team-name logic: a
// different matching strategy decides both the game and the side.
type MatchedEvent struct {
	Event    workers.ScoreEvent
	PickHome bool
}

// EventMatcher pairs a pick with its real-world game, if any. It is an
// interface so a stricter strategy (normalized ID lookup) can replace the
// fuzzy one without touching the reconciler's control flow.
type EventMatcher interface {
	Match(pick models.Pick, events []workers.ScoreEvent) (MatchedEvent, bool)
}

// FuzzyTeamMatcher joins on match date equality plus containment of the
// pick's team inside either side's display name. Providers disagree on
// canonical naming ("NY Jets" vs "New York Jets"), so containment over
// slugged names beats strict equality here.
type FuzzyTeamMatcher struct{}

func (FuzzyTeamMatcher) Match(pick models.Pick, events []workers.ScoreEvent) (MatchedEvent, bool) {
	team := teamKey(pick.Team)
	if team == "" {
		return MatchedEvent{}, false
	}
	for _, ev := range events {
		if ev.Date != pick.MatchDate {
			continue
		}
		if strings.Contains(teamKey(ev.HomeTeam), team) {
			return MatchedEvent{Event: ev, PickHome: true}, true
		}
		if strings.Contains(teamKey(ev.AwayTeam), team) {
			return MatchedEvent{Event: ev, PickHome: false}, true
		}
	}
	return MatchedEvent{}, false
}

// teamKey canonicalizes a team name for containment checks: lowercased,
// accents stripped, spaces collapsed to hyphens.
func teamKey(name string) string {
	return slug.Make(name)
}
