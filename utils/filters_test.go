package utils

import (
	"testing"

	"github.com/kevinsgzcode/dashboard-bets-core/models"
)

func samplePicks() []models.Pick {
	return []models.Pick{
		{Team: "New York Jets", Result: "won", MatchDate: "2025-11-23"},
		{Team: "Kansas City Chiefs", Result: "lost", MatchDate: "2025-11-16"},
		{Team: "Carolina Panthers", Result: "won", MatchDate: "2025-11-16"},
	}
}

func TestFilterPicksByTeam(t *testing.T) {
	out := FilterPicks(samplePicks(), PickFilter{Team: "jets"})
	if len(out) != 1 || out[0].Team != "New York Jets" {
		t.Fatalf("team filter = %+v, want the Jets pick only", out)
	}
}

func TestFilterPicksByTeamFoldsAccents(t *testing.T) {
	picks := []models.Pick{{Team: "Atlético Madrid", Result: "pending", MatchDate: "2025-11-23"}}
	if out := FilterPicks(picks, PickFilter{Team: "atletico"}); len(out) != 1 {
		t.Fatalf("expected accent-folded match, got %+v", out)
	}
}

func TestFilterPicksByResult(t *testing.T) {
	if out := FilterPicks(samplePicks(), PickFilter{Result: "won"}); len(out) != 2 {
		t.Fatalf("result filter returned %d picks, want 2", len(out))
	}
}

func TestFilterPicksByDateRange(t *testing.T) {
	out := FilterPicks(samplePicks(), PickFilter{From: "2025-11-20", To: "2025-11-25"})
	if len(out) != 1 || out[0].Team != "New York Jets" {
		t.Fatalf("date range filter = %+v, want the Jets pick only", out)
	}

	// Bounds are inclusive.
	out = FilterPicks(samplePicks(), PickFilter{From: "2025-11-16", To: "2025-11-23"})
	if len(out) != 3 {
		t.Fatalf("inclusive bounds returned %d picks, want 3", len(out))
	}
}

func TestFilterPicksEmptyFilterReturnsAll(t *testing.T) {
	if out := FilterPicks(samplePicks(), PickFilter{}); len(out) != 3 {
		t.Fatalf("empty filter returned %d picks, want 3", len(out))
	}
}
