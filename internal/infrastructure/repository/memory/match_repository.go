package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ligadatos/liga-stats/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make(map[string]match.Match, len(matches))
	for _, m := range matches {
		items[m.ID] = m
	}
	return &MatchRepository{items: items}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(m), true, nil
}

func (r *MatchRepository) ListPlayedUpTo(_ context.Context, groupID string, matchday int) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.items))
	for _, m := range r.items {
		if m.GroupID == groupID && m.Matchday <= matchday && m.Played {
			out = append(out, cloneMatch(m))
		}
	}
	sortMatches(out)
	return out, nil
}

func (r *MatchRepository) ListByMatchday(_ context.Context, groupID string, matchday int) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.items))
	for _, m := range r.items {
		if m.GroupID == groupID && m.Matchday == matchday {
			out = append(out, cloneMatch(m))
		}
	}
	sortMatches(out)
	return out, nil
}

func (r *MatchRepository) SetResult(_ context.Context, matchID string, homeGoals, awayGoals int, events []match.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[matchID]
	if !ok {
		return nil
	}
	m.HomeGoals = homeGoals
	m.AwayGoals = awayGoals
	m.Played = true
	m.Events = append([]match.Event(nil), events...)
	r.items[matchID] = m
	return nil
}

func sortMatches(items []match.Match) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Matchday != items[j].Matchday {
			return items[i].Matchday < items[j].Matchday
		}
		return items[i].ID < items[j].ID
	})
}

func cloneMatch(m match.Match) match.Match {
	m.Events = append([]match.Event(nil), m.Events...)
	return m
}
