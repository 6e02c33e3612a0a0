package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ligadatos/liga-stats/internal/domain/league"
)

type LeagueRepository struct {
	mu      sync.RWMutex
	groups  map[string]league.Group
	clubs   map[string]league.Club
	players map[string]league.Player
}

func NewLeagueRepository(groups []league.Group, clubs []league.Club, players []league.Player) *LeagueRepository {
	groupItems := make(map[string]league.Group, len(groups))
	for _, g := range groups {
		groupItems[g.ID] = g
	}
	clubItems := make(map[string]league.Club, len(clubs))
	for _, c := range clubs {
		clubItems[c.ID] = c
	}
	playerItems := make(map[string]league.Player, len(players))
	for _, p := range players {
		playerItems[p.ID] = p
	}

	return &LeagueRepository{
		groups:  groupItems,
		clubs:   clubItems,
		players: playerItems,
	}
}

func (r *LeagueRepository) GetGroup(_ context.Context, groupID string) (league.Group, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.groups[groupID]
	return g, ok, nil
}

func (r *LeagueRepository) ListGroupsBySeason(_ context.Context, seasonID string) ([]league.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.Group, 0, len(r.groups))
	for _, g := range r.groups {
		if g.SeasonID == seasonID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *LeagueRepository) GetClub(_ context.Context, clubID string) (league.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clubs[clubID]
	return c, ok, nil
}

func (r *LeagueRepository) GetPlayer(_ context.Context, playerID string) (league.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	return p, ok, nil
}

func (r *LeagueRepository) PlayersByID(_ context.Context, playerIDs []string) (map[string]league.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]league.Player, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := r.players[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}
