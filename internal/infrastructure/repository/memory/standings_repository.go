package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ligadatos/liga-stats/internal/domain/standings"
)

type standingsEntry struct {
	snapshot  standings.Snapshot
	positions []standings.TeamPosition
}

type StandingsRepository struct {
	mu    sync.RWMutex
	items map[string]standingsEntry
}

func NewStandingsRepository() *StandingsRepository {
	return &StandingsRepository{items: make(map[string]standingsEntry)}
}

func (r *StandingsRepository) Replace(_ context.Context, snapshot standings.Snapshot, positions []standings.TeamPosition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[standingsKey(snapshot.GroupID, snapshot.Matchday)] = standingsEntry{
		snapshot:  snapshot,
		positions: append([]standings.TeamPosition(nil), positions...),
	}
	return nil
}

func (r *StandingsRepository) Get(_ context.Context, groupID string, matchday int) (standings.Snapshot, []standings.TeamPosition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.items[standingsKey(groupID, matchday)]
	if !ok {
		return standings.Snapshot{}, nil, false, nil
	}
	return entry.snapshot, append([]standings.TeamPosition(nil), entry.positions...), true, nil
}

func standingsKey(groupID string, matchday int) string {
	return fmt.Sprintf("%s:%d", groupID, matchday)
}
