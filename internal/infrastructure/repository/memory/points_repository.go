package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ligadatos/liga-stats/internal/domain/points"
)

type PointsRepository struct {
	mu               sync.RWMutex
	playerMatchdays  map[string]points.PlayerMatchday
	playerTotals     map[string]points.PlayerSeasonTotal
	clubMatchdays    map[string]points.ClubMatchday
	clubSeasonTotals map[string]points.ClubSeasonTotal
}

func NewPointsRepository() *PointsRepository {
	return &PointsRepository{
		playerMatchdays:  make(map[string]points.PlayerMatchday),
		playerTotals:     make(map[string]points.PlayerSeasonTotal),
		clubMatchdays:    make(map[string]points.ClubMatchday),
		clubSeasonTotals: make(map[string]points.ClubSeasonTotal),
	}
}

func (r *PointsRepository) UpsertPlayerMatchday(_ context.Context, row points.PlayerMatchday) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := matchdayKey(row.PlayerID, row.SeasonID, row.GroupID, row.Matchday)
	r.playerMatchdays[key] = row
	return nil
}

func (r *PointsRepository) ListPlayerMatchdays(_ context.Context, groupID, seasonID string, matchday int) ([]points.PlayerMatchday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]points.PlayerMatchday, 0, 16)
	for _, row := range r.playerMatchdays {
		if row.GroupID == groupID && row.SeasonID == seasonID && row.Matchday == matchday {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *PointsRepository) ListPlayerSeason(_ context.Context, playerID, seasonID string) ([]points.PlayerMatchday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]points.PlayerMatchday, 0, 16)
	for _, row := range r.playerMatchdays {
		if row.PlayerID == playerID && row.SeasonID == seasonID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Matchday < out[j].Matchday })
	return out, nil
}

func (r *PointsRepository) UpsertPlayerSeasonTotal(_ context.Context, total points.PlayerSeasonTotal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.playerTotals[totalKey(total.PlayerID, total.SeasonID)] = total
	return nil
}

func (r *PointsRepository) GetPlayerSeasonTotal(_ context.Context, playerID, seasonID string) (points.PlayerSeasonTotal, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total, ok := r.playerTotals[totalKey(playerID, seasonID)]
	return total, ok, nil
}

func (r *PointsRepository) UpsertClubMatchday(_ context.Context, row points.ClubMatchday) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := matchdayKey(row.ClubID, row.SeasonID, row.GroupID, row.Matchday)
	r.clubMatchdays[key] = row
	return nil
}

func (r *PointsRepository) ListClubMatchdays(_ context.Context, groupID, seasonID string, matchday int) ([]points.ClubMatchday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]points.ClubMatchday, 0, 16)
	for _, row := range r.clubMatchdays {
		if row.GroupID == groupID && row.SeasonID == seasonID && row.Matchday == matchday {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClubID < out[j].ClubID })
	return out, nil
}

func (r *PointsRepository) ListClubSeason(_ context.Context, clubID, seasonID string) ([]points.ClubMatchday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]points.ClubMatchday, 0, 16)
	for _, row := range r.clubMatchdays {
		if row.ClubID == clubID && row.SeasonID == seasonID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Matchday < out[j].Matchday })
	return out, nil
}

func (r *PointsRepository) UpsertClubSeasonTotal(_ context.Context, total points.ClubSeasonTotal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clubSeasonTotals[totalKey(total.ClubID, total.SeasonID)] = total
	return nil
}

func (r *PointsRepository) GetClubSeasonTotal(_ context.Context, clubID, seasonID string) (points.ClubSeasonTotal, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total, ok := r.clubSeasonTotals[totalKey(clubID, seasonID)]
	return total, ok, nil
}

func matchdayKey(ownerID, seasonID, groupID string, matchday int) string {
	return fmt.Sprintf("%s:%s:%s:%d", ownerID, seasonID, groupID, matchday)
}

func totalKey(ownerID, seasonID string) string {
	return ownerID + ":" + seasonID
}
