package memory

import (
	"context"
	"sync"

	"github.com/ligadatos/liga-stats/internal/domain/coefficient"
)

type CoefficientRepository struct {
	mu        sync.RWMutex
	divisions []coefficient.Division
	clubs     []coefficient.Club
}

func NewCoefficientRepository(divisions []coefficient.Division, clubs []coefficient.Club) *CoefficientRepository {
	return &CoefficientRepository{
		divisions: append([]coefficient.Division(nil), divisions...),
		clubs:     append([]coefficient.Club(nil), clubs...),
	}
}

func (r *CoefficientRepository) DivisionBySeason(_ context.Context, seasonID string, matchday int) (map[string]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := make(map[string]int, len(r.divisions))
	out := make(map[string]float64, len(r.divisions))
	for _, row := range r.divisions {
		if row.SeasonID != seasonID || row.Matchday > matchday {
			continue
		}
		if current, ok := best[row.CompetitionID]; ok && current >= row.Matchday {
			continue
		}
		best[row.CompetitionID] = row.Matchday
		out[row.CompetitionID] = row.Value
	}
	return out, nil
}

func (r *CoefficientRepository) ClubBySeason(_ context.Context, seasonID string, matchday int) (map[string]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := make(map[string]int, len(r.clubs))
	out := make(map[string]float64, len(r.clubs))
	for _, row := range r.clubs {
		if row.SeasonID != seasonID || row.Matchday > matchday {
			continue
		}
		if current, ok := best[row.ClubID]; ok && current >= row.Matchday {
			continue
		}
		best[row.ClubID] = row.Matchday
		out[row.ClubID] = row.Value
	}
	return out, nil
}

func (r *CoefficientRepository) UpsertDivision(_ context.Context, row coefficient.Division) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.divisions {
		if existing.CompetitionID == row.CompetitionID && existing.SeasonID == row.SeasonID && existing.Matchday == row.Matchday {
			r.divisions[i] = row
			return nil
		}
	}
	r.divisions = append(r.divisions, row)
	return nil
}

func (r *CoefficientRepository) UpsertClub(_ context.Context, row coefficient.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.clubs {
		if existing.ClubID == row.ClubID && existing.SeasonID == row.SeasonID && existing.Matchday == row.Matchday {
			r.clubs[i] = row
			return nil
		}
	}
	r.clubs = append(r.clubs, row)
	return nil
}
