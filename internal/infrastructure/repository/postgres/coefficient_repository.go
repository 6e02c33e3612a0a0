package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ligadatos/liga-stats/internal/domain/coefficient"
	qb "github.com/ligadatos/liga-stats/internal/platform/querybuilder"
)

// DISTINCT ON picks, per competition or club, the row with the
// greatest reference matchday not after the requested one.
const divisionLookupQuery = `SELECT DISTINCT ON (competition_public_id)
    competition_public_id, season_public_id, matchday, value
FROM division_coefficients
WHERE season_public_id = $1 AND matchday <= $2
ORDER BY competition_public_id, matchday DESC`

const clubLookupQuery = `SELECT DISTINCT ON (club_public_id)
    club_public_id, season_public_id, matchday, value
FROM club_coefficients
WHERE season_public_id = $1 AND matchday <= $2
ORDER BY club_public_id, matchday DESC`

const divisionUpsertSuffix = `ON CONFLICT (competition_public_id, season_public_id, matchday)
DO UPDATE SET value = EXCLUDED.value`

const clubUpsertSuffix = `ON CONFLICT (club_public_id, season_public_id, matchday)
DO UPDATE SET value = EXCLUDED.value`

type CoefficientRepository struct {
	db *sqlx.DB
}

func NewCoefficientRepository(db *sqlx.DB) *CoefficientRepository {
	return &CoefficientRepository{db: db}
}

func (r *CoefficientRepository) DivisionBySeason(ctx context.Context, seasonID string, matchday int) (map[string]float64, error) {
	var rows []divisionCoefficientTableModel
	if err := r.db.SelectContext(ctx, &rows, divisionLookupQuery, seasonID, matchday); err != nil {
		return nil, fmt.Errorf("list division coefficients: %w", err)
	}

	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.CompetitionID] = row.Value
	}
	return out, nil
}

func (r *CoefficientRepository) ClubBySeason(ctx context.Context, seasonID string, matchday int) (map[string]float64, error) {
	var rows []clubCoefficientTableModel
	if err := r.db.SelectContext(ctx, &rows, clubLookupQuery, seasonID, matchday); err != nil {
		return nil, fmt.Errorf("list club coefficients: %w", err)
	}

	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.ClubID] = row.Value
	}
	return out, nil
}

func (r *CoefficientRepository) UpsertDivision(ctx context.Context, row coefficient.Division) error {
	query, args, err := qb.InsertModel("division_coefficients", divisionCoefficientTableModel{
		CompetitionID: row.CompetitionID,
		SeasonID:      row.SeasonID,
		Matchday:      row.Matchday,
		Value:         row.Value,
	}, divisionUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert division coefficient query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert division coefficient competition=%s: %w", row.CompetitionID, err)
	}
	return nil
}

func (r *CoefficientRepository) UpsertClub(ctx context.Context, row coefficient.Club) error {
	query, args, err := qb.InsertModel("club_coefficients", clubCoefficientTableModel{
		ClubID:   row.ClubID,
		SeasonID: row.SeasonID,
		Matchday: row.Matchday,
		Value:    row.Value,
	}, clubUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert club coefficient query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert club coefficient club=%s: %w", row.ClubID, err)
	}
	return nil
}
