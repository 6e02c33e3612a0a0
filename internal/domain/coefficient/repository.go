package coefficient

import "context"

// Repository reads the coefficient tables maintained by the sync
// service. The lookup methods resolve, per competition or club, the row
// with the greatest reference matchday not after the requested one.
type Repository interface {
	DivisionBySeason(ctx context.Context, seasonID string, matchday int) (map[string]float64, error)
	ClubBySeason(ctx context.Context, seasonID string, matchday int) (map[string]float64, error)
	UpsertDivision(ctx context.Context, row Division) error
	UpsertClub(ctx context.Context, row Club) error
}
