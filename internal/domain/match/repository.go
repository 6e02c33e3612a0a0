package match

import "context"

// Repository exposes match reads plus the single write the ingestion
// path needs. The aggregation engines never mutate matches.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	// ListPlayedUpTo returns played matches of the group with matchday
	// at or below the target, events included.
	ListPlayedUpTo(ctx context.Context, groupID string, matchday int) ([]Match, error)
	// ListByMatchday returns every match of the group and matchday,
	// played or not.
	ListByMatchday(ctx context.Context, groupID string, matchday int) ([]Match, error)
	// SetResult records a final or corrected score and marks the match
	// played.
	SetResult(ctx context.Context, matchID string, homeGoals, awayGoals int, events []Event) error
}
