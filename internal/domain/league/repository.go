package league

import "context"

type Repository interface {
	GetGroup(ctx context.Context, groupID string) (Group, bool, error)
	ListGroupsBySeason(ctx context.Context, seasonID string) ([]Group, error)
	GetClub(ctx context.Context, clubID string) (Club, bool, error)
	GetPlayer(ctx context.Context, playerID string) (Player, bool, error)
	// PlayersByID resolves the given ids; unknown ids are simply absent
	// from the result.
	PlayersByID(ctx context.Context, playerIDs []string) (map[string]Player, error)
}
