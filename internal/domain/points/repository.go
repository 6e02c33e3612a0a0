package points

import "context"

type Repository interface {
	UpsertPlayerMatchday(ctx context.Context, row PlayerMatchday) error
	ListPlayerMatchdays(ctx context.Context, groupID, seasonID string, matchday int) ([]PlayerMatchday, error)
	ListPlayerSeason(ctx context.Context, playerID, seasonID string) ([]PlayerMatchday, error)
	UpsertPlayerSeasonTotal(ctx context.Context, total PlayerSeasonTotal) error
	GetPlayerSeasonTotal(ctx context.Context, playerID, seasonID string) (PlayerSeasonTotal, bool, error)

	UpsertClubMatchday(ctx context.Context, row ClubMatchday) error
	ListClubMatchdays(ctx context.Context, groupID, seasonID string, matchday int) ([]ClubMatchday, error)
	ListClubSeason(ctx context.Context, clubID, seasonID string) ([]ClubMatchday, error)
	UpsertClubSeasonTotal(ctx context.Context, total ClubSeasonTotal) error
	GetClubSeasonTotal(ctx context.Context, clubID, seasonID string) (ClubSeasonTotal, bool, error)
}
