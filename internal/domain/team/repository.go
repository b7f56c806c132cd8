package team

import "context"

// Repository describes fantasy-team and roster persistence needs from use
// cases. Create assigns and returns the team id.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID int64) ([]Team, error)
	GetByName(ctx context.Context, leagueID int64, name string) (Team, bool, error)
	Create(ctx context.Context, t Team) (Team, error)
	ListRosterPlayerIDs(ctx context.Context, teamID int64) ([]int64, error)
	// AddRosterPlayer reports false when the player was already rostered.
	AddRosterPlayer(ctx context.Context, teamID, playerID int64) (bool, error)
}
