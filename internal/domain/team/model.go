package team

import "fmt"

// Team is a fantasy team inside a league. Roster membership has no temporal
// dimension: the current roster is applied to all historical games.
type Team struct {
	ID        int64
	LeagueID  int64
	Name      string
	OwnerName string
}

func (t Team) Validate() error {
	if t.LeagueID <= 0 {
		return fmt.Errorf("team league id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
