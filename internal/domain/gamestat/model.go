package gamestat

import (
	"fmt"
	"time"
)

// GameStat is one player's box score for one game. (PlayerID, GameID) is
// unique; the insert path skips duplicates rather than double-counting.
type GameStat struct {
	PlayerID int64
	GameID   string
	GameDate time.Time
	Matchup  string

	Points      int
	Rebounds    int
	Assists     int
	Steals      int
	Blocks      int
	FGMade      int
	FGAttempted int
	FTMade      int
	FTAttempted int
	ThreesMade  int
	Turnovers   int
}

// Key identifies a game row for dedupe purposes.
type Key struct {
	PlayerID int64
	GameID   string
}

func (g GameStat) Key() Key {
	return Key{PlayerID: g.PlayerID, GameID: g.GameID}
}

func (g GameStat) Validate() error {
	if g.PlayerID <= 0 {
		return fmt.Errorf("game stat player id is required")
	}
	if g.GameID == "" {
		return fmt.Errorf("game stat game id is required")
	}
	if g.GameDate.IsZero() {
		return fmt.Errorf("game stat game date is required")
	}
	for _, v := range []int{
		g.Points, g.Rebounds, g.Assists, g.Steals, g.Blocks,
		g.FGMade, g.FGAttempted, g.FTMade, g.FTAttempted,
		g.ThreesMade, g.Turnovers,
	} {
		if v < 0 {
			return fmt.Errorf("game stat counting values must be >= 0")
		}
	}

	return nil
}
