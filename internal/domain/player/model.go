package player

import "fmt"

// Player is an NBA player in the scoring pool. The ID is the stable id
// assigned by the stat source, so rows survive re-ingestion unchanged.
type Player struct {
	ID       int64
	FullName string
	TeamAbbr string
	Position string
	IsActive bool
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id is required")
	}
	if p.FullName == "" {
		return fmt.Errorf("player full name is required")
	}

	return nil
}
