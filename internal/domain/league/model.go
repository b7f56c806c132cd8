package league

import "fmt"

// League is a fantasy league whose teams compete in roto scoring.
type League struct {
	ID     int64
	Name   string
	Season string
}

func (l League) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Season == "" {
		return fmt.Errorf("league season is required")
	}

	return nil
}
