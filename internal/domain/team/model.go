package team

import "fmt"

// Team is a club inside exactly one league.
type Team struct {
	ID       int64
	LeagueID int64
	Name     string
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id must be positive")
	}
	if t.LeagueID <= 0 {
		return fmt.Errorf("team league id must be positive")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
