package league

import "fmt"

// League is a competition derived from the League column of the source roster.
type League struct {
	ID   int64
	Name string
}

func (l League) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("league id must be positive")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}
