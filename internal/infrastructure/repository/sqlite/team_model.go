package sqlite

type teamTableModel struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	LeagueID int64  `db:"league_id"`
}
