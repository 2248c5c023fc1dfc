package sqlite

type leagueTableModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}
