package postgres

import "time"

type weeklyScoreTableModel struct {
	ID        int64     `db:"id"`
	TeamName  string    `db:"team_name"`
	Week      int       `db:"week"`
	Points    int       `db:"points"`
	Hits      int       `db:"hits"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type fixtureTableModel struct {
	ID        int64     `db:"id"`
	CupNumber int       `db:"cup_number"`
	Week      int       `db:"week"`
	Team1     string    `db:"team1"`
	Team2     string    `db:"team2"`
	CreatedAt time.Time `db:"created_at"`
}
