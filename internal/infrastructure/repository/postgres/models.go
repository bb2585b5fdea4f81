package postgres

import "time"

type countryTableModel struct {
	Code      string    `db:"code"`
	Name      string    `db:"name"`
	FlagURL   string    `db:"flag_url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type countryInsertModel struct {
	Code    string `db:"code"`
	Name    string `db:"name"`
	FlagURL string `db:"flag_url"`
}

type leagueTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Type      string    `db:"type"`
	Country   string    `db:"country"`
	LogoURL   string    `db:"logo_url"`
	Season    int       `db:"season"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type leagueInsertModel struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Type    string `db:"type"`
	Country string `db:"country"`
	LogoURL string `db:"logo_url"`
	Season  int    `db:"season"`
}

type teamTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Code      string    `db:"code"`
	Country   string    `db:"country"`
	Founded   int       `db:"founded"`
	LogoURL   string    `db:"logo_url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Code    string `db:"code"`
	Country string `db:"country"`
	Founded int    `db:"founded"`
	LogoURL string `db:"logo_url"`
}

type fixtureTableModel struct {
	ID           int64      `db:"id"`
	LeagueID     int64      `db:"league_id"`
	LeagueName   string     `db:"league_name"`
	Country      string     `db:"country"`
	Season       int        `db:"season"`
	KickoffAt    *time.Time `db:"kickoff_at"`
	KickoffRaw   string     `db:"kickoff_raw"`
	KickoffDate  string     `db:"kickoff_date"`
	HomeTeamID   int64      `db:"home_team_id"`
	AwayTeamID   int64      `db:"away_team_id"`
	HomeTeamName string     `db:"home_team_name"`
	AwayTeamName string     `db:"away_team_name"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

type fixtureInsertModel struct {
	ID           int64      `db:"id"`
	LeagueID     int64      `db:"league_id"`
	LeagueName   string     `db:"league_name"`
	Country      string     `db:"country"`
	Season       int        `db:"season"`
	KickoffAt    *time.Time `db:"kickoff_at"`
	KickoffRaw   string     `db:"kickoff_raw"`
	KickoffDate  string     `db:"kickoff_date"`
	HomeTeamID   int64      `db:"home_team_id"`
	AwayTeamID   int64      `db:"away_team_id"`
	HomeTeamName string     `db:"home_team_name"`
	AwayTeamName string     `db:"away_team_name"`
	Status       string     `db:"status"`
}
