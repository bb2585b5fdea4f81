package apifootball

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oddsradar/oddsradar/internal/platform/logging"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(ClientConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Logger:  logging.NewNop(),
	})
}

func TestOddsByDate_AccumulatesAcrossPages(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-RapidAPI-Key"); got != "test-key" {
			t.Errorf("missing api key header, got %q", got)
		}
		page := r.URL.Query().Get("page")
		fixtureID := map[string]int{"1": 100, "2": 200, "3": 300}[page]
		fmt.Fprintf(w, `{
			"paging": {"current": %s, "total": 3},
			"response": [{"fixture": {"id": %d}, "bookmakers": [{"id": 8, "name": "Bet365", "bets": []}]}]
		}`, page, fixtureID)
	}))

	payloads, err := c.OddsByDate(context.Background(), "2026-09-01", 8)
	if err != nil {
		t.Fatalf("OddsByDate() error = %v", err)
	}
	if len(payloads) != 3 {
		t.Fatalf("got %d payloads, want 3", len(payloads))
	}
	if payloads[0].FixtureID != 100 || payloads[2].FixtureID != 300 {
		t.Fatalf("unexpected fixture ids: %d, %d", payloads[0].FixtureID, payloads[2].FixtureID)
	}
	if payloads[0].Bookmakers[0].Name != "Bet365" {
		t.Fatalf("unexpected bookmaker: %+v", payloads[0].Bookmakers)
	}
}

func TestOddsByDate_LaterPageFailureReturnsPartial(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			http.Error(w, `{"message":"rate limited"}`, http.StatusForbidden)
			return
		}
		fmt.Fprint(w, `{
			"paging": {"current": 1, "total": 4},
			"response": [{"fixture": {"id": 100}, "bookmakers": []}]
		}`)
	}))

	payloads, err := c.OddsByDate(context.Background(), "2026-09-01", 8)
	if err != nil {
		t.Fatalf("OddsByDate() error = %v, want partial result", err)
	}
	if len(payloads) != 1 || payloads[0].FixtureID != 100 {
		t.Fatalf("unexpected partial snapshot: %+v", payloads)
	}
}

func TestOddsByDate_FirstPageFailureIsAnError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"bad key"}`, http.StatusUnauthorized)
	}))

	if _, err := c.OddsByDate(context.Background(), "2026-09-01", 8); err == nil {
		t.Fatalf("expected error when page 1 fails")
	}
}

func TestOddsByDate_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	c := NewClient(ClientConfig{Logger: logging.NewNop()})

	if _, err := c.OddsByDate(context.Background(), "", 8); err == nil {
		t.Fatalf("expected error for empty date")
	}
	if _, err := c.OddsByDate(context.Background(), "2026-09-01", 0); err == nil {
		t.Fatalf("expected error for zero bookmaker id")
	}
}

func TestFixturesByDate_MapsProviderRows(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("status"); got != "NS" {
			t.Errorf("status query = %q, want NS", got)
		}
		fmt.Fprint(w, `{
			"paging": {"current": 1, "total": 1},
			"response": [
				{
					"fixture": {"id": 9001, "date": "2026-09-01T19:00:00+00:00", "status": {"long": "Not Started"}},
					"league": {"id": 71, "name": "Serie A", "country": "Brazil", "season": 2026},
					"teams": {"home": {"id": 1, "name": "Flamengo"}, "away": {"id": 2, "name": "Palmeiras"}}
				},
				{"fixture": {"id": 0}}
			]
		}`)
	}))

	fixtures, err := c.FixturesByDate(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("FixturesByDate() error = %v", err)
	}
	if len(fixtures) != 1 {
		t.Fatalf("got %d fixtures, want 1 (zero-id row dropped)", len(fixtures))
	}

	f := fixtures[0]
	if f.ID != 9001 || f.LeagueID != 71 || f.LeagueName != "Serie A" {
		t.Fatalf("unexpected fixture: %+v", f)
	}
	if f.HomeTeamName != "Flamengo" || f.AwayTeamName != "Palmeiras" {
		t.Fatalf("unexpected teams: %q vs %q", f.HomeTeamName, f.AwayTeamName)
	}
	if f.KickoffAt.IsZero() {
		t.Fatalf("kickoff not parsed from %q", f.KickoffRaw)
	}
	if f.Status != "Not Started" {
		t.Fatalf("status = %q, want Not Started", f.Status)
	}
}

func TestTeamStatistics_MapsTotals(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"response": {
				"team": {"id": 127, "name": "Flamengo"},
				"fixtures": {
					"played": {"home": 10, "away": 9, "total": 19},
					"wins": {"home": 7, "away": 4, "total": 11},
					"loses": {"home": 1, "away": 3, "total": 4}
				},
				"goals": {
					"for": {"total": {"home": 20, "away": 12, "total": 32}},
					"against": {"total": {"home": 6, "away": 9, "total": 15}}
				},
				"failed_to_score": {"home": 1, "away": 2, "total": 3}
			}
		}`)
	}))

	stats, err := c.TeamStatistics(context.Background(), 71, 127, 2026)
	if err != nil {
		t.Fatalf("TeamStatistics() error = %v", err)
	}
	if stats.Played != 19 || stats.Wins != 11 || stats.Losses != 4 {
		t.Fatalf("unexpected fixtures totals: %+v", stats)
	}
	if stats.GoalsFor != 32 || stats.GoalsAgainst != 15 || stats.FailedToScore != 3 {
		t.Fatalf("unexpected goals totals: %+v", stats)
	}
	if stats.TeamID != 127 || stats.LeagueID != 71 || stats.Season != 2026 {
		t.Fatalf("unexpected identity fields: %+v", stats)
	}
}

func TestLeagues_PrefersCurrentSeason(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"paging": {"current": 1, "total": 1},
			"response": [{
				"league": {"id": 71, "name": "Serie A", "type": "League"},
				"country": {"name": "Brazil"},
				"seasons": [{"year": 2024}, {"year": 2026, "current": true}, {"year": 2025}]
			}]
		}`)
	}))

	leagues, err := c.Leagues(context.Background())
	if err != nil {
		t.Fatalf("Leagues() error = %v", err)
	}
	if len(leagues) != 1 || leagues[0].Season != 2026 {
		t.Fatalf("unexpected leagues: %+v", leagues)
	}
}

func TestTeamByID_NotFound(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"paging": {"current": 1, "total": 1}, "response": []}`)
	}))

	if _, err := c.TeamByID(context.Background(), 9999); err == nil {
		t.Fatalf("expected not-found error")
	}
}
