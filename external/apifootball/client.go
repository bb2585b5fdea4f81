// Package apifootball is the API-Football v3 client. It carries the
// retry, redaction, circuit breaker, and request-collapsing behavior
// expected when polling a rate-limited sports data provider.
package apifootball

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/oddsradar/oddsradar/internal/domain/country"
	"github.com/oddsradar/oddsradar/internal/domain/fixture"
	"github.com/oddsradar/oddsradar/internal/domain/league"
	"github.com/oddsradar/oddsradar/internal/domain/odds"
	"github.com/oddsradar/oddsradar/internal/domain/team"
	"github.com/oddsradar/oddsradar/internal/domain/teamstats"
	"github.com/oddsradar/oddsradar/internal/platform/logging"
	"github.com/oddsradar/oddsradar/internal/platform/resilience"
	"github.com/oddsradar/oddsradar/internal/usecase"
)

const (
	defaultBaseURL   = "https://v3.football.api-sports.io"
	defaultHost      = "v3.football.api-sports.io"
	statusNotStarted = "NS"

	// maxOddsPages caps the paginated odds walk so a provider paging bug
	// cannot turn one sync into an unbounded crawl.
	maxOddsPages = 50
)

var apiKeyHeaderRegex = regexp.MustCompile(`(?i)(x-rapidapi-key|x-apisports-key)[=:][^&\s"']+`)
var errTransient = crerr.New("apifootball transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	// PageDelay is the pause between consecutive odds pages.
	PageDelay time.Duration
	Logger    *logging.Logger
	Breaker   resilience.BreakerConfig
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxRetries int
	pageDelay  time.Duration
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	pageDelay := cfg.PageDelay
	if pageDelay < 0 {
		pageDelay = 0
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		maxRetries: max(cfg.MaxRetries, 0),
		pageDelay:  pageDelay,
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(cfg.Breaker),
	}
}

// FixturesByDate returns the not-started fixtures scheduled on date
// (YYYY-MM-DD, provider timezone UTC).
func (c *Client) FixturesByDate(ctx context.Context, date string) ([]fixture.Fixture, error) {
	if strings.TrimSpace(date) == "" {
		return nil, fmt.Errorf("%w: date is required", usecase.ErrInvalidInput)
	}

	var env envelope[fixtureItem]
	if err := c.doJSON(ctx, "/fixtures", map[string]string{
		"date":     date,
		"status":   statusNotStarted,
		"timezone": "UTC",
	}, &env); err != nil {
		return nil, fmt.Errorf("fetch fixtures date=%s: %w", date, err)
	}

	out := make([]fixture.Fixture, 0, len(env.Response))
	for _, item := range env.Response {
		if item.Fixture.ID <= 0 {
			continue
		}
		out = append(out, mapFixture(item))
	}
	return out, nil
}

// OddsByDate walks every odds page for date and bookmaker, accumulating
// payloads across pages. A failed page after the first logs a warning
// and returns what was accumulated so far; callers tolerate a partial
// snapshot over none at all.
func (c *Client) OddsByDate(ctx context.Context, date string, bookmakerID int64) ([]odds.Payload, error) {
	if strings.TrimSpace(date) == "" {
		return nil, fmt.Errorf("%w: date is required", usecase.ErrInvalidInput)
	}
	if bookmakerID <= 0 {
		return nil, fmt.Errorf("%w: bookmaker id must be greater than zero", usecase.ErrInvalidInput)
	}

	accumulated := make([]odds.Payload, 0, 64)
	page := 1
	for {
		var env envelope[oddsItem]
		err := c.doJSON(ctx, "/odds", map[string]string{
			"date":      date,
			"bookmaker": strconv.FormatInt(bookmakerID, 10),
			"page":      strconv.Itoa(page),
		}, &env)
		if err != nil {
			if page == 1 || ctx.Err() != nil {
				return nil, fmt.Errorf("fetch odds date=%s bookmaker=%d page=%d: %w", date, bookmakerID, page, err)
			}
			c.logger.WarnContext(ctx, "odds page fetch failed, returning partial snapshot",
				logging.String("date", date),
				logging.Int64("bookmaker_id", bookmakerID),
				logging.Int("page", page),
				logging.Int("accumulated", len(accumulated)),
				logging.Err(err),
			)
			return accumulated, nil
		}

		for _, item := range env.Response {
			if item.Fixture.ID <= 0 {
				continue
			}
			accumulated = append(accumulated, mapOddsPayload(item))
		}

		if env.Paging.Total <= env.Paging.Current || page >= maxOddsPages {
			return accumulated, nil
		}
		page++

		if c.pageDelay > 0 {
			timer := time.NewTimer(c.pageDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}
}

// TeamStatistics returns a team's season aggregates within a league.
func (c *Client) TeamStatistics(ctx context.Context, leagueID, teamID int64, season int) (teamstats.SeasonStats, error) {
	if leagueID <= 0 || teamID <= 0 || season <= 0 {
		return teamstats.SeasonStats{}, fmt.Errorf("%w: league, team, and season are required", usecase.ErrInvalidInput)
	}

	// The statistics endpoint returns a single object, not an array.
	var env struct {
		Errors   any           `json:"errors"`
		Response teamStatsItem `json:"response"`
	}
	if err := c.doJSON(ctx, "/teams/statistics", map[string]string{
		"league": strconv.FormatInt(leagueID, 10),
		"team":   strconv.FormatInt(teamID, 10),
		"season": strconv.Itoa(season),
	}, &env); err != nil {
		return teamstats.SeasonStats{}, fmt.Errorf("fetch team statistics team=%d league=%d: %w", teamID, leagueID, err)
	}

	item := env.Response
	return teamstats.SeasonStats{
		TeamID:        teamID,
		LeagueID:      leagueID,
		Season:        season,
		Played:        item.Fixtures.Played.Total,
		Wins:          item.Fixtures.Wins.Total,
		Losses:        item.Fixtures.Loses.Total,
		GoalsFor:      item.Goals.For.Total.Total,
		GoalsAgainst:  item.Goals.Against.Total.Total,
		FailedToScore: item.FailedToScore.Total,
	}, nil
}

// Countries returns every country the provider covers.
func (c *Client) Countries(ctx context.Context) ([]country.Country, error) {
	var env envelope[countryItem]
	if err := c.doJSON(ctx, "/countries", nil, &env); err != nil {
		return nil, fmt.Errorf("fetch countries: %w", err)
	}

	out := make([]country.Country, 0, len(env.Response))
	for _, item := range env.Response {
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		out = append(out, country.Country{
			Code:    strings.TrimSpace(item.Code),
			Name:    strings.TrimSpace(item.Name),
			FlagURL: strings.TrimSpace(item.Flag),
		})
	}
	return out, nil
}

// Leagues returns every league with its current season year.
func (c *Client) Leagues(ctx context.Context) ([]league.League, error) {
	var env envelope[leagueItem]
	if err := c.doJSON(ctx, "/leagues", nil, &env); err != nil {
		return nil, fmt.Errorf("fetch leagues: %w", err)
	}

	out := make([]league.League, 0, len(env.Response))
	for _, item := range env.Response {
		if item.League.ID <= 0 {
			continue
		}
		out = append(out, league.League{
			ID:      item.League.ID,
			Name:    strings.TrimSpace(item.League.Name),
			Type:    strings.TrimSpace(item.League.Type),
			Country: strings.TrimSpace(item.Country.Name),
			LogoURL: strings.TrimSpace(item.League.Logo),
			Season:  currentSeason(item),
		})
	}
	return out, nil
}

// TeamsByLeague returns the teams registered in a league season.
func (c *Client) TeamsByLeague(ctx context.Context, leagueID int64, season int) ([]team.Team, error) {
	if leagueID <= 0 || season <= 0 {
		return nil, fmt.Errorf("%w: league and season are required", usecase.ErrInvalidInput)
	}

	var env envelope[teamItem]
	if err := c.doJSON(ctx, "/teams", map[string]string{
		"league": strconv.FormatInt(leagueID, 10),
		"season": strconv.Itoa(season),
	}, &env); err != nil {
		return nil, fmt.Errorf("fetch teams league=%d season=%d: %w", leagueID, season, err)
	}

	out := make([]team.Team, 0, len(env.Response))
	for _, item := range env.Response {
		if item.Team.ID <= 0 {
			continue
		}
		out = append(out, mapTeam(item))
	}
	return out, nil
}

// TeamByID looks up a single team.
func (c *Client) TeamByID(ctx context.Context, teamID int64) (team.Team, error) {
	if teamID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id must be greater than zero", usecase.ErrInvalidInput)
	}

	var env envelope[teamItem]
	if err := c.doJSON(ctx, "/teams", map[string]string{
		"id": strconv.FormatInt(teamID, 10),
	}, &env); err != nil {
		return team.Team{}, fmt.Errorf("fetch team id=%d: %w", teamID, err)
	}
	if len(env.Response) == 0 {
		return team.Team{}, fmt.Errorf("team id=%d: %w", teamID, usecase.ErrNotFound)
	}
	return mapTeam(env.Response[0]), nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "apifootball circuit breaker rejected request",
			logging.String("state", c.breaker.State().String()),
			logging.String("path", path),
		)
		return fmt.Errorf("%w: football data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if reqErr != nil && isTransient(reqErr) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
		req.Header.Set("X-RapidAPI-Host", defaultHost)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "apifootball request failed",
		logging.String("url", fullURL),
		logging.Err(lastErr),
	)
	return nil, lastErr
}

func mapFixture(item fixtureItem) fixture.Fixture {
	kickoff, _ := time.Parse(time.RFC3339, item.Fixture.Date)
	return fixture.Fixture{
		ID:           item.Fixture.ID,
		LeagueID:     item.League.ID,
		LeagueName:   strings.TrimSpace(item.League.Name),
		Country:      strings.TrimSpace(item.League.Country),
		Season:       item.League.Season,
		KickoffAt:    kickoff,
		KickoffRaw:   item.Fixture.Date,
		HomeTeamID:   item.Teams.Home.ID,
		AwayTeamID:   item.Teams.Away.ID,
		HomeTeamName: strings.TrimSpace(item.Teams.Home.Name),
		AwayTeamName: strings.TrimSpace(item.Teams.Away.Name),
		Status:       fixture.NormalizeStatus(item.Fixture.Status.Long),
	}
}

func mapOddsPayload(item oddsItem) odds.Payload {
	payload := odds.Payload{
		FixtureID:  item.Fixture.ID,
		Bookmakers: make([]odds.Bookmaker, 0, len(item.Bookmakers)),
	}
	for _, bm := range item.Bookmakers {
		mapped := odds.Bookmaker{
			ID:   bm.ID,
			Name: bm.Name,
			Bets: make([]odds.Bet, 0, len(bm.Bets)),
		}
		for _, bet := range bm.Bets {
			mappedBet := odds.Bet{
				ID:     bet.ID,
				Name:   bet.Name,
				Values: make([]odds.BetValue, 0, len(bet.Values)),
			}
			for _, v := range bet.Values {
				mappedBet.Values = append(mappedBet.Values, odds.BetValue{Value: v.Value, Odd: v.Odd})
			}
			mapped.Bets = append(mapped.Bets, mappedBet)
		}
		payload.Bookmakers = append(payload.Bookmakers, mapped)
	}
	return payload
}

func mapTeam(item teamItem) team.Team {
	return team.Team{
		ID:      item.Team.ID,
		Name:    strings.TrimSpace(item.Team.Name),
		Code:    strings.TrimSpace(item.Team.Code),
		Country: strings.TrimSpace(item.Team.Country),
		Founded: item.Team.Founded,
		LogoURL: strings.TrimSpace(item.Team.Logo),
	}
}

func currentSeason(item leagueItem) int {
	season := 0
	for _, s := range item.Seasons {
		if s.Current {
			return s.Year
		}
		if s.Year > season {
			season = s.Year
		}
	}
	return season
}

func isTransient(err error) bool {
	return err != nil && crerr.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyHeaderRegex.ReplaceAllString(value, "$1=REDACTED")
}
