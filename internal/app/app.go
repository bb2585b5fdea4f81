package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/oddsradar/oddsradar/external/apifootball"
	"github.com/oddsradar/oddsradar/internal/config"
	"github.com/oddsradar/oddsradar/internal/infrastructure/repository/postgres"
	"github.com/oddsradar/oddsradar/internal/interfaces/httpapi"
	"github.com/oddsradar/oddsradar/internal/platform/cache"
	"github.com/oddsradar/oddsradar/internal/platform/logging"
	"github.com/oddsradar/oddsradar/internal/platform/resilience"
	"github.com/oddsradar/oddsradar/internal/usecase"
)

func NewHTTPServer(cfg config.Config, db *sqlx.DB, logger *logging.Logger) (*http.Server, error) {
	countryRepo := postgres.NewCountryRepository(db)
	leagueRepo := postgres.NewLeagueRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	fixtureRepo := postgres.NewFixtureRepository(db)

	provider := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:    cfg.APIFootballBaseURL,
		APIKey:     cfg.APIFootballKey,
		Timeout:    cfg.APIFootballTimeout,
		MaxRetries: cfg.APIFootballMaxRetries,
		PageDelay:  cfg.APIFootballPageDelay,
		Logger:     logger,
		Breaker: resilience.BreakerConfig{
			FailureThreshold: cfg.APIFootballCircuitFailureCount,
			OpenTimeout:      cfg.APIFootballCircuitOpenTimeout,
			HalfOpenMax:      cfg.APIFootballCircuitHalfOpenMaxReq,
		},
	})

	boardSvc := usecase.NewBoardService(usecase.BoardServiceConfig{
		Provider:           provider,
		Cache:              cache.NewStore(),
		Logger:             logger,
		Bookmakers:         cfg.Bookmakers,
		DefaultBookmakerID: cfg.DefaultBookmakerID,
		FixturesTTL:        cfg.BoardCacheTTL,
		OddsTTL:            cfg.BoardCacheTTL,
	})
	statsSvc := usecase.NewStatsService(usecase.StatsServiceConfig{
		Provider:    provider,
		Cache:       cache.NewStore(),
		Logger:      logger,
		WorkerCount: cfg.StatsWorkerCount,
		StatsTTL:    cfg.StatsCacheTTL,
	})
	syncSvc := usecase.NewSyncService(usecase.SyncServiceConfig{
		Provider:    provider,
		Countries:   countryRepo,
		Leagues:     leagueRepo,
		Teams:       teamRepo,
		Fixtures:    fixtureRepo,
		Logger:      logger,
		WorkerCount: cfg.SyncWorkerCount,
	})

	handler := httpapi.NewHandler(boardSvc, statsSvc, syncSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
