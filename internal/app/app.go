package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/ligadatos/liga-stats/external/ratings"
	"github.com/ligadatos/liga-stats/internal/config"
	"github.com/ligadatos/liga-stats/internal/domain/coefficient"
	"github.com/ligadatos/liga-stats/internal/domain/league"
	"github.com/ligadatos/liga-stats/internal/domain/match"
	"github.com/ligadatos/liga-stats/internal/domain/points"
	"github.com/ligadatos/liga-stats/internal/domain/standings"
	"github.com/ligadatos/liga-stats/internal/infrastructure/repository/memory"
	"github.com/ligadatos/liga-stats/internal/infrastructure/repository/postgres"
	"github.com/ligadatos/liga-stats/internal/interfaces/httpapi"
	idgen "github.com/ligadatos/liga-stats/internal/platform/id"
	"github.com/ligadatos/liga-stats/internal/platform/logging"
	"github.com/ligadatos/liga-stats/internal/platform/resilience"
	"github.com/ligadatos/liga-stats/internal/platform/txn"
	"github.com/ligadatos/liga-stats/internal/usecase"
)

type repositories struct {
	league      league.Repository
	match       match.Repository
	standings   standings.Repository
	points      points.Repository
	coefficient coefficient.Repository
}

// Services bundles the wired usecase layer so the HTTP entrypoint and
// the batch CLI share one composition root.
type Services struct {
	Standings       *usecase.StandingsService
	PlayerPoints    *usecase.PlayerPointsService
	ClubPoints      *usecase.ClubPointsService
	Batch           *usecase.BatchService
	Ingestion       *usecase.ResultIngestionService
	CoefficientSync *usecase.CoefficientSyncService
}

func NewServices(cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	standingsSvc := usecase.NewStandingsService(
		repos.league,
		repos.match,
		repos.standings,
		idgen.NewRandomGenerator(),
		cfg.StreakLength,
	)
	playerSvc := usecase.NewPlayerPointsService(
		repos.league,
		repos.match,
		repos.points,
		repos.coefficient,
		points.Weights{Appearance: cfg.PlayerAppearanceWeight, Goal: cfg.PlayerGoalWeight},
		logger,
	)
	clubSvc := usecase.NewClubPointsService(
		repos.league,
		repos.match,
		repos.points,
		repos.coefficient,
		points.Weights{Appearance: cfg.ClubAppearanceWeight, Goal: cfg.ClubGoalWeight},
		logger,
	)
	trigger := usecase.NewTriggerService(
		repos.match,
		repos.points,
		playerSvc,
		clubSvc,
		cfg.TriggerLockTTL,
		logger,
	)
	ingestionSvc := usecase.NewResultIngestionService(repos.match, trigger, txn.NewHookRunner())
	batchSvc := usecase.NewBatchService(repos.league, standingsSvc, playerSvc, clubSvc, cfg.BatchMaxWorkers, logger)

	var coefficientSvc *usecase.CoefficientSyncService
	if cfg.RatingsEnabled {
		ratingsClient := ratings.NewClient(ratings.ClientConfig{
			BaseURL:    cfg.RatingsBaseURL,
			APIKey:     cfg.RatingsAPIKey,
			Timeout:    cfg.RatingsTimeout,
			MaxRetries: cfg.RatingsMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.RatingsCircuitEnabled,
				FailureThreshold: cfg.RatingsCircuitFailureCount,
				OpenTimeout:      cfg.RatingsCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.RatingsCircuitHalfOpenMaxReq,
			},
		})
		coefficientSvc = usecase.NewCoefficientSyncService(ratingsClient, repos.coefficient, logger)
	}

	return &Services{
		Standings:       standingsSvc,
		PlayerPoints:    playerSvc,
		ClubPoints:      clubSvc,
		Batch:           batchSvc,
		Ingestion:       ingestionSvc,
		CoefficientSync: coefficientSvc,
	}, nil
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	services, err := NewServices(cfg, logger)
	if err != nil {
		return nil, err
	}

	handler := httpapi.NewHandler(
		services.Standings,
		services.PlayerPoints,
		services.ClubPoints,
		services.Batch,
		services.Ingestion,
		services.CoefficientSync,
		logger,
	)
	router := httpapi.NewRouter(handler, logger)

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

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		logger.Info("DB_URL is empty, running with in-memory seed data")
		seed := memory.DefaultSeed()
		return repositories{
			league:      memory.NewLeagueRepository(seed.Groups, seed.Clubs, seed.Players),
			match:       memory.NewMatchRepository(seed.Matches),
			standings:   memory.NewStandingsRepository(),
			points:      memory.NewPointsRepository(),
			coefficient: memory.NewCoefficientRepository(seed.Divisions, seed.ClubCoefs),
		}, nil
	}

	db, err := sqlx.Connect("postgres", cfg.DBURL)
	if err != nil {
		return repositories{}, fmt.Errorf("connect database: %w", err)
	}

	return repositories{
		league:      postgres.NewLeagueRepository(db),
		match:       postgres.NewMatchRepository(db),
		standings:   postgres.NewStandingsRepository(db),
		points:      postgres.NewPointsRepository(db),
		coefficient: postgres.NewCoefficientRepository(db),
	}, nil
}
