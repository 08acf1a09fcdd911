package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/KevinKasozi/MatchWise/internal/config"
	"github.com/KevinKasozi/MatchWise/internal/domain/audit"
	"github.com/KevinKasozi/MatchWise/internal/domain/club"
	"github.com/KevinKasozi/MatchWise/internal/domain/competition"
	"github.com/KevinKasozi/MatchWise/internal/domain/fixture"
	"github.com/KevinKasozi/MatchWise/internal/domain/team"
	"github.com/KevinKasozi/MatchWise/internal/infrastructure/repository/cache"
	"github.com/KevinKasozi/MatchWise/internal/infrastructure/repository/memory"
	"github.com/KevinKasozi/MatchWise/internal/infrastructure/repository/postgres"
	"github.com/KevinKasozi/MatchWise/internal/ingest"
	"github.com/KevinKasozi/MatchWise/internal/ingest/mapper"
	"github.com/KevinKasozi/MatchWise/internal/interfaces/httpapi"
	basecache "github.com/KevinKasozi/MatchWise/internal/platform/cache"
	"github.com/KevinKasozi/MatchWise/internal/platform/logging"
	"github.com/KevinKasozi/MatchWise/internal/usecase"
)

// App owns the process-wide resources behind the HTTP server.
type App struct {
	Server *http.Server
	Runner *ingest.Runner

	db *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.SeedOnStart {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("bootstrap seed: %w", err)
		}
	}

	repos := NewRepositories(db, cfg)

	resolver, err := LoadMapper(cfg, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	runner := NewRunner(cfg, repos, resolver, logger)

	handler := httpapi.NewHandler(
		usecase.NewClubService(repos.Clubs, repos.Teams),
		usecase.NewTeamService(repos.Teams, repos.Clubs),
		usecase.NewCompetitionService(repos.Competitions, repos.Seasons),
		usecase.NewFixtureService(repos.Seasons, repos.Fixtures),
		usecase.NewAuditService(repos.Audits),
		usecase.NewIngestionService(runner),
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		db.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{Server: server, Runner: runner, db: db}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Repositories bundles the storage interfaces the runner and the API share.
type Repositories struct {
	Clubs        club.Repository
	Teams        team.Repository
	Competitions competition.Repository
	Seasons      competition.SeasonRepository
	Fixtures     fixture.Repository
	Audits       audit.Repository
}

func NewRepositories(db *sqlx.DB, cfg config.Config) Repositories {
	repos := Repositories{
		Clubs:        postgres.NewClubRepository(db),
		Teams:        postgres.NewTeamRepository(db),
		Competitions: postgres.NewCompetitionRepository(db),
		Seasons:      postgres.NewSeasonRepository(db),
		Fixtures:     postgres.NewFixtureRepository(db),
		Audits:       postgres.NewAuditRepository(db),
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.Clubs = cache.NewClubRepository(repos.Clubs, store)
		repos.Competitions = cache.NewCompetitionRepository(repos.Competitions, store)
		repos.Fixtures = cache.NewFixtureRepository(repos.Fixtures, store)
	}

	return repos
}

func NewRunner(cfg config.Config, repos Repositories, resolver *mapper.Mapper, logger *logging.Logger) *ingest.Runner {
	return ingest.NewRunner(ingest.RunnerParams{
		DataPath:     cfg.DataPath,
		StatePath:    cfg.StateFilePath,
		Mapper:       resolver,
		Clubs:        repos.Clubs,
		Teams:        repos.Teams,
		Competitions: repos.Competitions,
		Seasons:      repos.Seasons,
		Fixtures:     repos.Fixtures,
		Audits:       repos.Audits,
		Logger:       logger,
	})
}

func OpenDatabase(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// LoadMapper prefers a prebuilt mapper artifact; without one it builds a
// resolver from the seed roster so common alias spellings still converge.
func LoadMapper(cfg config.Config, logger *logging.Logger) (*mapper.Mapper, error) {
	if cfg.TeamMapperPath != "" {
		m, err := mapper.Load(cfg.TeamMapperPath)
		if err != nil {
			return nil, fmt.Errorf("load team mapper %s: %w", cfg.TeamMapperPath, err)
		}
		logger.Info("team mapper loaded", "path", cfg.TeamMapperPath, "variants", m.Len())
		return m, nil
	}

	builder := mapper.NewBuilder(logger)
	builder.AddClubs(memory.SeedClubs())
	return builder.Build(), nil
}
