package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/route-poi-service/internal/config"
	"github.com/route-poi-service/internal/domain/repository"
	"github.com/route-poi-service/internal/geometry"
	"github.com/route-poi-service/internal/infrastructure/googleplaces"
	"github.com/route-poi-service/internal/infrastructure/here"
	"github.com/route-poi-service/internal/infrastructure/mapbox"
	"github.com/route-poi-service/internal/infrastructure/overpass"
	"github.com/route-poi-service/internal/infrastructure/ratelimit"
	"github.com/route-poi-service/internal/pkg/logger"
	"github.com/route-poi-service/internal/usecase"
)

// App - собранный сервис: пайплайн и его зависимости.
// Внешние слои (REST, CLI) используют App как библиотеку.
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Pipeline   *usecase.PipelineUseCase
	Projector  *usecase.ProjectorUseCase
	Dedup      *usecase.DedupUseCase
	Report     *usecase.ReportUseCase
	RouteCache *geometry.RouteCache
}

// New загружает конфигурацию и собирает зависимости пайплайна
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return NewWithConfig(cfg, log), nil
}

// NewWithConfig собирает сервис с готовой конфигурацией и логгером
func NewWithConfig(cfg *config.Config, log *zap.Logger) *App {
	routeCache := geometry.NewRouteCache(cfg.Cache.RouteCacheTTL, cfg.Cache.RouteCacheCleanup)

	// каждый адаптер провайдера оборачивается лимитером со своим интервалом
	providers := []repository.ProviderClient{
		ratelimit.Wrap(overpass.NewOverpassClient(&cfg.Providers.Overpass, log), cfg.Providers.Overpass.MinInterval),
		ratelimit.Wrap(mapbox.NewMapboxClient(&cfg.Providers.Mapbox, log), cfg.Providers.Mapbox.MinInterval),
		ratelimit.Wrap(here.NewHEREClient(&cfg.Providers.HERE, log), cfg.Providers.HERE.MinInterval),
		ratelimit.Wrap(googleplaces.NewGooglePlacesClient(&cfg.Providers.Google, log), cfg.Providers.Google.MinInterval),
	}

	projector := usecase.NewProjectorUseCase(
		routeCache,
		log,
		cfg.Pipeline.RelevanceRadiusM,
		cfg.Pipeline.SideCenterThresholdM,
	)
	dedup := usecase.NewDedupUseCase(
		log,
		cfg.Pipeline.DupDistanceM,
		cfg.Pipeline.ProviderPriority,
		cfg.Pipeline.QualityLowThreshold,
	)
	report := usecase.NewReportUseCase(log)

	pipeline := usecase.NewPipelineUseCase(
		projector,
		dedup,
		report,
		routeCache,
		providers,
		log,
		cfg.Pipeline.SearchStepKm,
		cfg.Pipeline.SearchRadiusM,
	)

	return &App{
		Config:     cfg,
		Logger:     log,
		Pipeline:   pipeline,
		Projector:  projector,
		Dedup:      dedup,
		Report:     report,
		RouteCache: routeCache,
	}
}
