package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/route-poi-service/internal/domain"
	"github.com/route-poi-service/internal/domain/repository"
	"github.com/route-poi-service/internal/geometry"
	"github.com/route-poi-service/internal/normalizer"
	"github.com/route-poi-service/internal/pkg/errors"
	"github.com/route-poi-service/internal/pkg/validator"
	"github.com/route-poi-service/internal/usecase/dto"
)

// PipelineResult - результат одного прогона пайплайна
type PipelineResult struct {
	POIs    []domain.QualityAnnotatedPOI `json:"pois"`
	Summary domain.PipelineSummary       `json:"summary"`
	Stats   *PipelineStats               `json:"-"`
}

// PipelineUseCase - оркестрация полного пайплайна: провайдеры ->
// нормализация -> проекция на маршрут -> дедупликация -> отчет
type PipelineUseCase struct {
	projector     *ProjectorUseCase
	dedup         *DedupUseCase
	report        *ReportUseCase
	routeCache    *geometry.RouteCache
	providers     []repository.ProviderClient
	logger        *zap.Logger
	searchStepKm  float64
	searchRadiusM float64
}

// NewPipelineUseCase создает новый PipelineUseCase
func NewPipelineUseCase(
	projector *ProjectorUseCase,
	dedup *DedupUseCase,
	report *ReportUseCase,
	routeCache *geometry.RouteCache,
	providers []repository.ProviderClient,
	logger *zap.Logger,
	searchStepKm float64,
	searchRadiusM float64,
) *PipelineUseCase {
	return &PipelineUseCase{
		projector:     projector,
		dedup:         dedup,
		report:        report,
		routeCache:    routeCache,
		providers:     providers,
		logger:        logger,
		searchStepKm:  searchStepKm,
		searchRadiusM: searchRadiusM,
	}
}

// Run обрабатывает заранее полученные сырые batch'и провайдеров.
// Ошибка разбора целого batch'а записывается в итог по провайдеру
// и не прерывает прогон.
func (uc *PipelineUseCase) Run(
	ctx context.Context,
	route *domain.RouteGeometry,
	batches []domain.RawBatch,
) (*PipelineResult, error) {
	stats := NewPipelineStats()
	outcomesByProvider := make(map[string][]domain.ParseOutcome)

	for _, batch := range batches {
		outcomes, err := normalizer.Normalize(batch)
		if err != nil {
			uc.logger.Warn("Provider batch failed to parse",
				zap.String("provider", batch.Provider),
				zap.Error(err))
			stats.RecordProviderError(batch.Provider, err.Error())
			continue
		}
		outcomesByProvider[batch.Provider] = append(outcomesByProvider[batch.Provider], outcomes...)
	}

	return uc.runCore(route, outcomesByProvider, stats)
}

// RunWithRequest валидирует входной запрос и выполняет поиск по провайдерам
func (uc *PipelineUseCase) RunWithRequest(ctx context.Context, req *dto.RoutePOIRequest) (*PipelineResult, error) {
	if err := validator.Validate(req); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		})
	}
	for _, c := range req.Categories {
		if !domain.IsValidCategory(c) {
			return nil, errors.ErrInvalidCategory.WithDetails(map[string]interface{}{
				"category": c,
			})
		}
	}

	radius := req.SearchRadiusM
	if radius == 0 {
		radius = uc.searchRadiusM
	}

	return uc.RunWithProviders(ctx, req.ToRouteGeometry(), req.Categories, radius)
}

// RunWithProviders выполняет конкурентный поиск по всем провайдерам
// для точек вдоль маршрута. Сбой одного провайдера не прерывает остальных:
// пайплайн продолжает с тем, что удалось получить.
func (uc *PipelineUseCase) RunWithProviders(
	ctx context.Context,
	route *domain.RouteGeometry,
	categories []string,
	radiusM float64,
) (*PipelineResult, error) {
	stats := NewPipelineStats()
	searchPoints := uc.searchPoints(route)

	var mu sync.Mutex
	outcomesByProvider := make(map[string][]domain.ParseOutcome)

	g, gctx := errgroup.WithContext(ctx)
	for _, provider := range uc.providers {
		provider := provider
		g.Go(func() error {
			for _, point := range searchPoints {
				for _, category := range categories {
					outcomes, err := provider.SearchPOIs(gctx, point, radiusM, category)
					if err != nil {
						uc.logger.Warn("Provider search failed",
							zap.String("provider", provider.Name()),
							zap.Error(err))
						stats.RecordProviderError(provider.Name(), err.Error())
						// не прерываем ни этот провайдер, ни остальные
						continue
					}
					mu.Lock()
					outcomesByProvider[provider.Name()] = append(outcomesByProvider[provider.Name()], outcomes...)
					mu.Unlock()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return uc.runCore(route, outcomesByProvider, stats)
}

// runCore - общее ядро: нормализованные записи -> проекция -> дедупликация -> итог
func (uc *PipelineUseCase) runCore(
	route *domain.RouteGeometry,
	outcomesByProvider map[string][]domain.ParseOutcome,
	stats *PipelineStats,
) (*PipelineResult, error) {
	hitsBefore, missesBefore := uc.routeCache.Stats()

	poisByProvider := make(map[string][]domain.NormalizedPOI, len(outcomesByProvider))
	seen := make(map[string]bool)
	var pois []domain.NormalizedPOI

	providers := make([]string, 0, len(outcomesByProvider))
	for provider := range outcomesByProvider {
		providers = append(providers, provider)
	}
	sort.Strings(providers)

	for _, provider := range providers {
		for _, outcome := range outcomesByProvider[provider] {
			if !outcome.IsParsed() {
				stats.AddSkipped(provider, 1)
				continue
			}
			poi := *outcome.POI
			// одна и та же запись может прийти с нескольких точек поиска
			if seen[poi.ExternalID] {
				continue
			}
			seen[poi.ExternalID] = true
			stats.AddFetched(provider, 1)
			poisByProvider[provider] = append(poisByProvider[provider], poi)
			pois = append(pois, poi)
		}
	}

	var warnings []string

	placed, err := uc.projector.Project(route, pois, stats)
	if err != nil {
		// вырожденный маршрут - условие данных: возвращаем пустой
		// результат с предупреждением, а не ошибку
		warnings = append(warnings, "cannot project POIs: route geometry has fewer than 2 points")
	}

	annotated := uc.dedup.AnnotateQuality(placed)
	final := uc.dedup.Deduplicate(annotated)

	if len(final) == 0 {
		warnings = append(warnings, "no POIs found")
	}

	hitsAfter, missesAfter := uc.routeCache.Stats()
	stats.SetCacheStats(hitsAfter-hitsBefore, missesAfter-missesBefore)

	summary := uc.buildSummary(final, poisByProvider, stats, warnings)

	return &PipelineResult{
		POIs:    final,
		Summary: summary,
		Stats:   stats,
	}, nil
}

// buildSummary собирает итоговую статистику прогона
func (uc *PipelineUseCase) buildSummary(
	final []domain.QualityAnnotatedPOI,
	poisByProvider map[string][]domain.NormalizedPOI,
	stats *PipelineStats,
	warnings []string,
) domain.PipelineSummary {
	summary := domain.PipelineSummary{
		RunID:          uuid.New(),
		Total:          len(final),
		ByCategory:     make(map[string]int),
		ByProvider:     make(map[string]int),
		Filtered:       stats.Filtered,
		SkippedRecords: stats.TotalSkipped(),
		Warnings:       warnings,
	}

	for _, p := range final {
		summary.ByCategory[p.Category]++
		summary.ByProvider[p.Provider]++
	}

	if len(stats.ProviderErrors) > 0 {
		summary.ProviderErrors = make(map[string]string, len(stats.ProviderErrors))
		for provider, msg := range stats.ProviderErrors {
			summary.ProviderErrors[provider] = msg
		}
	}

	if len(poisByProvider) > 1 {
		comparison := uc.report.CompareResults(poisByProvider)
		summary.OverlapCounts = make(map[string]int, len(comparison.Overlaps))
		for _, overlap := range comparison.Overlaps {
			key := fmt.Sprintf("%s|%s", overlap.SourceA, overlap.SourceB)
			summary.OverlapCounts[key] = overlap.SharedIDs
		}
	}

	return summary
}

// searchPoints строит точки поиска вдоль маршрута с шагом searchStepKm
func (uc *PipelineUseCase) searchPoints(route *domain.RouteGeometry) []domain.GeoPoint {
	if len(route.Points) < 2 {
		return nil
	}

	cum := uc.routeCache.CumulativeDistances(route)
	totalKm := cum[len(cum)-1] / 1000.0

	step := uc.searchStepKm
	if step <= 0 {
		step = 25.0
	}

	points := make([]domain.GeoPoint, 0, int(totalKm/step)+2)
	for d := 0.0; d < totalKm; d += step {
		points = append(points, geometry.InterpolateAtDistance(route.Points, cum, d))
	}
	points = append(points, route.Points[len(route.Points)-1])
	return points
}
