package usecase

import (
	"sort"

	"go.uber.org/zap"

	"github.com/route-poi-service/internal/domain"
	"github.com/route-poi-service/internal/geometry"
)

// ReportUseCase - use case агрегации результатов по источникам.
// Только чтение: не изменяет входные данные.
type ReportUseCase struct {
	logger *zap.Logger
}

// NewReportUseCase создает новый ReportUseCase
func NewReportUseCase(logger *zap.Logger) *ReportUseCase {
	return &ReportUseCase{logger: logger}
}

// CompareResults строит сравнение результатов нескольких источников:
// итоги по источникам, разбивка по категориям и попарные пересечения
// внешних идентификаторов. Пересечения имеют смысл только для источников
// с общим пространством идентификаторов.
func (uc *ReportUseCase) CompareResults(results map[string][]domain.NormalizedPOI) *domain.ComparisonReport {
	report := &domain.ComparisonReport{
		Sources: make(map[string]domain.SourceStats, len(results)),
	}

	sources := make([]string, 0, len(results))
	for source := range results {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	ids := make(map[string]map[string]bool, len(results))
	for _, source := range sources {
		pois := results[source]
		report.Sources[source] = domain.SourceStats{
			Total:      len(pois),
			ByCategory: uc.CategoryStats(pois),
		}
		idSet := make(map[string]bool, len(pois))
		for _, p := range pois {
			idSet[p.ExternalID] = true
		}
		ids[source] = idSet
	}

	for i := 0; i < len(sources); i++ {
		for j := i + 1; j < len(sources); j++ {
			shared := 0
			for id := range ids[sources[i]] {
				if ids[sources[j]][id] {
					shared++
				}
			}
			report.Overlaps = append(report.Overlaps, domain.PairOverlap{
				SourceA:   sources[i],
				SourceB:   sources[j],
				SharedIDs: shared,
			})
		}
	}

	return report
}

// CategoryStats возвращает разбивку POI по категориям
func (uc *ReportUseCase) CategoryStats(pois []domain.NormalizedPOI) map[string]int {
	stats := make(map[string]int)
	for _, p := range pois {
		stats[p.Category]++
	}
	return stats
}

// DataQualityScore возвращает среднюю оценку полноты данных набора POI
func (uc *ReportUseCase) DataQualityScore(pois []domain.NormalizedPOI) float64 {
	if len(pois) == 0 {
		return 0
	}
	total := 0
	for i := range pois {
		total += qualityScore(&pois[i])
	}
	return float64(total) / float64(len(pois))
}

// FindDuplicates выполняет группировку по близости без слияния.
// Используется инструментами сравнения для инспекции групп.
// Семантика группировки та же, что в DedupUseCase: транзитивное
// объединение пар ближе порога с совпадающей категорией.
func (uc *ReportUseCase) FindDuplicates(pois []domain.NormalizedPOI, thresholdM float64) []domain.DuplicateGroup {
	uf := newUnionFind(len(pois))
	for a := 0; a < len(pois); a++ {
		for b := a + 1; b < len(pois); b++ {
			if pois[a].Category != pois[b].Category {
				continue
			}
			if geometry.DistanceMeters(pois[a].Location, pois[b].Location) < thresholdM {
				uf.union(a, b)
			}
		}
	}

	memberIdx := make(map[int][]int)
	for i := range pois {
		root := uf.find(i)
		memberIdx[root] = append(memberIdx[root], i)
	}

	roots := make([]int, 0, len(memberIdx))
	for root, members := range memberIdx {
		if len(members) > 1 {
			roots = append(roots, root)
		}
	}
	sort.Ints(roots)

	groups := make([]domain.DuplicateGroup, 0, len(roots))
	for _, root := range roots {
		members := memberIdx[root]
		group := domain.DuplicateGroup{
			Category: pois[members[0]].Category,
		}
		for _, idx := range members {
			group.MemberIDs = append(group.MemberIDs, pois[idx].ExternalID)
		}
		sort.Strings(group.MemberIDs)
		for i := 0; i < len(members) && !group.NameSimilarity; i++ {
			for j := i + 1; j < len(members); j++ {
				if namesSimilar(pois[members[i]].Name, pois[members[j]].Name) {
					group.NameSimilarity = true
					break
				}
			}
		}
		groups = append(groups, group)
	}

	return groups
}
