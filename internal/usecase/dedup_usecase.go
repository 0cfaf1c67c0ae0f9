package usecase

import (
	"sort"

	"go.uber.org/zap"

	"github.com/route-poi-service/internal/domain"
	"github.com/route-poi-service/internal/geometry"
)

// DedupUseCase - use case поиска межпровайдерских дубликатов
// и оценки качества данных
type DedupUseCase struct {
	logger              *zap.Logger
	distanceThresholdM  float64
	providerPriority    []string
	lowQualityThreshold int
}

// NewDedupUseCase создает новый DedupUseCase
func NewDedupUseCase(
	logger *zap.Logger,
	distanceThresholdM float64,
	providerPriority []string,
	lowQualityThreshold int,
) *DedupUseCase {
	if len(providerPriority) == 0 {
		providerPriority = domain.DefaultProviderPriority
	}
	return &DedupUseCase{
		logger:              logger,
		distanceThresholdM:  distanceThresholdM,
		providerPriority:    providerPriority,
		lowQualityThreshold: lowQualityThreshold,
	}
}

// AnnotateQuality добавляет оценку качества к размещенным POI
func (uc *DedupUseCase) AnnotateQuality(placed []domain.PlacedPOI) []domain.QualityAnnotatedPOI {
	annotated := make([]domain.QualityAnnotatedPOI, 0, len(placed))
	for _, p := range placed {
		score := qualityScore(&p.NormalizedPOI)
		annotated = append(annotated, domain.QualityAnnotatedPOI{
			PlacedPOI:    p,
			QualityScore: score,
			MissingTags:  missingTags(&p.NormalizedPOI),
			IsLowQuality: score < uc.lowQualityThreshold,
		})
	}
	return annotated
}

// Deduplicate группирует дубликаты между провайдерами и выбирает каноническую
// запись в каждой группе. Группировка транзитивная: близость по расстоянию
// и совпадение категории достаточны, похожесть названий повышает уверенность.
// Записи, уже помеченные как дубликаты, повторно не группируются,
// поэтому операция идемпотентна.
func (uc *DedupUseCase) Deduplicate(pois []domain.QualityAnnotatedPOI) []domain.QualityAnnotatedPOI {
	result := make([]domain.QualityAnnotatedPOI, len(pois))
	copy(result, pois)

	// кандидаты: записи без пометки дубликата
	eligible := make([]int, 0, len(result))
	for i := range result {
		if result[i].IsDuplicateOf == nil {
			eligible = append(eligible, i)
		}
	}

	uf := newUnionFind(len(eligible))
	for a := 0; a < len(eligible); a++ {
		for b := a + 1; b < len(eligible); b++ {
			pa := &result[eligible[a]]
			pb := &result[eligible[b]]
			if pa.Category != pb.Category {
				continue
			}
			if geometry.DistanceMeters(pa.Location, pb.Location) < uc.distanceThresholdM {
				uf.union(a, b)
			}
		}
	}

	groups := make(map[int][]int)
	for i := range eligible {
		root := uf.find(i)
		groups[root] = append(groups[root], eligible[i])
	}

	for _, members := range groups {
		if len(members) < 2 {
			continue
		}
		uc.mergeGroup(result, members)
	}

	return result
}

// mergeGroup выбирает каноническую запись группы, дозаполняет ее
// опциональные поля и помечает остальные записи как дубликаты
func (uc *DedupUseCase) mergeGroup(result []domain.QualityAnnotatedPOI, members []int) {
	// каноническая запись: максимум заполненных опциональных полей,
	// при равенстве - приоритет провайдера, затем external_id
	sort.Slice(members, func(i, j int) bool {
		pi := &result[members[i]]
		pj := &result[members[j]]
		ci := pi.OptionalFieldCount()
		cj := pj.OptionalFieldCount()
		if ci != cj {
			return ci > cj
		}
		ri := domain.ProviderPriorityIndex(uc.providerPriority, pi.Provider)
		rj := domain.ProviderPriorityIndex(uc.providerPriority, pj.Provider)
		if ri != rj {
			return ri < rj
		}
		return pi.ExternalID < pj.ExternalID
	})

	canonicalIdx := members[0]
	canonical := result[canonicalIdx]

	// порядок дозаполнения полей: приоритет провайдера, затем external_id
	backfillOrder := make([]int, len(members)-1)
	copy(backfillOrder, members[1:])
	sort.Slice(backfillOrder, func(i, j int) bool {
		pi := &result[backfillOrder[i]]
		pj := &result[backfillOrder[j]]
		ri := domain.ProviderPriorityIndex(uc.providerPriority, pi.Provider)
		rj := domain.ProviderPriorityIndex(uc.providerPriority, pj.Provider)
		if ri != rj {
			return ri < rj
		}
		return pi.ExternalID < pj.ExternalID
	})

	nameSimilarity := false
	for _, idx := range backfillOrder {
		member := &result[idx]
		if namesSimilar(canonical.Name, member.Name) {
			nameSimilarity = true
		}
		if canonical.Address == nil && member.Address != nil {
			canonical.Address = member.Address
		}
		if canonical.Phone == nil && member.Phone != nil {
			canonical.Phone = member.Phone
		}
		if canonical.Website == nil && member.Website != nil {
			canonical.Website = member.Website
		}
		if canonical.Rating == nil && member.Rating != nil {
			canonical.Rating = member.Rating
		}
		if canonical.RatingCount == nil && member.RatingCount != nil {
			canonical.RatingCount = member.RatingCount
		}
	}

	// после дозаполнения пересчитываем качество канонической записи
	canonical.QualityScore = qualityScore(&canonical.NormalizedPOI)
	canonical.MissingTags = missingTags(&canonical.NormalizedPOI)
	canonical.IsLowQuality = canonical.QualityScore < uc.lowQualityThreshold
	result[canonicalIdx] = canonical

	canonicalID := canonical.ExternalID
	for _, idx := range backfillOrder {
		dup := result[idx]
		id := canonicalID
		dup.IsDuplicateOf = &id
		result[idx] = dup
	}

	uc.logger.Debug("Merged duplicate group",
		zap.String("canonical", canonicalID),
		zap.Int("members", len(members)),
		zap.Bool("name_similarity", nameSimilarity))
}
