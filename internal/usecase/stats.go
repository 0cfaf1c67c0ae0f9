package usecase

import "sync"

// PipelineStats - явный сборщик статистики одного прогона пайплайна.
// Передается по цепочке вызовов вместо глобального состояния,
// поэтому параллельные прогоны не влияют друг на друга.
type PipelineStats struct {
	mu sync.Mutex

	FetchedByProvider map[string]int
	SkippedByProvider map[string]int
	ProviderErrors    map[string]string
	Filtered          int
	TieBreaks         int
	Detours           int
	CacheHits         int64
	CacheMisses       int64
}

// NewPipelineStats создает пустой сборщик статистики
func NewPipelineStats() *PipelineStats {
	return &PipelineStats{
		FetchedByProvider: make(map[string]int),
		SkippedByProvider: make(map[string]int),
		ProviderErrors:    make(map[string]string),
	}
}

// AddFetched учитывает успешно разобранные записи провайдера
func (s *PipelineStats) AddFetched(provider string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FetchedByProvider[provider] += count
}

// AddSkipped учитывает пропущенные записи провайдера
func (s *PipelineStats) AddSkipped(provider string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SkippedByProvider[provider] += count
}

// RecordProviderError записывает ошибку провайдера (не фатальную для прогона)
func (s *PipelineStats) RecordProviderError(provider, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ProviderErrors[provider] = message
}

// AddFiltered учитывает POI, отброшенные фильтром радиуса релевантности
func (s *PipelineStats) AddFiltered(count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Filtered += count
}

// AddTieBreak учитывает срабатывание правила разрешения равных расстояний
func (s *PipelineStats) AddTieBreak() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TieBreaks++
}

// AddDetour учитывает POI, требующий подъездного пути
func (s *PipelineStats) AddDetour() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Detours++
}

// SetCacheStats записывает счетчики кэша геометрии
func (s *PipelineStats) SetCacheStats(hits, misses int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CacheHits = hits
	s.CacheMisses = misses
}

// TotalSkipped возвращает суммарное количество пропущенных записей
func (s *PipelineStats) TotalSkipped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, c := range s.SkippedByProvider {
		total += c
	}
	return total
}
