package domain

import "github.com/google/uuid"

// PipelineSummary - итоговая статистика одного прогона пайплайна
type PipelineSummary struct {
	RunID          uuid.UUID         `json:"run_id"`
	Total          int               `json:"total"`
	ByCategory     map[string]int    `json:"by_category"`
	ByProvider     map[string]int    `json:"by_provider"`
	OverlapCounts  map[string]int    `json:"overlap_counts,omitempty"`
	ProviderErrors map[string]string `json:"provider_errors,omitempty"`
	Filtered       int               `json:"filtered"`
	SkippedRecords int               `json:"skipped_records"`
	Warnings       []string          `json:"warnings,omitempty"`
}

// SourceStats - статистика по одному источнику данных
type SourceStats struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"by_category"`
}

// PairOverlap - пересечение внешних идентификаторов между двумя источниками
type PairOverlap struct {
	SourceA   string `json:"source_a"`
	SourceB   string `json:"source_b"`
	SharedIDs int    `json:"shared_ids"`
}

// ComparisonReport - сравнение результатов нескольких источников
type ComparisonReport struct {
	Sources  map[string]SourceStats `json:"sources"`
	Overlaps []PairOverlap          `json:"overlaps,omitempty"`
}

// DuplicateGroup - группа записей, признанных одним физическим объектом
type DuplicateGroup struct {
	MemberIDs      []string `json:"member_ids"`
	Category       string   `json:"category"`
	NameSimilarity bool     `json:"name_similarity"`
}
