package domain

import "encoding/json"

// Идентификаторы провайдеров геоданных
const (
	ProviderOSM    = "osm"
	ProviderMapbox = "mapbox"
	ProviderHERE   = "here"
	ProviderGoogle = "google"
)

// DefaultProviderPriority - приоритет провайдеров при слиянии дубликатов
var DefaultProviderPriority = []string{
	ProviderHERE,
	ProviderGoogle,
	ProviderOSM,
	ProviderMapbox,
}

// RawBatch - сырой ответ провайдера с меткой источника и запрошенной категорией
type RawBatch struct {
	Provider string          `json:"provider"`
	Category string          `json:"category"`
	Payload  json.RawMessage `json:"payload"`
}

// ParseOutcome - результат разбора одной записи провайдера:
// либо нормализованный POI, либо причина пропуска
type ParseOutcome struct {
	POI        *NormalizedPOI `json:"poi,omitempty"`
	SkipReason string         `json:"skip_reason,omitempty"`
}

// Parsed создает успешный результат разбора
func Parsed(poi NormalizedPOI) ParseOutcome {
	return ParseOutcome{POI: &poi}
}

// Skipped создает результат с пропуском записи
func Skipped(reason string) ParseOutcome {
	return ParseOutcome{SkipReason: reason}
}

// IsParsed проверяет, что запись была успешно разобрана
func (o ParseOutcome) IsParsed() bool {
	return o.POI != nil
}

// ProviderPriorityIndex возвращает позицию провайдера в порядке приоритета.
// Неизвестный провайдер получает позицию после всех известных.
func ProviderPriorityIndex(priority []string, provider string) int {
	for i, p := range priority {
		if p == provider {
			return i
		}
	}
	return len(priority)
}
