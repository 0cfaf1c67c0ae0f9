package normalizer

import (
	"strings"

	"github.com/route-poi-service/internal/domain"
	"github.com/route-poi-service/internal/pkg/errors"
)

// Normalize разбирает сырой batch провайдера в список ParseOutcome.
// Ошибка возвращается только при невозможности разобрать batch целиком;
// некорректные отдельные записи помечаются как Skipped.
func Normalize(batch domain.RawBatch) ([]domain.ParseOutcome, error) {
	switch batch.Provider {
	case domain.ProviderOSM:
		return NormalizeOSM(batch.Payload)
	case domain.ProviderMapbox:
		return NormalizeMapbox(batch.Payload)
	case domain.ProviderHERE:
		return NormalizeHERE(batch.Payload)
	case domain.ProviderGoogle:
		return NormalizeGoogle(batch.Payload)
	default:
		return nil, errors.ErrUnknownProvider
	}
}

// firstNonEmpty возвращает первое непустое значение.
// Порядок аргументов задает приоритет источников поля.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// strPtr возвращает указатель на строку или nil для пустой строки
func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func validCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
