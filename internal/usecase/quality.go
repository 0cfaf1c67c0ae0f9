package usecase

import (
	"strings"

	"github.com/route-poi-service/internal/domain"
)

// качество складывается из 5 равновесных проверок по 20 баллов
const qualityCheckWeight = 20

// placeholderNames - значения имени, не несущие информации
var placeholderNames = map[string]bool{
	"":        true,
	"unknown": true,
	"unnamed": true,
	"n/a":     true,
	"-":       true,
}

// qualityScore вычисляет оценку полноты данных POI (0-100)
func qualityScore(p *domain.NormalizedPOI) int {
	score := 0
	if !placeholderNames[strings.ToLower(strings.TrimSpace(p.Name))] {
		score += qualityCheckWeight
	}
	if p.Phone != nil && *p.Phone != "" {
		score += qualityCheckWeight
	}
	if p.Website != nil && *p.Website != "" {
		score += qualityCheckWeight
	}
	if p.Address != nil && *p.Address != "" {
		score += qualityCheckWeight
	}
	if p.Rating != nil {
		score += qualityCheckWeight
	}
	return score
}

// missingTags возвращает ожидаемые для категории, но отсутствующие атрибуты
func missingTags(p *domain.NormalizedPOI) []string {
	expected, ok := domain.ExpectedTagsByCategory[p.Category]
	if !ok {
		expected = domain.ExpectedTagsByCategory[domain.CategoryOther]
	}

	var missing []string
	for _, tag := range expected {
		switch tag {
		case "name":
			if placeholderNames[strings.ToLower(strings.TrimSpace(p.Name))] {
				missing = append(missing, tag)
			}
		case "phone":
			if p.Phone == nil || *p.Phone == "" {
				missing = append(missing, tag)
			}
		case "website":
			if p.Website == nil || *p.Website == "" {
				missing = append(missing, tag)
			}
		case "address":
			if p.Address == nil || *p.Address == "" {
				missing = append(missing, tag)
			}
		case "rating":
			if p.Rating == nil {
				missing = append(missing, tag)
			}
		}
	}
	return missing
}

// namesSimilar проверяет похожесть названий: совпадение подстрокой
// без учета регистра либо расстояние Левенштейна не больше порога
func namesSimilar(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return levenshtein(a, b) <= nameEditDistanceThreshold
}

const nameEditDistanceThreshold = 3

// levenshtein вычисляет расстояние редактирования между строками
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(minInt(curr[j-1]+1, prev[j]+1), prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
