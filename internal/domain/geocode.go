package domain

import (
	"errors"
	"strings"
)

// ErrProviderRateLimited - провайдер геокодинга отказал по лимиту запросов
// (HTTP 403/429). Клиенты провайдеров оборачивают такие ответы в эту ошибку,
// resolver проверяет её через errors.Is.
var ErrProviderRateLimited = errors.New("geocoding provider rate limited")

// NormalizePlace приводит название места к канонической форме ключа кэша:
// срезает крайние пробелы, переводит в нижний регистр, схлопывает внутренние
// пробельные последовательности в один пробел. Идемпотентна.
func NormalizePlace(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// GeocodeCandidate - кандидат от провайдера геокодинга.
// Rank - релевантность по версии провайдера, больше - лучше.
type GeocodeCandidate struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Type        string  `json:"type,omitempty"`
	Rank        float64 `json:"rank"`
}

// Coordinate возвращает координату кандидата.
func (c GeocodeCandidate) Coordinate() Coordinate {
	return Coordinate{Lat: c.Lat, Lon: c.Lon}
}

// ResolvedPlace - успешно разрешённое имя места.
// DisplayName заполняется только при разрешении через провайдера:
// кэш хранит голые координаты.
type ResolvedPlace struct {
	Query       string     `json:"query"`
	Normalized  string     `json:"-"`
	Coordinate  Coordinate `json:"coordinate"`
	DisplayName string     `json:"display_name,omitempty"`
	FromCache   bool       `json:"from_cache"`
	Provider    string     `json:"provider,omitempty"`
}

// FailureKind - классификация неудачи разрешения имени
type FailureKind string

const (
	FailureNotFound     FailureKind = "not_found"
	FailureRateLimited  FailureKind = "rate_limited"
	FailureNetworkError FailureKind = "network_error"
)

// ResolutionFailure - неразрешённое имя. Не ошибка запроса: попадает
// в warnings ответа, а место исключается из маршрута.
type ResolutionFailure struct {
	Place  string      `json:"place"`
	Kind   FailureKind `json:"kind"`
	Detail string      `json:"detail,omitempty"`
}
