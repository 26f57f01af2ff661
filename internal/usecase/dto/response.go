package dto

import "github.com/route-optimizer/internal/domain"

// OptimizeRouteResponse - ответ на оптимизацию маршрута.
// Order - замкнутый цикл с исходными (ненормализованными) именами мест:
// стартовое место повторяется в конце. Matrix отдаётся в километрах,
// nil-ячейка означает недостижимую пару. Coordinates выровнены с
// разрешёнными местами, пары [lat, lon].
type OptimizeRouteResponse struct {
	Order              []string                   `json:"order"`
	TotalDistanceKm    float64                    `json:"total_distance_km"`
	Matrix             [][]*float64               `json:"matrix"`
	Coordinates        [][2]float64               `json:"coordinates"`
	Warnings           []domain.ResolutionFailure `json:"warnings,omitempty"`
	Algorithm          string                     `json:"algorithm_used"`
	HasUnreachableLegs bool                       `json:"has_unreachable_legs"`
	UnreachableLegs    []UnreachableLeg           `json:"unreachable_legs,omitempty"`
}

// UnreachableLeg - участок выбранного тура, для которого провайдер
// не нашёл дорожный маршрут
type UnreachableLeg struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// GeocodeSearchResponse - результат геокодирования одного места
type GeocodeSearchResponse struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Provider    string  `json:"provider,omitempty"`
	FromCache   bool    `json:"from_cache"`
}

// AutocompleteResponse - подсказки по частичному вводу
type AutocompleteResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// Suggestion - один вариант подсказки
type Suggestion struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Type        string  `json:"type,omitempty"`
}

// DistanceResponse - расстояние по прямой, округлённое для презентации
type DistanceResponse struct {
	DistanceKm float64 `json:"distance_km"`
}

// RouteLegResponse - дорожный участок с геометрией для отрисовки на карте
type RouteLegResponse struct {
	DistanceKm  float64      `json:"distance_km"`
	DurationMin float64      `json:"duration_min"`
	Geometry    [][2]float64 `json:"geometry,omitempty"` // пары [lat, lon]
}
