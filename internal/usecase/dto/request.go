package dto

// OptimizeRouteRequest - запрос на оптимизацию порядка обхода мест
type OptimizeRouteRequest struct {
	Locations []string `json:"locations" validate:"required,min=2,max=25,dive,notblank"`
}

// NearestNeighborRequest - запрос на эвристический маршрут от заданного старта.
// StartIndex опционален: без него эвристика запускается от каждой стартовой
// точки и возвращается лучший тур.
type NearestNeighborRequest struct {
	Locations  []string `json:"locations" validate:"required,min=2,max=25,dive,notblank"`
	StartIndex *int     `json:"start_index,omitempty" validate:"omitempty,min=0,max=24"`
}

// GeocodeSearchRequest - запрос на геокодирование одного места
type GeocodeSearchRequest struct {
	Query string `json:"query" validate:"required,min=2"`
}

// AutocompleteRequest - запрос подсказок по частичному вводу
type AutocompleteRequest struct {
	Query string `json:"query" validate:"required,min=2"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=20"`
}

// DistanceRequest - запрос расстояния по прямой между двумя точками
type DistanceRequest struct {
	FromLat float64 `json:"from_lat" validate:"min=-90,max=90"`
	FromLon float64 `json:"from_lon" validate:"min=-180,max=180"`
	ToLat   float64 `json:"to_lat" validate:"min=-90,max=90"`
	ToLon   float64 `json:"to_lon" validate:"min=-180,max=180"`
}

// RouteLegRequest - запрос дорожного участка маршрута между двумя точками
type RouteLegRequest struct {
	FromLat float64 `json:"from_lat" validate:"min=-90,max=90"`
	FromLon float64 `json:"from_lon" validate:"min=-180,max=180"`
	ToLat   float64 `json:"to_lat" validate:"min=-90,max=90"`
	ToLon   float64 `json:"to_lon" validate:"min=-180,max=180"`
}
