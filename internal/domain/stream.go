package domain

import "github.com/google/uuid"

// Stream names (должны совпадать с сервисами-публикаторами)
const (
	StreamRouteOptimize = "stream:route:optimize"
	StreamRouteDone     = "stream:route:done"
)

// RouteOptimizeEvent - входящее событие на асинхронную оптимизацию маршрута
type RouteOptimizeEvent struct {
	RequestID  uuid.UUID `json:"request_id"`
	Locations  []string  `json:"locations"`
	StartIndex *int      `json:"start_index,omitempty"`
}

// HasExplicitStart проверяет, задана ли валидная стартовая точка
func (e *RouteOptimizeEvent) HasExplicitStart() bool {
	return e.StartIndex != nil && *e.StartIndex >= 0
}

// RouteDoneEvent - результат асинхронной оптимизации
type RouteDoneEvent struct {
	RequestID       uuid.UUID           `json:"request_id"`
	Order           []string            `json:"order,omitempty"`
	TotalDistanceKm float64             `json:"total_distance_km,omitempty"`
	Algorithm       string              `json:"algorithm,omitempty"`
	Warnings        []ResolutionFailure `json:"warnings,omitempty"`
	Error           string              `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
