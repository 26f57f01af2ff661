package domain

// Coordinate - точка WGS84
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RouteLeg - участок маршрута между двумя точками от провайдера маршрутизации
type RouteLeg struct {
	DistanceKm  float64      `json:"distance_km"`
	DurationMin float64      `json:"duration_min"`
	Geometry    [][2]float64 `json:"geometry,omitempty"` // пары [lat, lon]
}
