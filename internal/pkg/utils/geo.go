package utils

import "math"

// Средний радиус Земли в километрах
const earthRadiusKm = 6371.0

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// HaversineDistance вычисляет расстояние по дуге большого круга между
// двумя точками в километрах. Дорожные расстояния считает OSRM, хаверсин
// нужен ручке /directions/distance.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := degToRad(lat1)
	phi2 := degToRad(lat2)
	dPhi := degToRad(lat2 - lat1)
	dLambda := degToRad(lon2 - lon1)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)

	h := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// ValidateCoordinates проверяет, что широта и долгота лежат в допустимых диапазонах
func ValidateCoordinates(lat, lon float64) bool {
	if lat < -90 || lat > 90 {
		return false
	}
	return lon >= -180 && lon <= 180
}

// RoundKm округляет километры до двух знаков для ответов API.
// Значения матрицы расстояний не округляются, только презентация.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

// RoundMinutes округляет минуты до одного знака для ответов API
func RoundMinutes(min float64) float64 {
	return math.Round(min*10) / 10
}
