package errors

import "net/http"

var (
	ErrLocationNotFound = New(
		"LOCATION_NOT_FOUND",
		"Location not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrTooManyLocations = New(
		"TOO_MANY_LOCATIONS",
		"Too many locations: maximum is 25 per request",
		http.StatusBadRequest,
	)

	ErrSolverInfeasible = New(
		"SOLVER_INFEASIBLE",
		"At least 2 resolvable locations are required to build a route",
		http.StatusUnprocessableEntity,
	)

	ErrRateLimited = New(
		"RATE_LIMITED",
		"Geocoding provider rate limit exceeded, try again later",
		http.StatusTooManyRequests,
	)

	ErrRoutingUnavailable = New(
		"ROUTING_UNAVAILABLE",
		"Routing provider is unavailable",
		http.StatusBadGateway,
	)

	ErrGeocodingUnavailable = New(
		"GEOCODING_UNAVAILABLE",
		"Geocoding providers are unavailable",
		http.StatusBadGateway,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
