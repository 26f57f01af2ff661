package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/route-optimizer/internal/pkg/utils"
	"github.com/route-optimizer/internal/pkg/validator"
	"github.com/route-optimizer/internal/usecase"
	"github.com/route-optimizer/internal/usecase/dto"
)

// DirectionsHandler - обработчик парных запросов между двумя точками
type DirectionsHandler struct {
	directionsUC *usecase.DirectionsUseCase
	logger       *zap.Logger
}

// NewDirectionsHandler - создание нового DirectionsHandler
func NewDirectionsHandler(directionsUC *usecase.DirectionsUseCase, logger *zap.Logger) *DirectionsHandler {
	return &DirectionsHandler{
		directionsUC: directionsUC,
		logger:       logger,
	}
}

// Distance godoc
// @Summary Расстояние по прямой между двумя точками
// @Description Считает haversine-расстояние в километрах между двумя координатами
// @Tags Directions
// @Accept json
// @Produce json
// @Param from_lat query number true "Широта точки отправления"
// @Param from_lon query number true "Долгота точки отправления"
// @Param to_lat query number true "Широта точки назначения"
// @Param to_lon query number true "Долгота точки назначения"
// @Success 200 {object} utils.SuccessResponse{data=dto.DistanceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/directions/distance [get]
func (h *DirectionsHandler) Distance(c *fiber.Ctx) error {
	req := dto.DistanceRequest{
		FromLat: c.QueryFloat("from_lat"),
		FromLon: c.QueryFloat("from_lon"),
		ToLat:   c.QueryFloat("to_lat"),
		ToLon:   c.QueryFloat("to_lon"),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.directionsUC.Distance(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// RouteLeg godoc
// @Summary Дорожный участок между двумя точками
// @Description Строит дорожный маршрут между двумя координатами: расстояние, длительность и геометрия в парах [lat, lon] для отрисовки на карте
// @Tags Directions
// @Accept json
// @Produce json
// @Param from_lat query number true "Широта точки отправления"
// @Param from_lon query number true "Долгота точки отправления"
// @Param to_lat query number true "Широта точки назначения"
// @Param to_lon query number true "Долгота точки назначения"
// @Success 200 {object} utils.SuccessResponse{data=dto.RouteLegResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/directions/route [get]
func (h *DirectionsHandler) RouteLeg(c *fiber.Ctx) error {
	req := dto.RouteLegRequest{
		FromLat: c.QueryFloat("from_lat"),
		FromLon: c.QueryFloat("from_lon"),
		ToLat:   c.QueryFloat("to_lat"),
		ToLon:   c.QueryFloat("to_lon"),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.directionsUC.RouteLeg(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
