package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/route-optimizer/internal/pkg/errors"
	"github.com/route-optimizer/internal/pkg/utils"
	"github.com/route-optimizer/internal/pkg/validator"
	"github.com/route-optimizer/internal/usecase"
	"github.com/route-optimizer/internal/usecase/dto"
)

// RouteHandler - обработчик запросов оптимизации маршрутов
type RouteHandler struct {
	routeUC *usecase.RouteUseCase
	logger  *zap.Logger
}

// NewRouteHandler - создание нового RouteHandler
func NewRouteHandler(routeUC *usecase.RouteUseCase, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		routeUC: routeUC,
		logger:  logger,
	}
}

// OptimizeRoute godoc
// @Summary Оптимизация порядка обхода мест
// @Description Разрешает имена мест в координаты, строит матрицу дорожных расстояний и подбирает порядок обхода: полный перебор для малых задач, эвристика ближайшего соседа для остальных. Неразрешённые имена попадают в warnings и исключаются из маршрута; если разрешимых мест меньше двух, запрос отклоняется целиком.
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body dto.OptimizeRouteRequest true "Список мест (от 2 до 25)"
// @Success 200 {object} utils.SuccessResponse{data=dto.OptimizeRouteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/routes/optimize [post]
func (h *RouteHandler) OptimizeRoute(c *fiber.Ctx) error {
	var req dto.OptimizeRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.routeUC.OptimizeRoute(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// NearestNeighbor godoc
// @Summary Эвристический маршрут ближайшего соседа
// @Description Строит маршрут жадной эвристикой. start_index задаёт стартовое место (индекс в списке разрешённых мест); без него эвристика запускается от каждого старта и возвращается лучший тур.
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body dto.NearestNeighborRequest true "Список мест и необязательный стартовый индекс"
// @Success 200 {object} utils.SuccessResponse{data=dto.OptimizeRouteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/routes/nearest-neighbor [post]
func (h *RouteHandler) NearestNeighbor(c *fiber.Ctx) error {
	var req dto.NearestNeighborRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.routeUC.NearestNeighborRoute(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
