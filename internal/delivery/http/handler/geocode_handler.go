package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/route-optimizer/internal/pkg/utils"
	"github.com/route-optimizer/internal/pkg/validator"
	"github.com/route-optimizer/internal/usecase"
	"github.com/route-optimizer/internal/usecase/dto"
)

// GeocodeHandler - обработчик геокодирования и подсказок
type GeocodeHandler struct {
	geocodeUC *usecase.GeocodeUseCase
	logger    *zap.Logger
}

// NewGeocodeHandler - создание нового GeocodeHandler
func NewGeocodeHandler(geocodeUC *usecase.GeocodeUseCase, logger *zap.Logger) *GeocodeHandler {
	return &GeocodeHandler{
		geocodeUC: geocodeUC,
		logger:    logger,
	}
}

// Search godoc
// @Summary Геокодирование одного места
// @Description Разрешает название места в координаты через персистентный кэш и цепочку провайдеров геокодинга
// @Tags Geocode
// @Accept json
// @Produce json
// @Param q query string true "Название места (минимум 2 символа)"
// @Success 200 {object} utils.SuccessResponse{data=dto.GeocodeSearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/geocode/search [get]
func (h *GeocodeHandler) Search(c *fiber.Ctx) error {
	var req dto.GeocodeSearchRequest
	req.Query = c.Query("q")

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.geocodeUC.Search(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Autocomplete godoc
// @Summary Подсказки по частичному вводу
// @Description Возвращает варианты мест по частичному вводу. Отказ провайдеров - это пустой список, а не ошибка.
// @Tags Geocode
// @Accept json
// @Produce json
// @Param q query string true "Частичный ввод (минимум 2 символа)"
// @Param limit query int false "Максимум подсказок" default(12) maximum(20)
// @Success 200 {object} utils.SuccessResponse{data=dto.AutocompleteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geocode/autocomplete [get]
func (h *GeocodeHandler) Autocomplete(c *fiber.Ctx) error {
	var req dto.AutocompleteRequest
	req.Query = c.Query("q")
	req.Limit = c.QueryInt("limit", 0)

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.geocodeUC.Autocomplete(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Suggestions),
	})
}
