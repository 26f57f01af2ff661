package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/route-optimizer/internal/config"
	"github.com/route-optimizer/internal/delivery/http/handler"
	"github.com/route-optimizer/internal/delivery/http/middleware"
	"github.com/route-optimizer/internal/domain/repository"
	"github.com/route-optimizer/internal/metrics"
	apperrors "github.com/route-optimizer/internal/pkg/errors"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	cache repository.GeocodeCache

	// Handlers
	routeHandler      *handler.RouteHandler
	geocodeHandler    *handler.GeocodeHandler
	directionsHandler *handler.DirectionsHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	cache repository.GeocodeCache,
	routeHandler *handler.RouteHandler,
	geocodeHandler *handler.GeocodeHandler,
	directionsHandler *handler.DirectionsHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:     "Route Optimizer",
		ReadTimeout: 10 * time.Second,
		// холодная оптимизация с вежливым fallback-геокодером может
		// заметно выходить за обычные таймауты ответа
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		cache:             cache,
		routeHandler:      routeHandler,
		geocodeHandler:    geocodeHandler,
		directionsHandler: directionsHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	s.app.Get("/health", s.healthCheck)
	s.app.Get("/metrics", adaptor.HTTPHandler(
		promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	api := s.app.Group("/api/v1")

	// Route optimization
	routes := api.Group("/routes")
	routes.Post("/optimize", s.routeHandler.OptimizeRoute)
	routes.Post("/nearest-neighbor", s.routeHandler.NearestNeighbor)

	// Geocoding
	geocode := api.Group("/geocode")
	geocode.Get("/search", s.geocodeHandler.Search)
	geocode.Get("/autocomplete", s.geocodeHandler.Autocomplete)

	// Pairwise directions
	directions := api.Group("/directions")
	directions.Get("/distance", s.directionsHandler.Distance)
	directions.Get("/route", s.directionsHandler.RouteLeg)
}

// healthCheck - проверка живости сервиса и кэша геокодинга
func (s *Server) healthCheck(c *fiber.Ctx) error {
	cacheStatus := "healthy"
	entries := 0
	if n, err := s.cache.Len(c.Context()); err != nil {
		s.logger.Warn("Geocode cache health check failed", zap.Error(err))
		cacheStatus = "degraded"
	} else {
		entries = n
	}

	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
		"cache": fiber.Map{
			"status":  cacheStatus,
			"entries": entries,
		},
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - обработчик ошибок, дошедших до рамки Fiber.
// AppError сохраняет свой статус и код, остальное становится 500.
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_SERVER_ERROR"

		var appErr *apperrors.AppError
		var fiberErr *fiber.Error
		switch {
		case stderrors.As(err, &appErr):
			code = appErr.StatusCode
			errCode = appErr.Code
		case stderrors.As(err, &fiberErr):
			code = fiberErr.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errCode,
				"message": err.Error(),
			},
		})
	}
}
