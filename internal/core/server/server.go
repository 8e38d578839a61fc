package server

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"cybake-bridge/internal/core/config"
	"cybake-bridge/internal/core/logger"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "cybake-bridge/docs/swagger"
)

// SecretHeader carries the shared webhook secret.
const SecretHeader = "X-Webhook-Secret"

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Error is the error description.
	Error string `json:"error"`
	// Message carries detail for unexpected failures.
	Message string `json:"message,omitempty"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// New creates a new Server instance with configured middleware.
func New(cfg *config.AppConfig) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "cybake-bridge",
		ErrorHandler:          errorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Header: "X-Ray-ID",
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/swagger/*", swagger.HandlerDefault)

	return &Server{
		App: app,
		cfg: cfg,
	}
}

// RequireSecret rejects requests whose X-Webhook-Secret does not match the configured secret.
// An empty configured secret disables the check.
func (s *Server) RequireSecret() fiber.Handler {
	expected := []byte(s.cfg.WebhookSecret)

	return func(c *fiber.Ctx) error {
		if len(expected) == 0 {
			return c.Next()
		}

		if subtle.ConstantTimeCompare([]byte(c.Get(SecretHeader)), expected) != 1 {
			logger.Get().Warn("Rejected request with bad webhook secret",
				zap.String("path", c.Path()),
				zap.String("ray_id", RayID(c)),
			)
			return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
				Error: "Unauthorized",
				RayID: RayID(c),
			})
		}

		return c.Next()
	}
}

// DashboardCORS opens the dashboard endpoints to any origin.
func DashboardCORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	})
}

// RayID returns the request id assigned by the requestid middleware.
func RayID(c *fiber.Ctx) string {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return rayID
}

// errorHandler renders framework errors (unknown route, wrong method, body limits) as JSON.
func errorHandler(c *fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	msg := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		msg = fiberErr.Message
	} else {
		logger.Get().Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(code).JSON(ErrorResponse{
		Error: msg,
		RayID: RayID(c),
	})
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}
