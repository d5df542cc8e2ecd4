package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"archives/internal/auth"
	"archives/internal/config"
	"archives/internal/handler"
	"archives/internal/logger"
	"archives/internal/metrics"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *zap.Logger,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	fileHandler *handler.FileHandler,
	movementHandler *handler.MovementHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(metrics.Middleware())

	// Add validator
	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	// Secured routes (require a valid access token)
	secured := api.Group("", auth.Authenticate(jwtService, tokenStore))

	secured.POST("/auth/logout", authHandler.Logout)
	secured.POST("/auth/profile", authHandler.Profile)
	secured.POST("/auth/change-password", authHandler.ChangePassword)

	secured.GET("/files", fileHandler.ListFiles)
	secured.GET("/files/search", fileHandler.SearchFiles)
	secured.GET("/files/:id", fileHandler.GetFile)

	secured.GET("/movements", movementHandler.ListMovements)
	secured.GET("/movements/file/:fileId", movementHandler.ListFileMovements)

	// Admin routes
	admin := secured.Group("", auth.RequireAdmin)

	admin.POST("/auth/register", userHandler.RegisterUser)
	admin.GET("/auth/users", userHandler.ListUsers)
	admin.PUT("/auth/users/:id/role", userHandler.UpdateRole)
	admin.DELETE("/auth/users/:id", userHandler.DeleteUser)

	admin.POST("/files", fileHandler.CreateFile)
	admin.PUT("/files/:id", fileHandler.UpdateFile)
	admin.DELETE("/files/:id", fileHandler.DeleteFile)
	admin.POST("/files/:id/destroy", fileHandler.DestroyFile)

	admin.POST("/movements", movementHandler.RecordMovement)

	admin.POST("/seed", seedHandler.Seed)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns the request validator used by Register.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
