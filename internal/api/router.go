package api

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/adrianguereque/accounts-api/docs"
	"github.com/adrianguereque/accounts-api/internal/api/handler"
	"github.com/adrianguereque/accounts-api/internal/api/middleware"
	"github.com/adrianguereque/accounts-api/internal/auth"
	"github.com/adrianguereque/accounts-api/internal/core/domain"
	"github.com/adrianguereque/accounts-api/internal/core/service"
	"github.com/adrianguereque/accounts-api/internal/infrastructure/config"
	"github.com/adrianguereque/accounts-api/internal/infrastructure/db/postgres"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))

	// --- Dependencies ---
	hasher := auth.NewHasher(auth.DefaultCost)
	codec := auth.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	cookies := auth.NewCookieManager(cfg.TokenTTL, cfg.CookieCrossSite, cfg.CookieSecure)

	userRepo := postgres.NewUserRepository(db)
	userService := service.NewUserService(userRepo, hasher, codec)
	userHandler := handler.NewUserHandler(userService, cookies)

	authRequired := middleware.Auth(codec)
	staffOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleOwner)

	// --- User routes ---
	u := e.Group("/users")
	u.POST("/register", userHandler.Register)
	u.POST("/login", userHandler.Login)
	u.GET("/getUsers", userHandler.GetUsers, authRequired, staffOnly)
	u.GET("/getSession", userHandler.GetSession, authRequired)
	u.POST("/logoutUser", userHandler.Logout)
	u.DELETE("/deleteUser/:id", userHandler.DeleteUser, authRequired)
	u.PUT("/updateUser/:id", userHandler.UpdateUser, authRequired)
	u.PUT("/updateUserMe", userHandler.UpdateMe, authRequired)
	u.DELETE("/deleteUserMe", userHandler.DeleteMe, authRequired)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
