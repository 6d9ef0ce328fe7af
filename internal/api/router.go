package api

import (
	"context"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/carebook/care-services/docs"
	"github.com/carebook/care-services/internal/api/handler"
	"github.com/carebook/care-services/internal/api/metrics"
	"github.com/carebook/care-services/internal/api/middleware"
	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
	"github.com/carebook/care-services/internal/core/service"
	mongorepo "github.com/carebook/care-services/internal/infrastructure/db/mongo"
	redisstore "github.com/carebook/care-services/internal/infrastructure/db/redis"
)

// Config carries everything NewRouter needs to build the dependency graph.
type Config struct {
	DB       *mongo.Database
	Redis    *redis.Client // nil disables idempotency and its readiness check
	Activity ports.ActivityRecorder
	Logger   zerolog.Logger

	JWTSecret      string
	TokenTTL       time.Duration
	IdempotencyTTL time.Duration
	Location       *time.Location

	// WebDir, when set, is served as a single-page application.
	WebDir string
}

// pageRules guard the portal pages; the login routes stay public.
var pageRules = []middleware.PageRule{
	{Prefix: "/admin", Cookie: "admin_token", LoginPath: "/admin/login"},
	{Prefix: "/carer", Cookie: "carer_token", LoginPath: "/carer/login"},
	{Prefix: "/client", Cookie: "client_token", LoginPath: "/login"},
}

var apiPrefixes = []string{"/v1", "/auth", "/health", "/metrics", "/swagger"}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("care"))

	// --- Dependencies ---
	users := mongorepo.NewUserRepository(cfg.DB)
	carers := mongorepo.NewCarerRepository(cfg.DB)
	clients := mongorepo.NewClientRepository(cfg.DB)
	services := mongorepo.NewServiceRepository(cfg.DB)
	bookings := mongorepo.NewBookingRepository(cfg.DB)
	activityRepo := mongorepo.NewActivityRepository(cfg.DB)
	deleteRequests := mongorepo.NewDeleteRequestRepository(cfg.DB)

	bookingDeps := service.BookingDeps{
		Bookings: bookings,
		Services: services,
		Clients:  clients,
		Carers:   carers,
		Activity: cfg.Activity,
		Location: cfg.Location,
		OnTransition: func(status domain.BookingStatus) {
			metrics.BookingTransitionsTotal.WithLabelValues(string(status)).Inc()
		},
	}
	if cfg.Redis != nil {
		bookingDeps.Idempotency = redisstore.NewIdempotencyStore(cfg.Redis, cfg.IdempotencyTTL)
	}

	bookingService := service.NewBookingService(bookingDeps, cfg.Logger)
	authService := service.NewAuthService(users, carers, clients, cfg.Activity, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(users, cfg.Activity, cfg.Logger)
	carerService := service.NewCarerService(carers, bookingService, cfg.Activity, cfg.Logger)
	clientService := service.NewClientService(clients, bookingService, cfg.Activity, cfg.Logger)
	catalogService := service.NewCatalogService(services, cfg.Activity, cfg.Logger)
	activityService := service.NewActivityService(activityRepo)
	deletionService := service.NewDeletionService(deleteRequests, carers, clients, bookingService, cfg.Activity, cfg.Logger)

	authHandler := handler.NewAuthHandler(authService, clientService)
	accountHandler := handler.NewAccountHandler(userService, carerService, clientService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	profileHandler := handler.NewProfileHandler(carerService, clientService)
	activityHandler := handler.NewActivityHandler(activityService)
	deletionHandler := handler.NewDeletionHandler(deletionService)

	checks := map[string]handler.DependencyCheck{
		"mongo": func(ctx context.Context) error { return mongorepo.Ping(ctx, cfg.DB) },
	}
	if cfg.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return cfg.Redis.Ping(ctx).Err() }
	}
	healthHandler := handler.NewHealthHandler(checks)

	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/admin/login", authHandler.AdminLogin)
	e.POST("/auth/carer/login", authHandler.CarerLogin)
	e.POST("/auth/client/login", authHandler.ClientLogin)
	e.POST("/auth/client/register", authHandler.Register)

	v1 := e.Group("/v1")
	v1.GET("/services", catalogHandler.PublicList)

	// --- Admin ---
	admin := v1.Group("/admin", authMiddleware, middleware.RequireRole(domain.RoleAdmin))

	admin.GET("/users", accountHandler.ListUsers)
	admin.POST("/users", accountHandler.CreateUser)
	admin.GET("/users/:id", accountHandler.GetUser)
	admin.PUT("/users/:id", accountHandler.UpdateUser)
	admin.DELETE("/users/:id", accountHandler.DeleteUser)

	admin.GET("/carers", accountHandler.ListCarers)
	admin.POST("/carers", accountHandler.CreateCarer)
	admin.GET("/carers/:id", accountHandler.GetCarer)
	admin.PUT("/carers/:id", accountHandler.UpdateCarer)
	admin.DELETE("/carers/:id", accountHandler.DeleteCarer)

	admin.GET("/clients", accountHandler.ListClients)
	admin.POST("/clients", accountHandler.CreateClient)
	admin.GET("/clients/:id", accountHandler.GetClient)
	admin.PUT("/clients/:id", accountHandler.UpdateClient)
	admin.DELETE("/clients/:id", accountHandler.DeleteClient)

	admin.GET("/services", catalogHandler.List)
	admin.POST("/services", catalogHandler.Create)
	admin.GET("/services/:id", catalogHandler.Get)
	admin.PUT("/services/:id", catalogHandler.Update)
	admin.DELETE("/services/:id", catalogHandler.Delete)

	admin.GET("/bookings", bookingHandler.List)
	admin.POST("/bookings", bookingHandler.Create)
	admin.GET("/bookings/grouped", bookingHandler.Grouped)
	admin.GET("/bookings/:id", bookingHandler.Get)
	admin.PUT("/bookings/:id", bookingHandler.Update)
	admin.DELETE("/bookings/:id", bookingHandler.Delete)
	admin.POST("/bookings/:id/assign", bookingHandler.Assign)

	admin.GET("/activity-logs", activityHandler.List)

	admin.GET("/account-delete-requests", deletionHandler.List)
	admin.POST("/account-delete-requests/:id/approve", deletionHandler.Approve)
	admin.POST("/account-delete-requests/:id/reject", deletionHandler.Reject)

	// --- Carer ---
	carer := v1.Group("/carer", authMiddleware, middleware.RequireRole(domain.RoleCarer))
	carer.GET("/me", profileHandler.CarerMe)
	carer.GET("/roster", bookingHandler.Roster)
	carer.PATCH("/bookings/:id/status", bookingHandler.MarkCompletion)
	carer.POST("/account-delete-request", deletionHandler.Request)

	// --- Client ---
	client := v1.Group("/client", authMiddleware, middleware.RequireRole(domain.RoleClient))
	client.GET("/me", profileHandler.ClientMe)
	client.PUT("/me", profileHandler.UpdateClientMe)
	client.GET("/bookings", bookingHandler.ClientBookings)
	client.POST("/bookings", bookingHandler.ClientCreate)
	client.PUT("/bookings/:id", bookingHandler.Reschedule)
	client.POST("/bookings/:id/cancel", bookingHandler.Cancel)
	client.POST("/account-delete-request", deletionHandler.Request)

	// --- Ops ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Pages ---
	if cfg.WebDir != "" {
		e.Use(middleware.PageGuard(pageRules...))
		e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
			Root:    cfg.WebDir,
			HTML5:   true,
			Skipper: isAPIPath,
		}))
	}

	return e
}

func isAPIPath(c echo.Context) bool {
	path := c.Request().URL.Path
	for _, p := range apiPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
