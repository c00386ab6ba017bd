package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sajilosewa/booking-system/internal/api/handler"
	"github.com/sajilosewa/booking-system/internal/api/middleware"
	"github.com/sajilosewa/booking-system/internal/core/domain"
	"github.com/sajilosewa/booking-system/internal/core/ports"
	"github.com/sajilosewa/booking-system/internal/core/service"
	mongodb "github.com/sajilosewa/booking-system/internal/infrastructure/db/mongo"
)

// Deps carries the external dependencies the router wires together.
type Deps struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	Events    ports.EventSink
	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("booking"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(deps.Mongo)
	appointmentRepo := mongodb.NewAppointmentRepository(deps.Mongo)
	categoryRepo := mongodb.NewCategoryRepository(deps.Mongo)

	// --- Services ---
	categoryService := service.NewCategoryService(categoryRepo, userRepo, deps.Log)
	appointmentService := service.NewAppointmentService(appointmentRepo, userRepo, deps.Events, deps.Log)
	providerService := service.NewProviderService(userRepo, categoryService, deps.Events, deps.Log)
	authService := service.NewAuthService(userRepo, deps.JWTSecret, 24*time.Hour)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	providerHandler := handler.NewProviderHandler(providerService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	auth := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Public catalog ---
	e.GET("/v1/categories", categoryHandler.List)
	e.GET("/v1/categories/:slug", categoryHandler.BySlug)
	e.GET("/v1/providers", providerHandler.Browse)

	// --- Appointment routes (customer and provider) ---
	appointments := e.Group("/v1/appointments", auth)
	appointments.POST("", appointmentHandler.Create, middleware.RBAC(domain.RoleCustomer))
	appointments.GET("/mine", appointmentHandler.ListMine, middleware.RBAC(domain.RoleCustomer))
	appointments.GET("/assigned", appointmentHandler.ListAssigned, middleware.RBAC(domain.RoleProvider))
	appointments.PATCH("/:id/status", appointmentHandler.UpdateStatusAsProvider, middleware.RBAC(domain.RoleProvider))
	appointments.GET("/:id", appointmentHandler.Get)

	// --- Admin routes ---
	admin := e.Group("/v1/admin", auth, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/appointments", appointmentHandler.ListAll)
	admin.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatusAsAdmin)
	admin.GET("/providers", providerHandler.ListApplications)
	admin.GET("/providers/:id", providerHandler.GetApplication)
	admin.PATCH("/providers/:id/approval", providerHandler.UpdateApproval)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
