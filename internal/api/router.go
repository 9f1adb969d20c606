package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/companycore/management-system/internal/api/handler"
	"github.com/companycore/management-system/internal/api/middleware"
	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/core/domain"
	"github.com/companycore/management-system/internal/core/ports"
	"github.com/companycore/management-system/internal/realtime"
)

// Services bundles the application services the router exposes.
type Services struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Projects ports.ProjectService
	Catalog  ports.CatalogService
	Requests ports.RequestService
	Messages ports.MessageService
}

// Deps carries everything NewRouter needs beyond the services themselves.
type Deps struct {
	Services  Services
	Verifier  *auth.Verifier
	Hub       *realtime.Hub
	Readiness *handler.ReadinessHandler
	Log       zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("company_mgmt"))

	// --- Operational endpoints (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)
	e.GET("/health", handler.NewHealthHandler().Liveness)
	if d.Readiness != nil {
		e.GET("/health/ready", d.Readiness.Readiness)
	}

	// --- Realtime ---
	wsHandler := realtime.NewHandler(d.Hub, d.Verifier, d.Log)
	e.GET("/ws", wsHandler.Serve)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Services.Auth)
	userHandler := handler.NewUserHandler(d.Services.Users)
	projectHandler := handler.NewProjectHandler(d.Services.Projects)
	catalogHandler := handler.NewCatalogHandler(d.Services.Catalog)
	requestHandler := handler.NewRequestHandler(d.Services.Requests)
	messageHandler := handler.NewMessageHandler(d.Services.Messages)

	// --- Public routes ---
	e.POST("/api/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	authed := e.Group("/api", middleware.Identity(d.Verifier))

	authed.GET("/auth/me", authHandler.Me)
	authed.POST("/auth/logout", authHandler.Logout)

	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	users := authed.Group("/users")
	users.GET("", userHandler.List, adminOnly)
	users.POST("", userHandler.Create, adminOnly)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	projects := authed.Group("/projects")
	projects.GET("", projectHandler.List)
	projects.POST("", projectHandler.Create, adminOnly)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete, adminOnly)
	projects.PUT("/:id/assign", projectHandler.Assign, adminOnly)
	projects.PUT("/:id/payments", projectHandler.AddPayment, adminOnly)
	projects.POST("/:id/files", projectHandler.AttachFiles)
	projects.POST("/:id/payment-orders", projectHandler.CreatePaymentOrder)
	projects.POST("/:id/payment-verify", projectHandler.VerifyPayment)

	services := authed.Group("/services")
	services.GET("", catalogHandler.ListServices)
	services.POST("", catalogHandler.CreateService, adminOnly)
	services.GET("/:id", catalogHandler.GetService)
	services.PUT("/:id", catalogHandler.UpdateService, adminOnly)
	services.DELETE("/:id", catalogHandler.DeleteService, adminOnly)

	companies := authed.Group("/companies")
	companies.GET("", catalogHandler.ListCompanies)
	companies.POST("", catalogHandler.CreateCompany, adminOnly)
	companies.GET("/:id", catalogHandler.GetCompany)
	companies.PUT("/:id", catalogHandler.UpdateCompany, adminOnly)
	companies.DELETE("/:id", catalogHandler.DeleteCompany, adminOnly)

	requests := authed.Group("/service-requests")
	requests.GET("", requestHandler.List)
	requests.POST("", requestHandler.Create, middleware.RequireRole(domain.RoleClient))
	requests.GET("/:id", requestHandler.Get)
	requests.PUT("/:id/approve", requestHandler.Approve, adminOnly)
	requests.PUT("/:id/reject", requestHandler.Reject, adminOnly)

	messages := authed.Group("/messages")
	messages.GET("/conversations", messageHandler.Conversations)
	messages.POST("", messageHandler.Send)
	messages.GET("/:userId", messageHandler.Thread)

	return e
}
