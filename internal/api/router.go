package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/esociety/society-api/internal/api/handler"
	"github.com/esociety/society-api/internal/api/metrics"
	"github.com/esociety/society-api/internal/api/middleware"
	"github.com/esociety/society-api/internal/core/ports"
	"github.com/esociety/society-api/internal/core/service"
)

// Services groups the core services the HTTP layer is built on.
type Services struct {
	Auth       ports.AuthService
	Accounts   ports.AccountService
	Units      ports.UnitService
	Billing    ports.BillingService
	Visitors   ports.VisitorService
	Complaints ports.ComplaintService
	Amenities  ports.AmenityService
	Notices    ports.NoticeService
	Dashboards ports.DashboardService
}

// Options carries the transport-level settings.
type Options struct {
	Cookie    handler.CookieConfig
	RateLimit float64
	RateBurst int
	Health    map[string]handler.Pinger
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(metrics.Middleware())
	e.Use(middleware.RequestLogger(opts.Log))
	policy := service.DefaultPolicy()
	e.Use(middleware.Session(svc.Auth, opts.Cookie.Name, policy, opts.Log))
	e.Use(middleware.Access(policy))

	// --- Handlers ---
	auth := handler.NewAuthHandler(svc.Auth, opts.Cookie, opts.Log)
	dashboards := handler.NewDashboardHandler(svc.Dashboards, svc.Notices)
	accounts := handler.NewAccountHandler(svc.Accounts)
	units := handler.NewUnitHandler(svc.Units)
	billing := handler.NewBillingHandler(svc.Billing)
	visitors := handler.NewVisitorHandler(svc.Visitors)
	complaints := handler.NewComplaintHandler(svc.Complaints)
	amenities := handler.NewAmenityHandler(svc.Amenities)
	notices := handler.NewNoticeHandler(svc.Notices)
	health := handler.NewHealthHandler(opts.Health)

	// --- Auth routes ---
	throttle := middleware.AuthRateLimit(opts.RateLimit, opts.RateBurst)
	e.GET("/", auth.Landing)
	e.GET("/signup", auth.SignupForm)
	e.POST("/signup", auth.Signup, throttle)
	e.GET("/login", auth.LoginForm)
	e.POST("/login", auth.Login, throttle)
	e.GET("/logout", auth.Logout)

	// --- Admin ---
	admin := e.Group("/admin")
	admin.GET("", dashboards.Admin)
	admin.GET("/", dashboards.Admin)
	admin.GET("/accounts", accounts.List)
	admin.DELETE("/accounts/:id", accounts.Deactivate)
	admin.POST("/units", units.Create)
	admin.GET("/units", units.List)
	admin.GET("/units/:id", units.Get)
	admin.POST("/residents", units.CreateResident)
	admin.GET("/residents", units.ListResidents)
	admin.POST("/bills", billing.Create)
	admin.GET("/bills", billing.List)
	admin.PATCH("/bills/:id", billing.UpdateStatus)
	admin.GET("/transactions", billing.ListTransactions)
	admin.GET("/complaints", complaints.List)
	admin.PATCH("/complaints/:id", complaints.Update)
	admin.POST("/amenities", amenities.Create)
	admin.PATCH("/amenities/:id", amenities.SetAvailability)
	admin.GET("/bookings", amenities.ListBookings)
	admin.PATCH("/bookings/:id", amenities.UpdateBookingStatus)
	admin.GET("/notices", notices.All)
	admin.POST("/notices", notices.Post)
	admin.DELETE("/notices/:id", notices.Deactivate)

	// --- Resident ---
	resident := e.Group("/resident")
	resident.GET("", dashboards.Resident)
	resident.GET("/", dashboards.Resident)
	resident.GET("/bills", billing.MyBills)
	resident.POST("/bills/:id/pay", billing.Pay)
	resident.GET("/transactions", billing.MyTransactions)
	resident.GET("/visitors", visitors.Mine)
	resident.GET("/complaints", complaints.Mine)
	resident.POST("/complaints", complaints.Raise)
	resident.POST("/amenities/:id/bookings", amenities.Book)
	resident.GET("/bookings", amenities.MyBookings)

	// --- Guard ---
	guard := e.Group("/guard")
	guard.GET("", dashboards.Guard)
	guard.GET("/", dashboards.Guard)
	guard.GET("/visitors", visitors.List)
	guard.POST("/visitors", visitors.CheckIn)
	guard.POST("/visitors/:id/checkout", visitors.CheckOut)

	// --- Shared by every role ---
	e.GET("/notices", notices.Current)
	e.GET("/amenities", amenities.List)

	// --- Operations (no auth required) ---
	e.GET("/health", health.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", health.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
