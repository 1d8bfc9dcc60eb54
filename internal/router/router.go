package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"medibook/internal/auth"
	"medibook/internal/config"
	"medibook/internal/handler"
	"medibook/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	// Appointment routes
	appointments := secured.Group("/appointments")
	appointments.GET("/doctors", appointmentHandler.ListDoctors)
	appointments.GET("", appointmentHandler.List)
	appointments.POST("/book", appointmentHandler.Book, auth.RequireRole(model.RolePatient))
	appointments.PUT("/:id/status", appointmentHandler.UpdateStatus, auth.RequireRole(model.RoleDoctor))
	appointments.POST("/:id/review", appointmentHandler.SubmitReview, auth.RequireRole(model.RolePatient))

	// Admin routes
	admin := secured.Group("/admin", auth.RequireRole(model.RoleAdmin))
	admin.GET("/doctors", adminHandler.ListDoctors)
	admin.POST("/doctors", adminHandler.CreateDoctor)
	admin.PUT("/doctors/:id/approve", adminHandler.SetApproval)
	admin.DELETE("/doctors/:id", adminHandler.DeleteDoctor)
	admin.GET("/analytics", adminHandler.Analytics)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
