package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"dispatch/internal/core/ports"
)

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates the request validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks a bound request body against its struct tags.
func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}

// NewRouter wires the server's handlers onto an echo instance.
//
// The quote and health endpoints are public; everything else requires a
// bearer credential resolved by the verifier. Role checks live in the
// handlers, since most routes are legal for one role only.
func NewRouter(server *Server, verifier ports.CredentialVerifier) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.Use(middleware.Recover())

	e.GET("/health", server.Health)
	e.GET("/api/v1/quote", server.GetQuote)

	api := e.Group("/api/v1", BearerAuth(verifier))
	api.POST("/orders", server.CreateOrder)
	api.POST("/orders/return", server.CreateReturnJob)
	api.POST("/orders/cancel", server.CancelOrder)
	api.GET("/jobs/available", server.GetAvailableJobs)
	api.GET("/jobs", server.GetJobs)
	api.POST("/jobs/:id/claim", server.ClaimJob)
	api.POST("/jobs/:id/arrival", server.RequestConfirmation)
	api.POST("/jobs/:id/confirm", server.ConfirmHandoff)
	api.POST("/jobs/:id/stored", server.MarkStored)
	api.GET("/movers/:id/route", server.GetSmartRoute)

	return e
}
