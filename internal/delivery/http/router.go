package http

import (
	"log/slog"
	"net/http"

	"fieldbooking/internal/delivery/http/controllers"
	"fieldbooking/internal/delivery/http/middleware"
	"fieldbooking/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Auth        *controllers.AuthController
	User        *controllers.UserController
	Field       *controllers.FieldController
	Reservation *controllers.ReservationController
	Report      *controllers.ReportController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)
	admin := middleware.RequireAdmin(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Users
	mux.HandleFunc("GET /users/me", auth(c.User.GetMe))
	mux.HandleFunc("PATCH /users/me", auth(c.User.UpdateMe))

	// Fields
	mux.HandleFunc("GET /fields", c.Field.ListFields)
	mux.HandleFunc("GET /fields/{fieldID}", c.Field.GetField)
	mux.HandleFunc("GET /fields/{fieldID}/availability", c.Field.ListAvailability)

	// Reservations
	mux.HandleFunc("POST /reservations", auth(c.Reservation.Create))
	mux.HandleFunc("GET /reservations/me", auth(c.Reservation.ListMine))
	mux.HandleFunc("GET /reservations/{reservationID}", auth(c.Reservation.Get))
	mux.HandleFunc("POST /reservations/{reservationID}/cancel", auth(c.Reservation.Cancel))

	// Admin
	mux.HandleFunc("GET /admin/fields", admin(c.Field.AdminListFields))
	mux.HandleFunc("POST /admin/fields", admin(c.Field.CreateField))
	mux.HandleFunc("PATCH /admin/fields/{fieldID}", admin(c.Field.UpdateField))
	mux.HandleFunc("DELETE /admin/fields/{fieldID}", admin(c.Field.DeleteField))
	mux.HandleFunc("POST /admin/fields/{fieldID}/availability", admin(c.Field.AddAvailability))
	mux.HandleFunc("DELETE /admin/availability/{windowID}", admin(c.Field.RemoveAvailability))
	mux.HandleFunc("GET /admin/reservations", admin(c.Reservation.AdminList))
	mux.HandleFunc("PATCH /admin/reservations/{reservationID}/status", admin(c.Reservation.UpdateStatus))
	mux.HandleFunc("DELETE /admin/reservations/{reservationID}", admin(c.Reservation.Delete))
	mux.HandleFunc("GET /admin/reports/fields", admin(c.Report.FieldUsage))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
