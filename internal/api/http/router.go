package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Users           *handlers.UsersHandler
	Profiles        *handlers.ProfileHandler
	MechanicReqs    *handlers.MechanicRequestsHandler
	CarWashBookings *handlers.CarWashBookingsHandler
	Payments        *handlers.PaymentsHandler
	JobApplications *handlers.JobApplicationsHandler
	RequestHistory  *handlers.RequestHistoryHandler
	AuthMiddleware  *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The token gate runs on every /api route;
// it only rejects requests that present a bad token, so public endpoints stay
// reachable without credentials.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	users := api.Group("/users")
	users.Post("/login", cfg.Users.Login)
	users.Post("", cfg.Users.CreateUser)
	users.Get("", auth.RequireAuthenticated(), cfg.Users.ListUsers)
	users.Get("/:username", auth.RequireAuthenticated(), cfg.Users.GetUser)
	users.Put("/:username", auth.RequireAuthenticated(), cfg.Users.UpdateUser)
	users.Delete("/:username", auth.RequireAuthenticated(), cfg.Users.DeleteUser)

	profiles := api.Group("/user-profile", auth.RequireAuthenticated())
	profiles.Post("", cfg.Profiles.CreateProfile)
	profiles.Get("", cfg.Profiles.GetOwnProfile)
	profiles.Get("/all", cfg.Profiles.GetAllProfiles)
	profiles.Get("/role/:role", cfg.Profiles.GetProfilesByRole)
	profiles.Put("", cfg.Profiles.UpdateProfile)
	profiles.Delete("", cfg.Profiles.DeleteProfile)

	mechanic := api.Group("/request-mechanic", auth.RequireAuthenticated())
	mechanic.Post("", cfg.MechanicReqs.Create)
	mechanic.Put("", cfg.MechanicReqs.Update)
	mechanic.Get("/user/:username", cfg.MechanicReqs.ListByUsername)
	mechanic.Get("/:id", cfg.MechanicReqs.GetByID)
	mechanic.Delete("/user/:username", cfg.MechanicReqs.DeleteByUsername)

	bookings := api.Group("/carwash-bookings", auth.RequireAuthenticated())
	bookings.Post("/create", cfg.CarWashBookings.Create)
	bookings.Get("", cfg.CarWashBookings.List)
	bookings.Get("/client/:username", cfg.CarWashBookings.ListByClient)
	bookings.Get("/:id", cfg.CarWashBookings.GetByID)
	bookings.Put("/update/:id", cfg.CarWashBookings.Update)
	bookings.Delete("/delete/:id", cfg.CarWashBookings.Delete)

	payments := api.Group("/payments", auth.RequireAuthenticated())
	payments.Post("/pay", cfg.Payments.Pay)
	payments.Get("", cfg.Payments.List)
	payments.Get("/client/:username", cfg.Payments.ListByClient)
	payments.Get("/mechanic/:mechanicId", cfg.Payments.ListByMechanic)
	payments.Get("/carWash/:carWashId", cfg.Payments.ListByCarWash)
	// /all must register before /:paymentId or the param route captures it.
	payments.Delete("/all", auth.RequireAdmin(), cfg.Payments.DeleteAll)
	payments.Delete("/:paymentId", cfg.Payments.Delete)

	applications := api.Group("/job-applications")
	applications.Post("", cfg.JobApplications.Create)
	applications.Get("", auth.RequireAuthenticated(), cfg.JobApplications.List)
	applications.Get("/:id", auth.RequireAuthenticated(), cfg.JobApplications.Get)
	applications.Put("/:id", auth.RequireAuthenticated(), cfg.JobApplications.Update)
	applications.Delete("/:id", auth.RequireAuthenticated(), cfg.JobApplications.Delete)

	history := api.Group("/request-history", auth.RequireAuthenticated())
	history.Get("", cfg.RequestHistory.List)
	history.Get("/user/:username", cfg.RequestHistory.ListForUser)
	history.Post("", cfg.RequestHistory.Create)
	history.Put("/user/:username", cfg.RequestHistory.UpdateForUser)
	history.Delete("/user/:username", cfg.RequestHistory.DeleteForUser)
}
