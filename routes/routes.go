package routes

import (
	"github.com/gofiber/fiber/v2"

	"shipment-tracker/handlers"
	"shipment-tracker/middleware"
)

// SetupRoutes registers the full API surface: public auth/tracking routes,
// the user-scoped shipment CRUD, and the admin surface.
func SetupRoutes(app *fiber.App, sessionSecret string,
	authH *handlers.AuthHandler,
	trackingH *handlers.TrackingHandler,
	shipmentsH *handlers.ShipmentHandler,
	adminH *handlers.AdminHandler,
) {
	api := app.Group("/api", middleware.LoadSession(sessionSecret))

	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/session", authH.Session)

	// Public tracking: no session checks on this path.
	api.Post("/track", trackingH.Track)
	api.Get("/tracking/:id", trackingH.Get)

	user := api.Group("/user", middleware.RequireUser())
	user.Get("/shipments", shipmentsH.List)
	user.Post("/shipments", shipmentsH.Create)
	user.Get("/shipments/:id", shipmentsH.Get)
	user.Put("/shipments/:id", shipmentsH.Update)
	user.Delete("/shipments/:id", shipmentsH.Delete)

	admin := api.Group("/admin", middleware.RequireUser(), middleware.RequireAdmin())
	admin.Get("/users", adminH.Users)
	admin.Get("/shipments/:id", adminH.GetShipment)
	admin.Put("/shipments/:id", adminH.UpdateShipment)
	admin.Delete("/shipments/:id", adminH.DeleteShipment)
}
