// Package handlers contains the fiber handlers behind the JSON API. Every
// response uses the uniform envelope {success, data?|user?, message?, error?}.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shipment-tracker/auth"
	"shipment-tracker/config"
	"shipment-tracker/models"
	"shipment-tracker/shape"
	"shipment-tracker/tracking"
)

// UserStore is the slice of the user repository the handlers consume.
type UserStore interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByID(id string) (*models.User, error)
	ListNonAdmins() ([]models.User, error)
}

// ShipmentStore is the slice of the shipment repository the handlers consume.
type ShipmentStore interface {
	ListByUser(userID string) ([]models.Shipment, error)
	FindByID(id string) (*models.Shipment, error)
	FindByIDForUser(id, userID string) (*models.Shipment, error)
	FindByTrackingNumber(trackingNumber string) (*models.Shipment, error)
	Create(shipment *models.Shipment) error
	Save(shipment *models.Shipment) error
	ReplaceEvents(shipmentID string, events []models.TrackingEvent) error
	Delete(id string) error
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func failErr(c *fiber.Ctx, status int, message string, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"error":   err.Error(),
	})
}

// shipmentView shapes a shipment (with its events) into the camelCase wire
// form.
func shipmentView(s *models.Shipment) (any, error) {
	if s.Events == nil {
		s.Events = []models.TrackingEvent{}
	}
	return shape.Wire(s)
}

// trackingView is shipmentView plus the computed progress block used by the
// public tracking page.
func trackingView(s *models.Shipment) (any, error) {
	view, err := shipmentView(s)
	if err != nil {
		return nil, err
	}
	progress, err := shape.Wire(tracking.ComputeProgress(s.TrackingProgress))
	if err != nil {
		return nil, err
	}
	if m, ok := view.(map[string]any); ok {
		m["progress"] = progress
	}
	return view, nil
}

func setCookie(c *fiber.Ctx, cfg *config.Config, name, value string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HTTPOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearCookie(c *fiber.Ctx, cfg *config.Config, name string) {
	setCookie(c, cfg, name, "", -1)
}

func sessionCookieMaxAge() int {
	return int(auth.SessionTTL.Seconds())
}

func trackingCookieMaxAge() int {
	return int(auth.TrackingTTL.Seconds())
}
