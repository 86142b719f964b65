package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"shipment-tracker/cache"
	"shipment-tracker/errs"
	"shipment-tracker/shape"
)

// AdminHandler serves the admin surface: user listing and shipment
// operations unscoped by owner. Routes are gated by RequireAdmin.
type AdminHandler struct {
	users     UserStore
	shipments ShipmentStore
	cache     *cache.TrackingCache
	logger    *zap.Logger
	validate  *validator.Validate
}

func NewAdminHandler(users UserStore, shipments ShipmentStore, trackingCache *cache.TrackingCache, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		users:     users,
		shipments: shipments,
		cache:     trackingCache,
		logger:    logger,
		validate:  validator.New(),
	}
}

// Users handles GET /api/admin/users: all non-admin accounts, newest first.
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.users.ListNonAdmins()
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		return failErr(c, fiber.StatusInternalServerError, "Failed to fetch users", err)
	}

	views := make([]any, 0, len(users))
	for i := range users {
		view, err := shape.Wire(&users[i])
		if err != nil {
			return failErr(c, fiber.StatusInternalServerError, "Failed to fetch users", err)
		}
		views = append(views, view)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    views,
	})
}

// GetShipment handles GET /api/admin/shipments/:id.
func (h *AdminHandler) GetShipment(c *fiber.Ctx) error {
	shipment, err := h.shipments.FindByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Shipment not found")
		}
		return failErr(c, fiber.StatusInternalServerError, "Failed to fetch shipment", err)
	}

	view, err := shipmentView(shipment)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to fetch shipment", err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    view,
	})
}

// UpdateShipment handles PUT /api/admin/shipments/:id. Unlike the user
// scope, an explicit userId in the payload reassigns ownership.
func (h *AdminHandler) UpdateShipment(c *fiber.Ctx) error {
	id := c.Params("id")

	existing, err := h.shipments.FindByID(id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Shipment not found")
		}
		return failErr(c, fiber.StatusInternalServerError, "Failed to update shipment", err)
	}

	var payload ShipmentPayload
	if err := c.BodyParser(&payload); err != nil {
		return fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}
	if err := h.validate.Struct(&payload); err != nil {
		return fail(c, fiber.StatusBadRequest, "Tracking number is required")
	}

	staleKeys := []string{existing.ID, existing.TrackingNumber}

	if err := payload.Apply(existing); err != nil {
		return failErr(c, fiber.StatusBadRequest, "Invalid date field", err)
	}
	if payload.UserID != nil {
		if *payload.UserID == "" {
			existing.UserID = nil
		} else {
			existing.UserID = payload.UserID
		}
	}

	if err := h.shipments.Save(existing); err != nil {
		h.logger.Error("Failed to update shipment", zap.String("shipment_id", id), zap.Error(err))
		return failErr(c, fiber.StatusInternalServerError, "Failed to update shipment", err)
	}

	if payload.Events != nil {
		if err := h.shipments.ReplaceEvents(id, payload.EventModels()); err != nil {
			h.logger.Error("Failed to replace tracking events", zap.String("shipment_id", id), zap.Error(err))
			return failErr(c, fiber.StatusInternalServerError, "Failed to update shipment", err)
		}
	}

	h.cache.Invalidate(c.Context(), append(staleKeys, existing.TrackingNumber)...)

	updated, err := h.shipments.FindByID(id)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to update shipment", err)
	}
	view, err := shipmentView(updated)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to update shipment", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    view,
		"message": "Shipment updated successfully",
	})
}

// DeleteShipment handles DELETE /api/admin/shipments/:id.
func (h *AdminHandler) DeleteShipment(c *fiber.Ctx) error {
	id := c.Params("id")

	existing, err := h.shipments.FindByID(id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Shipment not found")
		}
		return failErr(c, fiber.StatusInternalServerError, "Failed to delete shipment", err)
	}

	if err := h.shipments.Delete(id); err != nil {
		h.logger.Error("Failed to delete shipment", zap.String("shipment_id", id), zap.Error(err))
		return failErr(c, fiber.StatusInternalServerError, "Failed to delete shipment", err)
	}

	h.cache.Invalidate(c.Context(), existing.ID, existing.TrackingNumber)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Shipment deleted successfully",
	})
}
