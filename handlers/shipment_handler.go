package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"shipment-tracker/cache"
	"shipment-tracker/errs"
	"shipment-tracker/middleware"
	"shipment-tracker/models"
)

// ShipmentHandler serves the user-scoped shipment CRUD. Every query is
// constrained by the caller's user id; someone else's shipment is
// indistinguishable from a missing one.
type ShipmentHandler struct {
	shipments ShipmentStore
	cache     *cache.TrackingCache
	logger    *zap.Logger
	validate  *validator.Validate
}

func NewShipmentHandler(shipments ShipmentStore, trackingCache *cache.TrackingCache, logger *zap.Logger) *ShipmentHandler {
	return &ShipmentHandler{
		shipments: shipments,
		cache:     trackingCache,
		logger:    logger,
		validate:  validator.New(),
	}
}

// List handles GET /api/user/shipments.
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)

	shipments, err := h.shipments.ListByUser(p.UserID)
	if err != nil {
		h.logger.Error("Failed to list shipments", zap.String("user_id", p.UserID), zap.Error(err))
		return failErr(c, fiber.StatusInternalServerError, "Failed to fetch shipments", err)
	}

	views := make([]any, 0, len(shipments))
	for i := range shipments {
		view, err := shipmentView(&shipments[i])
		if err != nil {
			return failErr(c, fiber.StatusInternalServerError, "Failed to fetch shipments", err)
		}
		views = append(views, view)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    views,
	})
}

// Create handles POST /api/user/shipments. The shipment is always assigned
// to the logged-in user.
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)

	var payload ShipmentPayload
	if err := c.BodyParser(&payload); err != nil {
		return fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}
	if err := h.validate.Struct(&payload); err != nil {
		return fail(c, fiber.StatusBadRequest, "Tracking number is required")
	}

	shipment := &models.Shipment{}
	if err := payload.Apply(shipment); err != nil {
		return failErr(c, fiber.StatusBadRequest, "Invalid date field", err)
	}
	userID := p.UserID
	shipment.UserID = &userID
	if events := payload.EventModels(); len(events) > 0 {
		shipment.Events = events
	}

	if err := h.shipments.Create(shipment); err != nil {
		h.logger.Error("Failed to create shipment",
			zap.String("tracking_number", shipment.TrackingNumber),
			zap.String("user_id", p.UserID), zap.Error(err))
		return failErr(c, fiber.StatusInternalServerError, "Failed to create shipment", err)
	}

	// Respond with server-computed state, not the raw write.
	created, err := h.shipments.FindByIDForUser(shipment.ID, p.UserID)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to create shipment", err)
	}
	view, err := shipmentView(created)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to create shipment", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    view,
		"message": "Shipment created successfully",
	})
}

// Get handles GET /api/user/shipments/:id.
func (h *ShipmentHandler) Get(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)

	shipment, err := h.shipments.FindByIDForUser(c.Params("id"), p.UserID)
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

// Update handles PUT /api/user/shipments/:id. Shipment fields persist first;
// the event set is then fully replaced iff the payload carries one.
func (h *ShipmentHandler) Update(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)
	id := c.Params("id")

	existing, err := h.shipments.FindByIDForUser(id, p.UserID)
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
	userID := p.UserID
	existing.UserID = &userID

	if err := h.shipments.Save(existing); err != nil {
		h.logger.Error("Failed to update shipment", zap.String("shipment_id", id), zap.Error(err))
		return failErr(c, fiber.StatusInternalServerError, "Failed to update shipment", err)
	}

	// Omitted events leave the stored set untouched; an empty array wipes it.
	if payload.Events != nil {
		if err := h.shipments.ReplaceEvents(id, payload.EventModels()); err != nil {
			h.logger.Error("Failed to replace tracking events", zap.String("shipment_id", id), zap.Error(err))
			return failErr(c, fiber.StatusInternalServerError, "Failed to update shipment", err)
		}
	}

	h.cache.Invalidate(c.Context(), append(staleKeys, existing.TrackingNumber)...)

	updated, err := h.shipments.FindByIDForUser(id, p.UserID)
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

// Delete handles DELETE /api/user/shipments/:id.
func (h *ShipmentHandler) Delete(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)
	id := c.Params("id")

	existing, err := h.shipments.FindByIDForUser(id, p.UserID)
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
