package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"shipment-tracker/auth"
	"shipment-tracker/cache"
	"shipment-tracker/config"
	"shipment-tracker/errs"
	"shipment-tracker/models"
)

type trackPayload struct {
	TrackingNumber string `json:"trackingNumber"`
}

// TrackingHandler serves the anonymous lookup flow. Tracking data is public
// to anyone who knows the tracking number; no session checks apply here.
type TrackingHandler struct {
	shipments ShipmentStore
	cache     *cache.TrackingCache
	cfg       *config.Config
	logger    *zap.Logger
}

func NewTrackingHandler(shipments ShipmentStore, trackingCache *cache.TrackingCache, cfg *config.Config, logger *zap.Logger) *TrackingHandler {
	return &TrackingHandler{
		shipments: shipments,
		cache:     trackingCache,
		cfg:       cfg,
		logger:    logger,
	}
}

// Track handles POST /api/track: validates the tracking number, marks the
// lookup with a short-lived cookie, and hands back the canonical number.
func (h *TrackingHandler) Track(c *fiber.Ctx) error {
	var payload trackPayload
	if err := c.BodyParser(&payload); err != nil {
		return fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}

	trackingNumber := strings.TrimSpace(payload.TrackingNumber)
	if trackingNumber == "" {
		return fail(c, fiber.StatusBadRequest, "Tracking number is required")
	}

	shipment, err := h.shipments.FindByTrackingNumber(trackingNumber)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Shipment not found")
		}
		h.logger.Error("Failed to look up shipment",
			zap.String("tracking_number", trackingNumber), zap.Error(err))
		return failErr(c, fiber.StatusInternalServerError, "Failed to track shipment", err)
	}

	token, err := auth.CreateTrackingToken(shipment.TrackingNumber, h.cfg.SessionSecret)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to track shipment", err)
	}
	setCookie(c, h.cfg, auth.TrackingCookie, token, trackingCookieMaxAge())

	return c.JSON(fiber.Map{
		"success":        true,
		"shipmentId":     shipment.ID,
		"trackingNumber": shipment.TrackingNumber,
	})
}

// Get handles GET /api/tracking/:id. The parameter is a tracking number
// first, an internal id as fallback.
func (h *TrackingHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return fail(c, fiber.StatusBadRequest, "Tracking number is required")
	}

	if body, ok := h.cache.Get(c.Context(), id); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	}

	shipment, err := h.resolve(id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Shipment not found")
		}
		h.logger.Error("Failed to fetch shipment", zap.String("id", id), zap.Error(err))
		return failErr(c, fiber.StatusInternalServerError, "Failed to fetch shipment", err)
	}

	view, err := trackingView(shipment)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to fetch shipment", err)
	}

	response := fiber.Map{
		"success": true,
		"data":    view,
		"message": "Shipment retrieved successfully",
	}

	if body, err := json.Marshal(response); err == nil {
		h.cache.Set(c.Context(), id, body)
	}

	return c.JSON(response)
}

func (h *TrackingHandler) resolve(id string) (*models.Shipment, error) {
	shipment, err := h.shipments.FindByTrackingNumber(id)
	if err == nil {
		return shipment, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	return h.shipments.FindByID(id)
}
