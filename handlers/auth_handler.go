package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"shipment-tracker/auth"
	"shipment-tracker/config"
	"shipment-tracker/errs"
	"shipment-tracker/middleware"
	"shipment-tracker/models"
)

type registerPayload struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword"`
	Name            string `json:"name"`
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthHandler handles registration, login, logout and session introspection.
type AuthHandler struct {
	users    UserStore
	cfg      *config.Config
	logger   *zap.Logger
	validate *validator.Validate
}

func NewAuthHandler(users UserStore, cfg *config.Config, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		cfg:      cfg,
		logger:   logger,
		validate: validator.New(),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var payload registerPayload
	if err := c.BodyParser(&payload); err != nil {
		return fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}
	if err := h.validate.Struct(&payload); err != nil {
		return fail(c, fiber.StatusBadRequest, "Email and password are required")
	}
	if payload.ConfirmPassword != "" && payload.ConfirmPassword != payload.Password {
		return fail(c, fiber.StatusBadRequest, "Passwords do not match")
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Registration failed", err)
	}

	user := &models.User{
		Email:    payload.Email,
		Password: hash,
		Name:     payload.Name,
	}
	if err := h.users.Create(user); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return fail(c, fiber.StatusBadRequest, "Email already exists")
		}
		h.logger.Error("Failed to create user", zap.String("email", payload.Email), zap.Error(err))
		return failErr(c, fiber.StatusInternalServerError, "Registration failed", err)
	}

	if err := h.issueSession(c, user); err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Registration failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    user.Summary(),
		"message": "Registration successful",
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload loginPayload
	if err := c.BodyParser(&payload); err != nil {
		return fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}
	if err := h.validate.Struct(&payload); err != nil {
		return fail(c, fiber.StatusBadRequest, "Email and password are required")
	}

	user, err := h.users.FindByEmail(payload.Email)
	if err != nil || !auth.VerifyPassword(payload.Password, user.Password) {
		// Same response for unknown email and wrong password.
		return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	if err := h.issueSession(c, user); err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Login failed", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user.Summary(),
		"message": "Login successful",
	})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearCookie(c, h.cfg, auth.SessionCookie)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

// Session handles GET /api/auth/session. It always answers 200: the caller
// is either identified or null, never an error.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)
	if p == nil {
		return c.JSON(fiber.Map{"success": false, "user": nil})
	}

	// Best effort refresh from the store; the token payload is enough when
	// the lookup fails.
	summary := models.UserSummary{ID: p.UserID, Email: p.Email, IsAdmin: p.IsAdmin}
	if user, err := h.users.FindByID(p.UserID); err == nil {
		summary = user.Summary()
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    summary,
	})
}

func (h *AuthHandler) issueSession(c *fiber.Ctx, user *models.User) error {
	token, err := auth.CreateSessionToken(user.ID, user.Email, user.IsAdmin, h.cfg.SessionSecret)
	if err != nil {
		h.logger.Error("Failed to sign session token", zap.Error(err))
		return err
	}
	setCookie(c, h.cfg, auth.SessionCookie, token, sessionCookieMaxAge())
	return nil
}
