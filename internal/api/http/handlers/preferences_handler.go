package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bank-support/internal/api/dto"
	"github.com/spec-kit/bank-support/internal/prefs"
	apperrors "github.com/spec-kit/bank-support/pkg/util/errorutil"
)

// PreferencesHandler reads and writes the theme/language preferences.
type PreferencesHandler struct {
	manager *prefs.Manager
}

// NewPreferencesHandler constructs handler.
func NewPreferencesHandler(manager *prefs.Manager) *PreferencesHandler {
	return &PreferencesHandler{manager: manager}
}

// Get handles GET /preferences.
func (h *PreferencesHandler) Get(c *fiber.Ctx) error {
	current := h.manager.Load()
	return c.JSON(fiber.Map{"data": dto.PreferencesPayload{
		Theme:    current.Theme,
		Language: current.Language,
	}})
}

// Update handles PUT /preferences. Omitted fields keep their current value.
func (h *PreferencesHandler) Update(c *fiber.Ctx) error {
	var req dto.PreferencesPayload
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	current := h.manager.Load()
	if req.Theme != "" {
		if !prefs.ValidTheme(req.Theme) {
			return apperrors.NewValidationError("theme must be one of: light, dark", nil)
		}
		current.Theme = req.Theme
	}
	if req.Language != "" {
		if !prefs.ValidLanguage(req.Language) {
			return apperrors.NewValidationError("language must be one of: fr, en", nil)
		}
		current.Language = req.Language
	}

	if err := h.manager.Save(current); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.PreferencesPayload{
		Theme:    current.Theme,
		Language: current.Language,
	}})
}
