package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bank-support/internal/api/dto"
	"github.com/spec-kit/bank-support/internal/auth"
	"github.com/spec-kit/bank-support/internal/domain"
	"github.com/spec-kit/bank-support/internal/service"
	apperrors "github.com/spec-kit/bank-support/pkg/util/errorutil"
)

// AccountsHandler exposes the agent-console account moderation endpoints.
type AccountsHandler struct {
	moderation *service.ModerationService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(moderationService *service.ModerationService) *AccountsHandler {
	return &AccountsHandler{moderation: moderationService}
}

// Search handles GET /admin/accounts?email=.
func (h *AccountsHandler) Search(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return apperrors.NewValidationError("email query parameter required", nil)
	}

	account, err := h.moderation.FindByEmail(c.UserContext(), principal, email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AccountFromDomain(account)})
}

// UpdateRole handles PATCH /admin/accounts/:id/role.
func (h *AccountsHandler) UpdateRole(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	accountID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid account id", nil)
	}
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, err := h.moderation.SetRole(c.UserContext(), principal, accountID, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AccountFromDomain(account)})
}

// Delete handles DELETE /admin/accounts/:id.
func (h *AccountsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	accountID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid account id", nil)
	}

	if err := h.moderation.Delete(c.UserContext(), principal, accountID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": accountID}})
}
