package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bank-support/internal/api/dto"
	"github.com/spec-kit/bank-support/internal/auth"
	"github.com/spec-kit/bank-support/internal/domain"
	"github.com/spec-kit/bank-support/internal/service"
	apperrors "github.com/spec-kit/bank-support/pkg/util/errorutil"
)

// ComplaintsHandler exposes the public submission endpoint and the admin
// listing/detail/status endpoints.
type ComplaintsHandler struct {
	service *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// Submit handles POST /complaints. The form is public; validation happens in
// the service so every violated rule is reported at once.
func (h *ComplaintsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.service.Submit(c.UserContext(), req.Nom, req.Email, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.ComplaintFromDomain(complaint)})
}

// List handles GET /admin/complaints?sort=&desc=.
func (h *ComplaintsHandler) List(c *fiber.Ctx) error {
	column := c.Query("sort", "date")
	descending := c.QueryBool("desc", false)

	complaints := h.service.List(c.UserContext(), column, descending)
	items := make([]dto.ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, dto.ComplaintFromDomain(&complaints[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Detail handles GET /admin/complaints/:id.
func (h *ComplaintsHandler) Detail(c *fiber.Ctx) error {
	complaint, err := h.service.Detail(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ComplaintFromDomain(complaint)})
}

// UpdateStatus handles PATCH /admin/complaints/:id/status.
func (h *ComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateComplaintStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.service.UpdateStatus(c.UserContext(), principal, c.Params("id"), domain.ComplaintStatus(req.Statut))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ComplaintFromDomain(complaint)})
}
