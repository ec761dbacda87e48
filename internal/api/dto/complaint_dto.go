package dto

import "github.com/spec-kit/bank-support/internal/domain"

// SubmitComplaintRequest payload for the public complaint form.
type SubmitComplaintRequest struct {
	Nom         string `json:"nom"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

// UpdateComplaintStatusRequest payload for admin status changes.
type UpdateComplaintStatusRequest struct {
	Statut string `json:"statut"`
}

// ComplaintResponse mirrors the persisted record.
type ComplaintResponse struct {
	ID          string `json:"id"`
	Nom         string `json:"nom"`
	Email       string `json:"email"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Statut      string `json:"statut"`
}

// ComplaintFromDomain maps a record to its response shape.
func ComplaintFromDomain(c *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:          c.ID,
		Nom:         c.Nom,
		Email:       c.Email,
		Description: c.Description,
		Date:        c.Date,
		Statut:      string(c.Statut),
	}
}
