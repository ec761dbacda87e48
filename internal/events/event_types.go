package events

import (
	"time"

	"github.com/spec-kit/bank-support/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintSubmitted     EventType = "complaint_submitted"
	EventComplaintStatusChanged EventType = "complaint_status_changed"
	EventAccountRoleChanged     EventType = "account_role_changed"
	EventAccountDeleted         EventType = "account_deleted"
)

// Actor encapsulates who caused an event. Complaint submissions are public,
// so the actor may carry only the submitter email.
type Actor struct {
	UserID *int64 `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Event represents a domain event emitted by services. SubjectID is the
// complaint id or account id the event is about.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ComplaintSubmittedPayload payload.
type ComplaintSubmittedPayload struct {
	Nom                string `json:"nom"`
	Email              string `json:"email"`
	DescriptionPreview string `json:"description_preview"`
}

// ComplaintStatusChangedPayload payload.
type ComplaintStatusChangedPayload struct {
	OldStatus domain.ComplaintStatus `json:"old_status"`
	NewStatus domain.ComplaintStatus `json:"new_status"`
}

// AccountRoleChangedPayload payload.
type AccountRoleChangedPayload struct {
	OldRole domain.Role `json:"old_role"`
	NewRole domain.Role `json:"new_role"`
}

// AccountDeletedPayload payload.
type AccountDeletedPayload struct {
	Email string `json:"email"`
}
