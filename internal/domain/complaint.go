package domain

// ComplaintStatus enumerates lifecycle states for complaints. The French wire
// values are preserved from the legacy agent console and its JSON archive.
type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "En attente"
	ComplaintStatusInProgress ComplaintStatus = "En cours"
	ComplaintStatusResolved   ComplaintStatus = "Résolue"
)

// ComplaintDateLayout is the fixed textual format for complaint timestamps.
const ComplaintDateLayout = "02/01/2006 15:04"

// ComplaintDateFallback sorts records with a missing or unparseable date
// before everything else.
const ComplaintDateFallback = "01/01/1900 00:00"

// Complaint is a single customer-submitted issue. A record is immutable after
// creation except for Statut. JSON tags match the persisted file format.
type Complaint struct {
	ID          string          `json:"id"`
	Nom         string          `json:"nom"`
	Email       string          `json:"email"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Statut      ComplaintStatus `json:"statut"`
}

// ValidComplaintStatus reports whether s is one of the known statuses.
func ValidComplaintStatus(s ComplaintStatus) bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusInProgress, ComplaintStatusResolved:
		return true
	}
	return false
}
