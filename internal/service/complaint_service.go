package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/bank-support/internal/domain"
	"github.com/spec-kit/bank-support/internal/events"
	"github.com/spec-kit/bank-support/internal/persistence"
	"github.com/spec-kit/bank-support/internal/repository"
	apperrors "github.com/spec-kit/bank-support/pkg/util/errorutil"
)

const complaintListCacheKey = "complaints:all"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ComplaintService coordinates the complaint lifecycle: validated submission,
// listing with sort, detail lookup and admin status changes.
type ComplaintService struct {
	store      repository.ComplaintStore
	cache      *persistence.Redis
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cacheTTL   time.Duration
}

// ComplaintDependencies bundles collaborators for the complaint service.
type ComplaintDependencies struct {
	Store      repository.ComplaintStore
	Cache      *persistence.Redis
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	CacheTTL   time.Duration
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		store:      deps.Store,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		cacheTTL:   deps.CacheTTL,
	}
}

// Submit validates the submission and persists a new complaint record. Every
// rule is checked and every violation collected before anything is stored.
func (s *ComplaintService) Submit(ctx context.Context, nom, email, description string) (*domain.Complaint, error) {
	nom = strings.TrimSpace(nom)
	email = strings.TrimSpace(email)
	description = strings.TrimSpace(description)

	var messages []string
	if nom == "" {
		messages = append(messages, "Le nom et prénom sont requis.")
	}
	if email == "" {
		messages = append(messages, "L'adresse e-mail est requise.")
	} else if !emailPattern.MatchString(email) {
		messages = append(messages, "Le format de l'adresse e-mail est invalide.")
	}
	if description == "" {
		messages = append(messages, "La description est requise.")
	}
	if len(messages) > 0 {
		return nil, apperrors.NewValidationFailed(messages)
	}

	complaint := domain.Complaint{
		ID:          uuid.NewString(),
		Nom:         nom,
		Email:       email,
		Description: description,
		Date:        time.Now().Format(domain.ComplaintDateLayout),
		Statut:      domain.ComplaintStatusPending,
	}
	if err := s.store.Append(complaint); err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)

	s.publishEvent(ctx, events.Event{
		Type:      events.EventComplaintSubmitted,
		SubjectID: complaint.ID,
		Actor:     events.Actor{Email: complaint.Email},
		Payload: events.ComplaintSubmittedPayload{
			Nom:                complaint.Nom,
			Email:              complaint.Email,
			DescriptionPreview: stringPreview(complaint.Description, 120),
		},
	})
	return &complaint, nil
}

// List returns the collection ordered by the requested column. The sort is
// stable: records with equal keys keep their insertion order.
func (s *ComplaintService) List(ctx context.Context, column string, descending bool) []domain.Complaint {
	records := s.loadListing(ctx)
	sorted := make([]domain.Complaint, len(records))
	copy(sorted, records)

	less := complaintLess(column)
	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// Detail fetches a single record by id.
func (s *ComplaintService) Detail(ctx context.Context, id string) (*domain.Complaint, error) {
	_ = ctx
	complaint, ok := s.store.FindByID(id)
	if !ok {
		return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
	}
	return &complaint, nil
}

// UpdateStatus sets a complaint's statut. Admin only; the record is otherwise
// immutable.
func (s *ComplaintService) UpdateStatus(ctx context.Context, principal domain.Principal, id string, statut domain.ComplaintStatus) (*domain.Complaint, error) {
	if !principal.IsAdmin() {
		return nil, apperrors.NewForbidden("administrator role required")
	}
	if !domain.ValidComplaintStatus(statut) {
		return nil, apperrors.NewValidationFailed([]string{"Le statut demandé est invalide."})
	}

	complaint, ok := s.store.FindByID(id)
	if !ok {
		return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
	}
	oldStatus := complaint.Statut

	if err := s.store.UpdateStatus(id, statut); err != nil {
		if errors.Is(err, repository.ErrComplaintNotFound) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
		}
		return nil, err
	}
	s.invalidateListing(ctx)

	s.publishEvent(ctx, events.Event{
		Type:      events.EventComplaintStatusChanged,
		SubjectID: id,
		Actor:     events.Actor{UserID: &principal.UserID, Email: principal.Email},
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: statut,
		},
	})

	complaint.Statut = statut
	return &complaint, nil
}

// loadListing reads the collection through the Redis cache when one is
// configured, falling back to the file store on a miss.
func (s *ComplaintService) loadListing(ctx context.Context) []domain.Complaint {
	client := s.cache.Handle()
	if client == nil || s.cacheTTL <= 0 {
		return s.store.Load()
	}

	if data, err := client.Get(ctx, complaintListCacheKey).Bytes(); err == nil {
		var records []domain.Complaint
		if json.Unmarshal(data, &records) == nil {
			return records
		}
	}

	records := s.store.Load()
	if data, err := json.Marshal(records); err == nil {
		if err := client.Set(ctx, complaintListCacheKey, data, s.cacheTTL).Err(); err != nil {
			s.logger.Warn("complaint listing cache write failed", zap.Error(err))
		}
	}
	return records
}

func (s *ComplaintService) invalidateListing(ctx context.Context) {
	client := s.cache.Handle()
	if client == nil {
		return
	}
	if err := client.Del(ctx, complaintListCacheKey).Err(); err != nil {
		s.logger.Warn("complaint listing cache invalidation failed", zap.Error(err))
	}
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// complaintLess builds the ascending comparator for a sort column. Dates are
// compared chronologically with a sentinel for missing or unparseable values;
// other columns compare numerically when both values are numbers and as
// lower-cased text otherwise.
func complaintLess(column string) func(a, b domain.Complaint) bool {
	if column == "date" {
		return func(a, b domain.Complaint) bool {
			return parseComplaintDate(a.Date).Before(parseComplaintDate(b.Date))
		}
	}
	return func(a, b domain.Complaint) bool {
		va := complaintField(a, column)
		vb := complaintField(b, column)
		if na, err := strconv.ParseFloat(va, 64); err == nil {
			if nb, err := strconv.ParseFloat(vb, 64); err == nil {
				return na < nb
			}
		}
		return strings.ToLower(va) < strings.ToLower(vb)
	}
}

var complaintDateFallback, _ = time.Parse(domain.ComplaintDateLayout, domain.ComplaintDateFallback)

func parseComplaintDate(value string) time.Time {
	parsed, err := time.Parse(domain.ComplaintDateLayout, value)
	if err != nil {
		return complaintDateFallback
	}
	return parsed
}

func complaintField(c domain.Complaint, column string) string {
	switch column {
	case "id":
		return c.ID
	case "nom":
		return c.Nom
	case "email":
		return c.Email
	case "description":
		return c.Description
	case "statut":
		return string(c.Statut)
	default:
		return ""
	}
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
