package repository

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/bank-support/internal/domain"
)

// ErrComplaintNotFound is returned when an id does not resolve to a record.
var ErrComplaintNotFound = errors.New("complaint not found")

// ComplaintStore encapsulates durable storage of the complaint collection as
// a single ordered sequence.
type ComplaintStore interface {
	Load() []domain.Complaint
	Append(complaint domain.Complaint) error
	FindByID(id string) (domain.Complaint, bool)
	UpdateStatus(id string, statut domain.ComplaintStatus) error
}

// fileComplaintStore persists the collection as a pretty-printed UTF-8 JSON
// array. Every write rewrites the whole file; a mutex serializes writers so
// concurrent appends cannot drop each other, and the temp-file-then-rename
// step keeps a crash from truncating the archive.
type fileComplaintStore struct {
	path   string
	logger *zap.Logger

	mu sync.Mutex
}

// NewFileComplaintStore returns a JSON-file-backed implementation.
func NewFileComplaintStore(path string, logger *zap.Logger) ComplaintStore {
	return &fileComplaintStore{path: path, logger: logger}
}

// Load returns the stored collection in append order. An absent, empty or
// malformed file yields an empty collection; corruption is logged, never
// surfaced to the caller.
func (s *fileComplaintStore) Load() []domain.Complaint {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("complaint file unreadable, treating as empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return []domain.Complaint{}
	}
	if len(data) == 0 {
		return []domain.Complaint{}
	}

	var records []domain.Complaint
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("complaint file malformed, treating as empty",
			zap.String("path", s.path), zap.Error(err))
		return []domain.Complaint{}
	}
	if records == nil {
		records = []domain.Complaint{}
	}
	return records
}

func (s *fileComplaintStore) Append(complaint domain.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.Load()
	records = append(records, complaint)
	return s.write(records)
}

func (s *fileComplaintStore) FindByID(id string) (domain.Complaint, bool) {
	for _, record := range s.Load() {
		if record.ID == id {
			return record, true
		}
	}
	return domain.Complaint{}, false
}

func (s *fileComplaintStore) UpdateStatus(id string, statut domain.ComplaintStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.Load()
	for i := range records {
		if records[i].ID == id {
			records[i].Statut = statut
			return s.write(records)
		}
	}
	return ErrComplaintNotFound
}

// write marshals the collection to a temp file in the target directory and
// renames it over the store file.
func (s *fileComplaintStore) write(records []domain.Complaint) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".complaints-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
