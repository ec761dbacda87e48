package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Preferences is the persisted theme/language pair.
type Preferences struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
}

// Defaults returns the preferences used when the file is absent or corrupt.
func Defaults() Preferences {
	return Preferences{Theme: "light", Language: "fr"}
}

// ValidTheme reports whether theme is a known value.
func ValidTheme(theme string) bool {
	return theme == "light" || theme == "dark"
}

// ValidLanguage reports whether language is a known value.
func ValidLanguage(language string) bool {
	return language == "fr" || language == "en"
}

// Manager reads and writes the preferences JSON file. Missing keys default;
// a corrupt file falls back to defaults on read.
type Manager struct {
	path   string
	logger *zap.Logger

	mu sync.Mutex
}

// NewManager constructs a manager for the given file path.
func NewManager(path string, logger *zap.Logger) *Manager {
	return &Manager{path: path, logger: logger}
}

// Load returns the stored preferences, filling any missing key with its
// default. Read failures are logged and never surfaced.
func (m *Manager) Load() Preferences {
	prefs := Defaults()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warn("preferences file unreadable, using defaults",
				zap.String("path", m.path), zap.Error(err))
		}
		return prefs
	}
	if len(data) == 0 {
		return prefs
	}

	var stored Preferences
	if err := json.Unmarshal(data, &stored); err != nil {
		m.logger.Warn("preferences file malformed, using defaults",
			zap.String("path", m.path), zap.Error(err))
		return prefs
	}
	if stored.Theme != "" {
		prefs.Theme = stored.Theme
	}
	if stored.Language != "" {
		prefs.Language = stored.Language
	}
	return prefs
}

// Save persists the preferences through a temp file and rename.
func (m *Manager) Save(prefs Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(prefs, "", "    ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".preferences-*.json")
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
	return os.Rename(tmp.Name(), m.path)
}
