package settings

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/mchmarny/winspect/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Manager owns the settings lifecycle: load on startup, serve reads,
// validate and persist updates. Safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	path    string
	current *Settings
}

// NewManager loads settings from the YAML file at path, overlaying
// environment variables. A missing file is not an error; defaults
// apply.
func NewManager(path string) (*Manager, error) {
	s := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, s); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "parsing settings file", err)
			}
		case !os.IsNotExist(err):
			return nil, errors.Wrap(errors.ErrCodeInternal, "reading settings file", err)
		}
	}

	s.applyEnv()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &Manager{path: path, current: s}, nil
}

// Get returns a copy of the current settings.
func (m *Manager) Get() *Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.clone()
}

// Update validates the new settings, persists them when a file path is
// configured, and swaps them in.
func (m *Manager) Update(s *Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.path != "" {
		data, err := s.marshal()
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, "marshaling settings", err)
		}
		if dir := filepath.Dir(m.path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, "creating settings directory", err)
			}
		}
		if err := os.WriteFile(m.path, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, "writing settings file", err)
		}
	}

	m.current = s.clone()
	return nil
}

// envTemplate is the starter .env file written by WriteEnvTemplate.
const envTemplate = `# winspect configuration
# Uncomment and adjust as needed; all values are optional.

# Base URL of the OpenAI-compatible inference server.
#WINSPECT_SERVER_URL=http://localhost:1234/v1

# API key for the inference server (most local servers ignore this).
#WINSPECT_API_KEY=

# Default model identifier.
#WINSPECT_MODEL=local-model

# Root directory for snapshot storage.
#WINSPECT_SNAPSHOTS_DIR=snapshots

# Completion limits.
#WINSPECT_MAX_TOKENS=2048
#WINSPECT_TEMPERATURE=0.2

# Logging: debug, info, warn, or error.
#WINSPECT_LOG_LEVEL=info
`

// WriteEnvTemplate writes a commented starter .env file. Refuses to
// overwrite an existing file.
func WriteEnvTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.New(errors.ErrCodeInvalidRequest, path+" already exists")
	}
	return os.WriteFile(path, []byte(envTemplate), 0o644)
}
