package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mchmarny/winspect/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		valid  bool
	}{
		{"default", func(*Settings) {}, true},
		{"missing server url", func(s *Settings) { s.ServerURL = "" }, false},
		{"bad server url", func(s *Settings) { s.ServerURL = "not a url" }, false},
		{"missing model", func(s *Settings) { s.Model = "" }, false},
		{"zero max tokens", func(s *Settings) { s.MaxTokens = 0 }, false},
		{"temperature too high", func(s *Settings) { s.Temperature = 3 }, false},
		{"bad log level", func(s *Settings) { s.LogLevel = "verbose" }, false},
		{"empty log level ok", func(s *Settings) { s.LogLevel = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			err := s.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
			}
		})
	}
}

func TestManagerLoadMissingFile(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().ServerURL, m.Get().ServerURL)
}

func TestManagerUpdatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	m, err := NewManager(path)
	require.NoError(t, err)

	s := m.Get()
	s.Model = "qwen2.5-7b"
	require.NoError(t, m.Update(s))
	assert.Equal(t, "qwen2.5-7b", m.Get().Model)

	// a fresh manager sees the persisted value
	m2, err := NewManager(path)
	require.NoError(t, err)
	assert.Equal(t, "qwen2.5-7b", m2.Get().Model)
}

func TestManagerUpdateRejectsInvalid(t *testing.T) {
	m, err := NewManager("")
	require.NoError(t, err)

	s := m.Get()
	s.MaxTokens = -1
	require.Error(t, m.Update(s))
	assert.NotEqual(t, -1, m.Get().MaxTokens)
}

func TestManagerGetReturnsCopy(t *testing.T) {
	m, err := NewManager("")
	require.NoError(t, err)

	s := m.Get()
	s.Model = "mutated"
	assert.NotEqual(t, "mutated", m.Get().Model)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WINSPECT_MODEL", "env-model")
	t.Setenv("WINSPECT_MAX_TOKENS", "512")

	m, err := NewManager("")
	require.NoError(t, err)
	assert.Equal(t, "env-model", m.Get().Model)
	assert.Equal(t, 512, m.Get().MaxTokens)
}

func TestWriteEnvTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, WriteEnvTemplate(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "WINSPECT_SERVER_URL")

	// never overwrite
	require.Error(t, WriteEnvTemplate(path))
}
