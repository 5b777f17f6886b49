package collector

import (
	"github.com/mchmarny/winspect/pkg/category"
)

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	Create(c category.Category) Collector
	Categories() []category.Category
}

// DefaultFactory creates collectors backed by PowerShell.
type DefaultFactory struct {
	Runner Runner

	// SecretPatterns overrides the default key patterns dropped from
	// environment and registry output.
	SecretPatterns []string
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory() *DefaultFactory {
	return &DefaultFactory{
		Runner:         &PowerShellRunner{},
		SecretPatterns: secretPatterns,
	}
}

// Create builds the collector for a category. Environment variables and
// registry settings get the secret filter; other categories pass
// through untouched.
func (f *DefaultFactory) Create(c category.Category) Collector {
	col := &CommandCollector{
		Cat:      c,
		Runner:   f.Runner,
		Commands: commands[c],
	}
	switch c {
	case category.EnvironmentVariables, category.RegistrySettings:
		col.Filter = f.SecretPatterns
	}
	return col
}

// Categories lists every category this factory can collect, in
// collection order.
func (f *DefaultFactory) Categories() []category.Category {
	out := make([]category.Category, 0, len(category.All))
	for _, c := range category.All {
		if _, ok := commands[c]; ok {
			out = append(out, c)
		}
	}
	return out
}
