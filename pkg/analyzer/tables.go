package analyzer

import (
	"embed"
	"sync"

	"github.com/mchmarny/winspect/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var tablesFS embed.FS

// tables holds the embedded tuning data: program bucket keyword maps and
// metric classification cutoffs.
type tuningTables struct {
	Software    map[string][]string
	Classifiers map[string]Classifier
}

var (
	tablesOnce   sync.Once
	cachedTables *tuningTables
	cachedErr    error
)

func loadTables() (*tuningTables, error) {
	tablesOnce.Do(func() {
		t := &tuningTables{}

		raw, err := tablesFS.ReadFile("data/buckets.yaml")
		if err != nil {
			cachedErr = errors.Wrap(errors.ErrCodeInternal, "reading bucket tables", err)
			return
		}
		var buckets struct {
			Software map[string][]string `yaml:"software"`
		}
		if err := yaml.Unmarshal(raw, &buckets); err != nil {
			cachedErr = errors.Wrap(errors.ErrCodeInternal, "parsing bucket tables", err)
			return
		}
		t.Software = buckets.Software

		raw, err = tablesFS.ReadFile("data/thresholds.yaml")
		if err != nil {
			cachedErr = errors.Wrap(errors.ErrCodeInternal, "reading threshold tables", err)
			return
		}
		if err := yaml.Unmarshal(raw, &t.Classifiers); err != nil {
			cachedErr = errors.Wrap(errors.ErrCodeInternal, "parsing threshold tables", err)
			return
		}

		cachedTables = t
	})

	if cachedErr != nil {
		return nil, cachedErr
	}
	return cachedTables, nil
}

// classifier returns the named classifier from the embedded tables, or a
// zero Classifier when the name is unknown.
func classifier(name string) Classifier {
	t, err := loadTables()
	if err != nil {
		return Classifier{Terminal: "unknown"}
	}
	c, ok := t.Classifiers[name]
	if !ok {
		return Classifier{Terminal: "unknown"}
	}
	return c
}
