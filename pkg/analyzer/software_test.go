package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionSoftware(t *testing.T) {
	keywords := map[string][]string{
		"security":    {"antivirus", "defender"},
		"bloatware":   {"toolbar"},
		"development": {"python", "git"},
		"utilities":   {"7-zip"},
	}
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	items := []any{
		map[string]any{"Name": "Windows Defender"},
		map[string]any{"Name": "Search Toolbar Deluxe"},
		map[string]any{"Name": "Python 3.12"},
		map[string]any{"Name": "7-Zip 24.01"},
		map[string]any{"Name": "Fresh App", "InstallDate": "20250520"},
		map[string]any{"Name": "Old App", "InstallDate": "20200101"},
		map[string]any{"Name": "Undated App"},
	}

	buckets := partitionSoftware(items, keywords, now)
	require.Len(t, buckets, len(softwareBuckets))

	byName := map[string][]any{}
	for i, b := range buckets {
		assert.Equal(t, softwareBuckets[i], b.Name, "bucket order must be fixed")
		byName[b.Name] = b.Items
	}

	assert.Len(t, byName["security"], 1)
	assert.Len(t, byName["bloatware"], 1)
	assert.Len(t, byName["development"], 1)
	assert.Len(t, byName["utilities"], 1)
	assert.Len(t, byName["recent"], 1)
	assert.Len(t, byName["other"], 2)
}

func TestSoftwareBucketKeywordBeatsRecency(t *testing.T) {
	keywords := map[string][]string{"development": {"git"}}
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// a recently installed dev tool belongs to development, not recent
	item := map[string]any{"Name": "Git 2.45", "InstallDate": "2025-05-30"}
	assert.Equal(t, "development", softwareBucket(item, keywords, now))
}

func TestInstallDateFormats(t *testing.T) {
	tests := []struct {
		raw string
		ok  bool
	}{
		{"20250115", true},
		{"2025-01-15", true},
		{"2025-01-15T10:00:00Z", true},
		{"January 15", false},
		{"", false},
	}

	for _, tt := range tests {
		_, ok := installDate(map[string]any{"InstallDate": tt.raw})
		assert.Equal(t, tt.ok, ok, "raw=%q", tt.raw)
	}
}
