package compare

import (
	"encoding/json"
	"testing"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unmarshal(raw string, v any) error {
	return json.Unmarshal([]byte(raw), v)
}

func doc(t *testing.T, c category.Category, raw string) *snapshot.Document {
	t.Helper()
	d, err := snapshot.NewDocument(c, []byte(raw))
	require.NoError(t, err)
	return d
}

func TestValues(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   []Change
	}{
		{
			name:   "identical",
			before: `{"a": 1, "b": {"c": "x"}}`,
			after:  `{"a": 1, "b": {"c": "x"}}`,
			want:   nil,
		},
		{
			name:   "changed leaf",
			before: `{"a": 1}`,
			after:  `{"a": 2}`,
			want:   []Change{{Key: "a", Before: float64(1), After: float64(2), Kind: "changed"}},
		},
		{
			name:   "added and removed",
			before: `{"a": 1}`,
			after:  `{"b": 2}`,
			want: []Change{
				{Key: "a", Before: float64(1), Kind: "removed"},
				{Key: "b", After: float64(2), Kind: "added"},
			},
		},
		{
			name:   "nested list element",
			before: `{"items": [{"n": "x"}, {"n": "y"}]}`,
			after:  `{"items": [{"n": "x"}, {"n": "z"}]}`,
			want:   []Change{{Key: "items.1.n", Before: "y", After: "z", Kind: "changed"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var before, after any
			require.NoError(t, unmarshal(tt.before, &before))
			require.NoError(t, unmarshal(tt.after, &after))
			assert.Equal(t, tt.want, Values(before, after))
		})
	}
}

func TestValuesDeterministicOrder(t *testing.T) {
	var before, after any
	require.NoError(t, unmarshal(`{"z": 1, "a": 1, "m": 1}`, &before))
	require.NoError(t, unmarshal(`{"z": 2, "a": 2, "m": 2}`, &after))

	first := Values(before, after)
	for range 10 {
		assert.Equal(t, first, Values(before, after))
	}
	assert.Equal(t, "a", first[0].Key)
	assert.Equal(t, "z", first[2].Key)
}

func TestSnapshots(t *testing.T) {
	base := &snapshot.Snapshot{
		ID: "SystemState_20250601_100000",
		Documents: []*snapshot.Document{
			doc(t, category.Services, `[{"Name":"Spooler","Status":"Running"}]`),
			doc(t, category.DiskSpace, `[{"DeviceID":"C:","FreeSpace":5000}]`),
		},
	}
	target := &snapshot.Snapshot{
		ID: "SystemState_20250602_100000",
		Documents: []*snapshot.Document{
			doc(t, category.Services, `[{"Name":"Spooler","Status":"Stopped"}]`),
			doc(t, category.Drivers, `[{"DeviceName":"d"}]`),
		},
	}

	res := Snapshots(base, target, "v0.0.1")
	require.Len(t, res.Categories, 1)
	assert.Equal(t, category.Services.String(), res.Categories[0].Category)
	require.Len(t, res.Categories[0].Changes, 1)
	assert.Equal(t, "0.Status", res.Categories[0].Changes[0].Key)

	assert.Equal(t, []string{category.DiskSpace.String()}, res.OnlyInBase)
	assert.Equal(t, []string{category.Drivers.String()}, res.OnlyInTarget)
	assert.False(t, res.Empty())
}

func TestSnapshotsEmpty(t *testing.T) {
	s := &snapshot.Snapshot{
		ID:        "SystemState_20250601_100000",
		Documents: []*snapshot.Document{doc(t, category.Services, `[]`)},
	}
	other := &snapshot.Snapshot{
		ID:        "SystemState_20250602_100000",
		Documents: []*snapshot.Document{doc(t, category.Services, `[]`)},
	}
	assert.True(t, Snapshots(s, other, "v0.0.1").Empty())
}
