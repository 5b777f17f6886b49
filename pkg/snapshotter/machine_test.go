package snapshotter

import (
	"context"
	"fmt"
	"testing"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/collector"
	"github.com/mchmarny/winspect/pkg/snapshot"
	"github.com/mchmarny/winspect/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFactory produces collectors that return canned documents or fail.
type fakeFactory struct {
	cats    []category.Category
	failing map[category.Category]bool
}

func (f *fakeFactory) Categories() []category.Category { return f.cats }

func (f *fakeFactory) Create(c category.Category) collector.Collector {
	return &fakeCollector{cat: c, fail: f.failing[c]}
}

type fakeCollector struct {
	cat  category.Category
	fail bool
}

func (f *fakeCollector) Category() category.Category { return f.cat }

func (f *fakeCollector) Collect(_ context.Context) (*snapshot.Document, error) {
	if f.fail {
		return nil, fmt.Errorf("collection refused")
	}
	return snapshot.NewDocument(f.cat, []byte(`[{"Name":"x"}]`))
}

func TestMachineSnapshotterRun(t *testing.T) {
	s, err := store.New(t.TempDir())
	require.NoError(t, err)

	m := &MachineSnapshotter{
		Store: s,
		Factory: &fakeFactory{
			cats:    []category.Category{category.Services, category.Drivers, category.DiskSpace},
			failing: map[category.Category]bool{category.Drivers: true},
		},
		Version: "v0.0.1",
	}

	id, err := m.Run(context.Background(), "pre change")
	require.NoError(t, err)
	assert.True(t, snapshot.ValidID(id))

	snap, err := s.Load(id)
	require.NoError(t, err)
	require.Len(t, snap.Documents, 3)

	// failed category is recorded, not dropped
	drivers := snap.Document(category.Drivers)
	require.NotNil(t, drivers)
	assert.True(t, drivers.IsUnavailable())

	services := snap.Document(category.Services)
	require.NotNil(t, services)
	assert.Equal(t, 1, services.Count())

	meta, err := s.ReadMetadata(id)
	require.NoError(t, err)
	assert.Equal(t, "pre change", meta.Description)
	assert.NotEmpty(t, meta.Hostname)
}

func TestMachineSnapshotterRequiresStore(t *testing.T) {
	m := &MachineSnapshotter{}
	_, err := m.Run(context.Background(), "")
	require.Error(t, err)
}
