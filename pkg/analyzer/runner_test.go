package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/snapshot"
	"github.com/mchmarny/winspect/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunnerStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	s, err := store.New(t.TempDir())
	require.NoError(t, err)

	id := "SystemState_20250601_120000_test"
	_, err = s.Create(id)
	require.NoError(t, err)

	docs := map[category.Category]string{
		category.Services:  `[{"Name":"Spooler","Status":"Running","StartType":"Automatic"}]`,
		category.DiskSpace: `[{"DeviceID":"C:","Size":100000,"FreeSpace":4000}]`,
	}
	for c, raw := range docs {
		doc, err := snapshot.NewDocument(c, []byte(raw))
		require.NoError(t, err)
		require.NoError(t, s.WriteDocument(id, doc))
	}
	require.NoError(t, s.WriteDocument(id, snapshot.Unavailable(category.Drivers, "access denied")))
	return s, id
}

func TestRunnerRun(t *testing.T) {
	s, id := newRunnerStore(t)

	client := &fakeCompleter{
		rules: []fakeRule{
			{contains: "Combine the following", response: "overall summary"},
		},
		fallback: `{"issues":[{"severity":"low","title":"t"}],"optimizations":[],"summary":"section ok"}`,
	}

	r := &Runner{Store: s, Client: client, Model: "test-model", Version: "v0.0.1"}
	report, err := r.Run(context.Background(), id)
	require.NoError(t, err)

	// Services, Drivers (unavailable), DiskSpace in category order
	require.Len(t, report.Results, 3)
	assert.Equal(t, category.Services.String(), report.Results[0].Category)
	assert.Equal(t, category.Drivers.String(), report.Results[1].Category)
	assert.Equal(t, category.DiskSpace.String(), report.Results[2].Category)

	// unavailable category is recorded without an LLM call
	assert.Contains(t, report.Results[1].Summary, "No data was collected")
	assert.Equal(t, "overall summary", report.Summary)

	// results and summary persisted
	for _, c := range []category.Category{category.Services, category.DiskSpace} {
		raw, err := s.ReadAnalysis(id, c)
		require.NoError(t, err)
		var res Result
		require.NoError(t, json.Unmarshal(raw, &res))
		assert.Equal(t, "section ok", res.Summary)
	}
	sum, err := s.ReadSummary(id)
	require.NoError(t, err)
	assert.Equal(t, "overall summary", sum)

	// interaction audit records are on disk under llm/
	files, err := s.Files(id)
	require.NoError(t, err)
	var interactions int
	for _, f := range files {
		if len(f.Name) > 4 && f.Name[:4] == "llm/" {
			interactions++
		}
	}
	assert.GreaterOrEqual(t, interactions, 3)
}

func TestRunnerContinuesPastCategoryFailure(t *testing.T) {
	s, id := newRunnerStore(t)

	client := &fakeCompleter{
		rules: []fakeRule{
			{contains: "Services", err: fmt.Errorf("server down")},
			{contains: "Combine the following", response: "partial summary"},
		},
		fallback: `{"issues":[],"optimizations":[],"summary":"disk ok"}`,
	}

	r := &Runner{Store: s, Client: client, Model: "m", Version: "v0.0.1"}
	report, err := r.Run(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, report.Results, 3)
	assert.NotEmpty(t, report.Results[0].Error)
	assert.Equal(t, "disk ok", report.Results[2].Summary)
	assert.Equal(t, "partial summary", report.Summary)
}

func TestRunnerFocus(t *testing.T) {
	s, id := newRunnerStore(t)

	client := &fakeCompleter{
		rules: []fakeRule{
			{contains: "Combine the following", response: "disk only"},
		},
		fallback: `{"issues":[],"optimizations":[],"summary":"disk ok"}`,
	}

	r := &Runner{
		Store:   s,
		Client:  client,
		Model:   "m",
		Focus:   []category.Category{category.DiskSpace},
		Version: "v0.0.1",
	}
	report, err := r.Run(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, category.DiskSpace.String(), report.Results[0].Category)
}

func TestRunnerMissingSnapshot(t *testing.T) {
	s, err := store.New(t.TempDir())
	require.NoError(t, err)

	r := &Runner{Store: s, Client: &fakeCompleter{}, Version: "v0.0.1"}
	_, err = r.Run(context.Background(), "SystemState_20250601_120000")
	require.Error(t, err)
}

func TestRunnerFallbackSummaryWhenAllFail(t *testing.T) {
	s, id := newRunnerStore(t)

	client := &fakeCompleter{
		rules: []fakeRule{{contains: "", err: fmt.Errorf("down")}},
	}

	r := &Runner{Store: s, Client: client, Model: "m", Version: "v0.0.1"}
	report, err := r.Run(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "No analysis could be generated for this snapshot.", report.Summary)
}
