package analyzer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/llm"
	"github.com/mchmarny/winspect/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompleter scripts completion responses by prompt substring. The
// first matching rule wins; unmatched prompts get the fallback.
type fakeCompleter struct {
	mu       sync.Mutex
	calls    []string
	rules    []fakeRule
	fallback string
}

type fakeRule struct {
	contains string
	response string
	err      error
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, prompt)
	for _, r := range f.rules {
		if strings.Contains(prompt, r.contains) {
			return r.response, r.err
		}
	}
	return f.fallback, nil
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// memRecorder collects interactions in memory.
type memRecorder struct {
	mu           sync.Mutex
	interactions []*llm.Interaction
}

func (r *memRecorder) Record(in *llm.Interaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interactions = append(r.interactions, in)
}

func partialJSON(bucket, summary string) string {
	return fmt.Sprintf(`{"issues":[{"severity":"low","title":"%s issue"}],"optimizations":[],"summary":"%s"}`, bucket, summary)
}

func newChunkRequest(t *testing.T, c *fakeCompleter, rec Recorder) *Request {
	t.Helper()
	doc, err := snapshot.NewDocument(category.InstalledPrograms, []byte(`[{"Name":"x"}]`))
	require.NoError(t, err)
	return &Request{Doc: doc, Client: c, Model: "test-model", Recorder: rec}
}

func TestRunChunkedOrderAndTagging(t *testing.T) {
	client := &fakeCompleter{
		rules: []fakeRule{
			{contains: `"alpha" group`, response: partialJSON("alpha", "alpha looks fine")},
			{contains: `"beta" group`, response: partialJSON("beta", "beta has issues")},
			{contains: "Combine the following", response: "overall: mostly fine"},
		},
	}
	req := newChunkRequest(t, client, nil)

	buckets := []Bucket{
		{Name: "alpha", Items: []any{map[string]any{"Name": "a"}}},
		{Name: "empty"},
		{Name: "beta", Items: []any{map[string]any{"Name": "b"}}},
	}
	res := runChunked(context.Background(), req, "software", buckets, nil)

	// one call per non-empty bucket plus synthesis
	assert.Equal(t, 3, client.callCount())

	require.Len(t, res.Issues, 2)
	assert.Equal(t, "alpha", res.Issues[0].Component)
	assert.Equal(t, "beta", res.Issues[1].Component)
	assert.Equal(t, "overall: mostly fine", res.Summary)
}

func TestRunChunkedToleratesBucketFailure(t *testing.T) {
	client := &fakeCompleter{
		rules: []fakeRule{
			{contains: `"alpha" group`, err: fmt.Errorf("server unavailable")},
			{contains: `"beta" group`, response: partialJSON("beta", "beta summary")},
			{contains: "Combine the following", response: "synthesized"},
		},
	}
	req := newChunkRequest(t, client, nil)

	buckets := []Bucket{
		{Name: "alpha", Items: []any{map[string]any{"Name": "a"}}},
		{Name: "beta", Items: []any{map[string]any{"Name": "b"}}},
	}
	res := runChunked(context.Background(), req, "software", buckets, nil)

	require.Len(t, res.Issues, 1)
	assert.Equal(t, "beta", res.Issues[0].Component)
	assert.Equal(t, "synthesized", res.Summary)
}

func TestRunChunkedFallbackSummary(t *testing.T) {
	client := &fakeCompleter{
		rules: []fakeRule{
			{contains: " group", err: fmt.Errorf("down")},
		},
	}
	req := newChunkRequest(t, client, nil)

	buckets := []Bucket{
		{Name: "alpha", Items: []any{map[string]any{"Name": "a"}}},
		{Name: "beta", Items: []any{map[string]any{"Name": "b"}}},
	}
	res := runChunked(context.Background(), req, "software", buckets, nil)

	assert.Equal(t, "No analysis could be generated for any software categories.", res.Summary)
	assert.Empty(t, res.Issues)
	// no synthesis call when nothing succeeded
	assert.Equal(t, 2, client.callCount())
}

func TestRunChunkedSynthesisFailureJoinsSummaries(t *testing.T) {
	client := &fakeCompleter{
		rules: []fakeRule{
			{contains: `"alpha" group`, response: partialJSON("alpha", "first")},
			{contains: "Combine the following", err: fmt.Errorf("down")},
		},
	}
	req := newChunkRequest(t, client, nil)

	buckets := []Bucket{{Name: "alpha", Items: []any{map[string]any{"Name": "a"}}}}
	res := runChunked(context.Background(), req, "software", buckets, nil)

	assert.Equal(t, "alpha: first", res.Summary)
}

func TestRunChunkedRecordsInteractions(t *testing.T) {
	rec := &memRecorder{}
	client := &fakeCompleter{
		rules: []fakeRule{
			{contains: `"alpha" group`, response: partialJSON("alpha", "ok")},
			{contains: "Combine the following", response: "done"},
		},
	}
	req := newChunkRequest(t, client, rec)

	buckets := []Bucket{{Name: "alpha", Items: []any{map[string]any{"Name": "a"}}}}
	runChunked(context.Background(), req, "software", buckets, nil)

	require.Len(t, rec.interactions, 2)
	assert.Equal(t, "alpha", rec.interactions[0].Bucket)
	assert.Equal(t, "summary", rec.interactions[1].Bucket)
	assert.NotEmpty(t, rec.interactions[0].Prompt)
	assert.NotEmpty(t, rec.interactions[0].Response)
}

func TestSampleJSONTruncates(t *testing.T) {
	items := make([]any, 20)
	for i := range items {
		items[i] = map[string]any{"n": fmt.Sprintf("p%d", i)}
	}

	s, err := sampleJSON(items, 15)
	require.NoError(t, err)
	assert.Contains(t, s, "(15 of 20 items shown)")
	assert.Contains(t, s, "p14")
	assert.NotContains(t, s, "p15")
}
