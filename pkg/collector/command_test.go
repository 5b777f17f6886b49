package collector

import (
	"context"
	"fmt"
	"testing"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/errors"
)

// fakeRunner returns scripted outputs in call order.
type fakeRunner struct {
	outputs [][]byte
	errs    []error
	calls   int
}

func (f *fakeRunner) Run(_ context.Context, _ string) ([]byte, error) {
	i := f.calls
	f.calls++
	var out []byte
	var err error
	if i < len(f.outputs) {
		out = f.outputs[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return out, err
}

func TestCommandCollectorFirstCommandWins(t *testing.T) {
	r := &fakeRunner{outputs: [][]byte{[]byte(`[{"Name":"a"}]`)}}
	c := &CommandCollector{Cat: category.Services, Runner: r, Commands: []string{"one", "two"}}

	doc, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.calls != 1 {
		t.Errorf("expected 1 call, got %d", r.calls)
	}
	if doc.Count() != 1 {
		t.Errorf("expected 1 item, got %d", doc.Count())
	}
}

func TestCommandCollectorFallback(t *testing.T) {
	r := &fakeRunner{
		outputs: [][]byte{nil, []byte(`{"State":"ok"}`)},
		errs:    []error{fmt.Errorf("access denied"), nil},
	}
	c := &CommandCollector{Cat: category.Drivers, Runner: r, Commands: []string{"one", "two"}}

	doc, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.calls != 2 {
		t.Errorf("expected fallback call, got %d calls", r.calls)
	}
	if doc.Object() == nil {
		t.Error("expected object value")
	}
}

func TestCommandCollectorSkipsUnparseableOutput(t *testing.T) {
	r := &fakeRunner{
		outputs: [][]byte{[]byte("WARNING: not json"), []byte(`[]`)},
	}
	c := &CommandCollector{Cat: category.EventLogs, Runner: r, Commands: []string{"one", "two"}}

	if _, err := c.Collect(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.calls != 2 {
		t.Errorf("expected 2 calls, got %d", r.calls)
	}
}

func TestCommandCollectorAllFail(t *testing.T) {
	r := &fakeRunner{errs: []error{fmt.Errorf("boom"), fmt.Errorf("boom")}}
	c := &CommandCollector{Cat: category.Network, Runner: r, Commands: []string{"one", "two"}}

	_, err := c.Collect(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.CodeOf(err) != errors.ErrCodeCollection {
		t.Errorf("expected COLLECTION_FAILED, got %s", errors.CodeOf(err))
	}
}

func TestCommandCollectorFiltersSecrets(t *testing.T) {
	raw := `[{"Name":"PATH","Value":"C:\\Windows"},{"Name":"API_TOKEN","Value":"abc123"}]`
	r := &fakeRunner{outputs: [][]byte{[]byte(raw)}}
	c := &CommandCollector{
		Cat:      category.EnvironmentVariables,
		Runner:   r,
		Commands: []string{"one"},
		Filter:   secretPatterns,
	}

	doc, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Count() != 1 {
		t.Fatalf("expected secret item dropped, got %d items", doc.Count())
	}
}

func TestDefaultFactory(t *testing.T) {
	f := NewDefaultFactory()

	cats := f.Categories()
	if len(cats) != len(category.All) {
		t.Errorf("expected a collector for every category, got %d of %d", len(cats), len(category.All))
	}

	env := f.Create(category.EnvironmentVariables).(*CommandCollector)
	if len(env.Filter) == 0 {
		t.Error("environment collector must filter secrets")
	}
	svc := f.Create(category.Services).(*CommandCollector)
	if len(svc.Filter) != 0 {
		t.Error("service collector must not filter")
	}
	if len(svc.Commands) == 0 {
		t.Error("service collector must have commands")
	}
}
