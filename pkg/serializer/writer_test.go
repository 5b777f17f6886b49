package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

type sample struct {
	Name  string         `json:"name"`
	Count int            `json:"count"`
	Tags  []string       `json:"tags"`
	Meta  map[string]any `json:"meta,omitempty"`
}

func testSample() sample {
	return sample{
		Name:  "SystemState_20260830_150405",
		Count: 3,
		Tags:  []string{"network", "services"},
		Meta:  map[string]any{"host": "HOST-1"},
	}
}

func TestSerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	if err := w.Serialize(context.Background(), testSample()); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	var got sample
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got.Name != "SystemState_20260830_150405" || got.Count != 3 {
		t.Errorf("unexpected round-trip: %+v", got)
	}
}

func TestSerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	if err := w.Serialize(context.Background(), testSample()); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !strings.Contains(buf.String(), "name: SystemState_20260830_150405") {
		t.Errorf("unexpected YAML output: %s", buf.String())
	}
}

func TestSerializeTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	if err := w.Serialize(context.Background(), testSample()); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"FIELD", "Name", "Tags.[0]", "Meta.host"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestUnknownFormatDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("xml"), &buf)

	if err := w.Serialize(context.Background(), testSample()); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Errorf("expected JSON fallback, got: %s", buf.String())
	}
}

func TestSupportedFormats(t *testing.T) {
	got := SupportedFormats()
	if len(got) != 3 {
		t.Fatalf("expected 3 formats, got %v", got)
	}
	for _, f := range got {
		if Format(f).IsUnknown() {
			t.Errorf("format %q reported unknown", f)
		}
	}
}
