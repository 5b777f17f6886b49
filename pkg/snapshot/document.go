// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package snapshot

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mchmarny/winspect/pkg/category"
)

const unavailablePrefix = "Unable to collect"

// Document holds one category's collected data. The value is an arbitrary
// JSON shape (list or object); no schema is enforced, matching the
// best-effort nature of the underlying PowerShell output.
type Document struct {
	Category category.Category `json:"category" yaml:"category"`
	Value    any               `json:"value" yaml:"value"`
}

// NewDocument builds a Document from raw category JSON.
func NewDocument(c category.Category, raw []byte) (*Document, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to parse %s data: %w", c, err)
	}
	return &Document{Category: c, Value: v}, nil
}

// Unavailable builds the fallback document emitted when a category could not
// be collected. The value is the literal failure string rather than
// structured data so the snapshot still records the attempt.
func Unavailable(c category.Category, reason string) *Document {
	return &Document{
		Category: c,
		Value:    fmt.Sprintf("%s %s: %s", unavailablePrefix, c.DisplayName(), reason),
	}
}

// IsUnavailable reports whether the document holds a collection failure
// marker instead of data.
func (d *Document) IsUnavailable() bool {
	s, ok := d.Value.(string)
	return ok && strings.HasPrefix(s, unavailablePrefix)
}

// Items returns the document's value as a list of elements. Objects and
// scalars are wrapped into a single-element list so callers can iterate
// uniformly.
func (d *Document) Items() []any {
	switch v := d.Value.(type) {
	case []any:
		return v
	case nil:
		return nil
	default:
		return []any{v}
	}
}

// Object returns the document value as a key-ed object, or nil when the
// value is not an object.
func (d *Document) Object() map[string]any {
	if m, ok := d.Value.(map[string]any); ok {
		return m
	}
	return nil
}

// Count returns the number of top-level elements (list length, object key
// count, or 1 for scalars).
func (d *Document) Count() int {
	switch v := d.Value.(type) {
	case []any:
		return len(v)
	case map[string]any:
		return len(v)
	case nil:
		return 0
	default:
		return 1
	}
}

// MarshalValue renders the document value as indented JSON.
func (d *Document) MarshalValue() ([]byte, error) {
	return json.MarshalIndent(d.Value, "", "  ")
}

// Excerpt renders up to maxItems top-level elements as indented JSON, in
// original order, for embedding into an LLM prompt. Truncation is noted in
// the output so the model knows it is looking at a sample.
func (d *Document) Excerpt(maxItems int) string {
	items := d.Items()
	if maxItems <= 0 || len(items) <= maxItems {
		b, err := d.MarshalValue()
		if err != nil {
			return fmt.Sprintf("%v", d.Value)
		}
		return string(b)
	}

	b, err := json.MarshalIndent(items[:maxItems], "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", d.Value)
	}
	return fmt.Sprintf("%s\n... (%d of %d items shown)", b, maxItems, len(items))
}
