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

package compare

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/header"
	"github.com/mchmarny/winspect/pkg/snapshot"
)

// Change is one differing key between two snapshots of a category.
// Keys are dotted paths into the category's JSON value; list elements
// are keyed by index.
type Change struct {
	Key    string `json:"key"`
	Before any    `json:"before,omitempty"`
	After  any    `json:"after,omitempty"`

	// Kind is added, removed, or changed.
	Kind string `json:"kind"`
}

// CategoryDiff holds every change within one category, sorted by key.
type CategoryDiff struct {
	Category string   `json:"category"`
	Changes  []Change `json:"changes"`
}

// Result is the complete comparison of two snapshots, in category
// order. Categories with no differences are omitted.
type Result struct {
	header.Header `json:",inline"`

	BaseID     string         `json:"baseId"`
	TargetID   string         `json:"targetId"`
	Categories []CategoryDiff `json:"categories"`

	// OnlyInBase and OnlyInTarget list categories present in one
	// snapshot but not the other.
	OnlyInBase   []string `json:"onlyInBase,omitempty"`
	OnlyInTarget []string `json:"onlyInTarget,omitempty"`
}

// Empty reports whether the comparison found no differences at all.
func (r *Result) Empty() bool {
	return len(r.Categories) == 0 && len(r.OnlyInBase) == 0 && len(r.OnlyInTarget) == 0
}

// Snapshots compares two snapshots category by category. The result is
// deterministic: categories follow collection order and changes within
// a category are sorted by key.
func Snapshots(base, target *snapshot.Snapshot, version string) *Result {
	res := &Result{
		BaseID:   base.ID,
		TargetID: target.ID,
	}
	res.Init(header.KindComparison, snapshot.APIVersion, version)

	for _, c := range category.All {
		bDoc := base.Document(c)
		tDoc := target.Document(c)

		switch {
		case bDoc == nil && tDoc == nil:
			continue
		case tDoc == nil:
			res.OnlyInBase = append(res.OnlyInBase, c.String())
			continue
		case bDoc == nil:
			res.OnlyInTarget = append(res.OnlyInTarget, c.String())
			continue
		}

		changes := Values(bDoc.Value, tDoc.Value)
		if len(changes) > 0 {
			res.Categories = append(res.Categories, CategoryDiff{
				Category: c.String(),
				Changes:  changes,
			})
		}
	}
	return res
}

// Values diffs two arbitrary JSON values by flattening each to dotted
// keys and comparing leaf by leaf.
func Values(before, after any) []Change {
	b := flatten("", before)
	a := flatten("", after)

	var changes []Change
	for key, bv := range b {
		av, ok := a[key]
		if !ok {
			changes = append(changes, Change{Key: key, Before: bv, Kind: "removed"})
			continue
		}
		if !reflect.DeepEqual(bv, av) {
			changes = append(changes, Change{Key: key, Before: bv, After: av, Kind: "changed"})
		}
	}
	for key, av := range a {
		if _, ok := b[key]; !ok {
			changes = append(changes, Change{Key: key, After: av, Kind: "added"})
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Key < changes[j].Key })
	return changes
}

// flatten reduces a JSON value to a map of dotted leaf paths. Empty
// containers become their own leaves so their presence still diffs.
func flatten(prefix string, v any) map[string]any {
	out := make(map[string]any)
	flattenInto(out, prefix, v)
	return out
}

func flattenInto(out map[string]any, prefix string, v any) {
	switch val := v.(type) {
	case map[string]any:
		if len(val) == 0 {
			out[prefix] = val
			return
		}
		for k, elem := range val {
			flattenInto(out, joinKey(prefix, k), elem)
		}
	case []any:
		if len(val) == 0 {
			out[prefix] = val
			return
		}
		for i, elem := range val {
			flattenInto(out, joinKey(prefix, fmt.Sprintf("%d", i)), elem)
		}
	default:
		out[prefix] = val
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
