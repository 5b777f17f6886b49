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
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/header"
)

const (
	// APIVersion is the current snapshot payload version.
	APIVersion = "v1"

	// IDPrefix starts every snapshot directory name.
	IDPrefix = "SystemState"

	idTimeLayout = "20060102_150405"
)

// idPattern validates snapshot IDs: SystemState_<date>_<time>[_<description>].
// Description is restricted to word characters and dashes so IDs remain safe
// as directory names and URL path segments.
var idPattern = regexp.MustCompile(`^SystemState_\d{8}_\d{6}(?:_[\w-]+)?$`)

// NewID builds a snapshot identifier from a creation time and an optional
// free-text description. Unsafe description characters are replaced with
// dashes.
func NewID(t time.Time, description string) string {
	id := fmt.Sprintf("%s_%s", IDPrefix, t.Format(idTimeLayout))
	desc := sanitizeDescription(description)
	if desc != "" {
		id += "_" + desc
	}
	return id
}

// ParseID extracts the creation time and description from a snapshot ID.
// Returns false when the ID does not follow the snapshot naming convention.
func ParseID(id string) (created time.Time, description string, ok bool) {
	if !idPattern.MatchString(id) {
		return time.Time{}, "", false
	}

	rest := strings.TrimPrefix(id, IDPrefix+"_")
	stamp := rest
	if len(rest) > len(idTimeLayout) {
		stamp = rest[:len(idTimeLayout)]
		description = rest[len(idTimeLayout)+1:]
	}

	created, err := time.Parse(idTimeLayout, stamp)
	if err != nil {
		return time.Time{}, "", false
	}
	return created, description, true
}

// ValidID reports whether id is a well-formed snapshot identifier. It is the
// gate used before joining IDs onto the snapshots root path.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

func sanitizeDescription(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	return b.String()
}

// Snapshot represents one point-in-time capture of Windows system
// configuration: a header plus one document per collected category.
type Snapshot struct {
	header.Header `json:",inline" yaml:",inline"`

	// ID is the snapshot directory name.
	ID string `json:"id" yaml:"id"`

	// Documents holds the collected category data in category order.
	Documents []*Document `json:"documents" yaml:"documents"`
}

// New creates a Snapshot with an initialized header.
func New(id, toolVersion string) *Snapshot {
	s := &Snapshot{
		ID:        id,
		Documents: make([]*Document, 0, len(category.All)),
	}
	s.Init(header.KindSnapshot, APIVersion, toolVersion)
	return s
}

// Document returns the document for the given category, or nil when the
// category was not collected.
func (s *Snapshot) Document(c category.Category) *Document {
	for _, d := range s.Documents {
		if d.Category == c {
			return d
		}
	}
	return nil
}

// Categories returns the categories present in the snapshot, in the order
// they were collected.
func (s *Snapshot) Categories() []category.Category {
	out := make([]category.Category, len(s.Documents))
	for i, d := range s.Documents {
		out[i] = d.Category
	}
	return out
}

// Metadata is the content of a snapshot's metadata.json file.
type Metadata struct {
	header.Header `json:",inline" yaml:",inline"`

	Hostname    string `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}
