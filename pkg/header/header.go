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

package header

import (
	"time"
)

// Kind represents the type of winspect resource.
type Kind string

// Valid Kind constants for all winspect resource types.
const (
	KindSnapshot   Kind = "Snapshot"
	KindAnalysis   Kind = "Analysis"
	KindComparison Kind = "Comparison"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k *Kind) IsValid() bool {
	switch *k {
	case KindSnapshot, KindAnalysis, KindComparison:
		return true
	default:
		return false
	}
}

// Header contains metadata and versioning information for winspect resources.
// It follows Kubernetes-style resource conventions with Kind, APIVersion, and
// Metadata fields.
type Header struct {
	// Kind is the type of the resource.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the API version of the resource.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs with metadata about the resource.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init initializes the Header with the specified kind, apiVersion, and tool
// version, and populates the Metadata with a creation timestamp.
func (h *Header) Init(kind Kind, apiVersion string, version string) {
	h.Kind = kind
	h.APIVersion = apiVersion
	h.Metadata = make(map[string]string)

	h.Metadata["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	if version != "" {
		h.Metadata["version"] = version
	}
}

// SetMeta adds a metadata key-value pair, initializing the map if needed.
func (h *Header) SetMeta(key, value string) {
	if h.Metadata == nil {
		h.Metadata = make(map[string]string)
	}
	h.Metadata[key] = value
}

// Meta retrieves a metadata value, returning an empty string when absent.
func (h *Header) Meta(key string) string {
	return h.Metadata[key]
}
