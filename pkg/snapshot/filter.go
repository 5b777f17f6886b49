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

import "strings"

// FilterOut returns a new map with keys filtered out based on the provided
// patterns. Collectors use this to drop secret-bearing or noisy keys before
// data is written to disk or embedded in prompts.
//
// Supports wildcard patterns:
//   - "prefix*" matches keys starting with "prefix"
//   - "*suffix" matches keys ending with "suffix"
//   - "*contains*" matches keys containing "contains"
//   - "exact" matches keys exactly
//
// Matching is case-insensitive since Windows key names are.
func FilterOut(values map[string]any, patterns []string) map[string]any {
	result := make(map[string]any)

	for key, value := range values {
		omit := false
		for _, pattern := range patterns {
			if matchesPattern(key, pattern) {
				omit = true
				break
			}
		}
		if !omit {
			result[key] = value
		}
	}

	return result
}

// matchesPattern checks if a key matches a wildcard pattern. Supports
// multiple wildcard segments, e.g., "a*b*c" matches "aXbYc".
func matchesPattern(key, pattern string) bool {
	key = strings.ToLower(key)
	pattern = strings.ToLower(pattern)

	// No wildcard - exact match
	if !strings.Contains(pattern, "*") {
		return key == pattern
	}

	segments := strings.Split(pattern, "*")
	if len(segments) == 0 {
		return true
	}

	pos := 0
	for i, segment := range segments {
		if segment == "" {
			continue // consecutive wildcards
		}

		// First segment must anchor at the start unless pattern starts with *
		if i == 0 && pattern[0] != '*' {
			if !strings.HasPrefix(key, segment) {
				return false
			}
			pos = len(segment)
			continue
		}

		// Last segment must anchor at the end unless pattern ends with *
		if i == len(segments)-1 && pattern[len(pattern)-1] != '*' {
			return strings.HasSuffix(key[pos:], segment)
		}

		idx := strings.Index(key[pos:], segment)
		if idx == -1 {
			return false
		}
		pos += idx + len(segment)
	}

	return true
}
