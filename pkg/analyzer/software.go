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

package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mchmarny/winspect/pkg/category"
)

// softwareBuckets is the fixed processing order for installed program
// groups. Keyword buckets are matched first; programs installed within
// recentWindow that match no keyword bucket land in "recent"; everything
// else lands in "other".
var softwareBuckets = []string{"security", "bloatware", "development", "utilities", "recent", "other"}

const recentWindow = 90 * 24 * time.Hour

type softwareAnalyzer struct{}

func (a *softwareAnalyzer) Category() category.Category {
	return category.InstalledPrograms
}

func (a *softwareAnalyzer) Analyze(ctx context.Context, req *Request) (*Result, error) {
	tables, err := loadTables()
	if err != nil {
		return nil, err
	}

	items := req.Doc.Items()
	buckets := partitionSoftware(items, tables.Software, time.Now())

	metrics := []string{fmt.Sprintf("total installed programs: %d", len(items))}
	for _, b := range buckets {
		if len(b.Items) > 0 {
			metrics = append(metrics, fmt.Sprintf("%s: %d", b.Name, len(b.Items)))
		}
	}

	return runChunked(ctx, req, "software", buckets, metrics), nil
}

// partitionSoftware assigns every program to exactly one bucket. Keyword
// buckets are evaluated in softwareBuckets order so a match in an earlier
// bucket wins.
func partitionSoftware(items []any, keywords map[string][]string, now time.Time) []Bucket {
	grouped := make(map[string][]any, len(softwareBuckets))

	for _, item := range items {
		bucket := softwareBucket(item, keywords, now)
		grouped[bucket] = append(grouped[bucket], item)
	}

	buckets := make([]Bucket, 0, len(softwareBuckets))
	for _, name := range softwareBuckets {
		buckets = append(buckets, Bucket{Name: name, Items: grouped[name]})
	}
	return buckets
}

func softwareBucket(item any, keywords map[string][]string, now time.Time) string {
	name := strings.ToLower(stringField(item, "DisplayName", "Name", "displayName", "name"))
	if name != "" {
		for _, bucket := range softwareBuckets {
			for _, kw := range keywords[bucket] {
				if strings.Contains(name, kw) {
					return bucket
				}
			}
		}
	}
	if installed, ok := installDate(item); ok && now.Sub(installed) <= recentWindow {
		return "recent"
	}
	return "other"
}

// installDate parses the program's install date from the formats the
// registry and Get-Package commonly produce.
func installDate(item any) (time.Time, bool) {
	raw := stringField(item, "InstallDate", "installDate", "Installed")
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"20060102", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// stringField returns the first non-empty string value among keys of an
// object-shaped item.
func stringField(item any, keys ...string) string {
	obj, ok := item.(map[string]any)
	if !ok {
		return ""
	}
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
