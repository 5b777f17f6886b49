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

package category

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category identifies one facet of Windows system state captured in a
// snapshot. Each category is stored as its own JSON file and may have a
// dedicated analyzer.
type Category string

const (
	Network              Category = "Network"
	InstalledPrograms    Category = "InstalledPrograms"
	Services             Category = "Services"
	Drivers              Category = "Drivers"
	DiskSpace            Category = "DiskSpace"
	StartupPrograms      Category = "StartupPrograms"
	RunningProcesses     Category = "RunningProcesses"
	ScheduledTasks       Category = "ScheduledTasks"
	WindowsUpdates       Category = "WindowsUpdates"
	EnvironmentVariables Category = "EnvironmentVariables"
	HardwareInfo         Category = "HardwareInfo"
	Performance          Category = "Performance"
	RegistrySettings     Category = "RegistrySettings"
	EventLogs            Category = "EventLogs"
)

// All is the closed, ordered set of supported categories. Collection and
// analysis iterate in this order, so it also defines report ordering.
var All = []Category{
	Network,
	InstalledPrograms,
	Services,
	Drivers,
	DiskSpace,
	StartupPrograms,
	RunningProcesses,
	ScheduledTasks,
	WindowsUpdates,
	EnvironmentVariables,
	HardwareInfo,
	Performance,
	RegistrySettings,
	EventLogs,
}

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// FileName returns the snapshot file name holding this category's data.
func (c Category) FileName() string {
	return string(c) + ".json"
}

// AnalysisFileName returns the file name holding this category's analysis
// result within a snapshot directory.
func (c Category) AnalysisFileName() string {
	return string(c) + "Analysis.json"
}

// DisplayName returns a human readable name, splitting the CamelCase
// identifier into words ("InstalledPrograms" becomes "Installed Programs").
func (c Category) DisplayName() string {
	var b strings.Builder
	for i, r := range string(c) {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

var titler = cases.Title(language.English)

// Parse resolves a user-supplied name (file name, CLI --focus value, query
// parameter) into a Category. Matching is case-insensitive and tolerates the
// ".json" suffix and space-separated display names. Returns the Category and
// true on success.
func Parse(s string) (Category, bool) {
	name := strings.TrimSuffix(strings.TrimSpace(s), ".json")
	// Normalize "installed programs" and "installedPrograms" alike.
	name = strings.ReplaceAll(titler.String(name), " ", "")
	for _, c := range All {
		if strings.EqualFold(name, string(c)) {
			return c, true
		}
	}
	return "", false
}

// Names returns the string form of all supported categories.
func Names() []string {
	names := make([]string, len(All))
	for i, c := range All {
		names[i] = string(c)
	}
	return names
}
