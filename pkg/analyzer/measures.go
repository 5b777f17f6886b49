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
	"fmt"
	"strconv"
	"strings"

	"github.com/mchmarny/winspect/pkg/snapshot"
)

// diskMetrics classifies free space per volume using the configured
// cutoffs so the model sees a pre-judged severity, not just raw numbers.
func diskMetrics(doc *snapshot.Document) []string {
	cls := classifier("diskFreePercent")

	var metrics []string
	for _, item := range doc.Items() {
		name := stringField(item, "DeviceID", "Name", "DriveLetter", "deviceId", "name")
		size, okSize := floatField(item, "Size", "TotalSize", "size")
		free, okFree := floatField(item, "FreeSpace", "Free", "SizeRemaining", "freeSpace")
		if name == "" || !okSize || !okFree || size <= 0 {
			continue
		}
		pct := free / size * 100
		metrics = append(metrics, fmt.Sprintf("%s: %.1f%% free (%s)", name, pct, cls.Classify(pct)))
	}
	if len(metrics) == 0 {
		metrics = append(metrics, fmt.Sprintf("volumes reported: %d", doc.Count()))
	}
	return metrics
}

func performanceMetrics(doc *snapshot.Document) []string {
	var metrics []string
	obj := doc.Object()

	if cpu, ok := objectFloat(obj, "CPULoadPercent", "CpuLoad", "cpuLoadPercent", "cpu"); ok {
		metrics = append(metrics,
			fmt.Sprintf("CPU load: %.1f%% (%s)", cpu, classifier("cpuLoadPercent").Classify(cpu)))
	}
	if used, ok := objectFloat(obj, "MemoryUsedPercent", "memoryUsedPercent"); ok {
		metrics = append(metrics,
			fmt.Sprintf("memory used: %.1f%% (%s)", used, classifier("memoryUsedPercent").Classify(used)))
	} else if total, ok := objectFloat(obj, "TotalMemory", "TotalVisibleMemorySize", "totalMemory"); ok {
		if avail, ok := objectFloat(obj, "AvailableMemory", "FreePhysicalMemory", "availableMemory"); ok && total > 0 {
			pct := (total - avail) / total * 100
			metrics = append(metrics,
				fmt.Sprintf("memory used: %.1f%% (%s)", pct, classifier("memoryUsedPercent").Classify(pct)))
		}
	}
	return metrics
}

func servicesMetrics(doc *snapshot.Document) []string {
	var running, stopped, autoStopped int
	for _, item := range doc.Items() {
		state := strings.ToLower(stringField(item, "Status", "State", "status", "state"))
		start := strings.ToLower(stringField(item, "StartType", "StartMode", "startType"))
		switch state {
		case "running":
			running++
		case "stopped":
			stopped++
			if strings.HasPrefix(start, "auto") {
				autoStopped++
			}
		}
	}
	return []string{
		fmt.Sprintf("total services: %d", doc.Count()),
		fmt.Sprintf("running: %d, stopped: %d", running, stopped),
		fmt.Sprintf("automatic-start services currently stopped: %d", autoStopped),
	}
}

func driversMetrics(doc *snapshot.Document) []string {
	var unsigned int
	for _, item := range doc.Items() {
		if signed, ok := boolField(item, "IsSigned", "Signed", "isSigned"); ok && !signed {
			unsigned++
		}
	}
	return []string{
		fmt.Sprintf("total drivers: %d", doc.Count()),
		fmt.Sprintf("unsigned drivers: %d", unsigned),
	}
}

func startupMetrics(doc *snapshot.Document) []string {
	n := doc.Count()
	return []string{
		fmt.Sprintf("startup programs: %d (%s)", n, classifier("startupProgramCount").Classify(float64(n))),
	}
}

func processMetrics(doc *snapshot.Document) []string {
	metrics := []string{fmt.Sprintf("running processes: %d", doc.Count())}

	type proc struct {
		name string
		mem  float64
	}
	var top proc
	for _, item := range doc.Items() {
		mem, ok := floatField(item, "WorkingSet", "WS", "MemoryMB", "workingSet")
		if ok && mem > top.mem {
			top = proc{name: stringField(item, "Name", "ProcessName", "name"), mem: mem}
		}
	}
	if top.name != "" {
		metrics = append(metrics, fmt.Sprintf("largest working set: %s", top.name))
	}
	return metrics
}

func updatesMetrics(doc *snapshot.Document) []string {
	metrics := []string{fmt.Sprintf("updates reported: %d", doc.Count())}
	var latest string
	for _, item := range doc.Items() {
		if d := stringField(item, "InstalledOn", "InstalledDate", "Date", "installedOn"); d > latest {
			latest = d
		}
	}
	if latest != "" {
		metrics = append(metrics, "most recent install date: "+latest)
	}
	return metrics
}

func eventLogMetrics(doc *snapshot.Document) []string {
	var errs, warns int
	for _, item := range doc.Items() {
		switch strings.ToLower(stringField(item, "Level", "LevelDisplayName", "EntryType", "level")) {
		case "error", "critical", "1", "2":
			errs++
		case "warning", "3":
			warns++
		}
	}
	return []string{
		fmt.Sprintf("entries: %d", doc.Count()),
		fmt.Sprintf("errors: %d, warnings: %d", errs, warns),
	}
}

// floatField returns the first numeric value among keys of an
// object-shaped item, accepting JSON numbers and numeric strings.
func floatField(item any, keys ...string) (float64, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return 0, false
	}
	return objectFloat(obj, keys...)
}

func objectFloat(obj map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		switch v := obj[k].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// boolField returns the first boolean value among keys, accepting bools
// and "true"/"false" strings.
func boolField(item any, keys ...string) (bool, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return false, false
	}
	for _, k := range keys {
		switch v := obj[k].(type) {
		case bool:
			return v, true
		case string:
			if b, err := strconv.ParseBool(strings.ToLower(v)); err == nil {
				return b, true
			}
		}
	}
	return false, false
}
