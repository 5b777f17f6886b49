package analyzer

import (
	"github.com/mchmarny/winspect/pkg/category"
)

// registered maps categories to their dedicated analyzers. Categories
// without an entry fall back to a generic single-call analyzer, so every
// collected category is always analyzable.
var registered = map[category.Category]Analyzer{
	category.Network:           &networkAnalyzer{},
	category.InstalledPrograms: &softwareAnalyzer{},
	category.Services:          &sectionAnalyzer{cat: category.Services, metrics: servicesMetrics},
	category.Drivers:           &sectionAnalyzer{cat: category.Drivers, metrics: driversMetrics},
	category.DiskSpace:         &sectionAnalyzer{cat: category.DiskSpace, metrics: diskMetrics},
	category.StartupPrograms:   &sectionAnalyzer{cat: category.StartupPrograms, metrics: startupMetrics},
	category.RunningProcesses:  &sectionAnalyzer{cat: category.RunningProcesses, metrics: processMetrics},
	category.WindowsUpdates:    &sectionAnalyzer{cat: category.WindowsUpdates, metrics: updatesMetrics},
	category.Performance:       &sectionAnalyzer{cat: category.Performance, metrics: performanceMetrics},
	category.EventLogs:         &sectionAnalyzer{cat: category.EventLogs, metrics: eventLogMetrics},
}

// Lookup returns the analyzer for a category, falling back to the
// generic analyzer when no dedicated one is registered.
func Lookup(c category.Category) Analyzer {
	if a, ok := registered[c]; ok {
		return a
	}
	return &sectionAnalyzer{cat: c}
}

// Names lists every analyzable category in collection order, marking
// the ones with dedicated analyzers.
func Names() []string {
	names := make([]string, 0, len(category.All))
	for _, c := range category.All {
		name := c.String()
		if _, ok := registered[c]; !ok {
			name += " (generic)"
		}
		names = append(names, name)
	}
	return names
}
