package collector

import (
	"context"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/snapshot"
)

// Collector gathers one category of machine configuration data.
// Implementations return the collected data as a snapshot document;
// callers decide how to handle failures (the snapshotter downgrades
// them to unavailable documents).
type Collector interface {
	Category() category.Category
	Collect(ctx context.Context) (*snapshot.Document, error)
}

// Runner executes a PowerShell pipeline and returns its stdout.
// The indirection exists so collectors can be tested without a Windows
// host.
type Runner interface {
	Run(ctx context.Context, command string) ([]byte, error)
}
