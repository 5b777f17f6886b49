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

package snapshotter

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/collector"
	"github.com/mchmarny/winspect/pkg/defaults"
	"github.com/mchmarny/winspect/pkg/errors"
	"github.com/mchmarny/winspect/pkg/header"
	"github.com/mchmarny/winspect/pkg/snapshot"
	"github.com/mchmarny/winspect/pkg/store"

	"golang.org/x/sync/errgroup"
)

// collectorConcurrency bounds parallel PowerShell processes; each one
// is a full interpreter startup.
const collectorConcurrency = 4

// MachineSnapshotter captures the current machine's configuration into
// a new snapshot directory. Collectors run concurrently; a failed
// category is recorded as an unavailable document, never aborting the
// snapshot.
type MachineSnapshotter struct {
	Store   *store.Store
	Factory collector.Factory
	Logger  *slog.Logger
	Version string
}

// Run collects every category and persists the snapshot, returning its
// generated ID.
func (m *MachineSnapshotter) Run(ctx context.Context, description string) (string, error) {
	if m.Store == nil {
		return "", errors.New(errors.ErrCodeInvalidRequest, "snapshotter requires a store")
	}
	if m.Logger == nil {
		m.Logger = slog.Default()
	}
	if m.Factory == nil {
		m.Factory = collector.NewDefaultFactory()
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.SnapshotTimeout)
	defer cancel()

	id := snapshot.NewID(time.Now(), description)
	if _, err := m.Store.Create(id); err != nil {
		return "", err
	}

	m.Logger.Info("starting machine snapshot", "snapshot", id)
	start := time.Now()

	var mu sync.Mutex
	docs := make(map[category.Category]*snapshot.Document)
	unavailable := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(collectorConcurrency)

	for _, c := range m.Factory.Categories() {
		g.Go(func() error {
			m.Logger.Debug("collecting category", "category", c)
			cStart := time.Now()

			doc, err := m.Factory.Create(c).Collect(ctx)
			snapshotCollectorDuration.WithLabelValues(c.String()).Observe(time.Since(cStart).Seconds())
			if err != nil {
				m.Logger.Warn("category collection failed, recording as unavailable",
					"category", c, "error", err)
				doc = snapshot.Unavailable(c, err.Error())
			}

			mu.Lock()
			docs[c] = doc
			if doc.IsUnavailable() {
				unavailable++
			}
			mu.Unlock()

			m.Logger.Debug("collected category", "category", c, "items", doc.Count())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		return "", err
	}

	// Persist in category order so directory listings stay stable.
	for _, c := range category.All {
		doc, ok := docs[c]
		if !ok {
			continue
		}
		if err := m.Store.WriteDocument(id, doc); err != nil {
			snapshotCollectionTotal.WithLabelValues("error").Inc()
			return "", err
		}
	}

	if err := m.writeMetadata(id, description); err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		return "", err
	}

	snapshotCollectionDuration.Observe(time.Since(start).Seconds())
	snapshotCollectionTotal.WithLabelValues("success").Inc()
	snapshotUnavailableCategories.Set(float64(unavailable))

	m.Logger.Info("snapshot collection complete",
		"snapshot", id,
		"categories", len(docs),
		"unavailable", unavailable,
		"duration", time.Since(start).Round(time.Millisecond))
	return id, nil
}

func (m *MachineSnapshotter) writeMetadata(id, description string) error {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	meta := &snapshot.Metadata{
		Hostname:    hostname,
		Description: description,
	}
	meta.Init(header.KindSnapshot, snapshot.APIVersion, m.Version)
	return m.Store.WriteMetadata(id, meta)
}
