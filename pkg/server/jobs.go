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

package server

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Job states.
const (
	JobRunning   = "running"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// Job tracks one background analysis run.
type Job struct {
	ID         string     `json:"id"`
	SnapshotID string     `json:"snapshotId"`
	State      string     `json:"state"`
	Error      string     `json:"error,omitempty"`
	Started    time.Time  `json:"started"`
	Finished   *time.Time `json:"finished,omitempty"`
}

// jobManager tracks background analysis jobs and the global pause gate.
// One running job per snapshot at a time.
type jobManager struct {
	mu     sync.Mutex
	jobs   map[string]*Job
	active map[string]string // snapshot ID -> running job ID
	paused bool
}

func newJobManager() *jobManager {
	return &jobManager{
		jobs:   make(map[string]*Job),
		active: make(map[string]string),
	}
}

// start registers a new running job for a snapshot. Returns the
// existing job with ok=false when one is already running.
func (m *jobManager) start(snapshotID string) (*Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if jobID, busy := m.active[snapshotID]; busy {
		return m.jobs[jobID], false
	}

	job := &Job{
		ID:         uuid.New().String(),
		SnapshotID: snapshotID,
		State:      JobRunning,
		Started:    time.Now().UTC(),
	}
	m.jobs[job.ID] = job
	m.active[snapshotID] = job.ID
	return job, true
}

// finish marks a job done, recording the error when one occurred.
func (m *jobManager) finish(jobID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return
	}
	now := time.Now().UTC()
	job.Finished = &now
	if err != nil {
		job.State = JobFailed
		job.Error = err.Error()
	} else {
		job.State = JobCompleted
	}
	delete(m.active, job.SnapshotID)
}

func (m *jobManager) get(jobID string) (*Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, false
	}
	j := *job
	return &j, true
}

// list returns all jobs, newest first.
func (m *jobManager) list() []*Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		j := *job
		out = append(out, &j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Started.After(out[j].Started) })
	return out
}

func (m *jobManager) setPaused(paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = paused
}

func (m *jobManager) isPaused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}
