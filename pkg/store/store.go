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

package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/errors"
	"github.com/mchmarny/winspect/pkg/snapshot"
)

const (
	metadataFileName = "metadata.json"
	summaryFileName  = "summary.txt"
	llmDirName       = "llm"

	dirPerm  = 0o755
	filePerm = 0o644
)

// Store provides filesystem CRUD over a directory of snapshot directories.
// It is the single place that maps snapshot IDs to paths, so ID validation
// (and with it path traversal protection) lives here.
type Store struct {
	root string
}

// New creates a Store rooted at the given directory. The directory is
// created if it does not exist.
func New(root string) (*Store, error) {
	if root == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "snapshots root cannot be empty")
	}
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create snapshots root: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the snapshots root directory.
func (s *Store) Root() string {
	return s.root
}

// Info summarizes one stored snapshot for listings.
type Info struct {
	ID          string    `json:"id"`
	Created     time.Time `json:"created"`
	Description string    `json:"description,omitempty"`
	Categories  int       `json:"categories"`
	Analyzed    bool      `json:"analyzed"`
}

// List returns all snapshots under the root, newest first.
func (s *Store) List() ([]Info, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshots root: %w", err)
	}

	infos := make([]Info, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		created, desc, ok := snapshot.ParseID(e.Name())
		if !ok {
			// Not a snapshot directory; leave it alone.
			continue
		}
		info := Info{
			ID:          e.Name(),
			Created:     created,
			Description: desc,
		}
		info.Categories, info.Analyzed = s.stats(e.Name())
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Created.After(infos[j].Created)
	})
	return infos, nil
}

// Latest returns the most recent snapshot, or a NOT_FOUND error when the
// store is empty.
func (s *Store) Latest() (*Info, error) {
	infos, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no snapshots found")
	}
	return &infos[0], nil
}

// Exists reports whether a snapshot directory exists for the given ID.
func (s *Store) Exists(id string) bool {
	p, err := s.Path(id)
	if err != nil {
		return false
	}
	fi, err := os.Stat(p)
	return err == nil && fi.IsDir()
}

// Path resolves a snapshot ID to its directory path, rejecting IDs that do
// not follow the snapshot naming convention.
func (s *Store) Path(id string) (string, error) {
	if !snapshot.ValidID(id) {
		return "", errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("invalid snapshot id: %q", id))
	}
	return filepath.Join(s.root, id), nil
}

// Create makes the directory for a new snapshot and returns its path.
func (s *Store) Create(id string) (string, error) {
	p, err := s.Path(id)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(p, dirPerm); err != nil {
		return "", fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	return p, nil
}

// Delete removes a snapshot directory and everything in it.
func (s *Store) Delete(id string) error {
	p, err := s.Path(id)
	if err != nil {
		return err
	}
	if !s.Exists(id) {
		return errors.New(errors.ErrCodeNotFound, fmt.Sprintf("snapshot %q not found", id))
	}
	slog.Info("deleting snapshot", "id", id)
	return os.RemoveAll(p)
}

// stats counts category files and checks whether any analysis result exists.
func (s *Store) stats(id string) (categories int, analyzed bool) {
	p, err := s.Path(id)
	if err != nil {
		return 0, false
	}
	for _, c := range category.All {
		if _, err := os.Stat(filepath.Join(p, c.FileName())); err == nil {
			categories++
		}
		if _, err := os.Stat(filepath.Join(p, c.AnalysisFileName())); err == nil {
			analyzed = true
		}
	}
	return categories, analyzed
}

// WriteDocument persists one category document as <Category>.json.
func (s *Store) WriteDocument(id string, doc *snapshot.Document) error {
	p, err := s.Path(id)
	if err != nil {
		return err
	}
	data, err := doc.MarshalValue()
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", doc.Category, err)
	}
	return os.WriteFile(filepath.Join(p, doc.Category.FileName()), data, filePerm)
}

// ReadDocument loads one category document from a snapshot.
func (s *Store) ReadDocument(id string, c category.Category) (*snapshot.Document, error) {
	p, err := s.Path(id)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(filepath.Join(p, c.FileName()))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeNotFound,
				fmt.Sprintf("category %s not found in snapshot %q", c, id))
		}
		return nil, fmt.Errorf("failed to read %s: %w", c, err)
	}
	return snapshot.NewDocument(c, raw)
}

// Load reads a complete snapshot: metadata plus every category document
// present on disk, in category order.
func (s *Store) Load(id string) (*snapshot.Snapshot, error) {
	if !s.Exists(id) {
		return nil, errors.New(errors.ErrCodeNotFound, fmt.Sprintf("snapshot %q not found", id))
	}

	snap := &snapshot.Snapshot{ID: id}
	if meta, err := s.ReadMetadata(id); err == nil {
		snap.Header = meta.Header
	}

	for _, c := range category.All {
		doc, err := s.ReadDocument(id, c)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		snap.Documents = append(snap.Documents, doc)
	}
	return snap, nil
}

// WriteMetadata persists the snapshot's metadata.json.
func (s *Store) WriteMetadata(id string, meta *snapshot.Metadata) error {
	p, err := s.Path(id)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return os.WriteFile(filepath.Join(p, metadataFileName), data, filePerm)
}

// ReadMetadata loads the snapshot's metadata.json.
func (s *Store) ReadMetadata(id string) (*snapshot.Metadata, error) {
	p, err := s.Path(id)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(filepath.Join(p, metadataFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeNotFound,
				fmt.Sprintf("metadata not found in snapshot %q", id))
		}
		return nil, err
	}
	var meta snapshot.Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	return &meta, nil
}

// WriteSummary persists the cross-category summary as summary.txt.
func (s *Store) WriteSummary(id, text string) error {
	p, err := s.Path(id)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(p, summaryFileName), []byte(text), filePerm)
}

// ReadSummary loads summary.txt, or a NOT_FOUND error when absent.
func (s *Store) ReadSummary(id string) (string, error) {
	p, err := s.Path(id)
	if err != nil {
		return "", err
	}
	raw, err := os.ReadFile(filepath.Join(p, summaryFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New(errors.ErrCodeNotFound,
				fmt.Sprintf("summary not found in snapshot %q", id))
		}
		return "", err
	}
	return string(raw), nil
}
