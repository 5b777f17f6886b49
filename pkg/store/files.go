package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mchmarny/winspect/pkg/errors"
)

// FileInfo describes one file within a snapshot directory.
type FileInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// Files lists the files in a snapshot directory, including LLM interaction
// logs under llm/ (reported with their relative path).
func (s *Store) Files(id string) ([]FileInfo, error) {
	p, err := s.Path(id)
	if err != nil {
		return nil, err
	}
	if !s.Exists(id) {
		return nil, errors.New(errors.ErrCodeNotFound, fmt.Sprintf("snapshot %q not found", id))
	}

	var files []FileInfo
	err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(p, path)
		if err != nil {
			return err
		}
		files = append(files, FileInfo{
			Name:     filepath.ToSlash(rel),
			Size:     fi.Size(),
			Modified: fi.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot files: %w", err)
	}
	return files, nil
}

// ReadFile returns the raw content of a named file within a snapshot.
// The name is the relative path reported by Files; anything that escapes the
// snapshot directory is rejected.
func (s *Store) ReadFile(id, name string) ([]byte, error) {
	p, err := s.Path(id)
	if err != nil {
		return nil, err
	}

	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("invalid file name: %q", name))
	}

	raw, err := os.ReadFile(filepath.Join(p, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeNotFound,
				fmt.Sprintf("file %q not found in snapshot %q", name, id))
		}
		return nil, err
	}
	return raw, nil
}
