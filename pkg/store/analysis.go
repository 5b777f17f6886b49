package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/errors"
)

// WriteAnalysis persists a category's analysis result as
// <Category>Analysis.json. The value is marshaled with two-space indentation
// so the written bytes are stable and re-readable verbatim.
func (s *Store) WriteAnalysis(id string, c category.Category, result any) error {
	p, err := s.Path(id)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s analysis: %w", c, err)
	}
	return os.WriteFile(filepath.Join(p, c.AnalysisFileName()), data, filePerm)
}

// ReadAnalysis returns the raw bytes of a category's analysis result.
func (s *Store) ReadAnalysis(id string, c category.Category) ([]byte, error) {
	p, err := s.Path(id)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(filepath.Join(p, c.AnalysisFileName()))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeNotFound,
				fmt.Sprintf("analysis for %s not found in snapshot %q", c, id))
		}
		return nil, err
	}
	return raw, nil
}

// AnalyzedCategories returns the categories that have analysis results on
// disk, in category order.
func (s *Store) AnalyzedCategories(id string) ([]category.Category, error) {
	p, err := s.Path(id)
	if err != nil {
		return nil, err
	}
	var out []category.Category
	for _, c := range category.All {
		if _, err := os.Stat(filepath.Join(p, c.AnalysisFileName())); err == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

// WriteInteraction records one prompt/response pair under the snapshot's
// llm/ directory. The name identifies the category and, under chunking, the
// bucket (e.g. "InstalledPrograms_security").
func (s *Store) WriteInteraction(id, name string, interaction any) error {
	p, err := s.Path(id)
	if err != nil {
		return err
	}
	dir := filepath.Join(p, llmDirName)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create llm dir: %w", err)
	}
	data, err := json.MarshalIndent(interaction, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal interaction: %w", err)
	}
	file := fmt.Sprintf("%s_llm_interaction.json", name)
	return os.WriteFile(filepath.Join(dir, file), data, filePerm)
}
