package analyzer

import (
	"context"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/snapshot"
)

// metricsFunc computes the metric lines inlined into a section prompt.
type metricsFunc func(doc *snapshot.Document) []string

// sectionAnalyzer is the single-call analyzer shape shared by most
// categories: compute metrics, prompt once with a truncated excerpt,
// parse the response.
type sectionAnalyzer struct {
	cat     category.Category
	metrics metricsFunc
}

func (a *sectionAnalyzer) Category() category.Category {
	return a.cat
}

func (a *sectionAnalyzer) Analyze(ctx context.Context, req *Request) (*Result, error) {
	var metrics []string
	if a.metrics != nil {
		metrics = a.metrics(req.Doc)
	}

	prompt := buildSectionPrompt(a.cat.DisplayName(), metrics, req.Doc.Excerpt(maxPromptItems))
	raw, err := completeObject(ctx, req, "", prompt)
	if err != nil {
		return nil, err
	}

	result := parseResult(a.cat, raw)
	result.Model = req.Model
	return result, nil
}
