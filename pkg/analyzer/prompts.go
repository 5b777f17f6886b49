package analyzer

import (
	"fmt"
	"strings"
)

// resultSchema is appended to every analysis prompt so responses stay
// machine-parseable. The shape is a request, not a guarantee; parsing
// tolerates drift.
const resultSchema = `Respond with a single JSON object in this exact shape:
{
  "issues": [
    {"severity": "critical|high|medium|low", "title": "...", "description": "...", "recommendation": "..."}
  ],
  "optimizations": [
    {"impact": "high|medium|low", "title": "...", "description": "...", "recommendation": "..."}
  ],
  "summary": "one short paragraph"
}
Do not include any text outside the JSON object.`

// maxPromptItems caps how many elements of a list are inlined into a
// prompt. Counts always reflect the full data set.
const maxPromptItems = 15

// buildSectionPrompt assembles the standard single-call analysis prompt:
// an instruction line, computed metrics, a data excerpt, and the response
// schema.
func buildSectionPrompt(display string, metrics []string, excerpt string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following Windows %s data for problems and improvement opportunities.\n\n", display)
	if len(metrics) > 0 {
		b.WriteString("Computed metrics:\n")
		for _, m := range metrics {
			b.WriteString("- ")
			b.WriteString(m)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	b.WriteString("Data:\n")
	b.WriteString(excerpt)
	b.WriteString("\n\n")
	b.WriteString(resultSchema)
	return b.String()
}

// buildBucketPrompt assembles the prompt for one bucket of a chunked
// analysis. Total is the full bucket size before sampling.
func buildBucketPrompt(display, bucket string, total int, sample string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the %q group of Windows %s.\n", bucket, display)
	fmt.Fprintf(&b, "The group contains %d entries; a sample of at most %d is shown.\n\n", total, maxPromptItems)
	b.WriteString("Sample:\n")
	b.WriteString(sample)
	b.WriteString("\n\n")
	b.WriteString(resultSchema)
	return b.String()
}

// buildSynthesisPrompt asks for one combined summary from per-bucket
// summaries plus top-level metrics.
func buildSynthesisPrompt(display string, summaries, metrics []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Combine the following per-group findings about Windows %s into one short overall summary paragraph.\n\n", display)
	for _, s := range summaries {
		b.WriteString("- ")
		b.WriteString(s)
		b.WriteByte('\n')
	}
	if len(metrics) > 0 {
		b.WriteString("\nMetrics:\n")
		for _, m := range metrics {
			b.WriteString("- ")
			b.WriteString(m)
			b.WriteByte('\n')
		}
	}
	b.WriteString("\nRespond with the summary paragraph only.")
	return b.String()
}
