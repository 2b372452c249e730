package reasoning

import (
	"fmt"
	"strings"

	"github.com/project-clarion/core/internal/modules/sources"
)

const systemPrompt = `You are a professional fact-checker. Assess the factuality of the given claim.
Base your analysis only on the provided articles and cite them by title.
Be objective and concise. State clearly whether the evidence supports,
contradicts, or is insufficient to judge the claim.`

// buildAnalysisPrompt renders the claim plus article snippets as the
// grounding context for the reasoning provider.
func buildAnalysisPrompt(claim string, evidence []sources.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Claim to fact-check: %q\n\nSupporting Articles:\n", claim)

	if len(evidence) == 0 {
		b.WriteString("No articles found.\n")
	} else {
		for i, a := range evidence {
			fmt.Fprintf(&b, "\nArticle %d:\nTitle: %s\nSource: %s\n", i+1, a.Title, a.Source)
			if a.Description != "" {
				fmt.Fprintf(&b, "Description: %s\n", a.Description)
			}
		}
	}

	b.WriteString("\nProvide your fact-check analysis.")
	return b.String()
}
