package check

import (
	"github.com/project-clarion/core/internal/modules/sources"
)

// User-facing notices substituted for the AI analysis when the
// reasoning provider degrades. Each failure kind keeps distinct wording
// so the caller knows whether to wait or to fix a credential.
const (
	NoticeRateLimited = "AI analysis temporarily unavailable due to rate limits. Please try again in a few moments. Based on the articles found, please review the sources manually for now."
	NoticeAuthError   = "AI analysis unavailable - API key issue. Please verify the configured API key. Based on the articles found, please review the sources manually."
	NoticeUnavailable = "AI analysis unavailable. Based on the articles found, please review the sources manually."
)

// composeInput carries the three adapters' outcomes into the composer.
// A nil error with a zero value means the source answered with nothing;
// a non-nil error means the source was unavailable after retries.
type composeInput struct {
	Claim        string
	FactCheck    *sources.FactCheckHit
	FactCheckErr error
	Articles     []sources.Article
	NewsErr      error
	Analysis     string
	AnalysisErr  error
}

// compose merges the source results into one Verdict. Partial source
// failure never fails the request: whatever evidence is available is
// returned, and total absence of evidence is a valid terminal answer.
func compose(in composeInput) *Verdict {
	articles := dedupeArticles(in.Articles)

	verdict := &Verdict{
		Claim:              in.Claim,
		Verdict:            sources.LabelAnalyzed,
		Analysis:           in.Analysis,
		SupportingArticles: articles,
		ArticlesCount:      len(articles),
	}

	if in.AnalysisErr != nil {
		switch {
		case sources.IsRateLimited(in.AnalysisErr):
			verdict.Analysis = NoticeRateLimited
		case sources.IsAuthError(in.AnalysisErr):
			verdict.Analysis = NoticeAuthError
		default:
			verdict.Analysis = NoticeUnavailable
		}
	}

	if in.FactCheckErr == nil && in.FactCheck != nil {
		verdict.GoogleFactCheck = &FactCheckSubResult{
			Verdict: in.FactCheck.Verdict,
			Source:  in.FactCheck.Source,
			Summary: in.FactCheck.Summary,
		}
		// An official record with a real rating is authoritative over
		// the AI's assessment.
		if in.FactCheck.Found && in.FactCheck.Verdict != sources.LabelUnchecked {
			verdict.Verdict = in.FactCheck.Verdict
		}
	}

	return verdict
}

// dedupeArticles drops byte-identical (title, source, url) duplicates,
// keeping the first occurrence so relevance order survives.
func dedupeArticles(articles []sources.Article) []sources.Article {
	out := make([]sources.Article, 0, len(articles))
	seen := make(map[[3]string]struct{}, len(articles))
	for _, a := range articles {
		key := [3]string{a.Title, a.Source, a.URL}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
