package check

import "github.com/project-clarion/core/internal/modules/sources"

// Verdict is the composed answer for one claim. It is constructed once
// per orchestration call, immutable afterwards, and cached as its JSON
// encoding.
type Verdict struct {
	Claim              string              `json:"claim"`
	Verdict            sources.Label       `json:"verdict"`
	Analysis           string              `json:"analysis"`
	SupportingArticles []sources.Article   `json:"supporting_articles"`
	ArticlesCount      int                 `json:"articles_count"`
	GoogleFactCheck    *FactCheckSubResult `json:"google_fact_check,omitempty"`
}

// FactCheckSubResult embeds the fact-check database's answer alongside
// the AI analysis instead of discarding it.
type FactCheckSubResult struct {
	Verdict sources.Label `json:"verdict"`
	Source  string        `json:"source"`
	Summary string        `json:"summary"`
}

// TrendingItem is one ranked row of the trending feed.
type TrendingItem struct {
	ID              int           `json:"id"`
	Title           string        `json:"title"`
	Source          string        `json:"source"`
	URL             string        `json:"url"`
	PublishedDate   string        `json:"published_date"`
	Verdict         sources.Label `json:"verdict"`
	Summary         string        `json:"summary"`
	FactCheckSource string        `json:"fact_check_source"`
}

type factCheckDTO struct {
	Claim string `json:"claim"`
}
