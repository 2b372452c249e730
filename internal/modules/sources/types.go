package sources

// Label is the canonical verdict vocabulary shared by all source adapters.
type Label string

const (
	LabelVerified   Label = "VERIFIED"
	LabelFalse      Label = "FALSE"
	LabelMisleading Label = "MISLEADING"
	LabelUnchecked  Label = "UNCHECKED"
	LabelAnalyzed   Label = "ANALYZED"
)

// Article is a normalized news article returned by the news adapter.
type Article struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	PublishedAt string `json:"pub_date,omitempty"`
}

// FactCheckHit is the fact-check database's answer for one claim.
// Found is false when the database has no record; that is a valid
// result, not an error.
type FactCheckHit struct {
	Verdict Label  `json:"verdict"`
	Source  string `json:"source"`
	Summary string `json:"summary"`
	Found   bool   `json:"-"`
}
