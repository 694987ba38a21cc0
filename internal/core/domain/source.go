package domain

// SourceCandidate is one passage returned by the vector index, before
// deduplication. Read-only downstream of the retriever. Score is comparable
// within a single request only; higher means more relevant.
type SourceCandidate struct {
	Heading string
	Title   string
	URL     string
	Score   float64
	Passage string
}

// ToSource converts a candidate into a displayable citation.
// The candidate's score and passage text travel along for ranking and
// prompt assembly but are not part of the wire shape.
func (c *SourceCandidate) ToSource() *Source {
	return &Source{
		Heading: c.Heading,
		Title:   c.Title,
		URL:     c.URL,
		Score:   c.Score,
		Passage: c.Passage,
	}
}

// Source is a deduplicated citation in stable display order.
// Uniqueness is keyed by Heading: two candidates sharing a URL under
// different headings stay distinct, while two candidates with the same
// heading collapse to one regardless of URL.
type Source struct {
	Heading string  `json:"heading"`
	Title   string  `json:"title"`
	URL     string  `json:"source"`
	Score   float64 `json:"-"`
	Passage string  `json:"-"`
}
