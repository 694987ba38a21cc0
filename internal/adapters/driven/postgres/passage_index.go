package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/respona-core/internal/core/domain"
	"github.com/custodia-labs/respona-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.VectorIndex = (*PassageIndex)(nil)

// overfetchFactor widens the candidate pool so reranking has room to work
const overfetchFactor = 5

// PassageIndex implements driven.VectorIndex over a pgvector passages table.
// Retrieval is hybrid: cosine similarity on the embedding plus a full-text
// rank on the content, blended by hybridRatio. A lexical rerank then boosts
// exact-phrase and keyword matches before the final cut to k.
type PassageIndex struct {
	db          *DB
	embedder    driven.EmbeddingService
	hybridRatio float64 // weight of the vector leg, 0..1
}

// NewPassageIndex creates a new PassageIndex
func NewPassageIndex(db *DB, embedder driven.EmbeddingService, hybridRatio float64) *PassageIndex {
	if hybridRatio <= 0 || hybridRatio > 1 {
		hybridRatio = 0.7
	}
	return &PassageIndex{
		db:          db,
		embedder:    embedder,
		hybridRatio: hybridRatio,
	}
}

// Search returns up to k passages ordered by descending blended score
func (p *PassageIndex) Search(ctx context.Context, query string, k int) ([]*domain.SourceCandidate, error) {
	if k <= 0 {
		return nil, nil
	}

	embedding, err := p.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", domain.ErrRetrievalUnavailable, err)
	}

	keywords := extractKeywords(query)

	// to_tsquery rejects an empty query, so fall back to pure vector
	// similarity when every token was a stopword
	var rows *sql.Rows
	if len(keywords) == 0 {
		rows, err = p.db.QueryContext(ctx, `
			SELECT heading, title, url, content,
				1 - (embedding <=> $1::vector) AS score
			FROM passages
			ORDER BY score DESC
			LIMIT $2
		`, vectorLiteral(embedding), k*overfetchFactor)
	} else {
		rows, err = p.db.QueryContext(ctx, `
			SELECT heading, title, url, content,
				$3 * (1 - (embedding <=> $1::vector)) +
				(1 - $3) * ts_rank(to_tsvector('english', content), to_tsquery('english', $2)) AS score
			FROM passages
			ORDER BY score DESC
			LIMIT $4
		`, vectorLiteral(embedding), strings.Join(keywords, " | "), p.hybridRatio, k*overfetchFactor)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRetrievalUnavailable, err)
	}
	defer rows.Close()

	var candidates []*domain.SourceCandidate
	for rows.Next() {
		var c domain.SourceCandidate
		if err := rows.Scan(&c.Heading, &c.Title, &c.URL, &c.Passage, &c.Score); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRetrievalUnavailable, err)
		}
		candidates = append(candidates, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRetrievalUnavailable, err)
	}

	candidates = rerank(query, keywords, candidates)
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates, nil
}

// HealthCheck verifies the index is reachable
func (p *PassageIndex) HealthCheck(ctx context.Context) error {
	return p.db.Ping(ctx)
}

// stopwords excluded from the keyword leg of hybrid search
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "can": true, "do": true, "for": true, "from": true,
	"how": true, "i": true, "in": true, "is": true, "it": true, "of": true,
	"on": true, "or": true, "that": true, "the": true, "this": true, "to": true,
	"was": true, "what": true, "when": true, "where": true, "which": true,
	"who": true, "why": true, "will": true, "with": true,
}

// extractKeywords lowercases the query and drops stopwords and short tokens
func extractKeywords(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
		})
		if len(f) < 2 || stopwords[f] {
			continue
		}
		keywords = append(keywords, f)
	}
	return keywords
}

// rerank applies lexical boosts on top of the blended retrieval score:
// an exact-phrase match multiplies the score by 1.5, and keyword density
// adds up to half the original score. Sort is stable so ties keep
// retrieval order.
func rerank(query string, keywords []string, candidates []*domain.SourceCandidate) []*domain.SourceCandidate {
	phrase := strings.ToLower(strings.TrimSpace(query))

	for _, c := range candidates {
		content := strings.ToLower(c.Passage)

		if phrase != "" && strings.Contains(content, phrase) {
			c.Score *= 1.5
		}

		if len(keywords) > 0 {
			matched := 0
			for _, kw := range keywords {
				if strings.Contains(content, kw) {
					matched++
				}
			}
			density := float64(matched) / float64(len(keywords))
			c.Score += c.Score * density * 0.5
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

// vectorLiteral renders an embedding in pgvector's input syntax
func vectorLiteral(embedding []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range embedding {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
