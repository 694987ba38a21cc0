package postgres

import (
	"strings"
	"testing"

	"github.com/custodia-labs/respona-core/internal/core/domain"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "drops stopwords",
			query: "when is the bin collection",
			want:  []string{"bin", "collection"},
		},
		{
			name:  "lowercases and trims punctuation",
			query: "Council Tax?",
			want:  []string{"council", "tax"},
		},
		{
			name:  "all stopwords",
			query: "what is it",
			want:  []string{},
		},
		{
			name:  "drops single characters",
			query: "a b parking",
			want:  []string{"parking"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractKeywords(tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestRerank_ExactPhraseBoost(t *testing.T) {
	candidates := []*domain.SourceCandidate{
		{Heading: "Generic", Passage: "collection of bins happens weekly", Score: 0.6},
		{Heading: "Exact", Passage: "the bin collection runs on tuesdays", Score: 0.5},
	}

	query := "bin collection"
	result := rerank(query, extractKeywords(query), candidates)

	if result[0].Heading != "Exact" {
		t.Errorf("expected exact-phrase match boosted to first, got %q", result[0].Heading)
	}
}

func TestRerank_KeywordDensityBoost(t *testing.T) {
	candidates := []*domain.SourceCandidate{
		{Heading: "None", Passage: "unrelated content entirely", Score: 0.5},
		{Heading: "Both", Passage: "parking permits for residents", Score: 0.5},
	}

	query := "parking permits"
	result := rerank(query, extractKeywords(query), candidates)

	if result[0].Heading != "Both" {
		t.Errorf("expected keyword matches boosted to first, got %q", result[0].Heading)
	}
	// Full density adds half the original score.
	if result[0].Score != 0.75 {
		t.Errorf("expected score 0.75, got %v", result[0].Score)
	}
	if result[1].Score != 0.5 {
		t.Errorf("expected unmatched score unchanged, got %v", result[1].Score)
	}
}

func TestRerank_StableForTies(t *testing.T) {
	candidates := []*domain.SourceCandidate{
		{Heading: "First", Passage: "nothing relevant", Score: 0.4},
		{Heading: "Second", Passage: "nothing relevant", Score: 0.4},
	}

	result := rerank("unmatched query", []string{"unmatched", "query"}, candidates)
	if result[0].Heading != "First" {
		t.Error("expected ties to keep retrieval order")
	}
}

func TestVectorLiteral(t *testing.T) {
	got := vectorLiteral([]float32{0.5, -1, 0.25})
	if got != "[0.5,-1,0.25]" {
		t.Errorf("unexpected literal: %q", got)
	}
	if !strings.HasPrefix(got, "[") || !strings.HasSuffix(got, "]") {
		t.Errorf("expected bracketed literal, got %q", got)
	}
}

func TestVectorLiteral_Empty(t *testing.T) {
	if got := vectorLiteral(nil); got != "[]" {
		t.Errorf("expected empty literal, got %q", got)
	}
}
