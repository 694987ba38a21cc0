package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamEventConstructors(t *testing.T) {
	start := StartEvent("id-1")
	assert.Equal(t, StreamStart, start.Kind)
	assert.Equal(t, "id-1", start.UserID)
	assert.False(t, start.Terminal())

	sources := SourcesEvent(nil)
	assert.Equal(t, StreamSources, sources.Kind)
	require.NotNil(t, sources.Sources, "nil sources must normalize to an empty list")
	assert.Empty(t, sources.Sources)

	content := ContentEvent("fragment")
	assert.Equal(t, StreamContent, content.Kind)
	assert.Equal(t, "fragment", content.Content)

	md := &AnswerMetadata{Language: "en", SourceCount: 2}
	metadata := MetadataEvent(md)
	assert.Equal(t, StreamMetadata, metadata.Kind)
	assert.Same(t, md, metadata.Metadata)
}

func TestStreamEventTerminal(t *testing.T) {
	assert.True(t, DoneEvent().Terminal())
	assert.True(t, ErrorEvent("boom").Terminal())
	assert.False(t, StartEvent("x").Terminal())
	assert.False(t, ContentEvent("x").Terminal())
}

func TestSourceCandidateToSource(t *testing.T) {
	c := &SourceCandidate{
		Heading: "Waste collection",
		Title:   "Waste",
		URL:     "https://example.org/waste",
		Score:   0.8,
		Passage: "Bins are collected on Tuesdays.",
	}

	s := c.ToSource()
	require.NotNil(t, s)
	assert.Equal(t, c.Heading, s.Heading)
	assert.Equal(t, c.URL, s.URL)
	assert.Equal(t, c.Score, s.Score)
	assert.Equal(t, c.Passage, s.Passage)
}

func TestDetectedLanguageKnown(t *testing.T) {
	assert.True(t, DetectedLanguage{Tag: "en", Confidence: 0.9}.Known())
	assert.False(t, Unknown().Known())
	assert.False(t, DetectedLanguage{}.Known())
}

func TestNewQuery(t *testing.T) {
	before := time.Now()
	q := NewQuery("when is bin collection?")

	assert.Equal(t, "when is bin collection?", q.Text)
	assert.False(t, q.ReceivedAt.Before(before))
}
