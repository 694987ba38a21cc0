package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/respona-core/internal/core/domain"
)

// Config configures prompt assembly.
type Config struct {
	// MaxContextChars caps the total size of the context block. Lowest-ranked
	// sources are evicted whole until the block fits.
	MaxContextChars int

	// DefaultLanguage is the answer language used when detection was
	// inconclusive (ISO 639-1).
	DefaultLanguage string

	// Now supplies the current time; overridable in tests
	Now func() time.Time
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxContextChars: 8000,
		DefaultLanguage: domain.LanguageDefault,
		Now:             time.Now,
	}
}

// Assembler builds generation requests from a query, its detected language
// and the ranked sources.
type Assembler struct {
	config Config
}

// NewAssembler creates a new Assembler.
func NewAssembler(config Config) *Assembler {
	if config.MaxContextChars <= 0 {
		config.MaxContextChars = DefaultConfig().MaxContextChars
	}
	if config.DefaultLanguage == "" {
		config.DefaultLanguage = domain.LanguageDefault
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Assembler{config: config}
}

// languageNames maps ISO 639-1 tags to the names used in instructions.
// Unknown tags fall back to the tag itself.
var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"pt": "Portuguese",
}

// LanguageName returns the display name for an ISO 639-1 tag.
func LanguageName(tag string) string {
	if name, ok := languageNames[tag]; ok {
		return name
	}
	return tag
}

// Assemble builds a GenerationRequest. Sources are consumed in rank order;
// when the context block exceeds the budget the lowest-ranked sources are
// dropped whole and counted in TruncatedSources. The query itself is never
// truncated.
func (a *Assembler) Assemble(query *domain.Query, lang domain.DetectedLanguage, sources []*domain.Source) *domain.GenerationRequest {
	kept, truncated := a.fitSources(sources)

	tag := lang.Tag
	if !lang.Known() {
		tag = a.config.DefaultLanguage
	}

	var b strings.Builder
	b.WriteString("You are a helpful assistant that answers questions using only the provided context.\n")
	fmt.Fprintf(&b, "Current date: %s\n\n", a.config.Now().Format("2006-01-02"))

	if len(kept) == 0 {
		b.WriteString("No context is available for this question. ")
		b.WriteString("Say that you don't have information about this topic and suggest rephrasing the question.\n")
	} else {
		b.WriteString("Context:\n")
		for _, src := range kept {
			fmt.Fprintf(&b, "## %s\n%s\n\n", src.Heading, src.Passage)
		}
		b.WriteString("If the context does not contain the answer, say that you don't have information about this topic. ")
		b.WriteString("Do not invent facts that are not in the context.\n")
	}

	b.WriteString("\nFormat the answer in Markdown: use headings, bullet lists and bold text where they aid readability. ")
	fmt.Fprintf(&b, "Answer in %s.\n", LanguageName(tag))
	fmt.Fprintf(&b, "\nQuestion: %s\n", query.Text)

	return &domain.GenerationRequest{
		Prompt:           b.String(),
		QueryText:        query.Text,
		Language:         domain.DetectedLanguage{Tag: tag, Confidence: lang.Confidence},
		Sources:          kept,
		TruncatedSources: truncated,
	}
}

// fitSources keeps the highest-ranked prefix whose rendered size fits the
// budget. Returns the kept sources and the count dropped.
func (a *Assembler) fitSources(sources []*domain.Source) ([]*domain.Source, int) {
	total := 0
	kept := make([]*domain.Source, 0, len(sources))

	for _, src := range sources {
		size := len(src.Heading) + len(src.Passage)
		if total+size > a.config.MaxContextChars {
			break
		}
		total += size
		kept = append(kept, src)
	}

	return kept, len(sources) - len(kept)
}
