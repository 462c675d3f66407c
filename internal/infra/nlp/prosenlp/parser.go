package prosenlp

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"

	"github.com/yanqian/weather-wizard/internal/domain/dialogue"
)

// Parser tokenizes utterances and tags named entities with prose.
type Parser struct{}

var _ dialogue.Parser = (*Parser)(nil)

// NewParser builds a prose backed parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse splits text into word tokens and labelled entities.
func (p *Parser) Parse(ctx context.Context, text string) (dialogue.ParsedUtterance, error) {
	if err := ctx.Err(); err != nil {
		return dialogue.ParsedUtterance{}, err
	}
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return dialogue.ParsedUtterance{}, fmt.Errorf("prose document: %w", err)
	}

	tokens := doc.Tokens()
	out := dialogue.ParsedUtterance{
		Tokens:   make([]string, 0, len(tokens)),
		Entities: make([]dialogue.Entity, 0),
	}
	for _, tok := range tokens {
		if punctuationOnly(tok.Text) {
			continue
		}
		out.Tokens = append(out.Tokens, tok.Text)
	}
	for _, ent := range doc.Entities() {
		out.Entities = append(out.Entities, dialogue.Entity{
			Text:  strings.TrimSpace(ent.Text),
			Label: ent.Label,
		})
	}
	// The tagger misses bare place names, so a short reply without a place is promoted whole.
	if !hasPlace(out.Entities) {
		if place, ok := replyPlace(out.Tokens); ok {
			out.Entities = append(out.Entities, dialogue.Entity{Text: place, Label: dialogue.LabelGPE})
		}
	}
	return out, nil
}

func punctuationOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
