package chatbot

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed greetings.yaml
var greetingsYAML []byte

// Corpus is a small lookup table of canned small-talk replies.
type Corpus struct {
	defaultReply string
	replies      map[string]string
}

type corpusFile struct {
	DefaultReply  string `yaml:"defaultReply"`
	Conversations []struct {
		Patterns []string `yaml:"patterns"`
		Reply    string   `yaml:"reply"`
	} `yaml:"conversations"`
}

// DefaultCorpus loads the embedded greetings corpus.
func DefaultCorpus() (*Corpus, error) {
	return ParseCorpus(greetingsYAML)
}

// ParseCorpus decodes a YAML corpus document.
func ParseCorpus(data []byte) (*Corpus, error) {
	var file corpusFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}
	if strings.TrimSpace(file.DefaultReply) == "" {
		return nil, errors.New("corpus defaultReply is required")
	}
	c := &Corpus{
		defaultReply: strings.TrimSpace(file.DefaultReply),
		replies:      make(map[string]string),
	}
	for _, conv := range file.Conversations {
		reply := strings.TrimSpace(conv.Reply)
		if reply == "" {
			continue
		}
		for _, pattern := range conv.Patterns {
			if key := normalize(pattern); key != "" {
				c.replies[key] = reply
			}
		}
	}
	return c, nil
}

// Match returns the canned reply for an utterance, if any.
func (c *Corpus) Match(utterance string) (string, bool) {
	reply, ok := c.replies[normalize(utterance)]
	return reply, ok
}

// DefaultReply is used when nothing else can answer.
func (c *Corpus) DefaultReply() string {
	return c.defaultReply
}

// normalize lowercases and drops punctuation other than apostrophes.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r == '\'':
			b.WriteRune(r)
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
