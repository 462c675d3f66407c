package prosenlp

import (
	"strings"
	"unicode"

	"github.com/yanqian/weather-wizard/internal/domain/dialogue"
)

// maxReplyTokens bounds which utterances count as a short reply such as "Paris" or "in New York".
const maxReplyTokens = 4

// maxPlaceWords bounds the length of a promoted place name.
const maxPlaceWords = 3

// fillerWords never form part of a place name in a short reply.
var fillerWords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "in", "at", "for", "of", "on", "to", "near", "around", "from",
		"i", "me", "my", "you", "it", "is", "are", "am", "be", "s", "'s", "what", "how", "and", "or",
		"hi", "hello", "hey", "there", "thanks", "thank", "bye", "goodbye", "yes", "no", "ok", "okay",
		"please", "sure", "maybe", "nothing", "never", "mind", "weather", "forecast",
		"now", "today", "tomorrow", "tonight", "week", "hourly", "hour", "hours", "current", "currently",
	}
	for _, t := range dialogue.Vocabulary {
		words = append(words, string(t))
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

// replyPlace returns the place named by a short reply, trimming leading and
// trailing filler. Filler inside the run, digits or a long reply yield no place.
func replyPlace(tokens []string) (string, bool) {
	if len(tokens) == 0 || len(tokens) > maxReplyTokens {
		return "", false
	}
	start, end := 0, len(tokens)
	for start < end && isFiller(tokens[start]) {
		start++
	}
	for end > start && isFiller(tokens[end-1]) {
		end--
	}
	run := tokens[start:end]
	if len(run) == 0 || len(run) > maxPlaceWords {
		return "", false
	}
	words := make([]string, 0, len(run))
	for _, tok := range run {
		if isFiller(tok) || !placeWord(tok) {
			return "", false
		}
		words = append(words, titleWord(tok))
	}
	return strings.Join(words, " "), true
}

func isFiller(tok string) bool {
	word := strings.ToLower(strings.ReplaceAll(tok, "’", "'"))
	if _, ok := fillerWords[word]; ok {
		return true
	}
	_, ok := fillerWords[strings.TrimSuffix(word, "'s")]
	return ok
}

func placeWord(tok string) bool {
	letters := 0
	for _, r := range tok {
		switch {
		case unicode.IsLetter(r):
			letters++
		case r == '-' || r == '\'' || r == '.':
		default:
			return false
		}
	}
	return letters > 0
}

// titleWord capitalizes an all lower-case word and leaves mixed case alone.
func titleWord(tok string) string {
	if tok != strings.ToLower(tok) {
		return tok
	}
	runes := []rune(tok)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func hasPlace(entities []dialogue.Entity) bool {
	for _, e := range entities {
		if e.Label == dialogue.LabelGPE {
			return true
		}
	}
	return false
}
