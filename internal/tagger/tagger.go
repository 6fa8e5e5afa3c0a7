// Package tagger provides the NLP boundary for the extraction pipeline:
// part-of-speech tagging, award-phrase chunking and named-entity tagging.
// The taggers are deliberately substitutable interfaces with heuristic
// defaults so the pipeline can run against a fake in tests or a real model
// behind the same contract.
package tagger

import (
	"errors"
	"strings"
	"unicode"
)

// ErrEmptyText is returned when a tagger is asked to tag empty input.
var ErrEmptyText = errors.New("cannot tag empty text")

// Token is a single word with its part-of-speech tag.
// Tags follow the Penn Treebank convention (JJS, NN, IN, DT, ...).
type Token struct {
	Text string
	Tag  string
}

// Tagger assigns part-of-speech tags to the words of a text.
type Tagger interface {
	Tag(text string) ([]Token, error)
}

// determiners and prepositions used by the lexicon tagger.
var (
	determiners = map[string]bool{
		"a": true, "an": true, "the": true, "this": true, "that": true,
	}
	prepositions = map[string]bool{
		"by": true, "in": true, "for": true, "of": true, "at": true,
		"on": true, "to": true, "with": true, "from": true,
	}
	conjunctions = map[string]bool{
		"and": true, "or": true, "but": true, "nor": true,
	}
	superlatives = map[string]bool{
		"best": true, "worst": true, "most": true, "least": true,
	}
	commonAdjectives = map[string]bool{
		"original": true, "animated": true, "foreign": true, "golden": true,
		"dramatic": true, "musical": true, "comedic": true, "supporting": true,
		"feature": true, "limited": true,
	}
)

// LexiconTagger is a lightweight rule-based part-of-speech tagger.
// It covers the small tag inventory the award-phrase grammar consumes and is
// the default implementation behind the Tagger interface.
type LexiconTagger struct{}

// NewLexiconTagger creates a LexiconTagger.
func NewLexiconTagger() *LexiconTagger {
	return &LexiconTagger{}
}

// Tag splits text into word tokens and assigns each a part-of-speech tag
// using lexicon lookups and suffix rules.
func (t *LexiconTagger) Tag(text string) ([]Token, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	words := splitWords(text)
	tokens := make([]Token, 0, len(words))
	for _, w := range words {
		tokens = append(tokens, Token{Text: w, Tag: tagWord(w)})
	}
	return tokens, nil
}

// splitWords breaks text into word tokens, keeping hyphenated words intact
// and dropping bare punctuation.
func splitWords(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r)
	})

	words := make([]string, 0, len(fields))
	for _, f := range fields {
		trimmed := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
		})
		if trimmed == "" {
			continue
		}
		words = append(words, trimmed)
	}
	return words
}

// tagWord assigns a Penn-style tag to a single word.
func tagWord(word string) string {
	lower := strings.ToLower(word)

	switch {
	case determiners[lower]:
		return "DT"
	case prepositions[lower]:
		return "IN"
	case conjunctions[lower]:
		return "CC"
	case superlatives[lower]:
		return "JJS"
	case strings.HasSuffix(lower, "est") && len(lower) > 4:
		return "JJS"
	case commonAdjectives[lower]:
		return "JJ"
	case strings.HasSuffix(lower, "ing") && len(lower) > 4:
		return "VBG"
	case strings.HasSuffix(lower, "ly") && len(lower) > 3:
		return "RB"
	case strings.HasSuffix(lower, "ed") && len(lower) > 3:
		return "VBD"
	case len(word) > 0 && unicode.IsUpper(rune(word[0])):
		return "NNP"
	default:
		return "NN"
	}
}
