package tagger

import "strings"

// Chunk scans tagged tokens for award-phrase spans. A span opens with a
// superlative (JJS or RBS), optionally followed by a gerund, then adjectives
// and one or more nouns, with up to two prepositional continuations so that
// long categories like "best performance by an actor in a motion picture"
// survive intact. Returns the matched spans as text.
//
// Grammar, in chunk-rule notation:
//
//	AWARD: {<RBS|JJS><VBG>?<JJ.*>*<NN.*>+(<IN><DT>?<JJ.*>*<NN.*>+){0,2}}
func Chunk(tokens []Token) []string {
	var spans []string

	for i := 0; i < len(tokens); i++ {
		if tokens[i].Tag != "JJS" && tokens[i].Tag != "RBS" {
			continue
		}

		end := matchSpan(tokens, i)
		if end <= i {
			continue
		}

		words := make([]string, 0, end-i+1)
		for _, tok := range tokens[i : end+1] {
			words = append(words, tok.Text)
		}
		spans = append(spans, strings.Join(words, " "))
		i = end
	}

	return spans
}

// matchSpan returns the index of the last token of an award span opening at
// start, or start-1 if no noun head follows the superlative.
func matchSpan(tokens []Token, start int) int {
	i := start + 1

	if i < len(tokens) && tokens[i].Tag == "VBG" {
		i++
	}

	end, ok := matchModifiersAndNouns(tokens, i)
	if !ok {
		return start - 1
	}
	i = end + 1

	// Up to two prepositional continuations.
	for cont := 0; cont < 2; cont++ {
		j := i
		if j >= len(tokens) || tokens[j].Tag != "IN" {
			break
		}
		j++
		if j < len(tokens) && tokens[j].Tag == "DT" {
			j++
		}
		contEnd, ok := matchModifiersAndNouns(tokens, j)
		if !ok {
			break
		}
		i = contEnd + 1
		end = contEnd
	}

	return end
}

// matchModifiersAndNouns consumes zero or more adjectives followed by one or
// more nouns starting at i. Returns the index of the last noun consumed.
func matchModifiersAndNouns(tokens []Token, i int) (int, bool) {
	for i < len(tokens) && strings.HasPrefix(tokens[i].Tag, "JJ") {
		i++
	}

	nounEnd := -1
	for i < len(tokens) && strings.HasPrefix(tokens[i].Tag, "NN") {
		nounEnd = i
		i++
	}

	if nounEnd == -1 {
		return 0, false
	}
	return nounEnd, true
}
