package tagger

import (
	"strings"
	"unicode"
)

// commonFirstNames anchors person classification when the award context is
// ambiguous. Deliberately small: it only needs to tip borderline cases.
var commonFirstNames = map[string]bool{
	"james": true, "john": true, "robert": true, "michael": true,
	"william": true, "david": true, "richard": true, "joseph": true,
	"thomas": true, "daniel": true, "christopher": true, "anthony": true,
	"mark": true, "steven": true, "andrew": true, "kevin": true,
	"brian": true, "george": true, "edward": true, "ronald": true,
	"mary": true, "patricia": true, "jennifer": true, "linda": true,
	"elizabeth": true, "barbara": true, "susan": true, "jessica": true,
	"sarah": true, "karen": true, "nancy": true, "lisa": true,
	"margaret": true, "betty": true, "sandra": true, "ashley": true,
	"emma": true, "emily": true, "anne": true, "amy": true,
	"kate": true, "julia": true, "julianne": true, "meryl": true,
	"hugh": true, "ben": true, "tom": true, "tina": true,
	"jodie": true, "claire": true, "adele": true, "anna": true,
	"quentin": true, "sacha": true, "salma": true, "jay": true,
}

// ExpectedType infers the entity type an award category's winner should have
// from the category name alone: performance and direction awards go to
// people; picture, series and song awards go to works. Screenplay and score
// categories credit the picture itself, not the writer or composer, so they
// fall into the work branch via "motion picture". Returns EntityOther when
// the name gives no signal, which callers must treat as "no filtering
// possible".
func ExpectedType(award string) string {
	name := strings.ToLower(award)

	performance := strings.Contains(name, "performance") ||
		strings.Contains(name, "actor") ||
		strings.Contains(name, "actress")

	switch {
	case performance, strings.Contains(name, "director"):
		return EntityPerson
	case strings.Contains(name, "song"):
		return EntityWork
	case strings.Contains(name, "motion picture"),
		strings.Contains(name, "film"),
		strings.Contains(name, "feature"),
		strings.Contains(name, "television series"),
		strings.Contains(name, "mini-series"),
		strings.Contains(name, "series"):
		return EntityWork
	default:
		return EntityOther
	}
}

// Classify guesses the type of an extracted candidate name using the award
// context and surface features of the name itself. The result feeds a
// fail-open filter: callers only act on a confident mismatch.
func Classify(name, award, context string) string {
	lower := strings.ToLower(name)
	words := strings.Fields(lower)
	if len(words) == 0 {
		return EntityOther
	}

	// Quoted in the surrounding text, or led by a hashtag: almost always a
	// title, not a person.
	if context != "" {
		for _, q := range []string{`"` + lower + `"`, "'" + lower + "'", "#" + strings.ReplaceAll(lower, " ", "")} {
			if strings.Contains(strings.ToLower(context), q) {
				return EntityWork
			}
		}
	}

	if commonFirstNames[words[0]] && len(words) >= 2 && len(words) <= 3 {
		return EntityPerson
	}

	for _, indicator := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(lower, indicator) {
			return EntityWork
		}
	}

	// Two or three title-cased words with no other signal look like a name
	// when the award wants a person, a title when it wants a work.
	if len(words) >= 2 && len(words) <= 3 && titleCaseRatio(name) > 0.9 {
		if expected := ExpectedType(award); expected != EntityOther {
			return expected
		}
	}

	return EntityOther
}

// titleCaseRatio is the fraction of words in s starting with an upper-case
// letter.
func titleCaseRatio(s string) float64 {
	words := strings.Fields(s)
	if len(words) == 0 {
		return 0
	}
	upper := 0
	for _, w := range words {
		for _, r := range w {
			if unicode.IsUpper(r) {
				upper++
			}
			break
		}
	}
	return float64(upper) / float64(len(words))
}
