package tagger

import (
	"testing"
)

func TestLexiconTaggerTag(t *testing.T) {
	tagger := NewLexiconTagger()

	tests := []struct {
		name     string
		text     string
		expected []Token
	}{
		{
			name: "superlative noun phrase",
			text: "best drama",
			expected: []Token{
				{Text: "best", Tag: "JJS"},
				{Text: "drama", Tag: "NN"},
			},
		},
		{
			name: "prepositional phrase",
			text: "best performance by an actress in a motion picture",
			expected: []Token{
				{Text: "best", Tag: "JJS"},
				{Text: "performance", Tag: "NN"},
				{Text: "by", Tag: "IN"},
				{Text: "an", Tag: "DT"},
				{Text: "actress", Tag: "NN"},
				{Text: "in", Tag: "IN"},
				{Text: "a", Tag: "DT"},
				{Text: "motion", Tag: "NN"},
				{Text: "picture", Tag: "NN"},
			},
		},
		{
			name: "adjective and gerund",
			text: "best supporting actor",
			expected: []Token{
				{Text: "best", Tag: "JJS"},
				{Text: "supporting", Tag: "JJ"},
				{Text: "actor", Tag: "NN"},
			},
		},
		{
			name: "punctuation stripped",
			text: "best drama!",
			expected: []Token{
				{Text: "best", Tag: "JJS"},
				{Text: "drama", Tag: "NN"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := tagger.Tag(tt.text)
			if err != nil {
				t.Fatalf("Tag() error = %v", err)
			}
			if len(tokens) != len(tt.expected) {
				t.Fatalf("Tag() returned %d tokens, expected %d: %v", len(tokens), len(tt.expected), tokens)
			}
			for i, tok := range tokens {
				if tok != tt.expected[i] {
					t.Errorf("token %d = %v, expected %v", i, tok, tt.expected[i])
				}
			}
		})
	}
}

func TestLexiconTaggerEmptyText(t *testing.T) {
	tagger := NewLexiconTagger()
	if _, err := tagger.Tag("   "); err != ErrEmptyText {
		t.Errorf("Tag(blank) error = %v, expected ErrEmptyText", err)
	}
}

func TestChunk(t *testing.T) {
	tagger := NewLexiconTagger()

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "simple category",
			text:     "so happy best drama went to argo",
			expected: []string{"best drama went to argo"},
		},
		{
			name:     "long category with continuations",
			text:     "best performance by an actress in a television series",
			expected: []string{"best performance by an actress in a television series"},
		},
		{
			name:     "no superlative",
			text:     "what a great show tonight",
			expected: nil,
		},
		{
			name:     "superlative without noun head",
			text:     "best of the",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := tagger.Tag(tt.text)
			if err != nil {
				t.Fatalf("Tag() error = %v", err)
			}
			spans := Chunk(tokens)
			if len(spans) != len(tt.expected) {
				t.Fatalf("Chunk() = %v, expected %v", spans, tt.expected)
			}
			for i, span := range spans {
				if span != tt.expected[i] {
					t.Errorf("span %d = %q, expected %q", i, span, tt.expected[i])
				}
			}
		})
	}
}

func TestExpectedType(t *testing.T) {
	tests := []struct {
		award    string
		expected string
	}{
		{"best performance by an actor in a motion picture - drama", EntityPerson},
		{"best director - motion picture", EntityPerson},
		// The picture wins the writing and music categories, not the writer
		// or composer.
		{"best screenplay - motion picture", EntityWork},
		{"best original score - motion picture", EntityWork},
		{"cecil b. demille award", EntityOther},
		{"best motion picture - drama", EntityWork},
		{"best television series - comedy or musical", EntityWork},
		{"best original song - motion picture", EntityWork},
		{"best animated feature film", EntityWork},
		{"best dressed", EntityOther},
	}

	for _, tt := range tests {
		t.Run(tt.award, func(t *testing.T) {
			if got := ExpectedType(tt.award); got != tt.expected {
				t.Errorf("ExpectedType(%q) = %q, expected %q", tt.award, got, tt.expected)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		entity   string
		award    string
		context  string
		expected string
	}{
		{
			name:     "known first name",
			entity:   "Daniel Day-Lewis",
			award:    "best performance by an actor in a motion picture - drama",
			expected: EntityPerson,
		},
		{
			name:     "quoted in context",
			entity:   "Game Change",
			award:    "best mini-series or motion picture made for television",
			context:  `loved that "Game Change" won tonight`,
			expected: EntityWork,
		},
		{
			name:     "leading article",
			entity:   "the hunger games",
			award:    "best original song - motion picture",
			expected: EntityWork,
		},
		{
			name:     "title case falls back to award expectation",
			entity:   "Homeland Showtime",
			award:    "best television series - drama",
			expected: EntityWork,
		},
		{
			name:     "no signal",
			entity:   "something",
			award:    "best dressed",
			expected: EntityOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.entity, tt.award, tt.context); got != tt.expected {
				t.Errorf("Classify(%q) = %q, expected %q", tt.entity, got, tt.expected)
			}
		})
	}
}

func TestHeuristicEntityTagger(t *testing.T) {
	tagger := NewHeuristicEntityTagger()

	entities, err := tagger.Entities(`Daniel Day-Lewis wins best actor for "Lincoln" at the Golden Globes`)
	if err != nil {
		t.Fatalf("Entities() error = %v", err)
	}

	var foundPerson, foundWork bool
	for _, e := range entities {
		if e.Type == EntityPerson && e.Text == "Daniel Day-Lewis" {
			foundPerson = true
		}
		if e.Type == EntityWork && e.Text == "Lincoln" {
			foundWork = true
		}
	}
	if !foundPerson {
		t.Errorf("expected person entity Daniel Day-Lewis, got %v", entities)
	}
	if !foundWork {
		t.Errorf("expected work entity Lincoln, got %v", entities)
	}
}
