package awards

import "strings"

// DefaultTemplates lists the fixed ceremony categories used for winner,
// nominee and presenter extraction. Discovery output feeds the externally
// reported award list only; extraction always keys off these templates so a
// bad discovery run cannot cascade into every downstream answer.
var DefaultTemplates = []string{
	"best screenplay - motion picture",
	"best director - motion picture",
	"best performance by an actress in a television series - comedy or musical",
	"best foreign language film",
	"best performance by an actor in a supporting role in a motion picture",
	"best performance by an actress in a supporting role in a series, mini-series or motion picture made for television",
	"best motion picture - comedy or musical",
	"best performance by an actress in a motion picture - comedy or musical",
	"best mini-series or motion picture made for television",
	"best original score - motion picture",
	"best performance by an actress in a television series - drama",
	"best performance by an actress in a motion picture - drama",
	"cecil b. demille award",
	"best performance by an actor in a motion picture - comedy or musical",
	"best motion picture - drama",
	"best performance by an actor in a supporting role in a series, mini-series or motion picture made for television",
	"best performance by an actress in a supporting role in a motion picture",
	"best television series - drama",
	"best performance by an actor in a mini-series or motion picture made for television",
	"best performance by an actress in a mini-series or motion picture made for television",
	"best animated feature film",
	"best original song - motion picture",
	"best performance by an actor in a motion picture - drama",
	"best television series - comedy or musical",
	"best performance by an actor in a television series - drama",
	"best performance by an actor in a television series - comedy or musical",
}

// IsCecil reports whether the award is the Cecil B. DeMille category, which
// has no nominees by definition.
func IsCecil(award string) bool {
	lower := strings.ToLower(award)
	return strings.Contains(lower, "cecil") && strings.Contains(lower, "demille")
}
