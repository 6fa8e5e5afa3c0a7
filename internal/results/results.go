// Package results holds the final extraction results and owns their
// serialization to the flat JSON layout and a human-readable report.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// AwardResult is the extracted data for one template category.
type AwardResult struct {
	Winner              string
	WinnerCandidates    []string
	Nominees            []string
	NomineeCandidates   []string
	Presenters          []string
	PresenterCandidates []string
}

// Results is the full outcome of one extraction run.
type Results struct {
	RunID            string
	Year             string
	Hosts            []string
	HostCandidates   []string
	DiscoveredAwards []string
	Awards           map[string]*AwardResult
	Extras           map[string]string
	ExtraCandidates  map[string][]string
}

// New creates an empty Results for the given run and year.
func New(runID, year string) *Results {
	return &Results{
		RunID:           runID,
		Year:            year,
		Awards:          make(map[string]*AwardResult),
		Extras:          make(map[string]string),
		ExtraCandidates: make(map[string][]string),
	}
}

// Award returns the result slot for a category, creating it on first use.
func (r *Results) Award(name string) *AwardResult {
	a, ok := r.Awards[name]
	if !ok {
		a = &AwardResult{}
		r.Awards[name] = a
	}
	return a
}

// flatten builds the flat output map: singular "host" plus candidate list,
// the discovered "awards" list, every category as a top-level key, and the
// extra goals with their candidate lists.
func (r *Results) flatten() map[string]any {
	out := make(map[string]any, len(r.Awards)+4)

	if len(r.Hosts) > 0 {
		out["host"] = nonNil(r.Hosts)
	} else {
		out["host"] = ""
	}
	out["host_candidates"] = nonNil(r.HostCandidates)
	out["awards"] = nonNil(r.DiscoveredAwards)

	for name, a := range r.Awards {
		out[name] = map[string]any{
			"winner":                a.Winner,
			"winner_candidates":     nonNil(a.WinnerCandidates),
			"nominees":              nonNil(a.Nominees),
			"nominee_candidates":    nonNil(a.NomineeCandidates),
			"presenters":            nonNil(a.Presenters),
			"presenters_candidates": nonNil(a.PresenterCandidates),
		}
	}

	for goal, winner := range r.Extras {
		out[goal] = winner
		if cands, ok := r.ExtraCandidates[goal]; ok {
			out[goal+"_candidates"] = nonNil(cands)
		}
	}

	return out
}

// WriteJSON writes the flat JSON results file into dir and returns its path.
func (r *Results) WriteJSON(dir string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("gg%s_results.json", r.Year))

	data, err := json.MarshalIndent(r.flatten(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode results: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("failed to write results %s: %w", path, err)
	}
	return path, nil
}

// WriteText writes a human-readable report into dir and returns its path.
func (r *Results) WriteText(dir string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("gg%s_results.txt", r.Year))

	var b strings.Builder
	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)

	fmt.Fprintf(&b, "%s\nGolden Globes %s - Extraction Results\n%s\n\n", rule, r.Year, rule)

	b.WriteString("HOST\n" + thin + "\n")
	if len(r.Hosts) > 0 {
		b.WriteString(strings.Join(r.Hosts, ", ") + "\n")
	} else {
		b.WriteString("UNKNOWN\n")
	}
	b.WriteString("\n")

	b.WriteString("AWARDS\n" + thin + "\n")
	names := make([]string, 0, len(r.Awards))
	for name := range r.Awards {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		a := r.Awards[name]
		fmt.Fprintf(&b, "\n%s\n", strings.ToUpper(name))
		winner := a.Winner
		if winner == "" {
			winner = "UNKNOWN"
		}
		fmt.Fprintf(&b, "  winner:     %s\n", winner)
		fmt.Fprintf(&b, "  nominees:   %s\n", orUnknown(a.Nominees))
		fmt.Fprintf(&b, "  presenters: %s\n", orUnknown(a.Presenters))
	}

	if len(r.Extras) > 0 {
		b.WriteString("\nEXTRAS\n" + thin + "\n")
		goals := make([]string, 0, len(r.Extras))
		for goal := range r.Extras {
			goals = append(goals, goal)
		}
		sort.Strings(goals)
		for _, goal := range goals {
			fmt.Fprintf(&b, "  %s: %s\n", goal, r.Extras[goal])
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return path, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orUnknown(s []string) string {
	if len(s) == 0 {
		return "UNKNOWN"
	}
	return strings.Join(s, ", ")
}
