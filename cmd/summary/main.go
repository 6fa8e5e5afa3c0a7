// Package main renders a results JSON file as a human-readable summary.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
)

func main() {
	path := flag.String("results", "", "path to a results JSON file (required)")
	help := flag.Bool("help", false, "display help message")
	flag.Parse()

	if *help {
		fmt.Println("Gala Results Summary")
		fmt.Println()
		fmt.Println("Usage: summary -results gg2013_results.json")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *path == "" {
		fmt.Fprintln(os.Stderr, "error: -results is required")
		flag.PrintDefaults()
		os.Exit(2)
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		fmt.Fprintln(os.Stderr, "error: invalid results file:", err)
		os.Exit(1)
	}

	fmt.Println("HOST:", renderValue(flat["host"]))
	fmt.Println()

	// Award categories are the object-valued keys carrying a winner field.
	var categories []string
	for key, value := range flat {
		if obj, ok := value.(map[string]any); ok {
			if _, ok := obj["winner"]; ok {
				categories = append(categories, key)
			}
		}
	}
	sort.Strings(categories)

	for _, name := range categories {
		obj := flat[name].(map[string]any)
		fmt.Println(strings.ToUpper(name))
		fmt.Println("  winner:    ", renderValue(obj["winner"]))
		fmt.Println("  nominees:  ", renderValue(obj["nominees"]))
		fmt.Println("  presenters:", renderValue(obj["presenters"]))
		fmt.Println()
	}

	// Remaining string-valued keys besides the host are the extra goals.
	var goals []string
	for key, value := range flat {
		if key == "host" {
			continue
		}
		if _, ok := value.(string); ok {
			goals = append(goals, key)
		}
	}
	sort.Strings(goals)
	for _, goal := range goals {
		fmt.Printf("%s: %s\n", goal, renderValue(flat[goal]))
	}
}

// renderValue formats a JSON value for display, with UNKNOWN for empty ones.
func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "UNKNOWN"
	case string:
		if val == "" {
			return "UNKNOWN"
		}
		return val
	case []any:
		if len(val) == 0 {
			return "UNKNOWN"
		}
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}
