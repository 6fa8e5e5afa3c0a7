package message

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Source supplies the finite, ordered corpus of cleaned messages.
// Implementations own decompression, encoding repair and language filtering;
// the pipeline only consumes their output.
type Source interface {
	Messages() ([]Message, error)
}

// FileSource reads a corpus from a JSON file containing an array of message
// records in the upstream wire shape.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource creates a FileSource for the given corpus path.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		path:   path,
		logger: logger,
	}
}

// Messages loads and validates the corpus. Malformed records are skipped
// with a warning; native retweets ("RT ..." text) are dropped because they
// duplicate their source message's signal.
func (s *FileSource) Messages() ([]Message, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus %s: %w", s.path, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse corpus %s: %w", s.path, err)
	}

	messages := make([]Message, 0, len(raw))
	var skipped int
	for i, entry := range raw {
		var m Message
		if err := json.Unmarshal(entry, &m); err != nil {
			skipped++
			s.logger.Warn("skipping malformed corpus record",
				"index", i,
				"error", err)
			continue
		}
		if err := m.Validate(); err != nil {
			skipped++
			s.logger.Debug("skipping invalid message",
				"id", m.ID,
				"error", err)
			continue
		}
		if strings.HasPrefix(m.Text, "RT ") {
			skipped++
			continue
		}
		messages = append(messages, m)
	}

	s.logger.Info("corpus loaded",
		"path", s.path,
		"messages", len(messages),
		"skipped", skipped)

	return messages, nil
}

// SliceSource serves a fixed in-memory corpus. Useful for tests and for
// callers that perform their own ingestion.
type SliceSource []Message

// Messages returns the slice unchanged.
func (s SliceSource) Messages() ([]Message, error) {
	return s, nil
}
