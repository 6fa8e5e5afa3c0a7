// Package message defines the message data model and corpus loading for the
// gala extraction pipeline.
package message

import (
	"errors"
)

// Errors for message validation.
var (
	ErrEmptyText            = errors.New("message text is empty")
	ErrNegativeRetweetCount = errors.New("retweet count must be non-negative")
)

// Author identifies the account that posted a message.
type Author struct {
	ID     int64  `json:"id"`
	Handle string `json:"screen_name"`
}

// Message is a single cleaned social-media message from the corpus.
// Messages are created once at load time and never mutated by the pipeline.
type Message struct {
	ID           int64    `json:"id"`
	Text         string   `json:"text"`
	Author       Author   `json:"user"`
	TimestampMS  int64    `json:"timestamp_ms"`
	RetweetCount int      `json:"retweet_count"`
	Hashtags     []string `json:"hash_tags,omitempty"`
}

// Validate checks that a message satisfies the model invariants.
func (m *Message) Validate() error {
	if m.Text == "" {
		return ErrEmptyText
	}
	if m.RetweetCount < 0 {
		return ErrNegativeRetweetCount
	}
	return nil
}

// HasTag reports whether the message carries the given hashtag.
func (m *Message) HasTag(tag string) bool {
	for _, t := range m.Hashtags {
		if t == tag {
			return true
		}
	}
	return false
}
