// Package stats provides utilities for tracking extraction run statistics.
package stats

import (
	"fmt"
	"log/slog"
	"sync/atomic"
)

// RunStats tracks cumulative statistics for one extraction run.
// All operations are thread-safe using atomic counters.
type RunStats struct {
	messages        int64 // Total messages processed
	awardsFound     int64 // Discovered award categories
	winnersFound    int64 // Categories with a winner
	nomineesFound   int64 // Categories with at least one nominee
	presentersFound int64 // Categories with at least one presenter
	hostsFound      int64 // Hosts selected
}

// NewRunStats creates a new RunStats instance.
func NewRunStats() *RunStats {
	return &RunStats{}
}

// SetMessages records the corpus size.
func (s *RunStats) SetMessages(n int64) {
	atomic.StoreInt64(&s.messages, n)
}

// SetAwardsFound records the discovered award count.
func (s *RunStats) SetAwardsFound(n int64) {
	atomic.StoreInt64(&s.awardsFound, n)
}

// RecordWinner increments the winners counter.
func (s *RunStats) RecordWinner() {
	atomic.AddInt64(&s.winnersFound, 1)
}

// RecordNominees increments the nominee-categories counter.
func (s *RunStats) RecordNominees() {
	atomic.AddInt64(&s.nomineesFound, 1)
}

// RecordPresenters increments the presenter-categories counter.
func (s *RunStats) RecordPresenters() {
	atomic.AddInt64(&s.presentersFound, 1)
}

// SetHostsFound records the selected host count.
func (s *RunStats) SetHostsFound(n int64) {
	atomic.StoreInt64(&s.hostsFound, n)
}

// Messages returns the corpus size.
func (s *RunStats) Messages() int64 {
	return atomic.LoadInt64(&s.messages)
}

// AwardsFound returns the discovered award count.
func (s *RunStats) AwardsFound() int64 {
	return atomic.LoadInt64(&s.awardsFound)
}

// WinnersFound returns the number of categories with a winner.
func (s *RunStats) WinnersFound() int64 {
	return atomic.LoadInt64(&s.winnersFound)
}

// NomineesFound returns the number of categories with nominees.
func (s *RunStats) NomineesFound() int64 {
	return atomic.LoadInt64(&s.nomineesFound)
}

// PresentersFound returns the number of categories with presenters.
func (s *RunStats) PresentersFound() int64 {
	return atomic.LoadInt64(&s.presentersFound)
}

// HostsFound returns the selected host count.
func (s *RunStats) HostsFound() int64 {
	return atomic.LoadInt64(&s.hostsFound)
}

// Reset resets all counters to zero.
func (s *RunStats) Reset() {
	atomic.StoreInt64(&s.messages, 0)
	atomic.StoreInt64(&s.awardsFound, 0)
	atomic.StoreInt64(&s.winnersFound, 0)
	atomic.StoreInt64(&s.nomineesFound, 0)
	atomic.StoreInt64(&s.presentersFound, 0)
	atomic.StoreInt64(&s.hostsFound, 0)
}

// String returns a human-readable summary of the statistics.
func (s *RunStats) String() string {
	return fmt.Sprintf("messages=%d awards=%d winners=%d nominees=%d presenters=%d hosts=%d",
		s.Messages(), s.AwardsFound(), s.WinnersFound(), s.NomineesFound(), s.PresentersFound(), s.HostsFound())
}

// LogSummary logs a summary of run statistics at INFO level.
func (s *RunStats) LogSummary(logger *slog.Logger) {
	logger.Info("extraction statistics",
		"messages", s.Messages(),
		"awards_discovered", s.AwardsFound(),
		"winners_found", s.WinnersFound(),
		"nominee_categories", s.NomineesFound(),
		"presenter_categories", s.PresentersFound(),
		"hosts_found", s.HostsFound(),
	)
}
