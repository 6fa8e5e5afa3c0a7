package stats

import (
	"strings"
	"testing"
)

func TestRunStats(t *testing.T) {
	s := NewRunStats()
	s.SetMessages(1000)
	s.SetAwardsFound(26)
	s.RecordWinner()
	s.RecordWinner()
	s.RecordNominees()
	s.RecordPresenters()
	s.SetHostsFound(2)

	if s.Messages() != 1000 {
		t.Errorf("Messages() = %d", s.Messages())
	}
	if s.WinnersFound() != 2 {
		t.Errorf("WinnersFound() = %d", s.WinnersFound())
	}
	if s.HostsFound() != 2 {
		t.Errorf("HostsFound() = %d", s.HostsFound())
	}

	if got := s.String(); !strings.Contains(got, "winners=2") {
		t.Errorf("String() = %q", got)
	}

	s.Reset()
	if s.Messages() != 0 || s.WinnersFound() != 0 {
		t.Error("Reset() did not zero counters")
	}
}

func TestRunStatsConcurrent(t *testing.T) {
	s := NewRunStats()
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				s.RecordWinner()
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	if s.WinnersFound() != 1000 {
		t.Errorf("WinnersFound() = %d, expected 1000", s.WinnersFound())
	}
}
