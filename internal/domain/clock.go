package domain

import "github.com/jonboulle/clockwork"

// clock stamps IngestedAt during enrichment. Tests freeze it with SetClock
// so converted rows carry a deterministic ingestion time.
var clock = clockwork.NewRealClock()

// SetClock swaps the ingestion time source. Pass nil to restore real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
