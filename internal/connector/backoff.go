package connector

import (
	"time"

	"github.com/eklix/mysql-faker/internal/config"
)

// Backoff holds the retry state for one connection attempt sequence.
//
// The wait stays at its initial value until more than threshold attempts have
// failed, then doubles on every further failure. Once the wait passes the
// ceiling the sequence is exhausted, so the number of attempts is always
// bounded.
type Backoff struct {
	threshold int
	initial   time.Duration
	ceiling   time.Duration

	attempt int
	wait    time.Duration
}

func NewBackoff(retry config.Retry) *Backoff {
	return &Backoff{
		threshold: retry.Threshold,
		initial:   retry.InitialWait,
		ceiling:   retry.MaxWait,
		wait:      retry.InitialWait,
	}
}

// Next records a failed attempt and returns how long to wait before the next
// one. ok is false once the wait has grown past the ceiling.
func (b *Backoff) Next() (wait time.Duration, ok bool) {
	b.attempt++
	if b.attempt > b.threshold {
		b.wait *= 2
	}
	if b.wait > b.ceiling {
		return b.wait, false
	}
	return b.wait, true
}

func (b *Backoff) Attempt() int {
	return b.attempt
}

func (b *Backoff) Reset() {
	b.attempt = 0
	b.wait = b.initial
}
