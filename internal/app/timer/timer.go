package timer

import (
	"time"
)

// Clock abstracts wall-clock reads for deterministic testing
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewClock returns the wall clock
func NewClock() Clock {
	return realClock{}
}

// Service schedules one-shot callbacks. Expirations are not run in
// place; they are delivered on Expired so the dispatch loop executes
// them on its own goroutine.
type Service interface {
	After(d time.Duration, fn func())
	Expired() <-chan func()
}

type service struct {
	expired chan func()
}

// NewService creates a timer service with the given funnel capacity
func NewService(capacity int) Service {
	return &service{
		expired: make(chan func(), capacity),
	}
}

// After schedules fn to be delivered on Expired after d
func (s *service) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		s.expired <- fn
	})
}

// Expired returns the channel carrying due callbacks
func (s *service) Expired() <-chan func() {
	return s.expired
}
