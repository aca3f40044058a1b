// Package metrics records assertion outcomes.
package metrics

import (
	"sync"
	"time"
)

// AssertionMetrics defines the interface for recording assertion
// metrics.
type AssertionMetrics interface {
	// RecordAssertion records one evaluation of predicate.
	RecordAssertion(predicate string, passed bool, duration time.Duration)
	// RecordUsageError records a rejected engine call, e.g. an
	// unknown predicate name.
	RecordUsageError(reason string)
}

// NoopMetrics is a no-op implementation of AssertionMetrics
// useful for testing or when metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordAssertion(_ string, _ bool, _ time.Duration) {}
func (NoopMetrics) RecordUsageError(_ string)                         {}

// CounterMetrics keeps counts in memory. It is safe for
// concurrent use.
type CounterMetrics struct {
	mu         sync.Mutex
	assertions map[string]int
	durations  map[string][]time.Duration
	usage      map[string]int
}

// NewCounterMetrics creates an empty CounterMetrics.
func NewCounterMetrics() *CounterMetrics {
	return &CounterMetrics{
		assertions: make(map[string]int),
		durations:  make(map[string][]time.Duration),
		usage:      make(map[string]int),
	}
}

func (m *CounterMetrics) RecordAssertion(predicate string, passed bool, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assertions[predicate+":"+outcome(passed)]++
	m.durations[predicate] = append(m.durations[predicate], duration)
}

func (m *CounterMetrics) RecordUsageError(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.usage[reason]++
}

// AssertionCount returns the count for a predicate+outcome pair.
func (m *CounterMetrics) AssertionCount(predicate string, passed bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assertions[predicate+":"+outcome(passed)]
}

// Durations returns the recorded durations of predicate.
func (m *CounterMetrics) Durations(predicate string) []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.durations[predicate]...)
}

// UsageErrors returns the count for reason.
func (m *CounterMetrics) UsageErrors(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.usage[reason]
}

func outcome(passed bool) string {
	if passed {
		return "passed"
	}
	return "failed"
}
