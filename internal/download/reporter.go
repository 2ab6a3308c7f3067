package download

import (
	"fmt"
	"sync"

	"github.com/handiism/bandcamp-collector/internal/model"
)

// Reporter aggregates item outcomes as they are produced.
//
// Reporter is a pure consumer: it never influences the pool. It is
// safe for concurrent use; workers call Record from their own
// goroutines while a UI reads counts.
//
// Example:
//
//	reporter := NewReporter()
//	// ... workers call reporter.Record(outcome) ...
//	fmt.Println(reporter.Summary())
//	for _, f := range reporter.Failures() {
//	    fmt.Printf("  %s: %s\n", f.Item.Name(), f.Detail)
//	}
type Reporter struct {
	mu       sync.Mutex
	counts   map[model.Status]int
	failures []model.Outcome
}

// NewReporter creates an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{
		counts: make(map[model.Status]int),
	}
}

// Record consumes one outcome.
func (r *Reporter) Record(outcome model.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counts[outcome.Status]++
	if outcome.Status == model.StatusFailed {
		r.failures = append(r.failures, outcome)
	}
}

// Count returns the number of outcomes recorded with the given status.
func (r *Reporter) Count(status model.Status) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[status]
}

// Total returns the number of outcomes recorded so far.
func (r *Reporter) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, n := range r.counts {
		total += n
	}
	return total
}

// Failures returns the Failed outcomes recorded so far, each carrying
// the item identity and the cause, suitable for display and manual
// retry.
func (r *Reporter) Failures() []model.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Outcome, len(r.failures))
	copy(out, r.failures)
	return out
}

// HasFailures reports whether any item failed. Callers typically map
// this to a non-zero exit status.
func (r *Reporter) HasFailures() bool {
	return r.Count(model.StatusFailed) > 0
}

// Summary returns a one-line batch summary.
func (r *Reporter) Summary() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return fmt.Sprintf("%d downloaded, %d skipped, %d failed",
		r.counts[model.StatusDownloaded],
		r.counts[model.StatusSkipped],
		r.counts[model.StatusFailed])
}
