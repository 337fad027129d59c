// Package scanner drives availability lookups for candidate names under a
// bounded-concurrency policy and streams confirmed-available names as they
// are found.
package scanner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nameforge/nameforge/internal/metrics"
)

// NoResultsMessage is the single line emitted when a full scan confirms
// nothing. Clients render it as a notice instead of a result row.
const NoResultsMessage = "No available domains found this time. Please try again."

const (
	// DefaultMaxResults is how many available names a scan looks for.
	DefaultMaxResults = 6

	// DefaultConcurrency bounds lookups in flight for one scan.
	DefaultConcurrency = 5
)

// Logger is the subset of logging the scanner needs. Both *zap.Logger and the
// gofulmen logger satisfy it.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
}

// Checker resolves whether a single domain can still be registered.
// Implementations live in internal/core/checker.
type Checker interface {
	Check(ctx context.Context, domain string) (bool, error)
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, domain string) (bool, error)

// Check implements Checker.
func (f CheckerFunc) Check(ctx context.Context, domain string) (bool, error) {
	return f(ctx, domain)
}

// Scanner checks candidates for availability with at most Concurrency lookups
// outstanding, emitting each confirmed-available name the moment its lookup
// returns. A Scanner carries no per-scan state and is safe for concurrent use.
type Scanner struct {
	Checker       Checker
	MaxResults    int
	Concurrency   int
	LookupTimeout time.Duration
	Logger        Logger
}

// outcome is one completed lookup.
type outcome struct {
	name      string
	available bool
}

// session is the transient accounting for one Scan call. It is mutated only
// by the orchestration goroutine; lookups themselves run concurrently but
// report back over the results channel.
type session struct {
	next     int
	inflight int
	found    int
	checked  int
}

// Scan checks candidates in input order, within the concurrency window, and
// returns a channel of confirmed-available names in confirmation order. The
// channel is closed exactly once: when MaxResults names have been emitted or
// the candidates are exhausted and all in-flight lookups have drained. If the
// scan ends with nothing found - including the zero-candidate case - the
// channel carries a single NoResultsMessage line before closing.
//
// Lookups still in flight when the cap is reached are allowed to finish, but
// their results are discarded: the cap is enforced at emission time. A failed
// lookup counts as unavailable and never aborts the scan.
func (s *Scanner) Scan(ctx context.Context, candidates []string) <-chan string {
	maxResults := s.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	out := make(chan string)

	go func() {
		defer close(out)

		started := time.Now()
		results := make(chan outcome)
		sess := &session{}

		launch := func() {
			for sess.inflight < concurrency && sess.found < maxResults && sess.next < len(candidates) && ctx.Err() == nil {
				name := candidates[sess.next]
				sess.next++
				sess.inflight++

				go func() {
					results <- outcome{name: name, available: s.check(ctx, name)}
				}()
			}
		}

		launch()

		for sess.inflight > 0 {
			res := <-results
			sess.inflight--
			sess.checked++

			if res.available && sess.found < maxResults {
				select {
				case out <- res.name:
					sess.found++
				case <-ctx.Done():
					// Consumer is gone; keep draining so the lookup
					// goroutines can exit, but emit nothing further.
				}
			}

			launch()
		}

		if sess.found == 0 {
			select {
			case out <- NoResultsMessage:
			case <-ctx.Done():
			}
		}

		metrics.RecordScan(sess.checked, sess.found, time.Since(started))

		if s.Logger != nil {
			s.Logger.Info("Scan finished",
				zap.Int("candidates", len(candidates)),
				zap.Int("checked", sess.checked),
				zap.Int("found", sess.found),
				zap.Duration("duration", time.Since(started)))
		}
	}()

	return out
}

// check resolves one candidate, mapping every failure to unavailable. An
// uncertain name must never be reported as available.
func (s *Scanner) check(ctx context.Context, name string) bool {
	if s.LookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.LookupTimeout)
		defer cancel()
	}

	available, err := s.Checker.Check(ctx, name)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Debug("Lookup failed, treating as unavailable",
				zap.String("domain", name),
				zap.Error(err))
		}
		metrics.RecordLookup("error")
		return false
	}

	if available {
		metrics.RecordLookup("available")
	} else {
		metrics.RecordLookup("taken")
	}
	return available
}
