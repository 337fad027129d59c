package scanner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, ch <-chan string) []string {
	t.Helper()

	var lines []string
	timeout := time.After(5 * time.Second)
	for {
		select {
		case line, ok := <-ch:
			if !ok {
				return lines
			}
			lines = append(lines, line)
		case <-timeout:
			t.Fatal("scan did not finish in time")
		}
	}
}

func TestScanEmptyCandidates(t *testing.T) {
	s := &Scanner{
		Checker: CheckerFunc(func(ctx context.Context, domain string) (bool, error) {
			t.Fatal("checker must not be called for zero candidates")
			return false, nil
		}),
	}

	lines := collect(t, s.Scan(context.Background(), nil))
	require.Equal(t, []string{NoResultsMessage}, lines)
}

func TestScanAllUnavailable(t *testing.T) {
	s := &Scanner{
		Checker: CheckerFunc(func(ctx context.Context, domain string) (bool, error) {
			return false, nil
		}),
	}

	lines := collect(t, s.Scan(context.Background(), []string{"alfa.com", "beta.com", "gamma.com"}))
	require.Equal(t, []string{NoResultsMessage}, lines)
}

func TestScanStopsAtMaxResults(t *testing.T) {
	var checked atomic.Int32
	s := &Scanner{
		MaxResults:  2,
		Concurrency: 1,
		Checker: CheckerFunc(func(ctx context.Context, domain string) (bool, error) {
			checked.Add(1)
			return true, nil
		}),
	}

	candidates := []string{"alfa.com", "beta.com", "gamma.com", "delta.com", "echo.com"}
	lines := collect(t, s.Scan(context.Background(), candidates))

	require.Equal(t, []string{"alfa.com", "beta.com"}, lines)
	// With concurrency 1 no speculative lookups run past the cap.
	require.Equal(t, int32(2), checked.Load())
}

func TestScanOverlapBoundedByConcurrency(t *testing.T) {
	var inflight, peak atomic.Int32

	s := &Scanner{
		MaxResults:  10,
		Concurrency: 3,
		Checker: CheckerFunc(func(ctx context.Context, domain string) (bool, error) {
			current := inflight.Add(1)
			for {
				observed := peak.Load()
				if current <= observed || peak.CompareAndSwap(observed, current) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inflight.Add(-1)
			return false, nil
		}),
	}

	candidates := make([]string, 20)
	for i := range candidates {
		candidates[i] = "name" + string(rune('a'+i)) + ".com"
	}

	collect(t, s.Scan(context.Background(), candidates))
	require.LessOrEqual(t, peak.Load(), int32(3))
	require.Greater(t, peak.Load(), int32(1), "lookups should overlap")
}

func TestScanSpeculativeLookupsDiscardedPastCap(t *testing.T) {
	var mu sync.Mutex
	started := map[string]bool{}

	s := &Scanner{
		MaxResults:  2,
		Concurrency: 2,
		Checker: CheckerFunc(func(ctx context.Context, domain string) (bool, error) {
			mu.Lock()
			started[domain] = true
			mu.Unlock()
			return true, nil
		}),
	}

	candidates := []string{"alfa.com", "beta.com", "gamma.com", "delta.com"}
	lines := collect(t, s.Scan(context.Background(), candidates))

	// Exactly two names come out, in confirmation order from the first wave.
	require.Len(t, lines, 2)
	for _, line := range lines {
		require.Contains(t, candidates, line)
	}

	// At most concurrency extra lookups may have started before the cap hit.
	mu.Lock()
	defer mu.Unlock()
	require.LessOrEqual(t, len(started), 4)
	require.GreaterOrEqual(t, len(started), 2)
}

func TestScanLookupErrorsCountAsUnavailable(t *testing.T) {
	s := &Scanner{
		Checker: CheckerFunc(func(ctx context.Context, domain string) (bool, error) {
			if domain == "beta.com" {
				return false, errors.New("rdap unreachable")
			}
			return domain == "gamma.com", nil
		}),
	}

	lines := collect(t, s.Scan(context.Background(), []string{"alfa.com", "beta.com", "gamma.com"}))
	require.Equal(t, []string{"gamma.com"}, lines)
}

func TestScanMixedAvailabilityChecksEveryCandidateOnce(t *testing.T) {
	var checked atomic.Int32
	available := map[string]bool{"beta.com": true, "delta.com": true}

	s := &Scanner{
		MaxResults:  2,
		Concurrency: 2,
		Checker: CheckerFunc(func(ctx context.Context, domain string) (bool, error) {
			checked.Add(1)
			return available[domain], nil
		}),
	}

	candidates := []string{"alfa.com", "beta.com", "gamma.com", "delta.com"}
	lines := collect(t, s.Scan(context.Background(), candidates))

	require.ElementsMatch(t, []string{"beta.com", "delta.com"}, lines)
	// The cap fills only once delta.com confirms, so all four candidates get
	// exactly one lookup and nothing runs twice.
	require.Equal(t, int32(4), checked.Load())
}

func TestScanEmitsInConfirmationOrder(t *testing.T) {
	release := make(chan struct{})
	s := &Scanner{
		MaxResults:  2,
		Concurrency: 2,
		Checker: CheckerFunc(func(ctx context.Context, domain string) (bool, error) {
			if domain == "slow.com" {
				<-release
			}
			return true, nil
		}),
	}

	ch := s.Scan(context.Background(), []string{"slow.com", "fast.com"})

	first := <-ch
	require.Equal(t, "fast.com", first)

	close(release)
	lines := collect(t, ch)
	require.Equal(t, []string{"slow.com"}, lines)
}

func TestScanCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	blocked := make(chan struct{})
	s := &Scanner{
		Concurrency: 1,
		Checker: CheckerFunc(func(ctx context.Context, domain string) (bool, error) {
			close(blocked)
			<-ctx.Done()
			return false, ctx.Err()
		}),
	}

	ch := s.Scan(ctx, []string{"alfa.com", "beta.com"})
	<-blocked
	cancel()

	// The channel still closes; no further lookups start after cancel.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("scan did not drain after cancellation")
		}
	}
}

func TestScanPerLookupTimeout(t *testing.T) {
	s := &Scanner{
		LookupTimeout: 20 * time.Millisecond,
		Checker: CheckerFunc(func(ctx context.Context, domain string) (bool, error) {
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-time.After(time.Second):
				return true, nil
			}
		}),
	}

	started := time.Now()
	lines := collect(t, s.Scan(context.Background(), []string{"alfa.com"}))
	require.Equal(t, []string{NoResultsMessage}, lines)
	require.Less(t, time.Since(started), time.Second)
}
