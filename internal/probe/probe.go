// Package probe sends batches of requests through a CORS-enforcing
// transport and checks their outcomes against expectations.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jub0bs/corsclient"
	"github.com/jub0bs/corsclient/internal/config"
)

// Possible outcomes of a probe.
const (
	OutcomeAllowed = config.ExpectAllowed
	OutcomeDenied  = config.ExpectDenied
	OutcomeError   = "error"
)

// A Result is the outcome of a probe.
type Result struct {
	Probe    config.Probe
	Status   int   // 0 unless the CORS protocol granted access
	Err      error // nil if the CORS protocol granted access
	Duration time.Duration
}

// Outcome returns OutcomeAllowed, OutcomeDenied, or, if the probe failed
// for reasons unrelated to the CORS protocol, OutcomeError.
func (r *Result) Outcome() string {
	switch {
	case r.Err == nil:
		return OutcomeAllowed
	case errors.Is(r.Err, corsclient.ErrProtocolViolation):
		return OutcomeDenied
	default:
		return OutcomeError
	}
}

// Passed reports whether the outcome of the probe matches its expectation.
func (r *Result) Passed() bool {
	return r.Outcome() == r.Probe.Expect
}

// A Runner runs probes.
type Runner struct {
	transport   *corsclient.Transport
	limiter     *rate.Limiter
	concurrency int
	logger      *zap.Logger
}

// NewRunner returns a Runner that sends probes through t,
// at most concurrency at a time and at most rps per second.
func NewRunner(t *corsclient.Transport, concurrency int, rps float64, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		transport:   t,
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
		concurrency: max(concurrency, 1),
		logger:      logger,
	}
}

// Run runs probes and returns their results, in the order of probes.
// Failed probes do not stop the run; only the cancellation of ctx does,
// in which case Run returns ctx's error.
func (r *Runner) Run(ctx context.Context, probes []config.Probe) ([]Result, error) {
	results := make([]Result, len(probes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, p := range probes {
		g.Go(func() error {
			if err := r.limiter.Wait(ctx); err != nil {
				return err
			}
			results[i] = r.probe(ctx, p)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) probe(ctx context.Context, p config.Probe) Result {
	res := Result{Probe: p}
	req, err := http.NewRequestWithContext(ctx, p.Method, p.URL, nil)
	if err != nil {
		res.Err = err
		return res
	}
	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}
	start := time.Now()
	gres, err := r.transport.Do(req)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
	} else {
		res.Status = gres.StatusCode
		io.Copy(io.Discard, gres.Body)
		gres.Body.Close()
	}
	r.logger.Debug("probe: done",
		zap.String("name", p.Name),
		zap.String("outcome", res.Outcome()),
		zap.Int("status", res.Status),
		zap.Duration("duration", res.Duration),
	)
	return res
}

// Report writes a line per result to w and returns the number of probes
// whose outcome did not match their expectation.
func Report(w io.Writer, results []Result) (failed int) {
	for _, r := range results {
		verdict := "PASS"
		if !r.Passed() {
			verdict = "FAIL"
			failed++
		}
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%s (want %s)",
			verdict, r.Probe.Name, r.Probe.Method, r.Probe.URL, r.Outcome(), r.Probe.Expect)
		if r.Err != nil {
			fmt.Fprintf(w, "\t%v", r.Err)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d probe(s), %d failed\n", len(results), failed)
	return failed
}
