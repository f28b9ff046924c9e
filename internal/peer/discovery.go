package peer

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
)

// Discovery runs scan windows back to back and publishes one Result per
// window.
type Discovery struct {
	scanner Scanner
	window  time.Duration
	log     *log.Logger

	results chan Result
}

// NewDiscovery creates a discovery cycle with the given scan window.
func NewDiscovery(scanner Scanner, window time.Duration, logger *log.Logger) *Discovery {
	if logger == nil {
		logger = log.Default()
	}
	if window <= 0 {
		window = 10 * time.Second
	}
	return &Discovery{
		scanner: scanner,
		window:  window,
		log:     logger,
		results: make(chan Result, 4),
	}
}

// Results returns the channel results are delivered on. It is closed when
// Run returns.
func (d *Discovery) Results() <-chan Result {
	return d.results
}

// Run scans until ctx is done. Each window lasts at least the configured
// duration even when every peer answered early.
func (d *Discovery) Run(ctx context.Context) error {
	defer close(d.results)

	for {
		start := time.Now()
		scanCtx, cancel := context.WithTimeout(ctx, d.window)
		res, err := d.scanner.Scan(scanCtx)
		cancel()

		if ctx.Err() != nil {
			return nil
		}
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			d.log.Warn("scan failed", "err", err)
		}
		if res.At.IsZero() {
			res.At = time.Now()
		}
		d.publish(res)

		wait := d.window - time.Since(start)
		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// publish delivers res, dropping the oldest pending result if the consumer
// is behind.
func (d *Discovery) publish(res Result) {
	select {
	case d.results <- res:
		return
	default:
	}
	select {
	case <-d.results:
	default:
	}
	select {
	case d.results <- res:
	default:
	}
}
