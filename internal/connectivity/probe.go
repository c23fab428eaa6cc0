package connectivity

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/civitas/civitas-reader/internal/logging"
)

const (
	DefaultProbeInterval = 10 * time.Second
	DefaultProbeTimeout  = 3 * time.Second
)

// HTTPProbe is a Source that issues HEAD requests against the API base URL.
// Any HTTP response counts as reachable; a transport error as unreachable.
type HTTPProbe struct {
	target   string
	interval time.Duration
	timeout  time.Duration
	client   *http.Client
	logger   *zap.Logger
}

// NewHTTPProbe creates a probe for target. Non-positive durations use defaults.
func NewHTTPProbe(target string, interval, timeout time.Duration, logger *zap.Logger) *HTTPProbe {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &HTTPProbe{
		target:   target,
		interval: interval,
		timeout:  timeout,
		client:   &http.Client{Timeout: timeout},
		logger:   logging.OrNop(logger),
	}
}

// Check probes the target once
func (p *HTTPProbe) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.target, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("probe failed", zap.String("target", p.target), zap.Error(err))
		return false
	}
	_ = resp.Body.Close()
	return true
}

// Watch implements Source. The first probe runs immediately.
func (p *HTTPProbe) Watch(ctx context.Context) (<-chan bool, error) {
	u, err := url.Parse(p.target)
	if err != nil {
		return nil, fmt.Errorf("connectivity: parse probe target: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("connectivity: unsupported probe scheme %q", u.Scheme)
	}

	ch := make(chan bool, 1)
	go func() {
		defer close(ch)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		var last, known bool
		for {
			online := p.Check(ctx)
			if ctx.Err() != nil {
				return
			}
			if !known || online != last {
				known, last = true, online
				select {
				case ch <- online:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}
