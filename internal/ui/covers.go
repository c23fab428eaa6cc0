package ui

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"sync"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/civitas/civitas-reader/internal/logging"
)

// CoverLoader downloads cover images in the background and keeps a small
// in-memory cache. Concurrent loads of the same cover share one request.
type CoverLoader struct {
	client *http.Client
	logger *zap.Logger
	group  singleflight.Group

	mu    sync.Mutex
	cache map[string]fyne.Resource
	order []string
}

// NewCoverLoader creates a cover loader. nil client uses a client with
// CoverFetchTimeout.
func NewCoverLoader(client *http.Client, logger *zap.Logger) *CoverLoader {
	if client == nil {
		client = &http.Client{Timeout: CoverFetchTimeout}
	}
	return &CoverLoader{
		client: client,
		logger: logging.OrNop(logger).Named("covers"),
		cache:  make(map[string]fyne.Resource),
	}
}

// Cached returns the cover for rawURL if it was loaded before
func (l *CoverLoader) Cached(rawURL string) (fyne.Resource, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	res, ok := l.cache[rawURL]
	return res, ok
}

// Load fetches rawURL in the background and calls done on the UI goroutine.
// done is not called when the cover cannot be loaded.
func (l *CoverLoader) Load(ctx context.Context, rawURL string, done func(fyne.Resource)) {
	if res, ok := l.Cached(rawURL); ok {
		done(res)
		return
	}

	go func() {
		v, err, _ := l.group.Do(rawURL, func() (any, error) {
			return l.fetch(ctx, rawURL)
		})
		if err != nil {
			l.logger.Debug("cover unavailable", zap.String("url", rawURL), zap.Error(err))
			return
		}
		res := v.(fyne.Resource)
		fyne.Do(func() { done(res) })
	}()
}

func (l *CoverLoader) fetch(ctx context.Context, rawURL string) (fyne.Resource, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("unsupported cover url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build cover request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch cover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch cover: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, CoverMaxBytes))
	if err != nil {
		return nil, fmt.Errorf("read cover: %w", err)
	}

	res := fyne.NewStaticResource(path.Base(u.Path), data)
	l.store(rawURL, res)
	return res, nil
}

func (l *CoverLoader) store(rawURL string, res fyne.Resource) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.cache[rawURL]; ok {
		return
	}
	if len(l.order) >= CoverCacheSize {
		delete(l.cache, l.order[0])
		l.order = l.order[1:]
	}
	l.cache[rawURL] = res
	l.order = append(l.order, rawURL)
}
