package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/civitas/civitas-reader/internal/logging"
	"github.com/civitas/civitas-reader/internal/model"
	"github.com/civitas/civitas-reader/internal/query"
)

const (
	DefaultTimeout     = 10 * time.Second
	DefaultViewTimeout = 5 * time.Second
	requestIDHeader    = "X-Request-ID"
	maxBodyBytes       = 8 << 20
	snippetBytes       = 256
)

// Envelope fields of API responses
const (
	fieldItems      = "items"
	fieldItem       = "item"
	fieldCategories = "categories"
)

// Client issues catalog requests against the API service.
type Client struct {
	baseURL     string
	http        *http.Client
	viewTimeout time.Duration
	logger      *zap.Logger

	views sync.WaitGroup
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logging.OrNop(logger)
	}
}

// NewClient constructs an API client for baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:        &http.Client{Timeout: DefaultTimeout},
		viewTimeout: DefaultViewTimeout,
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Items lists the items of a category in the given order
func (c *Client) Items(ctx context.Context, category model.ID, sort model.SortMode) ([]model.CatalogItem, error) {
	route := query.Route{Kind: query.RouteItems, Query: model.Query{Category: category, Sort: sort}}
	return c.getItems(ctx, route.Path(), route.Values())
}

// Highlight returns the highlighted item, or nil when the API has none
func (c *Client) Highlight(ctx context.Context) (*model.CatalogItem, error) {
	raw, err := c.getField(ctx, query.PathHighlight, nil, fieldItem)
	if err != nil {
		return nil, err
	}
	if isNull(raw) {
		return nil, nil
	}
	var item model.CatalogItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, c.malformed(query.PathHighlight, raw, err)
	}
	return &item, nil
}

// Featured lists the featured items
func (c *Client) Featured(ctx context.Context) ([]model.CatalogItem, error) {
	return c.getItems(ctx, query.PathFeatured, nil)
}

// Latest lists the most recent items
func (c *Client) Latest(ctx context.Context) ([]model.CatalogItem, error) {
	return c.getItems(ctx, query.PathLatest, nil)
}

// Popular lists the most viewed items
func (c *Client) Popular(ctx context.Context) ([]model.CatalogItem, error) {
	return c.getItems(ctx, query.PathPopular, nil)
}

// Search lists the items matching term
func (c *Client) Search(ctx context.Context, term string) ([]model.CatalogItem, error) {
	route := query.Route{Kind: query.RouteSearch, Query: model.Query{SearchTerm: term}}
	return c.getItems(ctx, route.Path(), route.Values())
}

// Categories lists the server categories in API order
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	raw, err := c.getField(ctx, query.PathCategories, nil, fieldCategories)
	if err != nil {
		return nil, err
	}
	categories := []model.Category{}
	if isNull(raw) {
		return categories, nil
	}
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, c.malformed(query.PathCategories, raw, err)
	}
	return categories, nil
}

// Fetch dispatches an item-list route. Home routes are served by FetchHome.
func (c *Client) Fetch(ctx context.Context, route query.Route) ([]model.CatalogItem, error) {
	switch route.Kind {
	case query.RouteSearch:
		return c.Search(ctx, route.Query.SearchTerm)
	case query.RoutePopular:
		return c.Popular(ctx)
	case query.RouteItems:
		return c.Items(ctx, route.Query.Category, route.Query.Sort)
	default:
		return nil, fmt.Errorf("%w: route kind %d has no item listing", query.ErrInvalidQuery, route.Kind)
	}
}

// RecordView posts a view of item in the background. Failures are logged and
// never reach the caller; Wait blocks until pending posts finish.
func (c *Client) RecordView(item model.CatalogItem) {
	if item.ID == "" {
		return
	}
	c.views.Add(1)
	go func() {
		defer c.views.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.viewTimeout)
		defer cancel()
		if err := c.recordView(ctx, item.ID); err != nil {
			c.logger.Warn("record view failed", zap.String("item_id", item.ID.String()), zap.Error(err))
		}
	}()
}

// Wait blocks until background view posts have finished
func (c *Client) Wait() {
	c.views.Wait()
}

func (c *Client) recordView(ctx context.Context, id model.ID) error {
	payload, err := json.Marshal(map[string]string{"item_id": id.String()})
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPost, query.PathViewAdd, nil, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return statusError(query.PathViewAdd, resp.StatusCode, drainError(resp.Body))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) getItems(ctx context.Context, path string, values url.Values) ([]model.CatalogItem, error) {
	raw, err := c.getField(ctx, path, values, fieldItems)
	if err != nil {
		return nil, err
	}
	items := []model.CatalogItem{}
	if isNull(raw) {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, c.malformed(path, raw, err)
	}
	return items, nil
}

// getField performs a GET and returns the raw value of field in the JSON
// object body. A body that is not an object or lacks field is malformed.
func (c *Client) getField(ctx context.Context, path string, values url.Values, field string) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodGet, path, values, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("catalog request failed", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return nil, statusError(path, resp.StatusCode, drainError(resp.Body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, networkError(path, err)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, c.malformed(path, body, err)
	}
	raw, ok := envelope[field]
	if !ok {
		return nil, c.malformed(path, body, fmt.Errorf("missing %q field", field))
	}
	return raw, nil
}

func (c *Client) do(ctx context.Context, method, path string, values url.Values, body io.Reader) (*http.Response, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", query.ErrInvalidQuery, err)
	}
	if len(values) > 0 {
		endpoint += "?" + values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", query.ErrInvalidQuery, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("catalog request", zap.String("method", method), zap.String("path", path),
		zap.String("request_id", requestID))

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Info("catalog unreachable", zap.String("path", path), zap.String("request_id", requestID), zap.Error(err))
		return nil, networkError(path, err)
	}
	return resp, nil
}

func (c *Client) malformed(path string, body []byte, cause error) *FetchError {
	c.logger.Error("malformed catalog response", zap.String("path", path),
		zap.String("body", snippet(body)), zap.Error(cause))
	return malformedError(path, http.StatusOK, cause)
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func snippet(body []byte) string {
	if len(body) > snippetBytes {
		return string(body[:snippetBytes]) + "..."
	}
	return string(body)
}

func drainError(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, snippetBytes))
	if err != nil && !errors.Is(err, io.EOF) {
		return err.Error()
	}
	return strings.TrimSpace(string(data))
}
