package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"storefront/pkg/catalog/domain/model"
)

const (
	defaultTimeout = 5 * time.Second
	maxErrorBody   = 512
)

// Client talks to the catalog/recommendation backend.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	limiter *rate.Limiter
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.http.Timeout = d }
}

// WithRateLimit caps outbound requests at rps with the given burst. A
// non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(cl *Client) {
		if rps <= 0 {
			cl.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		cl.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "parse catalog base url %q", baseURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("catalog base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) FetchProduct(ctx context.Context, id string) (model.ProductRecord, error) {
	var product model.ProductRecord
	err := c.get(ctx, "/api/products/"+url.PathEscape(id), nil, &product)
	if err != nil {
		return model.ProductRecord{}, err
	}
	return product, nil
}

func (c *Client) FetchProducts(ctx context.Context, filter model.ProductFilter) ([]model.ProductRecord, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	var products []model.ProductRecord
	if err := c.get(ctx, "/api/products", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) FetchTrendingProducts(ctx context.Context) ([]model.ProductRecord, error) {
	var products []model.ProductRecord
	if err := c.get(ctx, "/api/products/trending", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchProductRecommendations returns at most limit records when limit is
// positive; the backend is free to ignore the hint.
func (c *Client) FetchProductRecommendations(ctx context.Context, productID string, limit int) ([]model.ProductRecord, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var products []model.ProductRecord
	if err := c.get(ctx, "/api/recommendations/product/"+url.PathEscape(productID), query, &products); err != nil {
		return nil, err
	}
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (c *Client) FetchUserRecommendations(ctx context.Context, userID string) ([]model.ProductRecord, error) {
	var products []model.ProductRecord
	if err := c.get(ctx, "/api/recommendations/user/"+url.PathEscape(userID), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return errors.Wrap(err, "catalog rate limit")
		}
	}

	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s", path)
	}
	defer resp.Body.Close()

	log.WithFields(log.Fields{
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(started).String(),
	}).Debug("catalog request")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return model.ErrProductNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errors.Errorf("GET %s: unexpected status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}
	return nil
}
