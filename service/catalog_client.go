package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cinema-booking-cli/model"
)

const (
	defaultUserAgent   = "cinema-booking-cli"
	defaultMaxAttempts = 3
	defaultRetryBase   = 200 * time.Millisecond
	defaultRetryCap    = 1200 * time.Millisecond
)

// CatalogClient fetches catalog documents published over HTTP.
type CatalogClient struct {
	httpClient  *http.Client
	userAgent   string
	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration
}

// APIError is returned when a catalog source responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "catalog source error"
	}
	return fmt.Sprintf("catalog source error: %s: %s", e.Status, e.Body)
}

// NewCatalogClient creates a new client. If httpClient is nil, a default client is used.
func NewCatalogClient(httpClient *http.Client) *CatalogClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	return &CatalogClient{
		httpClient:  httpClient,
		userAgent:   defaultUserAgent,
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		retryCap:    defaultRetryCap,
	}
}

// FetchCatalog downloads and decodes a catalog document.
func (c *CatalogClient) FetchCatalog(ctx context.Context, endpoint string) (model.CatalogDocument, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return model.CatalogDocument{}, errors.New("catalog url is required")
	}

	var doc model.CatalogDocument
	if err := c.getJSON(ctx, endpoint, &doc); err != nil {
		return model.CatalogDocument{}, err
	}
	if len(doc.Movies) == 0 {
		return model.CatalogDocument{}, fmt.Errorf("catalog at %s has no movies", endpoint)
	}
	return doc, nil
}

func (c *CatalogClient) getJSON(ctx context.Context, endpoint string, out any) error {
	maxAttempts := c.maxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		res, err := c.httpClient.Do(req)
		if err != nil {
			if c.shouldRetryNetworkError(err) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return fmt.Errorf("request failed: %w", err)
		}

		if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
			snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
			_ = res.Body.Close()

			apiErr := &APIError{
				StatusCode: res.StatusCode,
				Status:     res.Status,
				Endpoint:   endpoint,
				Body:       strings.TrimSpace(string(snippet)),
			}
			if c.shouldRetryStatus(res.StatusCode) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return apiErr
		}

		err = json.NewDecoder(res.Body).Decode(out)
		_ = res.Body.Close()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decode response from %s: %w", endpoint, err)
		}
		return nil
	}

	return errors.New("request failed after retries")
}

func (c *CatalogClient) shouldRetryStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (c *CatalogClient) shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (c *CatalogClient) waitRetry(ctx context.Context, attempt int) error {
	timer := time.NewTimer(c.retryDelay(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *CatalogClient) retryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := c.retryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	limit := c.retryCap
	if limit <= 0 {
		limit = defaultRetryCap
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= limit/2 {
			return limit
		}
		delay *= 2
	}
	if delay > limit {
		return limit
	}
	return delay
}
