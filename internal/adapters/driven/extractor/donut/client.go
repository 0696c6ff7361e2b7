// Package donut implements driven.ReceiptExtractor against a hosted Donut
// document-understanding model, such as a Hugging Face inference endpoint.
//
// The image is posted as the raw request body with its MIME type and a
// bearer token. The model answers with its parse, usually wrapped in a
// one-element array:
//
//	[{"store_name": "...", "date": "...", "menu": [{"nm": "...", "cnt": "1", "price": "..."}],
//	  "total": {"total_price": "..."}}]
package donut

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/receipta/internal/adapters/driven/importer"
	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/core/ports/driven"
	"github.com/custodia-labs/receipta/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ReceiptExtractor = (*Client)(nil)

// DefaultTimeout bounds one inference call. Cold models can take a while.
const DefaultTimeout = 60 * time.Second

// maxErrorBody caps how much of an error response is quoted.
const maxErrorBody = 512

// Client calls a Donut inference endpoint.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	limiter    *rateLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// New creates a client from extractor settings.
// Returns domain.ErrExtractorUnavailable when endpoint or token is missing.
func New(settings domain.ExtractorSettings, opts ...Option) (*Client, error) {
	if !settings.IsConfigured() {
		return nil, domain.ErrExtractorUnavailable
	}
	c := &Client{
		endpoint:   settings.Endpoint,
		token:      settings.Token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    newRateLimiter(settings.RatePerMinute),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Extract sends the image to the endpoint and parses the receipt.
func (c *Client) Extract(ctx context.Context, image []byte, contentType string) (*domain.Receipt, error) {
	if contentType == "" {
		contentType = http.DetectContentType(image)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: content type %q is not an image", domain.ErrInvalidInput, contentType)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	logger.Debug("Posting %d byte %s image to %s", len(image), contentType, c.endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractorUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		wait := c.limiter.Backoff(resp)
		return nil, fmt.Errorf("%w: retry in %s", domain.ErrRateLimited, wait)
	case resp.StatusCode == http.StatusServiceUnavailable:
		// Hosted models answer 503 while they load.
		return nil, fmt.Errorf("%w: endpoint is loading (%s)", domain.ErrExtractorUnavailable, snippet(body))
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: token rejected (%d)", domain.ErrExtractorUnavailable, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrExtractionFailed, resp.StatusCode, snippet(body))
	}

	return parse(body)
}

// parse reads the first prediction of the response.
func parse(body []byte) (*domain.Receipt, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var predictions []json.RawMessage
		if err := json.Unmarshal(body, &predictions); err != nil {
			return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrExtractionFailed, err)
		}
		if len(predictions) == 0 {
			return nil, fmt.Errorf("%w: empty prediction list", domain.ErrExtractionFailed)
		}
		body = predictions[0]
	}

	receipts, err := importer.DecodeJSON(body)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
		}
		return nil, err
	}
	if len(receipts) == 0 {
		return nil, fmt.Errorf("%w: empty prediction", domain.ErrExtractionFailed)
	}
	receipt := receipts[0]
	if receipt.MerchantName == "" {
		receipt.MerchantName = "Unknown"
	}
	return &receipt, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}
