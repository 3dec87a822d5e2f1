package contentstore

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

	"github.com/oakline/storefront-backend/pkg/config"
	pkgerrors "github.com/oakline/storefront-backend/pkg/errors"
	"github.com/oakline/storefront-backend/pkg/logger"
)

var (
	errProjectIDRequired = errors.New("content store project id is required")
	errDatasetRequired   = errors.New("content store dataset is required")
	errLoggerRequired    = errors.New("content store logger is required")
	errTokenRequired     = errors.New("content store token is required for mutations")
)

// Querier is the read surface consumed by the catalog layer.
type Querier interface {
	Query(ctx context.Context, groq string, params map[string]any) (json.RawMessage, error)
}

// Mutator is the write surface consumed by the orders layer.
type Mutator interface {
	Mutate(ctx context.Context, mutations []Mutation) error
}

// Mutation is a single content-store mutation. Exactly one field is set.
type Mutation struct {
	Create map[string]any `json:"create,omitempty"`
}

// Client speaks the content store's HTTP API with centralized auth, logging,
// and error mapping.
type Client struct {
	httpClient *http.Client
	baseURL    string
	dataset    string
	token      string
	logger     *logger.Logger
}

// NewClient initializes the content store wrapper and validates its settings.
func NewClient(cfg config.ContentStoreConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	projectID := strings.TrimSpace(cfg.ProjectID)
	if projectID == "" {
		return nil, errProjectIDRequired
	}
	dataset := strings.TrimSpace(cfg.Dataset)
	if dataset == "" {
		return nil, errDatasetRequired
	}

	host := "api.sanity.io"
	if cfg.UseCDN {
		host = "apicdn.sanity.io"
	}
	baseURL := fmt.Sprintf("https://%s.%s/v%s", projectID, host, strings.TrimSpace(cfg.APIVersion))

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		dataset:    dataset,
		token:      strings.TrimSpace(cfg.Token),
		logger:     logg,
	}, nil
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

// Query runs a GROQ query and returns the raw result payload.
func (c *Client) Query(ctx context.Context, groq string, params map[string]any) (json.RawMessage, error) {
	values := url.Values{}
	values.Set("query", groq)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode query param")
		}
		values.Set("$"+name, string(encoded))
	}

	endpoint := fmt.Sprintf("%s/data/query/%s?%s", c.baseURL, c.dataset, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build query request")
	}
	c.authorize(req)

	body, err := c.do(req, "query")
	if err != nil {
		return nil, err
	}

	var parsed queryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode query response")
	}
	return parsed.Result, nil
}

// Mutate submits the given mutations in one transactional request. The store
// applies them atomically, so a failed call leaves no partial documents.
func (c *Client) Mutate(ctx context.Context, mutations []Mutation) error {
	if c.token == "" {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, errTokenRequired, "mutate")
	}
	if len(mutations) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one mutation is required")
	}

	payload, err := json.Marshal(map[string]any{"mutations": mutations})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode mutations")
	}

	endpoint := fmt.Sprintf("%s/data/mutate/%s", c.baseURL, c.dataset)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build mutate request")
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	_, err = c.do(req, "mutate")
	return err
}

// Ping verifies the store is reachable for health checks.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Query(ctx, "count(*[_type == 'product'])", nil)
	return err
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logFailure(req.Context(), op, err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "content store unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read content store response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("content store %s returned %d", op, resp.StatusCode)
		c.logFailure(req.Context(), op, err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "content store request failed")
	}

	return body, nil
}

func (c *Client) logFailure(ctx context.Context, op string, err error) {
	if c.logger == nil {
		return
	}
	ctx = c.logger.WithField(ctx, "operation", op)
	c.logger.Error(ctx, "contentstore.request_failed", err)
}
