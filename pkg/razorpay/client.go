package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fuelmywork/fuelmywork-backend/pkg/config"
	"github.com/fuelmywork/fuelmywork-backend/pkg/logger"
)

// CurrencyINR is the only currency the platform settles in.
const CurrencyINR = "INR"

const ordersPath = "/v1/orders"

var errLoggerRequired = errors.New("razorpay logger is required")

// Credentials are one creator's Razorpay key pair. Every creator has an
// independent account, so the client takes credentials per call instead of
// holding a single merchant token.
type Credentials struct {
	KeyID     string
	KeySecret string
}

// OrderRequest describes the order to mint on the gateway.
type OrderRequest struct {
	AmountPaise int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Receipt     string            `json:"receipt,omitempty"`
	Notes       map[string]string `json:"notes,omitempty"`
}

// Order is the subset of the gateway's order resource the platform uses.
type Order struct {
	ID          string `json:"id"`
	AmountPaise int64  `json:"amount"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
	Status      string `json:"status"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// Client calls the Razorpay Orders API with per-creator basic auth.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

// NewClient builds a gateway client with a bounded request timeout.
func NewClient(cfg config.GatewayConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		return nil, errors.New("razorpay base url is required")
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		logger:     logg,
	}, nil
}

// CreateOrder mints a gateway order scoped to the provided credentials.
func (c *Client) CreateOrder(ctx context.Context, creds Credentials, order OrderRequest) (*Order, error) {
	if creds.KeyID == "" || creds.KeySecret == "" {
		return nil, errors.New("gateway credentials are required")
	}
	if order.AmountPaise <= 0 {
		return nil, errors.New("order amount must be positive")
	}
	if order.Currency == "" {
		order.Currency = CurrencyINR
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("encode order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ordersPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.SetBasicAuth(creds.KeyID, creds.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp.StatusCode, body)
	}

	var created Order
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode gateway order: %w", err)
	}
	if created.ID == "" {
		return nil, errors.New("gateway returned an order without an id")
	}
	return &created, nil
}

func decodeAPIError(status int, body []byte) error {
	var parsed apiError
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Description != "" {
		return fmt.Errorf("gateway rejected order (%d %s): %s", status, parsed.Error.Code, parsed.Error.Description)
	}
	return fmt.Errorf("gateway rejected order: status %d", status)
}
