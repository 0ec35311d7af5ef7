// Package paystack is a minimal client for the Paystack transaction API: initialize a hosted
// checkout and verify its outcome.
package paystack

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"neotech/internal/config"
	"neotech/internal/logging"
	"neotech/internal/metrics"
)

const (
	opInitialize = "initialize"
	opVerify     = "verify"

	breakerName = "paystack"
	maxBodySize = 1 << 20
)

// ErrRejected is returned when the gateway answers but refuses the request.
var ErrRejected = errors.New("paystack rejected the request")

// Error describes a failed gateway call.
type Error struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("paystack %s: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("paystack %s: status %d: %s", e.Operation, e.StatusCode, e.Message)
}

// InitializeRequest is the body of POST /transaction/initialize. Amount is in minor units.
type InitializeRequest struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	Reference   string `json:"reference"`
	CallbackURL string `json:"callback_url"`
}

// InitializeResponse is the gateway's answer to an initialize call.
type InitializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// VerifyResponse is the gateway's answer to a verify call.
type VerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status          string `json:"status"`
		GatewayResponse string `json:"gateway_response"`
		Reference       string `json:"reference"`
		Amount          int64  `json:"amount"`
	} `json:"data"`
}

// Successful reports whether the transaction was paid.
func (r *VerifyResponse) Successful() bool {
	return r != nil && r.Status && (r.Data.Status == "success" || r.Data.GatewayResponse == "Successful")
}

// Client talks to Paystack through a circuit breaker. Only transport errors and 5xx answers
// count as breaker failures; a declined payment is a normal answer.
type Client struct {
	secretKey string
	baseURL   string
	http      *http.Client
	cb        *gobreaker.CircuitBreaker[*rawResponse]
}

type rawResponse struct {
	status int
	body   []byte
}

// New builds a client from configuration. An empty secret key is sent as an empty bearer token.
func New(cfg config.PaystackConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	metrics.GatewayBreakerState.Set(0)
	cb := gobreaker.NewCircuitBreaker[*rawResponse](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= 0.6 {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", ratio*100).Msg("paystack breaker opening")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("breaker state change")
			metrics.GatewayBreakerState.Set(stateValue(to))
		},
	})

	return &Client{
		secretKey: cfg.SecretKey,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		cb:        cb,
	}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Initialize starts a hosted checkout and returns its authorization URL.
func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode initialize request: %w", err)
	}

	var out InitializeResponse
	if err := c.call(ctx, opInitialize, http.MethodPost, "/transaction/initialize", payload, &out); err != nil {
		return nil, err
	}
	if !out.Status || out.Data.AuthorizationURL == "" {
		metrics.GatewayRequestsTotal.WithLabelValues(opInitialize, "rejected").Inc()
		return nil, fmt.Errorf("%w: %s", ErrRejected, out.Message)
	}
	metrics.GatewayRequestsTotal.WithLabelValues(opInitialize, "success").Inc()
	return &out, nil
}

// Verify fetches the outcome of a transaction. A declined payment is returned without error;
// callers check Successful.
func (c *Client) Verify(ctx context.Context, reference string) (*VerifyResponse, error) {
	var out VerifyResponse
	path := "/transaction/verify/" + url.PathEscape(reference)
	if err := c.call(ctx, opVerify, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	result := "declined"
	if out.Successful() {
		result = "success"
	}
	metrics.GatewayRequestsTotal.WithLabelValues(opVerify, result).Inc()
	return &out, nil
}

// call runs one request through the breaker and decodes the JSON body into out. 4xx answers
// are decoded too since Paystack explains refusals in the body.
func (c *Client) call(ctx context.Context, op, method, path string, body []byte, out interface{}) error {
	raw, err := c.cb.Execute(func() (*rawResponse, error) {
		return c.send(ctx, op, method, path, body)
	})
	if err != nil {
		result := "error"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			result = "rejected_by_breaker"
		}
		metrics.GatewayRequestsTotal.WithLabelValues(op, result).Inc()
		var gwErr *Error
		if errors.As(err, &gwErr) {
			return err
		}
		return &Error{Operation: op, Message: err.Error()}
	}

	if err := json.Unmarshal(raw.body, out); err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(op, "error").Inc()
		return &Error{Operation: op, StatusCode: raw.status, Message: "decode response: " + err.Error()}
	}
	return nil
}

func (c *Client) send(ctx context.Context, op, method, path string, body []byte) (*rawResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &Error{Operation: op, Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Operation: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &Error{Operation: op, StatusCode: resp.StatusCode, Message: "read body: " + err.Error()}
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, &Error{Operation: op, StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}
	return &rawResponse{status: resp.StatusCode, body: data}, nil
}

// State exposes the breaker state for health reporting.
func (c *Client) State() gobreaker.State {
	return c.cb.State()
}
