// Package client is a typed HTTP client for the expense tracker API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/shopspring/decimal"
)

const (
	defaultTimeout = 30 * time.Second
	// MaxPageLimit is the largest page the API serves in one call.
	MaxPageLimit = 1000
)

// Client talks to a running expense tracker server.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBearerToken sends token in the Authorization header of every request.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New creates a client for the server at baseURL, e.g. "http://127.0.0.1:8000".
func New(baseURL string, options ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, option := range options {
		option(c)
	}
	return c, nil
}

// ListTransactions returns one window of stored transactions, newest first.
func (c *Client) ListTransactions(ctx context.Context, skip, limit int) ([]domain.Transaction, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var res []dto.TransactionResponse
	if err := c.do(ctx, http.MethodGet, "/transactions/", q, nil, &res); err != nil {
		return nil, err
	}
	return toDomainTransactions(res), nil
}

// ListAllTransactions pages through the whole store.
func (c *Client) ListAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var all []domain.Transaction
	for skip := 0; ; skip += MaxPageLimit {
		page, err := c.ListTransactions(ctx, skip, MaxPageLimit)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < MaxPageLimit {
			break
		}
	}
	if all == nil {
		all = []domain.Transaction{}
	}
	return all, nil
}

// GetBalance returns the server-computed balance over every transaction.
func (c *Client) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	var res dto.BalanceResponse
	if err := c.do(ctx, http.MethodGet, "/balance/", nil, nil, &res); err != nil {
		return decimal.Zero, err
	}
	return res.Balance, nil
}

// CreateTransaction stores a new transaction and returns it with its id.
func (c *Client) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	var res dto.TransactionResponse
	if err := c.do(ctx, http.MethodPost, "/transactions/", nil, req, &res); err != nil {
		return nil, err
	}
	tx := toDomainTransaction(res)
	return &tx, nil
}

// UpdateTransaction replaces the fields of transaction id.
func (c *Client) UpdateTransaction(ctx context.Context, id string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	var res dto.TransactionResponse
	if err := c.do(ctx, http.MethodPut, "/transactions/"+url.PathEscape(id), nil, req, &res); err != nil {
		return nil, err
	}
	tx := toDomainTransaction(res)
	return &tx, nil
}

// ListDescriptions returns every distinct description in use.
func (c *Client) ListDescriptions(ctx context.Context) ([]string, error) {
	var res []string
	if err := c.do(ctx, http.MethodGet, "/descriptions/", nil, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// DownloadStatement fetches the statement PDF for the given query, e.g.
// month=2024-03. It returns the file contents and the base name of the
// server's attachment, which is empty when the server did not send a usable one.
func (c *Client) DownloadStatement(ctx context.Context, query url.Values) ([]byte, string, error) {
	resp, err := c.send(ctx, http.MethodGet, "/statement/pdf", query, nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &APIError{Op: "GET /statement/pdf", Err: err}
	}
	return data, fileNameFromDisposition(resp.Header.Get("Content-Disposition")), nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Op: method + " " + path, StatusCode: resp.StatusCode, Message: "malformed response body", Err: err}
	}
	return nil
}

// send performs the request and returns the response for 2xx statuses. Any
// other outcome is reported as an *APIError.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, newStatusError(op, resp)
	}
	return resp, nil
}

func toDomainTransaction(r dto.TransactionResponse) domain.Transaction {
	tx := domain.Transaction{
		TransactionID: r.ID,
		Type:          r.Type,
		Amount:        r.Amount,
		Description:   r.Description,
		CreatedAt:     r.CreatedAt,
	}
	if r.RecordedAt != nil {
		tx.RecordedAt = *r.RecordedAt
	}
	return tx
}

func toDomainTransactions(rs []dto.TransactionResponse) []domain.Transaction {
	out := make([]domain.Transaction, len(rs))
	for i, r := range rs {
		out[i] = toDomainTransaction(r)
	}
	return out
}

// fileNameFromDisposition returns the base name of the attachment in a
// Content-Disposition header, or "" when it is missing or unusable.
func fileNameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	name := filepath.Base(strings.ReplaceAll(params["filename"], `\`, "/"))
	switch name {
	case "", ".", "..", "/":
		return ""
	}
	return name
}
