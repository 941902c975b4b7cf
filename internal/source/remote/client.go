// Package remote fetches transactions from the payment-gateway endpoint
// and reshapes its nested schema into normalized records.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/PutuPutra/finance-portal/internal/core"
	applog "github.com/PutuPutra/finance-portal/internal/log"
	"github.com/PutuPutra/finance-portal/internal/source"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	url      string
	username string
	password string
	http     *http.Client
	logger   *applog.Logger
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewClient builds a client for the given endpoint. The credentials go
// in the request body; the endpoint takes no other auth.
func NewClient(url, username, password string, logger *applog.Logger) *Client {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Client{
		url:      url,
		username: username,
		password: password,
		http:     &http.Client{Timeout: defaultTimeout},
		logger:   logger.WithComponent(applog.ComponentSource),
	}
}

func (c *Client) Mode() string { return "remote" }

// Fetch issues one POST and normalizes the response. Any transport,
// status or decode failure comes back as a *source.FetchError; the
// caller decides how to degrade.
func (c *Client) Fetch(ctx context.Context) ([]core.Transaction, error) {
	body, err := json.Marshal(credentials{Username: c.username, Password: c.password})
	if err != nil {
		return nil, &source.FetchError{Op: "request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, &source.FetchError{Op: "request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &source.FetchError{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &source.FetchError{Op: "status", Status: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &source.FetchError{Op: "read", Err: err}
	}

	var payload apiResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &source.FetchError{Op: "decode", Err: err}
	}

	out := make([]core.Transaction, 0, len(payload.Data))
	for id, entry := range payload.Data {
		tx, err := Normalize(id, entry)
		if err != nil {
			c.logger.WarnContext(ctx, "Skipping malformed vendor entry",
				applog.FieldError, err, "transaction_id", id)
			continue
		}
		out = append(out, tx)
	}
	// The vendor map has no order; emit newest first, ties broken by ID
	// so repeated fetches come back identical.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})

	c.logger.InfoContext(ctx, "Fetched vendor transactions",
		applog.FieldOperation, applog.OpFetch, applog.FieldTxCount, len(out))
	return out, nil
}
