// Package remote reads the catalog from an HTTP upstream and forwards admin
// mutations to it.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/devHenao/ventasPro/pkg/errors"
	"github.com/devHenao/ventasPro/pkg/httpclient"
)

const upstream = "catalog"

// envelope is the single-resource response shape of the upstream.
type envelope[T any] struct {
	Data T `json:"data"`
}

// Client performs JSON calls against the catalog upstream.
type Client struct {
	doer    httpclient.Doer
	baseURL string
	logger  *slog.Logger
}

// NewClient creates a client for baseURL. doer is usually a circuit breaker
// around a retrying httpclient.Client.
func NewClient(doer httpclient.Doer, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		doer:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// call sends a request and decodes a 2xx JSON body into out when out is not
// nil. Transport failures and open circuits surface as ServiceUnavailable.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, in, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body *bytes.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, target, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, target, http.NoBody)
	}
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		c.logger.WarnContext(ctx, "catalog upstream call failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return apperrors.ServiceUnavailable("catalog upstream unavailable", err)
	}
	defer resp.Body.Close()

	if !httpclient.IsSuccess(resp.StatusCode) {
		return httpclient.ParseResponseError(resp, upstream)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.ServiceUnavailable("malformed catalog response", fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}
