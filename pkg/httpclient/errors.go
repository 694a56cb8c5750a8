package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/devHenao/ventasPro/pkg/errors"
)

// upstreamError mirrors the httputil error envelope.
type upstreamError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError consumes and closes the body of a non-2xx response and
// translates it into an AppError. Structured error envelopes keep their
// message; anything else is reported with the raw body.
func ParseResponseError(resp *http.Response, upstream string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", upstream, resp.StatusCode, err)
	}

	message := string(body)
	var parsed upstreamError
	if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil {
		message = parsed.Error.Message
	}
	qualified := fmt.Sprintf("%s: %s", upstream, message)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NotFound(upstream+" resource", message)
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusUnprocessableEntity:
		return apperrors.InvalidInput(qualified)
	case resp.StatusCode == http.StatusConflict:
		return apperrors.Conflict(qualified)
	case resp.StatusCode == http.StatusUnauthorized:
		return apperrors.Unauthorized(qualified)
	case resp.StatusCode == http.StatusForbidden:
		return apperrors.Forbidden(qualified)
	case resp.StatusCode >= http.StatusInternalServerError:
		return apperrors.ServiceUnavailable(qualified, fmt.Errorf("status %d", resp.StatusCode))
	default:
		return fmt.Errorf("%s returned status %d: %s", upstream, resp.StatusCode, message)
	}
}

// IsSuccess reports whether status is 2xx.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
