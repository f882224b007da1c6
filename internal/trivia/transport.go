package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"
)

// httpStatusMessages maps HTTP status codes to the messages surfaced to
// callers. Statuses absent from the table render as "HTTP {code}".
var httpStatusMessages = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusUnauthorized:        "Authentication required",
	http.StatusForbidden:           "Access denied",
	http.StatusNotFound:            "Resource not found",
	http.StatusTooManyRequests:     "Rate limit exceeded",
	http.StatusInternalServerError: "Internal Server Error",
	http.StatusBadGateway:          "Bad Gateway",
	http.StatusServiceUnavailable:  "Service Unavailable",
	http.StatusGatewayTimeout:      "Gateway Timeout",
}

// envelope captures the protocol fields shared by all trivia API payloads.
// Token stays raw so an absent field can be told apart from a blank one.
type envelope struct {
	ResponseCode *int            `json:"response_code"`
	Token        json.RawMessage `json:"token"`
}

// getJSON issues a GET request, validates the protocol-level fields of the
// response body and unmarshals it into dst. requireCode is set for the
// endpoints whose payloads must carry a response_code; the categories
// endpoint carries none. The underlying retryablehttp client has already
// retried transient statuses before an error surfaces here.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, requireCode bool, dst any) error {
	reqURL := rawURL
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return wrapError(KindGeneric, err, "Request failed: %v", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapError(KindGeneric, err, "Request failed: %s", requestErrorMessage(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return newError(KindGeneric, "Request failed: %s", statusMessage(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapError(KindGeneric, err, "Request failed: %v", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return wrapError(KindGeneric, err, "Invalid JSON response: %v", err)
	}

	if env.ResponseCode != nil || requireCode {
		code, present := 0, env.ResponseCode != nil
		if present {
			code = *env.ResponseCode
		}
		if err := classifyResponseCode(code, present); err != nil {
			return err
		}
	}

	if err := validateToken(env.Token); err != nil {
		return err
	}

	if dst != nil {
		if err := json.Unmarshal(body, dst); err != nil {
			return wrapError(KindGeneric, err, "Invalid JSON response: %v", err)
		}
	}

	return nil
}

// validateToken rejects payloads whose token field is present but blank or
// null. A missing field is fine; most endpoints carry none.
func validateToken(raw json.RawMessage) error {
	if raw == nil {
		return nil
	}

	var token *string
	if err := json.Unmarshal(raw, &token); err != nil {
		return newError(KindToken, "Invalid token received")
	}
	if token == nil || *token == "" {
		return newError(KindToken, "Invalid token received")
	}

	return nil
}

func statusMessage(code int) string {
	if msg, ok := httpStatusMessages[code]; ok {
		return msg
	}
	return fmt.Sprintf("HTTP %d", code)
}

// requestErrorMessage normalizes transport-level failures into the fixed
// messages callers see.
func requestErrorMessage(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "Request timed out"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Request timed out"
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return "Connection error"
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "Connection error"
	}

	return err.Error()
}
