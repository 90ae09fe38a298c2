package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-ledger-sync/internal/utils"
)

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body, fromAPI := errorMessage(resp.Body())
	if body == "" {
		body = http.StatusText(code)
	}

	switch {
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests, code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %d %s", ErrUnavailable, code, body)
	case code == http.StatusNotFound && fromAPI:
		// the api answered for a record it does not have
		return fmt.Errorf("%w: %w: %s", ErrRejected, ErrNotFound, body)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case code >= http.StatusBadRequest:
		return fmt.Errorf("%w: %d %s", ErrRejected, code, body)
	default:
		return fmt.Errorf("%w: http %d: %s", ErrUnexpectedStatus, code, body)
	}
}

// errorMessage unwraps the server's {"error": "..."} body. fromAPI is false
// when the body is not that shape, e.g. a proxy page or chi's plain 404.
func errorMessage(raw []byte) (msg string, fromAPI bool) {
	var body utils.ErrorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error, true
	}
	return strings.TrimSpace(string(raw)), false
}

func transportError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}
