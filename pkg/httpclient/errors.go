package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
)

// envelope mirrors httputil.Response on the wire.
type envelope struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError consumes and closes resp and turns a non-2xx answer
// into an error carrying the downstream status.
func ParseResponseError(resp *http.Response, service string) error {
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned %d (unreadable body: %w)", service, resp.StatusCode, err)
	}

	code, message := "", string(raw)
	var env envelope
	if json.Unmarshal(raw, &env) == nil && env.Error != nil {
		code, message = env.Error.Code, env.Error.Message
	}
	return mapStatus(resp.StatusCode, code, message, service)
}

func mapStatus(status int, code, message, service string) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.InvalidInput(message)
	case http.StatusUnauthorized:
		return apperrors.Unauthorized(message)
	case http.StatusForbidden:
		return apperrors.Forbidden(message)
	case http.StatusNotFound:
		return &apperrors.AppError{Code: "NOT_FOUND", Message: message, Status: status, Err: apperrors.ErrNotFound}
	case http.StatusConflict:
		if code == "ALREADY_EXISTS" {
			return &apperrors.AppError{Code: code, Message: message, Status: status, Err: apperrors.ErrAlreadyExists}
		}
		return apperrors.Conflict(message)
	case http.StatusTooManyRequests:
		return apperrors.RateLimited(message)
	case http.StatusServiceUnavailable:
		return apperrors.ServiceUnavailable(fmt.Sprintf("%s: %s", service, message))
	}
	if status >= 500 {
		return fmt.Errorf("%s server error %d %s: %s", service, status, code, message)
	}
	return &apperrors.AppError{Code: code, Message: fmt.Sprintf("%s: %s", service, message), Status: status}
}
