package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend %d: %s", e.Status, e.Message)
}

// The auth API has used several shapes for errors over time.
type errorBody struct {
	Code             any    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func decodeAPIError(status int, payload []byte) error {
	apiErr := &APIError{Status: status}
	var body errorBody
	if err := json.Unmarshal(payload, &body); err == nil {
		apiErr.Code = body.ErrorCode
		if apiErr.Code == "" {
			if s, ok := body.Code.(string); ok {
				apiErr.Code = s
			}
		}
		for _, m := range []string{body.Msg, body.Message, body.ErrorDescription, body.Error} {
			if m != "" {
				apiErr.Message = m
				break
			}
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(payload))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// IsDuplicate reports whether err means the email is already registered.
func IsDuplicate(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case "email_exists", "user_already_exists":
		return true
	}
	if apiErr.Status == http.StatusConflict {
		return true
	}
	if apiErr.Status == http.StatusUnprocessableEntity {
		return strings.Contains(strings.ToLower(apiErr.Message), "already")
	}
	return false
}

// IsNotFound reports a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
