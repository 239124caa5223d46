package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the fixed status-code policy. Handlers match these
// with errors.Is and translate them into user-visible notifications; 422 is
// deliberately excluded so forms can render field-level errors themselves.
var (
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("permission denied")
	ErrNotFound           = errors.New("resource not found")
	ErrServer             = errors.New("server error")
	ErrBackendUnavailable = errors.New("backend unreachable")
)

// StatusError carries the backend's status code and error detail. Unwrap
// maps the code onto the matching sentinel so callers can use errors.Is
// without losing the original copy.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.Code)
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.Code == 401:
		return ErrUnauthorized
	case e.Code == 403:
		return ErrForbidden
	case e.Code == 404:
		return ErrNotFound
	case e.Code >= 500:
		return ErrServer
	}
	return nil
}

// ValidationError is a 422 response. Fields maps form field names to the
// backend's per-field messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// fastapiValidationItem is one entry of FastAPI's 422 detail list.
type fastapiValidationItem struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// errorFromResponse turns a non-2xx response body into a typed error. The
// backend's error envelope is {"detail": ...} where detail is either a
// string or, for 422, a list of field errors.
func errorFromResponse(code int, body []byte) error {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	_ = json.Unmarshal(body, &envelope)

	if code == 422 {
		fields := map[string]string{}
		var items []fastapiValidationItem
		if err := json.Unmarshal(envelope.Detail, &items); err == nil {
			for _, it := range items {
				fields[fieldName(it.Loc)] = it.Msg
			}
		} else {
			var detail string
			if json.Unmarshal(envelope.Detail, &detail) == nil && detail != "" {
				fields[""] = detail
			}
		}
		return &ValidationError{Fields: fields}
	}

	var detail string
	_ = json.Unmarshal(envelope.Detail, &detail)
	return &StatusError{Code: code, Detail: detail}
}

// fieldName extracts the form field from a loc path like ["body","password"].
func fieldName(loc []json.RawMessage) string {
	if len(loc) == 0 {
		return ""
	}
	var last string
	if err := json.Unmarshal(loc[len(loc)-1], &last); err != nil {
		return ""
	}
	return strings.ToLower(last)
}

// Detail returns the backend's error copy for err, or empty if none. Login
// uses this to distinguish "email not found" from "incorrect password".
func Detail(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Detail
	}
	return ""
}
