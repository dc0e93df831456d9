package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const maxErrorBody = 1 << 20

// Error is a non-2xx backend response. Fields holds per-field validation
// messages when the backend returned a structured validation failure; callers
// map those next to the corresponding inputs and treat Message as the banner.
type Error struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// fieldError is one entry of FastAPI's 422 detail array. Loc is a path like
// ["body", "email"]; the second element names the offending field.
type fieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// decodeError turns a non-2xx response into an *Error, extracting the
// backend's detail payload when present.
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return apiErr
	}

	var message string
	if err := json.Unmarshal(envelope.Detail, &message); err == nil {
		apiErr.Message = message
		return apiErr
	}

	var fieldErrs []fieldError
	if err := json.Unmarshal(envelope.Detail, &fieldErrs); err == nil && len(fieldErrs) > 0 {
		apiErr.Message = "validation failed"
		apiErr.Fields = make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			if len(fe.Loc) >= 2 {
				apiErr.Fields[fmt.Sprint(fe.Loc[1])] = fe.Msg
			}
		}
	}
	return apiErr
}
