package handler

import (
	"encoding/json"
	"net/http"
)

// ErrorDetail is the body of every error response, nested under "error".
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

type errorBody struct {
	Error *ErrorDetail `json:"error"`
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

// WithJSONStatus sets the HTTP status code.
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// JSON renders v as the response body with status 200.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders {"error": detail} with status 500 unless overridden.
func JSONError(detail *ErrorDetail, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusInternalServerError, body: errorBody{Error: detail}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
