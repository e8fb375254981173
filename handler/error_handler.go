package handler

import (
	"errors"
	"log/slog"
	"maps"
	"net/http"

	"github.com/supersub/supersub/pkg/binder"
	"github.com/supersub/supersub/pkg/logger"
	"github.com/supersub/supersub/pkg/requestid"
)

// ErrorMapper translates a domain error into an HTTPError.
// It returns false when it does not recognise err.
type ErrorMapper func(err error) (HTTPError, bool)

// ErrorInfo is the classified form of an error.
type ErrorInfo struct {
	StatusCode int
	Detail     *ErrorDetail
	LogLevel   slog.Level
}

const genericServerMessage = "An error occurred processing your request"

func classifyError(err error, mappers []ErrorMapper) ErrorInfo {
	httpErr := ErrInternal
	var validationErr ValidationError

	matched := false
	for _, m := range mappers {
		if he, ok := m(err); ok {
			httpErr, matched = he, true
			break
		}
	}
	if !matched {
		switch {
		case errors.As(err, &validationErr):
			httpErr = ErrUnprocessableEntity.WithMessage(validationErr.Error())
		case errors.As(err, &httpErr):
		case binder.IsBindError(err):
			httpErr = ErrBadRequest.WithMessage(err.Error())
		}
	}

	info := ErrorInfo{
		StatusCode: httpErr.Code,
		Detail:     &ErrorDetail{Code: httpErr.Key, Message: httpErr.Message},
		LogLevel:   slog.LevelWarn,
	}
	if info.StatusCode >= http.StatusInternalServerError {
		info.LogLevel = slog.LevelError
	}
	if info.Detail.Message == "" {
		info.Detail.Message = http.StatusText(info.StatusCode)
	}
	if info.StatusCode == http.StatusInternalServerError {
		info.Detail.Message = genericServerMessage
	}
	if len(validationErr) > 0 {
		info.Detail.Details = make(map[string][]string, len(validationErr))
		maps.Copy(info.Detail.Details, validationErr)
	}
	return info
}

// NewErrorHandler returns an ErrorHandler that logs err with the request id
// and renders {"error":{"code","message"}}. Mappers are tried in order before
// the built-in classification of HTTPError, ValidationError and binder errors.
// Anything unrecognised becomes a 500 with a generic message.
func NewErrorHandler(log *slog.Logger, mappers ...ErrorMapper) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx Context, err error) {
		info := classifyError(err, mappers)
		r := ctx.Request()

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		resp := JSONError(info.Detail, WithJSONStatus(info.StatusCode))
		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response",
				logger.Error(renderErr), logger.Event("render_error"))
		}
	}
}
