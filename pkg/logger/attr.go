package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups non-nil errors under "errors". Empty Attr if all are nil.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error". Empty Attr if err is nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under "user_id". Empty Attr if id is nil.
func UserID(id any) slog.Attr {
	return optional("user_id", id)
}

// OfferID records the offer identifier under "offer_id". Empty Attr if id is nil.
func OfferID(id any) slog.Attr {
	return optional("offer_id", id)
}

// PreviousOfferID records the prior offer under "previous_offer_id". Empty Attr if id is nil.
func PreviousOfferID(id any) slog.Attr {
	return optional("previous_offer_id", id)
}

// Transition records a from/to pair under "transition".
// A nil side is written as "none".
func Transition(from, to any) slog.Attr {
	return Group("transition", slog.Any("from", orNone(from)), slog.Any("to", orNone(to)))
}

// RequestID records the request identifier under "request_id". Empty Attr if id is nil.
func RequestID(id any) slog.Attr {
	return optional("request_id", id)
}

// Duration records a duration under "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func optional(key string, v any) slog.Attr {
	if v == nil {
		return slog.Attr{}
	}
	return slog.Any(key, v)
}

func orNone(v any) any {
	if v == nil {
		return "none"
	}
	return v
}
