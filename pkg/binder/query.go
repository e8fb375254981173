package binder

import "net/http"

// Query binds URL query parameters into fields tagged `query:"name"`.
// Missing parameters leave the field untouched, so defaults set before
// binding survive.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", func(name string) []string {
			return r.URL.Query()[name]
		}, ErrInvalidQuery)
	}
}
