package binder

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PathExtractor returns the value of a named route parameter.
type PathExtractor func(r *http.Request, name string) string

// Path binds route parameters into fields tagged `path:"name"` using
// chi.URLParam unless another extractor is given.
//
//	type offerRequest struct {
//		OfferID int64 `path:"id"`
//	}
//	r.Get("/offers/{id}", handler.Wrap(h, handler.WithBinders[handler.Context, offerRequest](binder.Path())))
func Path(extractor ...PathExtractor) func(r *http.Request, v any) error {
	extract := PathExtractor(chi.URLParam)
	if len(extractor) > 0 && extractor[0] != nil {
		extract = extractor[0]
	}
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "path", func(name string) []string {
			if s := extract(r, name); s != "" {
				return []string{s}
			}
			return nil
		}, ErrInvalidPath)
	}
}
