package subscription

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/supersub/supersub/handler"
	"github.com/supersub/supersub/pkg/subscription"
)

// Authenticator resolves the caller and stores the user id in the request
// context. session.Authenticator satisfies it.
type Authenticator interface {
	Required(next http.Handler) http.Handler
	Optional(next http.Handler) http.Handler
}

// RouterOptions wires the module's collaborators.
type RouterOptions struct {
	Service subscription.Service
	Auth    Authenticator
	// ErrorHandler defaults to NewErrorHandler(slog.Default()).
	ErrorHandler handler.ErrorHandler[handler.Context]
	// Throttle, if set, runs after authentication on the state-changing routes.
	Throttle func(http.Handler) http.Handler
}

// Router mounts the subscription and offer endpoints:
//
//	POST /subscription/subscribeTo
//	POST /subscription/unsubscribeTo
//	GET  /subscription/me
//	GET  /offers
//	GET  /offers/{id}
//	GET  /offers/{id}/accessible
func Router(opts RouterOptions) chi.Router {
	if opts.Service == nil {
		panic("subscription module: Service is required")
	}
	if opts.Auth == nil {
		panic("subscription module: Auth is required")
	}
	if opts.ErrorHandler == nil {
		opts.ErrorHandler = NewErrorHandler(nil)
	}

	h := &handlers{svc: opts.Service}
	eh := opts.ErrorHandler

	r := chi.NewRouter()

	r.Route("/subscription", func(r chi.Router) {
		r.Use(opts.Auth.Required)
		w := r.With()
		if opts.Throttle != nil {
			w = r.With(opts.Throttle)
		}
		w.Post("/subscribeTo", handler.Wrap(h.subscribeTo,
			handler.WithBinders[handler.Context, transitionRequest](bindJSON),
			handler.WithErrorHandler[handler.Context, transitionRequest](eh),
		))
		w.Post("/unsubscribeTo", handler.Wrap(h.unsubscribeTo,
			handler.WithBinders[handler.Context, transitionRequest](bindJSON),
			handler.WithErrorHandler[handler.Context, transitionRequest](eh),
		))
		r.Get("/me", handler.Wrap(h.me,
			handler.WithErrorHandler[handler.Context, struct{}](eh),
		))
	})

	r.Route("/offers", func(r chi.Router) {
		r.With(opts.Auth.Optional).Get("/", handler.Wrap(h.listOffers,
			handler.WithBinders[handler.Context, listOffersRequest](bindQuery),
			handler.WithErrorHandler[handler.Context, listOffersRequest](eh),
		))
		r.Get("/{id}", handler.Wrap(h.getOffer,
			handler.WithBinders[handler.Context, offerRequest](bindPath),
			handler.WithErrorHandler[handler.Context, offerRequest](eh),
		))
		r.With(opts.Auth.Required).Get("/{id}/accessible", handler.Wrap(h.accessible,
			handler.WithBinders[handler.Context, offerRequest](bindPath),
			handler.WithErrorHandler[handler.Context, offerRequest](eh),
		))
	})

	return r
}
