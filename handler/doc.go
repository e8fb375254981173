// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a request struct decoded by binders
// from pkg/binder, and returns a Response. Wrap turns it into an
// http.HandlerFunc:
//
//	type subscribeRequest struct {
//		OfferID int64 `json:"offer_id"`
//	}
//
//	subscribe := func(ctx handler.Context, req subscribeRequest) handler.Response {
//		out, err := svc.Subscribe(ctx, userID, subscription.OfferID(req.OfferID))
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.JSON(out)
//	}
//
//	r.Post("/subscription/subscribeTo", handler.Wrap(subscribe,
//		handler.WithBinders[handler.Context, subscribeRequest](binder.JSON()),
//		handler.WithErrorHandler[handler.Context, subscribeRequest](errHandler),
//	))
//
// Errors returned through Error, or raised while binding, reach the
// ErrorHandler. NewErrorHandler logs them and renders a JSON body of the form
// {"error":{"code":"not_found","message":"Offer not found"}}.
package handler
