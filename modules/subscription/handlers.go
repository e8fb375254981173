package subscription

import (
	"errors"

	"github.com/supersub/supersub/handler"
	"github.com/supersub/supersub/pkg/subscription"
)

const defaultListLimit = 100

type handlers struct {
	svc subscription.Service
}

type transitionRequest struct {
	OfferID subscription.OfferID `json:"offer_id"`
}

type subscribeResponse struct {
	Message    string               `json:"message"`
	UserID     subscription.UserID  `json:"user_id"`
	OfferID    subscription.OfferID `json:"offer_id"`
	OfferTitle string               `json:"offer_title"`
}

type unsubscribeResponse struct {
	Message            string               `json:"message"`
	UserID             subscription.UserID  `json:"user_id"`
	PreviousOfferID    subscription.OfferID `json:"previous_offer_id"`
	PreviousOfferTitle string               `json:"previous_offer_title"`
}

func (h *handlers) subscribeTo(ctx handler.Context, req transitionRequest) handler.Response {
	userID, err := subscription.UserIDFromContext(ctx)
	if err != nil {
		return handler.Error(err)
	}
	out, err := h.svc.Subscribe(ctx, userID, req.OfferID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(subscribeResponse{
		Message:    "Successfully subscribed to offer",
		UserID:     userID,
		OfferID:    out.Offer.ID,
		OfferTitle: out.Offer.Title,
	})
}

func (h *handlers) unsubscribeTo(ctx handler.Context, req transitionRequest) handler.Response {
	userID, err := subscription.UserIDFromContext(ctx)
	if err != nil {
		return handler.Error(err)
	}
	out, err := h.svc.Unsubscribe(ctx, userID, req.OfferID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(unsubscribeResponse{
		Message:            "Successfully unsubscribed from offer",
		UserID:             userID,
		PreviousOfferID:    out.Offer.ID,
		PreviousOfferTitle: out.Offer.Title,
	})
}

type meResponse struct {
	subscription.Record
	CurrentOffer *subscription.Offer `json:"current_offer"`
}

func (h *handlers) me(ctx handler.Context, _ struct{}) handler.Response {
	userID, err := subscription.UserIDFromContext(ctx)
	if err != nil {
		return handler.Error(err)
	}
	rec, err := h.svc.GetRecord(ctx, userID)
	if err != nil {
		return handler.Error(err)
	}

	resp := meResponse{Record: *rec}
	if rec.Current != nil {
		offer, err := h.svc.GetOffer(ctx, *rec.Current)
		switch {
		case err == nil:
			resp.CurrentOffer = offer
		case !errors.Is(err, subscription.ErrOfferNotFound):
			return handler.Error(err)
		}
	}
	return handler.JSON(resp)
}

type listOffersRequest struct {
	Skip  int `query:"skip"`
	Limit int `query:"limit"`
}

func (h *handlers) listOffers(ctx handler.Context, req listOffersRequest) handler.Response {
	if req.Limit == 0 && !ctx.Request().URL.Query().Has("limit") {
		req.Limit = defaultListLimit
	}
	verr := handler.NewValidationError()
	if req.Skip < 0 {
		verr.Add("skip", "must not be negative")
	}
	if req.Limit < 0 {
		verr.Add("limit", "must not be negative")
	}
	if err := verr.Err(); err != nil {
		return handler.Error(err)
	}

	userID, _ := subscription.GetUserIDFromContext(ctx)
	views, err := h.svc.ListOffers(ctx, userID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(page(views, req.Skip, req.Limit))
}

func page[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}

type offerRequest struct {
	OfferID subscription.OfferID `path:"id"`
}

func (h *handlers) getOffer(ctx handler.Context, req offerRequest) handler.Response {
	offer, err := h.svc.GetOffer(ctx, req.OfferID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(offer)
}

type accessibleResponse struct {
	OfferID    subscription.OfferID `json:"offer_id"`
	UserID     subscription.UserID  `json:"user_id"`
	Accessible bool                 `json:"accessible"`
}

func (h *handlers) accessible(ctx handler.Context, req offerRequest) handler.Response {
	userID, err := subscription.UserIDFromContext(ctx)
	if err != nil {
		return handler.Error(err)
	}
	ok, err := h.svc.IsAccessible(ctx, userID, req.OfferID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(accessibleResponse{OfferID: req.OfferID, UserID: userID, Accessible: ok})
}
