package session

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/supersub/supersub/pkg/logger"
	"github.com/supersub/supersub/pkg/subscription"
)

// ErrorHandler renders an authentication failure.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithBlacklist enables revocation checks.
func WithBlacklist(b Blacklist) Option {
	return func(a *Authenticator) { a.blacklist = b }
}

// WithTokenSource replaces the default cookie-then-bearer lookup.
func WithTokenSource(src TokenSource) Option {
	return func(a *Authenticator) {
		if src != nil {
			a.source = src
		}
	}
}

// WithErrorHandler replaces the default 401 JSON body.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *Authenticator) {
		if h != nil {
			a.onError = h
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Authenticator) {
		if l != nil {
			a.log = l
		}
	}
}

// Authenticator resolves the caller's user id from a session token and stores
// it with subscription.SetUserIDToContext.
type Authenticator struct {
	verifier  *Verifier
	blacklist Blacklist
	source    TokenSource
	onError   ErrorHandler
	log       *slog.Logger
}

// NewAuthenticator reads tokens from the cfg.CookieName cookie, then from a
// Bearer header, unless WithTokenSource says otherwise.
func NewAuthenticator(v *Verifier, cfg Config, opts ...Option) *Authenticator {
	if v == nil {
		panic("session: verifier is required")
	}
	a := &Authenticator{
		verifier: v,
		source:   FirstOf(FromCookie(cfg.CookieName), FromBearer()),
		onError:  unauthorized,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authenticate returns the verified claims carried by r.
// A blacklist lookup failure lets the token through.
func (a *Authenticator) Authenticate(r *http.Request) (Claims, error) {
	token := a.source(r)
	if token == "" {
		return Claims{}, ErrNoToken
	}

	claims, err := a.verifier.Verify(token)
	if err != nil {
		return Claims{}, err
	}

	if a.blacklist != nil {
		revoked, err := a.blacklist.IsRevoked(r.Context(), token)
		switch {
		case err != nil:
			a.log.WarnContext(r.Context(), "token blacklist unavailable",
				logger.Component("session"), logger.Error(err))
		case revoked:
			return Claims{}, ErrRevoked
		}
	}
	return claims, nil
}

// Required rejects requests without a valid session.
func (a *Authenticator) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.Authenticate(r)
		if err != nil {
			a.onError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(subscription.SetUserIDToContext(r.Context(), claims.UserID)))
	})
}

// Optional attaches the user id when a valid session is present and serves
// the request anonymously otherwise.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.Authenticate(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(subscription.SetUserIDToContext(r.Context(), claims.UserID)))
	})
}

func unauthorized(w http.ResponseWriter, _ *http.Request, _ error) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    "unauthorized",
			"message": "Could not validate credentials",
		},
	})
}
