package session

import (
	"net/http"
	"strings"
)

// TokenSource pulls a raw token out of a request. It returns "" when absent.
type TokenSource func(r *http.Request) string

// FromCookie reads the token from the named cookie.
func FromCookie(name string) TokenSource {
	return func(r *http.Request) string {
		c, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return c.Value
	}
}

// FromBearer reads "Authorization: Bearer <token>".
func FromBearer() TokenSource {
	return func(r *http.Request) string {
		scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}
}

// FirstOf returns the first non-empty token among sources.
func FirstOf(sources ...TokenSource) TokenSource {
	return func(r *http.Request) string {
		for _, src := range sources {
			if token := src(r); token != "" {
				return token
			}
		}
		return ""
	}
}
