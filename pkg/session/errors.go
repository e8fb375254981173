package session

import "errors"

var (
	ErrMissingSecret        = errors.New("session: missing signing secret")
	ErrUnsupportedAlgorithm = errors.New("session: unsupported signing algorithm")
	ErrNoToken              = errors.New("session: no token in request")
	ErrInvalidToken         = errors.New("session: invalid token")
	ErrInvalidSubject       = errors.New("session: token subject is not a user id")
	ErrRevoked              = errors.New("session: token has been revoked")
)
