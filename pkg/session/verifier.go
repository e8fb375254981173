package session

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/supersub/supersub/pkg/subscription"
)

// Claims is the verified content of a session token.
type Claims struct {
	UserID    subscription.UserID
	ExpiresAt time.Time
}

// Verifier checks HMAC-signed tokens whose "sub" claim holds a numeric user id.
type Verifier struct {
	key    []byte
	parser *jwt.Parser
}

// NewVerifier builds a Verifier from cfg. Only the HMAC family is accepted.
func NewVerifier(cfg Config) (*Verifier, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	if _, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Join(ErrUnsupportedAlgorithm, errors.New(alg))
	}

	return &Verifier{
		key: []byte(cfg.Secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{alg}),
			jwt.WithLeeway(cfg.Leeway),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Verify validates signature, algorithm and expiry, then decodes the subject.
func (v *Verifier) Verify(token string) (Claims, error) {
	var rc jwt.RegisteredClaims
	if _, err := v.parser.ParseWithClaims(token, &rc, func(*jwt.Token) (any, error) {
		return v.key, nil
	}); err != nil {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}

	id, err := strconv.ParseInt(rc.Subject, 10, 64)
	if err != nil || id <= 0 {
		return Claims{}, ErrInvalidSubject
	}

	c := Claims{UserID: subscription.UserID(id)}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, nil
}
