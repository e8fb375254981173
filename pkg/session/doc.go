// Package session authenticates API callers from a signed session token.
//
// Tokens are HMAC-signed JWTs (HS256 by default) carried in the "jwt" cookie
// or an Authorization Bearer header. The "sub" claim holds the numeric user
// id and "exp" is mandatory. Revoked tokens are listed in Redis under
// "blacklist:<token>"; when Redis cannot be reached the token is accepted.
//
//	v, err := session.NewVerifier(cfg)
//	auth := session.NewAuthenticator(v, cfg,
//		session.WithBlacklist(session.NewRedisBlacklist(rdb, cfg.BlacklistPrefix)),
//	)
//	r.With(auth.Required).Post("/subscription/subscribeTo", h)
//	r.With(auth.Optional).Get("/offers", h)
//
// This package verifies tokens only. Issuing them belongs to the identity
// service.
package session
