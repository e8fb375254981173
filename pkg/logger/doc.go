// Package logger builds slog loggers for the supersub service.
//
// New returns a *slog.Logger configured through functional options.
// WithEnvironment picks format and level per deployment environment, and
// context extractors add request-scoped attributes (request ID) to each record:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "supersub"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "subscription transition applied",
//		logger.UserID(userID),
//		logger.OfferID(offerID),
//	)
//
// The attribute helpers return an empty slog.Attr for nil values, which slog
// drops, so optional identifiers can be passed without checks.
package logger
