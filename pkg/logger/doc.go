// Package logger builds configured slog.Logger instances for the toolkit.
//
// The factory covers the two profiles the client runs in: human-readable
// text output while developing, JSON for aggregation everywhere else.
// Context extractors inject request-scoped attributes (request IDs, tenant
// identifiers) at log time through a decorating handler.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithProduction("avkit"),
//	    logger.WithContextValue("request_id", ctxkey.RequestID),
//	)
//	logger.SetAsDefault(log)
package logger
