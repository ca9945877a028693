// Package logger builds log/slog loggers for mailkit components.
//
// Senders and the Mailer accept a *slog.Logger and default to NewNope, so
// logging is opt-in. New creates a JSON or text logger from Config and can
// fan records out to Sentry.
//
// # Basic Usage
//
//	cfg, err := logger.ConfigFromEnv() // LOG_LEVEL, LOG_FORMAT, SENTRY_*
//	if err != nil {
//		return err
//	}
//	log := logger.New(cfg, logger.StringFromContext(traceKey{}, "trace_id"))
//
//	sender, err := directmail.New(dmCfg, directmail.WithLogger(log))
//
// # Context Extractors
//
// A ContextExtractor pulls one attribute out of the context passed to the
// *Context logging methods. Extractors run on every record, so request-scoped
// values are always current. StringFromContext covers the common case of a
// string stored under a private key type.
//
// # Sentry
//
// With SENTRY_DSN set, errors become Sentry issues and warnings (or only
// errors, when SENTRY_MIN_LEVEL=error) are stored as Sentry logs. Without a
// DSN, or if the SDK fails to initialize, only the local handler is used.
package logger
