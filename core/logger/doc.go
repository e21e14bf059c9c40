// Package logger builds the process slog.Logger and provides attribute
// helpers so log keys stay consistent across packages:
//
//	log.ErrorContext(ctx, "session commit failed",
//		logger.Component("session"),
//		logger.SessionID(sess.ID),
//		logger.Error(err),
//	)
package logger
