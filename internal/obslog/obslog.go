// Package obslog constructs the engine's structured logger. There is no
// package-global logger: callers get one from New and thread it through
// Options, the same way internal/app/agent builds a *zap.SugaredLogger once
// and stores it on the executor struct instead of reaching for a singleton.
package obslog

import "go.uber.org/zap"

// New builds a production-configured sugared logger. Callers that already
// have a *zap.Logger (e.g. a host application) should call .Sugar() on it
// directly rather than going through this constructor.
func New() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		// zap.NewProduction only fails on a broken encoder/sink config,
		// which never happens with the defaults used here.
		logger = zap.NewNop()
	}
	return logger.Sugar()
}

// NoOp returns a logger that discards everything, for tests and callers
// that don't want log output.
func NoOp() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
