// Package logger holds the process-wide Zap logger.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the global logger once for env. "production" writes JSON,
// "test" discards everything, anything else gets the development console
// encoder. Later calls are ignored.
func Init(env string) {
	once.Do(func() {
		sugar = build(env).Sugar().With("app", "vinco")
	})
}

func build(env string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	switch env {
	case "production":
		l, err = zap.NewProduction()
	case "test":
		return zap.NewNop()
	default:
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// Get returns the global logger, initialising a development one on first
// use if Init was never called.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Named returns a child of the global logger tagged with name.
func Named(name string) *zap.SugaredLogger {
	return Get().Named(name)
}

// Sync flushes buffered entries. Call it before the process exits.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
