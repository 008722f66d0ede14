package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// Get returns the process-wide zap logger, building it on first use.
func Get() *zap.Logger {
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stdout"}
		l, err := cfg.Build()
		if err != nil {
			panic(err)
		}
		instance = l
	})
	return instance
}

// Sync flushes any buffered log entries. Call on shutdown.
func Sync() {
	if instance != nil {
		_ = instance.Sync()
	}
}

// FieldError wraps an error as a zap field.
func FieldError(err error) zap.Field {
	return zap.Error(err)
}

// FieldPath wraps a request path as a zap field.
func FieldPath(path string) zap.Field {
	return zap.String("path", path)
}
