package graph

import (
	"context"

	"go.uber.org/zap"
)

// panicLogger reports resolver panics recovered by the executor.
type panicLogger struct {
	logger *zap.Logger
}

func (l *panicLogger) LogPanic(_ context.Context, value interface{}) {
	l.logger.Error("Resolver panic", zap.Any("panic", value), zap.Stack("stack"))
}
