package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func sqlFunc() (string, int64) {
	return "SELECT * FROM company", 3
}

func TestLoggerTrace(t *testing.T) {
	t.Run("failed query", func(t *testing.T) {
		core, recorded := observer.New(zap.DebugLevel)
		l := NewLogger(zap.New(core))

		l.Trace(context.Background(), time.Now(), sqlFunc, errors.New("connection reset"))

		assert.Equal(t, 1, recorded.FilterMessage("Query failed").Len())
		assert.Equal(t, 1, recorded.FilterField(zap.String("sql", "SELECT * FROM company")).Len())
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		core, recorded := observer.New(zap.DebugLevel)
		l := NewLogger(zap.New(core))

		l.Trace(context.Background(), time.Now(), sqlFunc, gorm.ErrRecordNotFound)

		assert.Equal(t, 0, recorded.Len())
	})

	t.Run("slow query", func(t *testing.T) {
		core, recorded := observer.New(zap.DebugLevel)
		l := NewLogger(zap.New(core))

		l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFunc, nil)

		assert.Equal(t, 1, recorded.FilterMessage("Slow query").Len())
	})

	t.Run("fast query is silent at warn level", func(t *testing.T) {
		core, recorded := observer.New(zap.DebugLevel)
		l := NewLogger(zap.New(core))

		l.Trace(context.Background(), time.Now(), sqlFunc, nil)

		assert.Equal(t, 0, recorded.Len())
	})

	t.Run("info level logs every query", func(t *testing.T) {
		core, recorded := observer.New(zap.DebugLevel)
		l := NewLogger(zap.New(core)).LogMode(gormlogger.Info)

		l.Trace(context.Background(), time.Now(), sqlFunc, nil)

		assert.Equal(t, 1, recorded.FilterMessage("Query").Len())
	})

	t.Run("silent", func(t *testing.T) {
		core, recorded := observer.New(zap.DebugLevel)
		l := NewLogger(zap.New(core)).LogMode(gormlogger.Silent)

		l.Trace(context.Background(), time.Now(), sqlFunc, errors.New("boom"))
		l.Error(context.Background(), "boom %d", 1)

		assert.Equal(t, 0, recorded.Len())
	})
}

func TestLoggerLogModeCopies(t *testing.T) {
	l := NewLogger(zap.NewNop())
	quiet := l.LogMode(gormlogger.Silent)

	assert.Equal(t, gormlogger.Warn, l.level, "LogMode should not mutate the receiver")
	assert.Equal(t, gormlogger.Silent, quiet.(*Logger).level)
}

func TestLoggerLevels(t *testing.T) {
	core, recorded := observer.New(zap.DebugLevel)
	l := NewLogger(zap.New(core))

	l.Info(context.Background(), "hidden %s", "info")
	l.Warn(context.Background(), "visible %s", "warn")
	l.Error(context.Background(), "visible %s", "error")

	assert.Equal(t, 0, recorded.FilterMessage("hidden info").Len())
	assert.Equal(t, 1, recorded.FilterMessage("visible warn").Len())
	assert.Equal(t, 1, recorded.FilterMessage("visible error").Len())
}
