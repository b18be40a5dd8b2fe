package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pageza/recipe-realm/backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func query() (string, int64) {
	return `SELECT * FROM "recipes" WHERE id = 'x'`, 0
}

func TestGORMLoggerRoutesToZap(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	gl := newGORMLogger(&config.Config{Env: config.Development}, zap.New(core))
	ctx := context.Background()

	gl.Trace(ctx, time.Now(), query, gorm.ErrRecordNotFound)
	gl.Trace(ctx, time.Now(), query, nil)
	assert.Zero(t, logs.Len(), "missing records and fast queries stay quiet")

	gl.Trace(ctx, time.Now(), query, errors.New("relation does not exist"))
	require.Equal(t, 1, logs.Len())
	entry := logs.TakeAll()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "gorm", entry.LoggerName)
	assert.Contains(t, entry.ContextMap()["message"], "relation does not exist")

	gl.Trace(ctx, time.Now().Add(-time.Second), query, nil)
	require.Equal(t, 1, logs.Len())
	entry = logs.TakeAll()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Contains(t, entry.ContextMap()["message"], "SLOW SQL")
}

func TestGORMLoggerProductionLevel(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	gl := newGORMLogger(&config.Config{Env: config.Production}, zap.New(core))

	gl.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)
	assert.Zero(t, logs.Len())
}
