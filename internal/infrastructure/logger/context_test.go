package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestWithContext(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := WithContext(context.Background(), logger)
	assert.NotNil(t, FromContext(ctx))
}

func TestFromContext_NotFound(t *testing.T) {
	// Should return a usable no-op logger
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Info("test message")
		logger.With(zap.String("key", "value")).Error("with field")
	})
}

func TestFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), LoggerKey, "not a logger")
	logger := FromContext(ctx)
	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Info("test") })
}

func TestWithRequestID(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx, enriched := WithRequestID(context.Background(), logger, "req-123")
	assert.NotNil(t, enriched)
	assert.Equal(t, "req-123", GetRequestID(ctx))

	// second call overrides
	ctx, _ = WithRequestID(ctx, logger, "req-456")
	assert.Equal(t, "req-456", GetRequestID(ctx))
}

func TestWithUserID(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx, enriched := WithUserID(context.Background(), logger, "user-789")
	assert.NotNil(t, enriched)
	assert.Equal(t, "user-789", GetUserID(ctx))
}

func TestGetters_NotFound(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetUserID(ctx))
}

func TestContextChaining(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := context.Background()
	ctx, logger = WithRequestID(ctx, logger, "req-1")
	ctx, logger = WithUserID(ctx, logger, "user-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "user-1", GetUserID(ctx))
	assert.NotNil(t, logger)
}

func TestL_EnrichesWithContextFields(t *testing.T) {
	var buf bytes.Buffer
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(&buf), zapcore.DebugLevel)
	baseLogger := zap.New(core)

	ctx := context.Background()
	ctx = context.WithValue(ctx, RequestIDKey, "req-123")
	ctx = context.WithValue(ctx, UserIDKey, "user-789")
	ctx = WithContext(ctx, baseLogger)

	L(ctx).Info("test message", zap.String("extra_field", "extra_value"))

	output := buf.String()
	assert.Contains(t, output, `"request_id":"req-123"`)
	assert.Contains(t, output, `"user_id":"user-789"`)
	assert.Contains(t, output, `"extra_field":"extra_value"`)
	assert.Contains(t, output, `"msg":"test message"`)
}

func TestL_EmptyContext(t *testing.T) {
	var buf bytes.Buffer
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(&buf), zapcore.DebugLevel)
	ctx := WithContext(context.Background(), zap.New(core))

	L(ctx).Info("test")

	output := buf.String()
	assert.Contains(t, output, `"msg":"test"`)
	assert.NotContains(t, output, `"request_id"`)
	assert.NotContains(t, output, `"user_id"`)
}
