package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSecurityLogger_SeverityAndMasking(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := WithZap(zap.New(core), "jobboard-backend", "test")

	sl.LogLoginFailed(context.Background(), "Ada@Example.com", "10.0.0.1", "curl", "req-1")
	sl.LogLoginThrottled(context.Background(), "ada@example.com", "10.0.0.1", "req-2", 42*time.Second)
	sl.LogUserEvent(context.Background(), EventRoleAssigned, "7", nil)

	entries := logs.All()
	require.Len(t, entries, 3)

	failed := entries[0]
	assert.Equal(t, zapcore.WarnLevel, failed.Level)
	fields := failed.ContextMap()
	assert.Equal(t, "WARN", fields["severity"])
	assert.NotContains(t, fields["subject_value"], "Ada@Example.com")

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "HIGH", entries[1].ContextMap()["severity"])

	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
}

func TestSecurityLogger_NilSafe(t *testing.T) {
	var sl *SecurityLogger
	assert.NotPanics(t, func() {
		sl.Log(context.Background(), SecurityEvent{Event: EventAuthFailed})
	})
}

func TestSeverityOf_Unknown(t *testing.T) {
	assert.Equal(t, SeverityWARN, SeverityOf(EventType("something_new")))
	assert.Equal(t, SeverityINFO, SeverityOf(EventLoginSuccess))
}
