package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContextRoundTrip(t *testing.T) {
	log := zap.NewNop()
	ctx := WithContext(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))
}

func TestFromContextNopFallback(t *testing.T) {
	log := FromContext(context.Background())
	assert.NotNil(t, log)
	assert.NotPanics(t, func() { log.Info("ignored") })
}

func TestWithRequestID(t *testing.T) {
	core, recorded := observer.New(zap.InfoLevel)

	ctx, log := WithRequestID(context.Background(), zap.New(core), "req-9")
	assert.Equal(t, "req-9", GetRequestID(ctx))

	log.Info("probe")
	entries := recorded.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "req-9", entries[0].ContextMap()["request_id"])

	// the tagged logger is also the one carried by the returned context
	FromContext(ctx).Info("via context")
	assert.Equal(t, "req-9", recorded.All()[1].ContextMap()["request_id"])
}

func TestWithUserID(t *testing.T) {
	core, recorded := observer.New(zap.InfoLevel)

	ctx, log := WithUserID(context.Background(), zap.New(core), "user-3")
	assert.Equal(t, "user-3", GetUserID(ctx))

	log.Info("probe")
	assert.Equal(t, "user-3", recorded.All()[0].ContextMap()["user_id"])
}

func TestGetIDsEmptyWhenAbsent(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetUserID(ctx))
}
