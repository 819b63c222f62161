package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))

	ctx = WithRequestID(ctx, "req-1")
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.NotNil(t, FromContext(ctx))
}

func TestInitialize(t *testing.T) {
	Initialize("debug", "json")
	assert.True(t, Get().Enabled(context.Background(), -4))

	Initialize("bogus", "text")
	assert.False(t, Get().Enabled(context.Background(), -4))
}
