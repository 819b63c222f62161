package interceptor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/security"
)

const findHistory = "/fleetrent.reporting.v1.MonitoringService/FindHistory"

func withToken(t *testing.T, tm security.TokenManager, role string) context.Context {
	t.Helper()
	token, _, err := tm.GenerateAccessToken("tester", role)
	require.NoError(t, err)
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
}

func TestAuthInterceptor(t *testing.T) {
	tm := security.NewTokenManager("secret", time.Hour)
	unary := NewAuthInterceptor(tm).Unary()
	info := &grpc.UnaryServerInfo{FullMethod: findHistory}

	var seen *security.StaffClaims
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		seen, _ = ClaimsFromContext(ctx)
		return "ok", nil
	}

	t.Run("Public method skips auth", func(t *testing.T) {
		resp, err := unary(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, handler)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp)
	})

	t.Run("No metadata", func(t *testing.T) {
		_, err := unary(context.Background(), nil, info, handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("Empty authorization", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", ""))
		_, err := unary(ctx, nil, info, handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("Invalid token", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer nope"))
		_, err := unary(ctx, nil, info, handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("Operator denied", func(t *testing.T) {
		_, err := unary(withToken(t, tm, config.RoleOperator), nil, info, handler)
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("Finance allowed", func(t *testing.T) {
		seen = nil
		resp, err := unary(withToken(t, tm, config.RoleFinance), nil, info, handler)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp)
		require.NotNil(t, seen)
		assert.Equal(t, "tester", seen.Name)
		assert.Equal(t, config.RoleFinance, seen.Role)
	})
}

func TestRequestID(t *testing.T) {
	unary := RequestID()
	info := &grpc.UnaryServerInfo{FullMethod: findHistory}

	var got string
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		got = logger.RequestID(ctx)
		return nil, nil
	}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDMetadataKey, "req-7"))
	_, err := unary(ctx, nil, info, handler)
	require.NoError(t, err)
	assert.Equal(t, "req-7", got)

	_, err = unary(context.Background(), nil, info, handler)
	require.NoError(t, err)
	assert.Len(t, got, 36)
}
