package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fleetrent-backend/internal/api/grpc/interceptor"
	"fleetrent-backend/internal/security"
)

// StaffFromContext returns the claims the auth interceptor attached to ctx.
func StaffFromContext(ctx context.Context) (*security.StaffClaims, error) {
	claims, ok := interceptor.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "staff claims are not provided")
	}
	return claims, nil
}
