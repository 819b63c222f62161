package interceptor

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"fleetrent-backend/internal/logger"
)

const RequestIDMetadataKey = "x-request-id"

// RequestID reuses the caller's x-request-id or mints one, echoes it in the
// response header and attaches it to the logging context.
func RequestID() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		id := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if ids := md.Get(RequestIDMetadataKey); len(ids) > 0 {
				id = ids[0]
			}
		}
		if id == "" {
			id = uuid.NewString()
		}
		if err := grpc.SetHeader(ctx, metadata.Pairs(RequestIDMetadataKey, id)); err != nil {
			logger.Debug("Failed to set request id header", "error", err)
		}
		return handler(logger.WithRequestID(ctx, id), req)
	}
}
