package interceptor

import (
	"context"
	"runtime/debug"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fashionswap-backend/internal/logger"
)

// Logging logs each unary call with its code and latency, and turns a
// handler panic into codes.Internal.
func Logging() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic in gRPC handler", "method", info.FullMethod, "panic", r, "stack", string(debug.Stack()))
				resp, err = nil, status.Error(codes.Internal, "internal error")
			}
			code := status.Code(err)
			args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
			if code == codes.Internal || code == codes.Unknown {
				logger.Error("gRPC call failed", append(args, "error", err)...)
				return
			}
			logger.Info("gRPC call", args...)
		}()
		return handler(ctx, req)
	}
}
