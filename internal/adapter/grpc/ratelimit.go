package grpc

import (
	"context"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/simaogato/wealthflow-dashboard/internal/logger"
)

// RateLimitInterceptor rejects calls to the listed methods with ResourceExhausted
// once the limiter runs dry. Other methods pass through untouched.
func RateLimitInterceptor(limiter *rate.Limiter, methods ...string) grpc.UnaryServerInterceptor {
	limited := make(map[string]bool, len(methods))
	for _, method := range methods {
		limited[method] = true
	}

	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if limited[info.FullMethod] && !limiter.Allow() {
			logger.FromContext(ctx).Warn("rate limit exceeded", "method", info.FullMethod)
			return nil, status.Error(codes.ResourceExhausted, "too many requests")
		}
		return handler(ctx, req)
	}
}
