package grpc

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/simaogato/wealthflow-dashboard/internal/logger"
	"github.com/simaogato/wealthflow-dashboard/internal/usecase/session"
)

// TokenValidator verifies session tokens
type TokenValidator interface {
	Validate(token string) (*session.Claims, error)
}

// AuthInterceptor returns a gRPC unary server interceptor that validates
// the session token from the "authorization" metadata.
// Methods listed in public skip the check.
// If the token is missing or invalid, it returns status.Unauthenticated.
// If valid, the handler runs with a logger tagged with the session ID.
func AuthInterceptor(validator TokenValidator, public ...string) grpc.UnaryServerInterceptor {
	skip := make(map[string]bool, len(public))
	for _, method := range public {
		skip[method] = true
	}

	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if skip[info.FullMethod] {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization header")
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeaders[0], "Bearer "))
		claims, err := validator.Validate(token)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		log := logger.FromContext(ctx).With("session_id", claims.ID, "method", info.FullMethod)
		return handler(logger.ToContext(ctx, log), req)
	}
}
