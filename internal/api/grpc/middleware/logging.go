package middleware

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/identity-server/internal/logger"
)

// RequestIDHeader is the response header carrying the request ID.
const RequestIDHeader = "x-request-id"

// Logging is a unary interceptor that logs gRPC requests and results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC tags each unary request with a ULID and logs method, duration
// and status.
func (l *Logging) HandleGRPC(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	requestID := ulid.Make().String()

	// Outside a real server transport there is no stream to attach to.
	_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID))

	log := l.logger.With("request_id", requestID, "method", info.FullMethod)
	log.Debug("gRPC request started")

	resp, err := handler(ctx, req)

	statusCode := codes.OK
	if err != nil {
		if st, ok := status.FromError(err); ok {
			statusCode = st.Code()
		} else {
			statusCode = codes.Internal
		}
	}

	log.Info("gRPC request completed",
		"duration_ms", time.Since(start).Milliseconds(),
		"status", statusCode.String())

	if err != nil && statusCode == codes.Internal {
		log.Error("gRPC request failed",
			"error", err.Error())
	}

	return resp, err
}
