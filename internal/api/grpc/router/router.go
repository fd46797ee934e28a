package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/identity-server/internal/api/grpc/handler"
	"github.com/dtroode/identity-server/internal/api/grpc/middleware"
	"github.com/dtroode/identity-server/internal/api/grpc/proto"
	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

// publicMethods are reachable without a session token.
var publicMethods = map[string]struct{}{
	proto.FullMethod(proto.MethodRegister):      {},
	proto.FullMethod(proto.MethodLogin):         {},
	proto.FullMethod(proto.MethodRequestOTP):    {},
	proto.FullMethod(proto.MethodConfirmOTP):    {},
	proto.FullMethod(proto.MethodResetPassword): {},
}

// Router builds the gRPC server of the identity service.
type Router struct {
	identity       handler.IdentityService
	authenticator  middleware.Authenticator
	contextManager model.ContextManager
	exposeOTP      bool
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	identity handler.IdentityService,
	authenticator middleware.Authenticator,
	contextManager model.ContextManager,
	exposeOTP bool,
	logger *logger.Logger,
) *Router {
	return &Router{
		identity:       identity,
		authenticator:  authenticator,
		contextManager: contextManager,
		exposeOTP:      exposeOTP,
		logger:         logger,
	}
}

// requiresAuth selects identity methods outside publicMethods. Other
// services, such as health checks, are left open.
func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	if c.Service != proto.ServiceName {
		return false
	}
	_, public := publicMethods[c.FullMethod()]
	return !public
}

// Register registers all gRPC services and middleware.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authenticator, r.contextManager, r.logger)

	s := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
		grpc.ChainStreamInterceptor(
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
	)
	r.registerIdentityRoutes(s)
	r.registerHealth(s)

	return s
}

func (r *Router) registerIdentityRoutes(server *grpc.Server) {
	identityHandler := handler.NewIdentity(r.identity, r.contextManager, r.exposeOTP, r.logger)
	proto.RegisterIdentityServer(server, identityHandler)
}

func (r *Router) registerHealth(server *grpc.Server) {
	healthServer := health.NewServer()
	healthServer.SetServingStatus(proto.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)
}
