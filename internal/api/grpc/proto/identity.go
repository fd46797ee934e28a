// Package proto describes the identity.v1.Identity gRPC service.
//
// Requests and responses are google.protobuf.Struct messages, so the
// service needs no generated message types; the descriptor below plays the
// role of the generated *_grpc.pb.go file.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "identity.v1.Identity"

const (
	MethodRegister         = "Register"
	MethodLogin            = "Login"
	MethodLogout           = "Logout"
	MethodCurrentUser      = "CurrentUser"
	MethodRequestOTP       = "RequestOTP"
	MethodConfirmOTP       = "ConfirmOTP"
	MethodResetPassword    = "ResetPassword"
	MethodGetProfile       = "GetProfile"
	MethodUpdateProfile    = "UpdateProfile"
	MethodUpgradeToPremium = "UpgradeToPremium"
	MethodRecordActivity   = "RecordActivity"
)

// FullMethod returns the gRPC path of method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// IdentityServer is the server API for the Identity service.
type IdentityServer interface {
	Register(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Logout(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CurrentUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RequestOTP(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ConfirmOTP(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResetPassword(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpgradeToPremium(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordActivity(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type serverMethod func(IdentityServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

var serverMethods = map[string]serverMethod{
	MethodRegister:         IdentityServer.Register,
	MethodLogin:            IdentityServer.Login,
	MethodLogout:           IdentityServer.Logout,
	MethodCurrentUser:      IdentityServer.CurrentUser,
	MethodRequestOTP:       IdentityServer.RequestOTP,
	MethodConfirmOTP:       IdentityServer.ConfirmOTP,
	MethodResetPassword:    IdentityServer.ResetPassword,
	MethodGetProfile:       IdentityServer.GetProfile,
	MethodUpdateProfile:    IdentityServer.UpdateProfile,
	MethodUpgradeToPremium: IdentityServer.UpgradeToPremium,
	MethodRecordActivity:   IdentityServer.RecordActivity,
}

var methodOrder = []string{
	MethodRegister,
	MethodLogin,
	MethodLogout,
	MethodCurrentUser,
	MethodRequestOTP,
	MethodConfirmOTP,
	MethodResetPassword,
	MethodGetProfile,
	MethodUpdateProfile,
	MethodUpgradeToPremium,
	MethodRecordActivity,
}

// Identity_ServiceDesc is the grpc.ServiceDesc for the Identity service.
var Identity_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IdentityServer)(nil),
	Methods:     methodDescs(),
	Streams:     []grpc.StreamDesc{},
	Metadata:    "identity/v1/identity.proto",
}

// RegisterIdentityServer registers srv on s.
func RegisterIdentityServer(s grpc.ServiceRegistrar, srv IdentityServer) {
	s.RegisterService(&Identity_ServiceDesc, srv)
}

func methodDescs() []grpc.MethodDesc {
	descs := make([]grpc.MethodDesc, 0, len(methodOrder))
	for _, name := range methodOrder {
		descs = append(descs, grpc.MethodDesc{
			MethodName: name,
			Handler:    unaryHandler(name, serverMethods[name]),
		})
	}
	return descs
}

func unaryHandler(name string, call serverMethod) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(IdentityServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(name),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(IdentityServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// IdentityClient is the client API for the Identity service. Method is one
// of the Method* constants.
type IdentityClient interface {
	Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type identityClient struct {
	cc grpc.ClientConnInterface
}

func NewIdentityClient(cc grpc.ClientConnInterface) IdentityClient {
	return &identityClient{cc: cc}
}

func (c *identityClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
