package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "holdings.v1.DashboardService"

	LoginMethod         = "/" + ServiceName + "/Login"
	GetDashboardMethod  = "/" + ServiceName + "/GetDashboard"
	ListRefreshesMethod = "/" + ServiceName + "/ListRefreshes"
)

// DashboardServiceServer is the server API for the DashboardService service.
// Messages are protobuf well-known types, so no generated package is needed.
type DashboardServiceServer interface {
	// Login exchanges the dashboard password for a session token
	Login(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	// GetDashboard returns the dashboard view as a Struct
	GetDashboard(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	// ListRefreshes returns the most recent refresh records
	ListRefreshes(context.Context, *wrapperspb.Int32Value) (*structpb.Struct, error)
}

// RegisterDashboardServiceServer registers srv on s
func RegisterDashboardServiceServer(s grpc.ServiceRegistrar, srv DashboardServiceServer) {
	s.RegisterService(&DashboardServiceDesc, srv)
}

// DashboardServiceDesc describes the holdings.v1.DashboardService service
var DashboardServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DashboardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: loginHandler},
		{MethodName: "GetDashboard", Handler: getDashboardHandler},
		{MethodName: "ListRefreshes", Handler: listRefreshesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "holdings/v1/dashboard.proto",
}

func loginHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServiceServer).Login(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LoginMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DashboardServiceServer).Login(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func getDashboardHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServiceServer).GetDashboard(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetDashboardMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DashboardServiceServer).GetDashboard(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func listRefreshesHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.Int32Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServiceServer).ListRefreshes(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListRefreshesMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DashboardServiceServer).ListRefreshes(ctx, req.(*wrapperspb.Int32Value))
	}
	return interceptor(ctx, in, info, handler)
}

// Client is a thin client for DashboardService
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a new DashboardService client on cc
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Login returns a session token for password
func (c *Client) Login(ctx context.Context, password string, opts ...grpc.CallOption) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, LoginMethod, wrapperspb.String(password), out, opts...); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}

// GetDashboard fetches the dashboard view. The context must carry the session token
// in the "authorization" metadata.
func (c *Client) GetDashboard(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetDashboardMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRefreshes fetches up to limit refresh records
func (c *Client) ListRefreshes(ctx context.Context, limit int32, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ListRefreshesMethod, wrapperspb.Int32(limit), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
