package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Messages are google.protobuf.Struct on both sides, so the service needs no
// generated code.
const ServiceName = "pdm.v1.PredictiveMaintenance"

const (
	MethodGetPredictions    = "/" + ServiceName + "/GetPredictions"
	MethodGetAlerts         = "/" + ServiceName + "/GetAlerts"
	MethodGetHistorical     = "/" + ServiceName + "/GetHistorical"
	MethodRecordMaintenance = "/" + ServiceName + "/RecordMaintenance"
)

type PredictiveMaintenanceServer interface {
	GetPredictions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAlerts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetHistorical(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordMaintenance(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(PredictiveMaintenanceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// methodHandler matches grpc.MethodDesc.Handler.
type methodHandler = func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error)

func unaryHandler(fullMethod string, call unaryMethod) methodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PredictiveMaintenanceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PredictiveMaintenanceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PredictiveMaintenanceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetPredictions",
			Handler:    unaryHandler(MethodGetPredictions, PredictiveMaintenanceServer.GetPredictions),
		},
		{
			MethodName: "GetAlerts",
			Handler:    unaryHandler(MethodGetAlerts, PredictiveMaintenanceServer.GetAlerts),
		},
		{
			MethodName: "GetHistorical",
			Handler:    unaryHandler(MethodGetHistorical, PredictiveMaintenanceServer.GetHistorical),
		},
		{
			MethodName: "RecordMaintenance",
			Handler:    unaryHandler(MethodRecordMaintenance, PredictiveMaintenanceServer.RecordMaintenance),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pdm/v1/pdm.proto",
}

func RegisterPredictiveMaintenanceServer(s grpc.ServiceRegistrar, srv PredictiveMaintenanceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls the service over any connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPredictions(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetPredictions, in, opts...)
}

func (c *Client) GetAlerts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetAlerts, in, opts...)
}

func (c *Client) GetHistorical(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetHistorical, in, opts...)
}

func (c *Client) RecordMaintenance(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodRecordMaintenance, in, opts...)
}
