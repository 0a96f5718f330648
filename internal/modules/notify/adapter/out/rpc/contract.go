package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "notifier"
	serviceName       = "pomoterm.notify.v1.Notifier"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodNotify      = "/" + serviceName + "/Notify"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "POMOTERM_PLUGIN",
	MagicCookieValue: "pomoterm",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type NotifyRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type NotifyResponse struct {
	Delivered bool `json:"delivered"`
}

type NotifierServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Notify(ctx context.Context, in *NotifyRequest) (*NotifyResponse, error)
}

type NotifierClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Notify(ctx context.Context, in *NotifyRequest) (*NotifyResponse, error)
}

type notifierClient struct {
	conn *grpc.ClientConn
}

func NewNotifierClient(conn *grpc.ClientConn) NotifierClient {
	return &notifierClient{conn: conn}
}

func (c *notifierClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *notifierClient) Notify(ctx context.Context, in *NotifyRequest) (*NotifyResponse, error) {
	out := &NotifyResponse{}
	if err := c.conn.Invoke(ctx, methodNotify, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterNotifierServer(server grpc.ServiceRegistrar, impl NotifierServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*NotifierServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Notify",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &NotifyRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Notify(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodNotify}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*NotifyRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Notify(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/notifier-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl NotifierServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterNotifierServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewNotifierClient(conn), nil
}

func PluginMap(impl NotifierServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
