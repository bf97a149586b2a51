// Package logsink is the gRPC contract between services and the log sink.
// Messages are structpb.Struct values so no generated code is needed:
//
//	request:  {"logstream": string, "payload": string}
//	response: {"msg": string, "is_error": bool}
package logsink

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName   = "logsink.Log"
	sendLogMethod = "/logsink.Log/SendLog"
)

type Logstream string

const (
	LogstreamPayments Logstream = "payments"
	LogstreamFatal    Logstream = "fatal"
	LogstreamNats     Logstream = "nats"
	LogstreamWebhooks Logstream = "webhooks"
)

var Logstreams = [...]Logstream{LogstreamPayments, LogstreamFatal, LogstreamNats, LogstreamWebhooks}

func (l Logstream) String() string {
	return string(l)
}

func ParseLogstream(s string) (Logstream, bool) {
	for _, l := range Logstreams {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Server is implemented by the sink process.
type Server interface {
	SendLog(ctx context.Context, logstream Logstream, payload string) error
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*Server)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SendLog", Handler: sendLogHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "logsink",
}

func RegisterServer(s grpc.ServiceRegistrar, srv Server) {
	s.RegisterService(&serviceDesc, srv)
}

func sendLogHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	call := func(ctx context.Context, req any) (any, error) {
		return handleSendLog(ctx, srv.(Server), req.(*structpb.Struct))
	}
	if interceptor == nil {
		return call(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: sendLogMethod}
	return interceptor(ctx, in, info, call)
}

func handleSendLog(ctx context.Context, srv Server, req *structpb.Struct) (*structpb.Struct, error) {
	stream, ok := ParseLogstream(req.GetFields()["logstream"].GetStringValue())
	if !ok {
		return response(fmt.Sprintf("unknown logstream %q", req.GetFields()["logstream"].GetStringValue()), true), nil
	}

	if err := srv.SendLog(ctx, stream, req.GetFields()["payload"].GetStringValue()); err != nil {
		return response(err.Error(), true), nil
	}
	return response("ok", false), nil
}

func response(msg string, isError bool) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"msg":      structpb.NewStringValue(msg),
		"is_error": structpb.NewBoolValue(isError),
	}}
}

type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) SendLog(ctx context.Context, logstream Logstream, payload string) error {
	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		"logstream": structpb.NewStringValue(logstream.String()),
		"payload":   structpb.NewStringValue(payload),
	}}

	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, sendLogMethod, req, resp); err != nil {
		return err
	}

	if resp.GetFields()["is_error"].GetBoolValue() {
		return fmt.Errorf("log sink: %s", resp.GetFields()["msg"].GetStringValue())
	}
	return nil
}
