package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fleetrent-backend/internal/domain"
)

const MonitoringServiceName = "fleetrent.reporting.v1.MonitoringService"

const (
	MonitoringService_FindRents_FullMethodName              = "/" + MonitoringServiceName + "/FindRents"
	MonitoringService_FindIncome_FullMethodName             = "/" + MonitoringServiceName + "/FindIncome"
	MonitoringService_FindIncomeByPersentage_FullMethodName = "/" + MonitoringServiceName + "/FindIncomeByPersentage"
	MonitoringService_FindHistory_FullMethodName            = "/" + MonitoringServiceName + "/FindHistory"
	MonitoringService_FindRentsByMonth_FullMethodName       = "/" + MonitoringServiceName + "/FindRentsByMonth"
	MonitoringService_FindIncomeByMonth_FullMethodName      = "/" + MonitoringServiceName + "/FindIncomeByMonth"
)

type PageRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

type MonthRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type Empty struct{}

type CountResponse struct {
	Count int64 `json:"count"`
}

// MonitoringServer is the server API for the reporting service.
type MonitoringServer interface {
	FindRents(context.Context, *PageRequest) (*CountResponse, error)
	FindIncome(context.Context, *PageRequest) (*domain.SummaryReport, error)
	FindIncomeByPersentage(context.Context, *Empty) (*domain.OwnersIncome, error)
	FindHistory(context.Context, *PageRequest) (*domain.HistoryReport, error)
	FindRentsByMonth(context.Context, *MonthRequest) (*CountResponse, error)
	FindIncomeByMonth(context.Context, *MonthRequest) (*domain.SummaryReport, error)
}

// UnimplementedMonitoringServer answers every method with codes.Unimplemented.
type UnimplementedMonitoringServer struct{}

func (UnimplementedMonitoringServer) FindRents(context.Context, *PageRequest) (*CountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindRents not implemented")
}
func (UnimplementedMonitoringServer) FindIncome(context.Context, *PageRequest) (*domain.SummaryReport, error) {
	return nil, status.Error(codes.Unimplemented, "method FindIncome not implemented")
}
func (UnimplementedMonitoringServer) FindIncomeByPersentage(context.Context, *Empty) (*domain.OwnersIncome, error) {
	return nil, status.Error(codes.Unimplemented, "method FindIncomeByPersentage not implemented")
}
func (UnimplementedMonitoringServer) FindHistory(context.Context, *PageRequest) (*domain.HistoryReport, error) {
	return nil, status.Error(codes.Unimplemented, "method FindHistory not implemented")
}
func (UnimplementedMonitoringServer) FindRentsByMonth(context.Context, *MonthRequest) (*CountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindRentsByMonth not implemented")
}
func (UnimplementedMonitoringServer) FindIncomeByMonth(context.Context, *MonthRequest) (*domain.SummaryReport, error) {
	return nil, status.Error(codes.Unimplemented, "method FindIncomeByMonth not implemented")
}

func RegisterMonitoringServer(s grpc.ServiceRegistrar, srv MonitoringServer) {
	s.RegisterService(&MonitoringService_ServiceDesc, srv)
}

func _MonitoringService_FindRents_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MonitoringServer).FindRents(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MonitoringService_FindRents_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MonitoringServer).FindRents(ctx, req.(*PageRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MonitoringService_FindIncome_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MonitoringServer).FindIncome(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MonitoringService_FindIncome_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MonitoringServer).FindIncome(ctx, req.(*PageRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MonitoringService_FindIncomeByPersentage_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MonitoringServer).FindIncomeByPersentage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MonitoringService_FindIncomeByPersentage_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MonitoringServer).FindIncomeByPersentage(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _MonitoringService_FindHistory_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MonitoringServer).FindHistory(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MonitoringService_FindHistory_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MonitoringServer).FindHistory(ctx, req.(*PageRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MonitoringService_FindRentsByMonth_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MonthRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MonitoringServer).FindRentsByMonth(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MonitoringService_FindRentsByMonth_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MonitoringServer).FindRentsByMonth(ctx, req.(*MonthRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MonitoringService_FindIncomeByMonth_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MonthRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MonitoringServer).FindIncomeByMonth(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MonitoringService_FindIncomeByMonth_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MonitoringServer).FindIncomeByMonth(ctx, req.(*MonthRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// MonitoringService_ServiceDesc is the grpc.ServiceDesc for the reporting service.
var MonitoringService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: MonitoringServiceName,
	HandlerType: (*MonitoringServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "FindRents", Handler: _MonitoringService_FindRents_Handler},
		{MethodName: "FindIncome", Handler: _MonitoringService_FindIncome_Handler},
		{MethodName: "FindIncomeByPersentage", Handler: _MonitoringService_FindIncomeByPersentage_Handler},
		{MethodName: "FindHistory", Handler: _MonitoringService_FindHistory_Handler},
		{MethodName: "FindRentsByMonth", Handler: _MonitoringService_FindRentsByMonth_Handler},
		{MethodName: "FindIncomeByMonth", Handler: _MonitoringService_FindIncomeByMonth_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fleetrent/reporting/v1/monitoring.proto",
}

// MonitoringClient calls the reporting service with the structpb codec.
type MonitoringClient struct {
	cc grpc.ClientConnInterface
}

func NewMonitoringClient(cc grpc.ClientConnInterface) *MonitoringClient {
	return &MonitoringClient{cc: cc}
}

func (c *MonitoringClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *MonitoringClient) FindRents(ctx context.Context, in *PageRequest, opts ...grpc.CallOption) (*CountResponse, error) {
	out := new(CountResponse)
	if err := c.invoke(ctx, MonitoringService_FindRents_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MonitoringClient) FindIncome(ctx context.Context, in *PageRequest, opts ...grpc.CallOption) (*domain.SummaryReport, error) {
	out := new(domain.SummaryReport)
	if err := c.invoke(ctx, MonitoringService_FindIncome_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MonitoringClient) FindIncomeByPersentage(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*domain.OwnersIncome, error) {
	out := new(domain.OwnersIncome)
	if err := c.invoke(ctx, MonitoringService_FindIncomeByPersentage_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MonitoringClient) FindHistory(ctx context.Context, in *PageRequest, opts ...grpc.CallOption) (*domain.HistoryReport, error) {
	out := new(domain.HistoryReport)
	if err := c.invoke(ctx, MonitoringService_FindHistory_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MonitoringClient) FindRentsByMonth(ctx context.Context, in *MonthRequest, opts ...grpc.CallOption) (*CountResponse, error) {
	out := new(CountResponse)
	if err := c.invoke(ctx, MonitoringService_FindRentsByMonth_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MonitoringClient) FindIncomeByMonth(ctx context.Context, in *MonthRequest, opts ...grpc.CallOption) (*domain.SummaryReport, error) {
	out := new(domain.SummaryReport)
	if err := c.invoke(ctx, MonitoringService_FindIncomeByMonth_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
