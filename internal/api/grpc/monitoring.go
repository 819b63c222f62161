package grpc

import (
	"context"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/service"
)

// MonitoringHandler serves the reporting RPCs from the monitoring service.
type MonitoringHandler struct {
	UnimplementedMonitoringServer
	svc service.MonitoringService
}

func NewMonitoringHandler(svc service.MonitoringService) *MonitoringHandler {
	return &MonitoringHandler{svc: svc}
}

func (h *MonitoringHandler) audit(ctx context.Context, method string) error {
	staff, err := StaffFromContext(ctx)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Report requested", "method", method, "name", staff.Name, "role", staff.Role)
	return nil
}

func (h *MonitoringHandler) FindRents(ctx context.Context, req *PageRequest) (*CountResponse, error) {
	if err := h.audit(ctx, "FindRents"); err != nil {
		return nil, err
	}
	count, err := h.svc.FindRents(ctx, req.Page, req.PageSize)
	if err != nil {
		return nil, toStatus(ctx, "FindRents", err)
	}
	return &CountResponse{Count: count}, nil
}

func (h *MonitoringHandler) FindIncome(ctx context.Context, req *PageRequest) (*domain.SummaryReport, error) {
	if err := h.audit(ctx, "FindIncome"); err != nil {
		return nil, err
	}
	report, err := h.svc.FindIncome(ctx, req.Page, req.PageSize)
	if err != nil {
		return nil, toStatus(ctx, "FindIncome", err)
	}
	return report, nil
}

func (h *MonitoringHandler) FindIncomeByPersentage(ctx context.Context, _ *Empty) (*domain.OwnersIncome, error) {
	if err := h.audit(ctx, "FindIncomeByPersentage"); err != nil {
		return nil, err
	}
	income, err := h.svc.FindIncomeByPersentage(ctx)
	if err != nil {
		return nil, toStatus(ctx, "FindIncomeByPersentage", err)
	}
	return income, nil
}

func (h *MonitoringHandler) FindHistory(ctx context.Context, req *PageRequest) (*domain.HistoryReport, error) {
	if err := h.audit(ctx, "FindHistory"); err != nil {
		return nil, err
	}
	report, err := h.svc.FindHistory(ctx, req.Page, req.PageSize)
	if err != nil {
		return nil, toStatus(ctx, "FindHistory", err)
	}
	return report, nil
}

func (h *MonitoringHandler) FindRentsByMonth(ctx context.Context, req *MonthRequest) (*CountResponse, error) {
	if err := h.audit(ctx, "FindRentsByMonth"); err != nil {
		return nil, err
	}
	count, err := h.svc.FindRentsByMonth(ctx, req.Year, req.Month)
	if err != nil {
		return nil, toStatus(ctx, "FindRentsByMonth", err)
	}
	return &CountResponse{Count: count}, nil
}

func (h *MonitoringHandler) FindIncomeByMonth(ctx context.Context, req *MonthRequest) (*domain.SummaryReport, error) {
	if err := h.audit(ctx, "FindIncomeByMonth"); err != nil {
		return nil, err
	}
	report, err := h.svc.FindIncomeByMonth(ctx, req.Year, req.Month)
	if err != nil {
		return nil, toStatus(ctx, "FindIncomeByMonth", err)
	}
	return report, nil
}
