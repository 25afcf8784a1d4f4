package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Saipoo/foodorder/internal/domain"
	"github.com/Saipoo/foodorder/internal/repo"
	"go.uber.org/zap"
)

// ReportService aggregates revenue and order counts for the admin dashboard.
// Everything here is derived and read-only.
type ReportService struct {
	orderRepo   repo.OrderRepository
	revenueRepo repo.RevenueRepository
	logger      *zap.SugaredLogger
}

func NewReportService(orderRepo repo.OrderRepository, revenueRepo repo.RevenueRepository, logger *zap.SugaredLogger) *ReportService {
	return &ReportService{
		orderRepo:   orderRepo,
		revenueRepo: revenueRepo,
		logger:      logger,
	}
}

type RevenueReport struct {
	TotalRevenue   float64               `json:"total_revenue"`
	TodayRevenue   float64               `json:"today_revenue"`
	RevenueHistory []domain.RevenueEntry `json:"revenue_history"`
}

type Stats struct {
	TotalOrders     int64   `json:"total_orders"`
	PendingOrders   int64   `json:"pending_orders"`
	CompletedOrders int64   `json:"completed_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
}

func (s *ReportService) Revenue(ctx context.Context) (*RevenueReport, error) {
	entries, err := s.revenueRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list revenue: %w", err)
	}

	year, month, day := time.Now().Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.Local)

	report := &RevenueReport{RevenueHistory: entries}
	for _, entry := range entries {
		report.TotalRevenue += entry.Amount
		if !entry.Date.Before(midnight) {
			report.TodayRevenue += entry.Amount
		}
	}

	return report, nil
}

func (s *ReportService) Stats(ctx context.Context) (*Stats, error) {
	total, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	pending, err := s.orderRepo.CountByStatus(ctx, domain.StatusPlaced, domain.StatusPreparing, domain.StatusReady)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}

	completed, err := s.orderRepo.CountByStatus(ctx, domain.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed orders: %w", err)
	}

	entries, err := s.revenueRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list revenue: %w", err)
	}

	stats := &Stats{
		TotalOrders:     total,
		PendingOrders:   pending,
		CompletedOrders: completed,
	}
	for _, entry := range entries {
		stats.TotalRevenue += entry.Amount
	}

	return stats, nil
}
