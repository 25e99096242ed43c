package services

import (
	"context"

	"github.com/charmbracelet/log"

	model "taskdesk.com/taskdesk/pkg/models"
)

type DashboardService struct {
	api    StatisticsAPI
	logger *log.Logger
}

func NewDashboardService(api StatisticsAPI, logger *log.Logger) *DashboardService {
	return &DashboardService{api: api, logger: logger}
}

func (s *DashboardService) Statistics(ctx context.Context) (model.Statistics, error) {
	stats, err := s.api.Statistics(ctx)
	if err != nil {
		s.logger.Error("Failed to load statistics", "err", err)
		return model.Statistics{}, err
	}
	return stats, nil
}
