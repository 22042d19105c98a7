package schedule

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"PharmalyticsSaas/internal/serviceiface"
)

type ScheduleService struct {
	config  map[string]interface{}
	pgxPool *pgxpool.Pool
}

func NewScheduleService(cfg map[string]interface{}, pgxPool *pgxpool.Pool) serviceiface.Service {
	return &ScheduleService{config: cfg, pgxPool: pgxPool}
}

func (s *ScheduleService) Name() string {
	return "schedule"
}

func (s *ScheduleService) Start() error {
	go StartScheduleService(s.pgxPool)
	return nil
}

func (s *ScheduleService) Stop() error {
	// Implement stop logic if needed
	return nil
}
