package jobs

import (
	"fmt"
	"log"

	"PharmalyticsSaas/internal/logger"
	"PharmalyticsSaas/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CronService struct {
	config map[string]interface{}
	db     *pgxpool.Pool
}

func NewCronService(cfg map[string]interface{}, db *pgxpool.Pool) serviceiface.Service {
	return &CronService{
		config: cfg,
		db:     db,
	}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	log.Println("Starting cron service...")

	aggConfig := NewDefaultAggregateConfig()

	// Override from services.yaml if provided
	if s.config != nil {
		if schedule, ok := s.config["aggregate_schedule"].(string); ok && schedule != "" {
			aggConfig.Schedule = schedule
		}
		if batchSize, ok := s.config["aggregate_batch_size"].(int); ok && batchSize > 0 {
			aggConfig.BatchSize = batchSize
		}
	}

	err := RunAggregateScheduler(aggConfig, s.db)
	if err != nil {
		return fmt.Errorf("failed to start peer aggregate scheduler: %v", err)
	}

	logger.GlobalLogger.LogAudit("Cron service started with peer aggregate scheduler")
	log.Println("Cron service started — Peer Aggregate Scheduler scheduled")

	return nil
}

func (s *CronService) Stop() error {
	log.Println("Cron service stopped.")
	return nil
}
