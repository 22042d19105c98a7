package dash

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"PharmalyticsSaas/internal/serviceiface"
)

type DashService struct {
	config  map[string]interface{}
	pgxPool *pgxpool.Pool
}

func NewDashService(cfg map[string]interface{}, pgxPool *pgxpool.Pool) serviceiface.Service {
	return &DashService{config: cfg, pgxPool: pgxPool}
}

func (s *DashService) Name() string {
	return "dash"
}

func (s *DashService) Start() error {
	go StartDashService(s.pgxPool)
	return nil
}

func (s *DashService) Stop() error {
	// Implement stop logic if needed
	return nil
}
