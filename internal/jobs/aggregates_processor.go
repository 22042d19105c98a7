package jobs

import (
	"context"
	"fmt"
	"time"

	"PharmalyticsSaas/internal/config"
	"PharmalyticsSaas/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

// AggregateConfig holds configuration for the nightly peer aggregate refresh.
type AggregateConfig struct {
	Schedule  string
	BatchSize int
	TimeZone  string
}

func NewDefaultAggregateConfig() *AggregateConfig {
	return &AggregateConfig{
		Schedule:  config.DefaultAggregateSchedule,
		BatchSize: config.AggregateBatchSize,
		TimeZone:  config.DefaultTimeZone,
	}
}

// RunAggregateScheduler starts the cron job that refreshes the anonymised
// peer averages used by the peer comparison dashboard.
func RunAggregateScheduler(cfg *AggregateConfig, db *pgxpool.Pool) error {
	if cfg.Schedule == "" {
		cfg.Schedule = config.DefaultAggregateSchedule
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = config.DefaultTimeZone
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.Schedule, func() {
		err := RefreshPeerAggregates(db)
		if err != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("Peer aggregate refresh failed: %v", err))
		}
	})
	if err != nil {
		return fmt.Errorf("unable to schedule peer aggregate refresh: %v", err)
	}

	c.Start()
	logger.GlobalLogger.LogAudit("Peer aggregate scheduler started")

	return nil
}

// RefreshPeerAggregates recomputes per-month averages across all staged
// schedules. One row per (month, year); reruns overwrite prior figures.
func RefreshPeerAggregates(db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	tag, err := db.Exec(ctx, `
		INSERT INTO peer_monthly_aggregates (
			month, year, contractor_count,
			avg_net_payment, avg_gross_ingredient_cost,
			avg_average_gross_value, avg_total_items, refreshed_at
		)
		SELECT month, year, COUNT(DISTINCT contractor_code),
		       AVG(net_payment), AVG(gross_ingredient_cost),
		       AVG(average_gross_value), AVG(total_items), now()
		FROM payment_schedules
		GROUP BY month, year
		ON CONFLICT (month, year) DO UPDATE SET
			contractor_count          = EXCLUDED.contractor_count,
			avg_net_payment           = EXCLUDED.avg_net_payment,
			avg_gross_ingredient_cost = EXCLUDED.avg_gross_ingredient_cost,
			avg_average_gross_value   = EXCLUDED.avg_average_gross_value,
			avg_total_items           = EXCLUDED.avg_total_items,
			refreshed_at              = EXCLUDED.refreshed_at`)
	if err != nil {
		return fmt.Errorf("peer aggregate upsert failed: %v", err)
	}

	logger.GlobalLogger.LogAudit(fmt.Sprintf(
		"Peer aggregates refreshed: %d month rows in %v", tag.RowsAffected(), time.Since(start)))
	return nil
}
