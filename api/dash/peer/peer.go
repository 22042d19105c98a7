package peer

import (
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"PharmalyticsSaas/api"
	"PharmalyticsSaas/api/constants"
)

// GetPeerComparison sets a contractor's monthly figures against the
// anonymised peer averages maintained by the nightly aggregate job.
func GetPeerComparison(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			api.RespondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		var req struct {
			UserID         string `json:"user_id"`
			ContractorCode string `json:"contractor_code"`
			Month          string `json:"month"`
			Year           int    `json:"year"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ContractorCode == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		ctx := r.Context()
		if !api.IsContractorAllowed(ctx, req.ContractorCode) {
			api.RespondWithError(w, http.StatusForbidden, constants.ErrNoContractorAccess)
			return
		}

		// Default to the contractor's latest staged month.
		if req.Month == "" || req.Year == 0 {
			err := pgxPool.QueryRow(ctx, `
				SELECT month, year FROM payment_schedules
				WHERE contractor_code = $1
				ORDER BY year DESC,
				         array_position(ARRAY['JANUARY','FEBRUARY','MARCH','APRIL','MAY','JUNE',
				                              'JULY','AUGUST','SEPTEMBER','OCTOBER','NOVEMBER','DECEMBER'], month) DESC
				LIMIT 1`, req.ContractorCode).Scan(&req.Month, &req.Year)
			if err == pgx.ErrNoRows {
				api.RespondWithPayload(w, false, "No schedules staged for contractor", nil)
				return
			} else if err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
				return
			}
		}

		var ownNet, ownGIC, ownAvgGross float64
		var ownItems int
		err := pgxPool.QueryRow(ctx, `
			SELECT net_payment, gross_ingredient_cost, average_gross_value, total_items
			FROM payment_schedules
			WHERE contractor_code = $1 AND month = $2 AND year = $3`,
			req.ContractorCode, req.Month, req.Year).Scan(&ownNet, &ownGIC, &ownAvgGross, &ownItems)
		if err == pgx.ErrNoRows {
			api.RespondWithPayload(w, false, "No schedule staged for that month", nil)
			return
		} else if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
			return
		}

		var peerCount int
		var avgNet, avgGIC, avgAvgGross, avgItems float64
		err = pgxPool.QueryRow(ctx, `
			SELECT contractor_count, avg_net_payment, avg_gross_ingredient_cost,
			       avg_average_gross_value, avg_total_items
			FROM peer_monthly_aggregates
			WHERE month = $1 AND year = $2`,
			req.Month, req.Year).Scan(&peerCount, &avgNet, &avgGIC, &avgAvgGross, &avgItems)
		if err == pgx.ErrNoRows {
			api.RespondWithPayload(w, false, "Peer aggregates not yet available for that month", nil)
			return
		} else if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
			return
		}

		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"month":      req.Month,
			"year":       req.Year,
			"peer_count": peerCount,
			"contractor": map[string]interface{}{
				"net_payment":           ownNet,
				"gross_ingredient_cost": ownGIC,
				"average_gross_value":   ownAvgGross,
				"total_items":           ownItems,
			},
			"peer_average": map[string]interface{}{
				"net_payment":           avgNet,
				"gross_ingredient_cost": avgGIC,
				"average_gross_value":   avgAvgGross,
				"total_items":           avgItems,
			},
			"net_payment_vs_peer": ownNet - avgNet,
			"items_vs_peer":       float64(ownItems) - avgItems,
		})
	}
}
