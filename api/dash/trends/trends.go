package trends

import (
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"PharmalyticsSaas/api"
	"PharmalyticsSaas/api/constants"
)

// GetPaymentTrends returns the chronological monthly series of headline
// figures for one contractor, for trend charts.
func GetPaymentTrends(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			api.RespondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		var req struct {
			UserID         string `json:"user_id"`
			ContractorCode string `json:"contractor_code"`
			Months         int    `json:"months"`
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
		limit := req.Months
		if limit <= 0 || limit > 60 {
			limit = 24
		}

		rows, err := pgxPool.Query(ctx, `
			SELECT month, year, net_payment, total_items,
			       gross_ingredient_cost, average_gross_value,
			       pharmacy_first_base + pharmacy_first_activity AS pharmacy_first_total
			FROM (
				SELECT month, year, net_payment, total_items,
				       gross_ingredient_cost, average_gross_value,
				       pharmacy_first_base, pharmacy_first_activity
				FROM payment_schedules
				WHERE contractor_code = $1
				ORDER BY year DESC,
				         array_position(ARRAY['JANUARY','FEBRUARY','MARCH','APRIL','MAY','JUNE',
				                              'JULY','AUGUST','SEPTEMBER','OCTOBER','NOVEMBER','DECEMBER'], month) DESC
				LIMIT $2
			) recent
			ORDER BY year ASC,
			         array_position(ARRAY['JANUARY','FEBRUARY','MARCH','APRIL','MAY','JUNE',
			                              'JULY','AUGUST','SEPTEMBER','OCTOBER','NOVEMBER','DECEMBER'], month) ASC`,
			req.ContractorCode, limit)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery+": "+err.Error())
			return
		}
		defer rows.Close()

		series := []map[string]interface{}{}
		for rows.Next() {
			var (
				month                     string
				year, totalItems          int
				netPayment, gic, avgGross float64
				pfTotal                   float64
			)
			if err := rows.Scan(&month, &year, &netPayment, &totalItems, &gic, &avgGross, &pfTotal); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
				return
			}
			series = append(series, map[string]interface{}{
				"month":                 month,
				"year":                  year,
				"net_payment":           netPayment,
				"total_items":           totalItems,
				"gross_ingredient_cost": gic,
				"average_gross_value":   avgGross,
				"pharmacy_first_total":  pfTotal,
			})
		}
		api.RespondWithPayload(w, true, "", series)
	}
}
