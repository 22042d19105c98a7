package forecast

import (
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"PharmalyticsSaas/api"
	"PharmalyticsSaas/api/constants"
)

const minHistoryMonths = 3

// GetPaymentForecast projects net payment for the coming months with a
// least squares fit over the contractor's staged history.
func GetPaymentForecast(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			api.RespondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		var req struct {
			UserID         string `json:"user_id"`
			ContractorCode string `json:"contractor_code"`
			Horizon        int    `json:"horizon"`
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
		horizon := req.Horizon
		if horizon <= 0 || horizon > 12 {
			horizon = 3
		}

		rows, err := pgxPool.Query(ctx, `
			SELECT month, year, net_payment
			FROM payment_schedules
			WHERE contractor_code = $1
			ORDER BY year ASC,
			         array_position(ARRAY['JANUARY','FEBRUARY','MARCH','APRIL','MAY','JUNE',
			                              'JULY','AUGUST','SEPTEMBER','OCTOBER','NOVEMBER','DECEMBER'], month) ASC`,
			req.ContractorCode)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery+": "+err.Error())
			return
		}
		defer rows.Close()

		type point struct {
			Month string
			Year  int
			Value float64
		}
		var history []point
		for rows.Next() {
			var p point
			if err := rows.Scan(&p.Month, &p.Year, &p.Value); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
				return
			}
			history = append(history, p)
		}
		if len(history) < minHistoryMonths {
			api.RespondWithPayload(w, false, "Not enough history to forecast (need at least 3 months)", nil)
			return
		}

		values := make([]float64, len(history))
		for i, p := range history {
			values[i] = p.Value
		}
		slope, intercept := linearFit(values)

		lastMonth, lastYear := history[len(history)-1].Month, history[len(history)-1].Year
		projections := make([]map[string]interface{}, 0, horizon)
		for i := 1; i <= horizon; i++ {
			lastMonth, lastYear = nextMonth(lastMonth, lastYear)
			predicted := slope*float64(len(history)-1+i) + intercept
			if predicted < 0 {
				predicted = 0
			}
			projections = append(projections, map[string]interface{}{
				"month":                 lastMonth,
				"year":                  lastYear,
				"predicted_net_payment": predicted,
			})
		}

		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"history_months": len(history),
			"slope":          slope,
			"projections":    projections,
		})
	}
}

// linearFit returns the least squares slope and intercept of values
// against their indices 0..n-1.
func linearFit(values []float64) (slope, intercept float64) {
	n := float64(len(values))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

var monthSequence = []string{
	"JANUARY", "FEBRUARY", "MARCH", "APRIL", "MAY", "JUNE",
	"JULY", "AUGUST", "SEPTEMBER", "OCTOBER", "NOVEMBER", "DECEMBER",
}

func nextMonth(month string, year int) (string, int) {
	for i, m := range monthSequence {
		if m == month {
			if i == len(monthSequence)-1 {
				return monthSequence[0], year + 1
			}
			return monthSequence[i+1], year
		}
	}
	return month, year
}
