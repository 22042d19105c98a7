package variance

import (
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"PharmalyticsSaas/api"
	"PharmalyticsSaas/api/constants"
)

type monthFigures struct {
	Month      string
	Year       int
	NetPayment decimal.Decimal
	GIC        decimal.Decimal
	TotalItems int
}

// GetPaymentVariance compares each month against the previous one and
// reports absolute and percentage movement of the headline figures.
// Decimal arithmetic keeps the percentages exact for currency amounts.
func GetPaymentVariance(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			api.RespondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		var req struct {
			UserID         string `json:"user_id"`
			ContractorCode string `json:"contractor_code"`
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

		rows, err := pgxPool.Query(ctx, `
			SELECT month, year, net_payment::text, gross_ingredient_cost::text, total_items
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

		var months []monthFigures
		for rows.Next() {
			var (
				m      monthFigures
				netStr string
				gicStr string
			)
			if err := rows.Scan(&m.Month, &m.Year, &netStr, &gicStr, &m.TotalItems); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
				return
			}
			m.NetPayment, _ = decimal.NewFromString(netStr)
			m.GIC, _ = decimal.NewFromString(gicStr)
			months = append(months, m)
		}

		out := []map[string]interface{}{}
		for i := 1; i < len(months); i++ {
			prev, cur := months[i-1], months[i]
			entry := map[string]interface{}{
				"month":              cur.Month,
				"year":               cur.Year,
				"previous_month":     prev.Month,
				"previous_year":      prev.Year,
				"net_payment":        cur.NetPayment,
				"net_payment_change": cur.NetPayment.Sub(prev.NetPayment),
				"gic_change":         cur.GIC.Sub(prev.GIC),
				"total_items_change": cur.TotalItems - prev.TotalItems,
			}
			if !prev.NetPayment.IsZero() {
				pct := cur.NetPayment.Sub(prev.NetPayment).
					Div(prev.NetPayment).Mul(decimal.NewFromInt(100)).Round(2)
				entry["net_payment_change_pct"] = pct
			}
			if !prev.GIC.IsZero() {
				pct := cur.GIC.Sub(prev.GIC).
					Div(prev.GIC).Mul(decimal.NewFromInt(100)).Round(2)
				entry["gic_change_pct"] = pct
			}
			out = append(out, entry)
		}
		api.RespondWithPayload(w, true, "", out)
	}
}
