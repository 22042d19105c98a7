package upload

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"PharmalyticsSaas/api"
	"PharmalyticsSaas/api/constants"
)

// GetPaymentSchedules lists staged schedules for the contractors the
// session user may read, newest dispensing period first.
func GetPaymentSchedules(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			api.RespondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		ctx := r.Context()
		codes := api.GetContractorCodesFromCtx(ctx)

		rows, err := pgxPool.Query(ctx, `
			SELECT id, contractor_code, month, year, net_payment,
			       total_items, gross_ingredient_cost, file_name, uploaded_at
			FROM payment_schedules
			WHERE contractor_code = ANY($1)
			ORDER BY year DESC,
			         array_position(ARRAY['JANUARY','FEBRUARY','MARCH','APRIL','MAY','JUNE',
			                              'JULY','AUGUST','SEPTEMBER','OCTOBER','NOVEMBER','DECEMBER'], month) DESC,
			         uploaded_at DESC`, codes)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery+": "+err.Error())
			return
		}
		defer rows.Close()

		out := []map[string]interface{}{}
		for rows.Next() {
			var (
				id, contractorCode, month, fileName string
				year, totalItems                    int
				netPayment, gic                     float64
				uploadedAt                          interface{}
			)
			if err := rows.Scan(&id, &contractorCode, &month, &year, &netPayment, &totalItems, &gic, &fileName, &uploadedAt); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
				return
			}
			out = append(out, map[string]interface{}{
				"id":                    id,
				"contractor_code":       contractorCode,
				"month":                 month,
				"year":                  year,
				"net_payment":           netPayment,
				"total_items":           totalItems,
				"gross_ingredient_cost": gic,
				"file_name":             fileName,
				"uploaded_at":           uploadedAt,
			})
		}
		api.RespondWithPayload(w, true, "", out)
	}
}

// GetScheduleDetail returns one schedule with its PFS breakdown, regional
// payment lines and high value items.
func GetScheduleDetail(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			api.RespondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		var req struct {
			UserID     string `json:"user_id"`
			ScheduleID string `json:"schedule_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ScheduleID == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		ctx := r.Context()
		codes := api.GetContractorCodesFromCtx(ctx)

		var (
			detail         = map[string]interface{}{}
			contractorCode string
		)
		row := pgxPool.QueryRow(ctx, `
			SELECT id, contractor_code, month, year, net_payment,
			       total_items, ams_items, mcr_items, nhs_pfs_items, cpus_items, other_items,
			       gross_ingredient_cost, net_ingredient_cost, dispensing_pool,
			       establishment_payment, pharmacy_first_base, pharmacy_first_activity,
			       average_gross_value, supplementary_payments,
			       advance_previous_month, advance_next_month,
			       cost_ams, cost_mcr, cost_nhs_pfs, cost_cpus, cost_gluten_free,
			       cost_stoma_service, cost_public_health, cost_unscheduled_care, cost_other,
			       regional_total, file_name, uploaded_at
			FROM payment_schedules
			WHERE id = $1 AND contractor_code = ANY($2)`, req.ScheduleID, codes)

		var (
			id, month, fileName                                            string
			year, totalItems, amsItems, mcrItems, pfsItems, cpusItems, oth int
			netPayment, gic, nic, pool, estab, pfBase, pfActivity          float64
			avgGross, suppl, advPrev, advNext                              float64
			cAMS, cMCR, cNHSPfs, cCPUS, cGluten, cStoma, cPH, cUC, cOther  float64
			regionalTotal                                                  *float64
			uploadedAt                                                     interface{}
		)
		err := row.Scan(&id, &contractorCode, &month, &year, &netPayment,
			&totalItems, &amsItems, &mcrItems, &pfsItems, &cpusItems, &oth,
			&gic, &nic, &pool, &estab, &pfBase, &pfActivity, &avgGross, &suppl,
			&advPrev, &advNext,
			&cAMS, &cMCR, &cNHSPfs, &cCPUS, &cGluten, &cStoma, &cPH, &cUC, &cOther,
			&regionalTotal, &fileName, &uploadedAt)
		if err == pgx.ErrNoRows {
			api.RespondWithError(w, http.StatusNotFound, "Schedule not found")
			return
		} else if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
			return
		}

		detail["id"] = id
		detail["contractor_code"] = contractorCode
		detail["month"] = month
		detail["year"] = year
		detail["net_payment"] = netPayment
		detail["item_counts"] = map[string]interface{}{
			"total": totalItems, "ams": amsItems, "mcr": mcrItems,
			"nhs_pfs": pfsItems, "cpus": cpusItems, "other": oth,
		}
		detail["financials"] = map[string]interface{}{
			"gross_ingredient_cost": gic, "net_ingredient_cost": nic,
			"dispensing_pool": pool, "establishment_payment": estab,
			"pharmacy_first_base": pfBase, "pharmacy_first_activity": pfActivity,
			"average_gross_value": avgGross, "supplementary_payments": suppl,
		}
		detail["advance_payments"] = map[string]interface{}{
			"previous_month": advPrev, "next_month": advNext,
		}
		detail["service_costs"] = map[string]interface{}{
			"ams": cAMS, "mcr": cMCR, "nhs_pfs": cNHSPfs, "cpus": cCPUS,
			"gluten_free": cGluten, "stoma_service": cStoma,
			"public_health": cPH, "unscheduled_care": cUC, "other": cOther,
		}
		detail["file_name"] = fileName
		detail["uploaded_at"] = uploadedAt

		// PFS breakdown (full details are staged as jsonb)
		var pfsDetails []byte
		err = pgxPool.QueryRow(ctx, `
			SELECT details FROM schedule_pfs_details WHERE schedule_id = $1`, id).Scan(&pfsDetails)
		if err == nil {
			var pfs map[string]interface{}
			if json.Unmarshal(pfsDetails, &pfs) == nil {
				detail["pfs_details"] = pfs
			}
		} else if err != pgx.ErrNoRows {
			log.Printf("[WARN] pfs details query failed for %s: %v", id, err)
		}

		if regionalTotal != nil {
			regional := map[string]interface{}{"total_amount": *regionalTotal}
			lines := []map[string]interface{}{}
			rRows, rErr := pgxPool.Query(ctx, `
				SELECT description, amount FROM schedule_regional_payments
				WHERE schedule_id = $1 ORDER BY id`, id)
			if rErr == nil {
				defer rRows.Close()
				for rRows.Next() {
					var desc string
					var amount float64
					if rRows.Scan(&desc, &amount) == nil {
						lines = append(lines, map[string]interface{}{"description": desc, "amount": amount})
					}
				}
			}
			regional["payment_details"] = lines
			detail["regional_payments"] = regional
		}

		items := []map[string]interface{}{}
		hRows, hErr := pgxPool.Query(ctx, `
			SELECT paid_product_name, paid_gic_incl_bb, paid_quantity, service_flag
			FROM schedule_high_value_items WHERE schedule_id = $1
			ORDER BY paid_gic_incl_bb DESC`, id)
		if hErr == nil {
			defer hRows.Close()
			for hRows.Next() {
				var name string
				var gicVal float64
				var qty *float64
				var flag *string
				if hRows.Scan(&name, &gicVal, &qty, &flag) == nil {
					item := map[string]interface{}{
						"paid_product_name": name,
						"paid_gic_incl_bb":  gicVal,
					}
					if qty != nil {
						item["paid_quantity"] = *qty
					}
					if flag != nil {
						item["service_flag"] = *flag
					}
					items = append(items, item)
				}
			}
		}
		detail["high_value_items"] = items

		api.RespondWithPayload(w, true, "", detail)
	}
}

// BulkDeleteSchedules removes staged schedules and their archived files.
// Each id succeeds or fails on its own.
func BulkDeleteSchedules(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			api.RespondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		var req struct {
			UserID      string   `json:"user_id"`
			ScheduleIDs []string `json:"schedule_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.ScheduleIDs) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		ctx := r.Context()
		codes := api.GetContractorCodesFromCtx(ctx)

		results := make([]map[string]interface{}, 0, len(req.ScheduleIDs))
		allOk := true
		for _, scheduleID := range req.ScheduleIDs {
			var objectPath *string
			err := pgxPool.QueryRow(ctx, `
				DELETE FROM payment_schedules
				WHERE id = $1 AND contractor_code = ANY($2)
				RETURNING object_path`, scheduleID, codes).Scan(&objectPath)
			if err == pgx.ErrNoRows {
				allOk = false
				results = append(results, map[string]interface{}{
					constants.ValueSuccess: false,
					"schedule_id":          scheduleID,
					constants.ValueError:   "Schedule not found or not accessible",
				})
				continue
			} else if err != nil {
				allOk = false
				results = append(results, map[string]interface{}{
					constants.ValueSuccess: false,
					"schedule_id":          scheduleID,
					constants.ValueError:   constants.ErrDB + ": " + err.Error(),
				})
				continue
			}
			if objectPath != nil && *objectPath != "" {
				if delErr := deleteFromSupabase(ctx, *objectPath); delErr != nil {
					log.Printf("[WARN] supabase delete failed for %s: %v", scheduleID, delErr)
				}
			}
			results = append(results, map[string]interface{}{
				constants.ValueSuccess: true,
				"schedule_id":          scheduleID,
			})
		}
		api.RespondWithPayload(w, allOk, "", results)
	}
}
