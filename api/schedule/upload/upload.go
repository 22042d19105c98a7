package upload

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"PharmalyticsSaas/api"
	"PharmalyticsSaas/api/constants"
	"PharmalyticsSaas/internal/config"
	"PharmalyticsSaas/internal/extract"
)

// UploadPaymentSchedule ingests one or more payment schedule workbooks:
// parse, extract a PaymentRecord, stage it in Postgres and archive the
// original file. Each file succeeds or fails on its own.
func UploadPaymentSchedule(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			api.RespondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Could not parse multipart form: "+err.Error())
			return
		}
		userID := r.FormValue(constants.KeyUserID)
		allowedCodes := api.GetContractorCodesFromCtx(r.Context())

		files := r.MultipartForm.File["files"]
		if len(files) == 0 {
			files = r.MultipartForm.File["file"]
		}
		if len(files) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrNoFilesUploaded)
			return
		}

		results := make([]map[string]interface{}, 0, len(files))
		allOk := true
		for _, fh := range files {
			res := processScheduleFile(r.Context(), pgxPool, fh, userID, allowedCodes)
			if ok, _ := res[constants.ValueSuccess].(bool); !ok {
				allOk = false
			}
			results = append(results, res)
		}
		api.RespondWithPayload(w, allOk, "", results)
	}
}

func processScheduleFile(ctx context.Context, pgxPool *pgxpool.Pool, fh *multipart.FileHeader, userID string, allowedCodes []string) map[string]interface{} {
	fail := func(msg string) map[string]interface{} {
		log.Printf("[ERROR] schedule upload %s: %s", fh.Filename, msg)
		return map[string]interface{}{
			constants.ValueSuccess: false,
			"file":                 fh.Filename,
			constants.ValueError:   msg,
		}
	}

	f, err := fh.Open()
	if err != nil {
		return fail("could not open uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return fail("could not read uploaded file")
	}

	sum := sha256.Sum256(data)
	fileHash := hex.EncodeToString(sum[:])

	var existingID string
	err = pgxPool.QueryRow(ctx,
		`SELECT id FROM payment_schedules WHERE file_hash = $1`, fileHash).Scan(&existingID)
	if err == nil {
		return fail(constants.ErrDuplicateSchedule)
	} else if err != pgx.ErrNoRows {
		return fail(constants.ErrDB + ": " + err.Error())
	}

	wb, err := extract.ParseWorkbook(data, fh.Filename)
	if err != nil {
		return fail(constants.ErrNotASpreadsheet)
	}

	assembler := extract.NewAssembler(extract.WithDiag(extract.StdDiag("[schedule]")))
	record, ok := assembler.Assemble(wb)
	if !ok {
		return fail(constants.ErrScheduleUnusable)
	}

	if record.ContractorCode != "" && !contains(allowedCodes, record.ContractorCode) {
		return fail("No access to contractor " + record.ContractorCode)
	}

	scheduleID := uuid.New().String()
	objectPath := fmt.Sprintf("schedules/%s/%s-%d/%s%s",
		record.ContractorCode, strings.ToLower(record.Month), record.Year,
		scheduleID, strings.ToLower(filepath.Ext(fh.Filename)))

	if err := persistRecord(ctx, pgxPool, scheduleID, record, fh.Filename, fileHash, objectPath, userID); err != nil {
		return fail(constants.ErrDB + ": " + err.Error())
	}

	// Archive is best effort; the staged record is already committed.
	if err := uploadToSupabase(ctx, data, objectPath); err != nil {
		log.Printf("[WARN] supabase archive failed for %s: %v", fh.Filename, err)
	}

	return map[string]interface{}{
		constants.ValueSuccess: true,
		"file":                 fh.Filename,
		"schedule_id":          scheduleID,
		"contractor_code":      record.ContractorCode,
		"month":                record.Month,
		"year":                 record.Year,
		"net_payment":          record.NetPayment,
		"high_value_items":     len(record.HighValueItems),
	}
}

func persistRecord(ctx context.Context, pgxPool *pgxpool.Pool, scheduleID string, rec *extract.PaymentRecord, fileName, fileHash, objectPath, userID string) error {
	tx, err := pgxPool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO payment_schedules (
			id, contractor_code, month, year, net_payment,
			total_items, ams_items, mcr_items, nhs_pfs_items, cpus_items, other_items,
			gross_ingredient_cost, net_ingredient_cost, dispensing_pool,
			establishment_payment, pharmacy_first_base, pharmacy_first_activity,
			average_gross_value, supplementary_payments,
			advance_previous_month, advance_next_month,
			cost_ams, cost_mcr, cost_nhs_pfs, cost_cpus, cost_gluten_free,
			cost_stoma_service, cost_public_health, cost_unscheduled_care, cost_other,
			regional_total,
			file_name, file_hash, object_path, uploaded_by, uploaded_at
		) VALUES (
			$1,$2,$3,$4,$5,
			$6,$7,$8,$9,$10,$11,
			$12,$13,$14,$15,$16,$17,$18,$19,
			$20,$21,
			$22,$23,$24,$25,$26,$27,$28,$29,$30,
			$31,
			$32,$33,$34,$35, now()
		)`,
		scheduleID, rec.ContractorCode, rec.Month, rec.Year, rec.NetPayment,
		rec.ItemCounts.Total, rec.ItemCounts.AMS, rec.ItemCounts.MCR,
		rec.ItemCounts.NHSPfs, rec.ItemCounts.CPUS, rec.ItemCounts.Other,
		rec.Financials.GrossIngredientCost, rec.Financials.NetIngredientCost,
		rec.Financials.DispensingPool, rec.Financials.EstablishmentPayment,
		rec.Financials.PharmacyFirstBase, rec.Financials.PharmacyFirstActivity,
		rec.Financials.AverageGrossValue, rec.Financials.SupplementaryPayments,
		rec.AdvancePayments.PreviousMonth, rec.AdvancePayments.NextMonth,
		rec.ServiceCosts.AMS, rec.ServiceCosts.MCR, rec.ServiceCosts.NHSPfs,
		rec.ServiceCosts.CPUS, rec.ServiceCosts.GlutenFree, rec.ServiceCosts.StomaService,
		rec.ServiceCosts.PublicHealth, rec.ServiceCosts.UnscheduledCare, rec.ServiceCosts.Other,
		regionalTotal(rec.RegionalPayments),
		fileName, fileHash, objectPath, nullIfEmpty(userID),
	)
	if err != nil {
		return err
	}

	if rec.PFSDetails != nil {
		detailsJSON, jErr := json.Marshal(rec.PFSDetails)
		if jErr != nil {
			return jErr
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO schedule_pfs_details (
				schedule_id, base_payment, activity_payment, total_payment,
				weighted_activity_total, treatment_items, total_consultations,
				total_referrals, details
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			scheduleID, rec.PFSDetails.BasePayment, rec.PFSDetails.ActivityPayment,
			rec.PFSDetails.TotalPayment, rec.PFSDetails.WeightedActivityTotal,
			rec.PFSDetails.TreatmentItems, rec.PFSDetails.TotalConsultations,
			rec.PFSDetails.TotalReferrals, detailsJSON,
		)
		if err != nil {
			return err
		}
	}

	if rec.RegionalPayments != nil {
		for _, d := range rec.RegionalPayments.PaymentDetails {
			_, err = tx.Exec(ctx, `
				INSERT INTO schedule_regional_payments (schedule_id, description, amount)
				VALUES ($1,$2,$3)`,
				scheduleID, d.Description, d.Amount,
			)
			if err != nil {
				return err
			}
		}
	}

	if len(rec.HighValueItems) > 0 {
		copyRows := make([][]interface{}, 0, len(rec.HighValueItems))
		for _, item := range rec.HighValueItems {
			copyRows = append(copyRows, []interface{}{
				scheduleID, item.PaidProductName, item.PaidGICInclBB,
				item.PaidQuantity, nullIfEmpty(item.ServiceFlag),
			})
		}
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"schedule_high_value_items"},
			[]string{"schedule_id", "paid_product_name", "paid_gic_incl_bb", "paid_quantity", "service_flag"},
			pgx.CopyFromRows(copyRows),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func regionalTotal(rp *extract.RegionalPayments) interface{} {
	if rp == nil {
		return nil
	}
	return rp.TotalAmount
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(v)) {
			return true
		}
	}
	return false
}
