package schedule

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"PharmalyticsSaas/api"
	"PharmalyticsSaas/api/schedule/upload"
)

func StartScheduleService(pgxPool *pgxpool.Pool) {
	router := mux.NewRouter()

	router.HandleFunc("/schedule/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Schedule Service is active"))
	}).Methods("GET")

	protected := router.PathPrefix("/schedule").Subrouter()
	protected.Use(api.ContractorAccessMiddleware(pgxPool))
	protected.Handle("/upload", upload.UploadPaymentSchedule(pgxPool)).Methods("POST")
	protected.Handle("/all", upload.GetPaymentSchedules(pgxPool)).Methods("POST")
	protected.Handle("/detail", upload.GetScheduleDetail(pgxPool)).Methods("POST")
	protected.Handle("/bulk-delete", upload.BulkDeleteSchedules(pgxPool)).Methods("POST")

	log.Println("Schedule Service started on :6254")
	err := http.ListenAndServe(":6254", router)
	if err != nil {
		log.Fatalf("Schedule Service failed: %v", err)
	}
}
