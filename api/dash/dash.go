package dash

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"PharmalyticsSaas/api"
	"PharmalyticsSaas/api/dash/forecast"
	"PharmalyticsSaas/api/dash/peer"
	"PharmalyticsSaas/api/dash/trends"
	"PharmalyticsSaas/api/dash/variance"
)

func StartDashService(pgxPool *pgxpool.Pool) {
	router := mux.NewRouter()

	router.HandleFunc("/dash/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Dash Service is active"))
	}).Methods("GET")

	protected := router.PathPrefix("/dash").Subrouter()
	protected.Use(api.ContractorAccessMiddleware(pgxPool))
	protected.Handle("/trends", trends.GetPaymentTrends(pgxPool)).Methods("POST")
	protected.Handle("/variance", variance.GetPaymentVariance(pgxPool)).Methods("POST")
	protected.Handle("/forecast", forecast.GetPaymentForecast(pgxPool)).Methods("POST")
	protected.Handle("/peer-comparison", peer.GetPeerComparison(pgxPool)).Methods("POST")

	log.Println("Dash Service started on :4254")
	err := http.ListenAndServe(":4254", router)
	if err != nil {
		log.Fatalf("Dash Service failed: %v", err)
	}
}
