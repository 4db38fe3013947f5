package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires all handlers onto the API routes consumed by the dashboard.
func NewRouter(
	asset *AssetHandler,
	price *PriceHandler,
	analytics *AnalyticsHandler,
	portfolio *PortfolioHandler,
	ingest *IngestHandler,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "assets-value-app",
		})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/assets", asset.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/assets/options", asset.HandleOptions).Methods(http.MethodGet)
	api.HandleFunc("/assets/{id:[0-9]+}/prices", asset.HandleHistory).Methods(http.MethodGet)
	api.HandleFunc("/prices/latest", price.HandleLatest).Methods(http.MethodGet)
	api.HandleFunc("/analytics/performance", analytics.HandlePerformance).Methods(http.MethodGet)
	api.HandleFunc("/analytics/correlation", analytics.HandleCorrelation).Methods(http.MethodGet)
	api.HandleFunc("/analytics/volatility", analytics.HandleVolatility).Methods(http.MethodGet)
	api.HandleFunc("/portfolio/valuation", portfolio.HandleValuation).Methods(http.MethodPost)
	api.HandleFunc("/ingest", ingest.HandleIngest).Methods(http.MethodPost)

	r.Use(corsMiddleware)
	return r
}

// corsMiddleware lets the dashboard dev server talk to the API from another
// origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
