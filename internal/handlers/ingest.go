package handlers

import (
	"net/http"

	"github.com/MinisterHD/Assets-Value-App/internal/services"
)

type IngestHandler struct {
	ingestion services.Ingestion
}

func NewIngestHandler(ingestion services.Ingestion) *IngestHandler {
	return &IngestHandler{ingestion: ingestion}
}

// HandleIngest handles POST /api/ingest. It runs one ingestion cycle
// synchronously and returns the cycle report; a cycle that aborted returns
// 502 with the report so the caller can see which sources failed.
func (h *IngestHandler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, err := h.ingestion.RunCycle(r.Context())
	status := http.StatusOK
	if err != nil {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, report)
}
