// Package rest exposes the dashboard read API.
package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tracewatch/tracewatch-backend/internal/models"
	"github.com/tracewatch/tracewatch-backend/internal/service"
)

// Handler manages HTTP request handlers.
type Handler struct {
	topologyService service.TopologyService
}

// NewHandler creates a new HTTP handler.
func NewHandler(ts service.TopologyService) *Handler {
	return &Handler{topologyService: ts}
}

// SetupRoutes configures API routes.
func SetupRoutes(router *mux.Router, h *Handler) {
	router.HandleFunc("/topology", h.GetTopology).Methods("GET")

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}).Methods("GET")
}

var validSteps = map[models.Step]bool{
	models.StepMonth:  true,
	models.StepDay:    true,
	models.StepHour:   true,
	models.StepMinute: true,
}

// GetTopology handles GET /topology?step=MINUTE&start=202601141000&end=202601141009
func (h *Handler) GetTopology(w http.ResponseWriter, r *http.Request) {
	step := models.Step(r.URL.Query().Get("step"))
	if !validSteps[step] {
		respondError(w, http.StatusBadRequest, "step must be one of MONTH, DAY, HOUR, MINUTE")
		return
	}

	start, err := strconv.ParseInt(r.URL.Query().Get("start"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "start must be a numeric time bucket")
		return
	}
	end, err := strconv.ParseInt(r.URL.Query().Get("end"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "end must be a numeric time bucket")
		return
	}

	top, err := h.topologyService.Topology(r.Context(), service.TopologyRequest{
		Step:  step,
		Start: start,
		End:   end,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, top)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
