package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/poyrazK/dnsgate/internal/core/domain"
	"github.com/poyrazK/dnsgate/internal/core/ports"
	"github.com/poyrazK/dnsgate/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIHandler handles HTTP requests for DNS change orchestration.
type APIHandler struct {
	svc          ports.ChangeService
	hostedZoneID string
}

// NewAPIHandler creates and returns a new APIHandler instance. hostedZoneID
// is injected into every change request and may be empty.
func NewAPIHandler(svc ports.ChangeService, hostedZoneID string) *APIHandler {
	return &APIHandler{svc: svc, hostedZoneID: hostedZoneID}
}

// RegisterRoutes registers the API routes with the provided ServeMux.
func (h *APIHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /metrics", h.Metrics)
	mux.HandleFunc("POST /changes", h.ApplyChange)
	mux.HandleFunc("GET /records", h.ListRecords)
}

// Metrics handles Prometheus metrics scraping requests.
func (h *APIHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// HealthCheck handles health check requests.
func (h *APIHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "UP"
	details := make(map[string]string)
	checks := h.svc.HealthCheck(r.Context())

	for name, checkErr := range checks {
		if checkErr != nil {
			status = "DEGRADED"
			details[name] = checkErr.Error()
		} else {
			details[name] = "OK"
		}
	}

	resp := map[string]interface{}{
		"status":  status,
		"details": details,
	}

	w.Header().Set("Content-Type", "application/json")
	if status == "DEGRADED" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("failed to encode health check response: %v", err)
	}
}

type changeRequestBody struct {
	Action            string                   `json:"Action"`
	ResourceRecordSet domain.ResourceRecordSet `json:"ResourceRecordSet"`
}

// ApplyChange decodes a change request, dispatches it to the orchestrator
// and renders the confirmation string or error. Schema failures map to 400;
// every orchestration failure maps to 500.
func (h *APIHandler) ApplyChange(w http.ResponseWriter, r *http.Request) {
	var body changeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.WrapError(domain.KindSchema, err, "invalid request body"))
		return
	}

	apiKey := r.Header.Get("X-Api-Key")
	if err := domain.ValidateChangeRequest(body.Action, body.ResourceRecordSet, apiKey); err != nil {
		writeError(w, err)
		return
	}

	req := domain.ChangeRequest{
		Action:       domain.ChangeAction(body.Action),
		RecordSet:    body.ResourceRecordSet,
		HostedZoneID: h.hostedZoneID,
		APIKey:       apiKey,
	}

	var result string
	var err error
	switch req.Action {
	case domain.ActionCreate:
		result, err = h.svc.Create(r.Context(), req)
	case domain.ActionUpsert:
		result, err = h.svc.Upsert(r.Context(), req)
	case domain.ActionDelete:
		result, err = h.svc.Delete(r.Context(), req)
	}

	if err != nil {
		metrics.ChangesTotal.WithLabelValues(string(req.Action), domain.KindOf(err).String()).Inc()
		writeError(w, err)
		return
	}
	metrics.ChangesTotal.WithLabelValues(string(req.Action), "success").Inc()

	w.Header().Set("Content-Type", "application/json")
	if encErr := json.NewEncoder(w).Encode(result); encErr != nil {
		log.Printf("failed to encode change response: %v", encErr)
	}
}

// ListRecords returns every record state, soft-deleted ones included.
func (h *APIHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListRecords(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []domain.RecordState{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(records); err != nil {
		log.Printf("failed to encode records response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if domain.KindOf(err) == domain.KindSchema {
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(err.Error()); encErr != nil {
		log.Printf("failed to encode error response: %v", encErr)
	}
}
