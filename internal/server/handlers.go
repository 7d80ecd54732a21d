package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/NishizukaKoichi/score-function/internal/contract"
	"github.com/NishizukaKoichi/score-function/internal/telemetry"
	"github.com/NishizukaKoichi/score-function/schema"
)

const unexpectedErrorMessage = "unexpected error"

var scoreMeter = telemetry.Meter("scorefn/http")

type handlers struct {
	evaluator    contract.ScoreEvaluator
	logger       *slog.Logger
	maxBodyBytes int64
	version      string
}

type errorResponse struct {
	Error string `json:"error"`
}

// scorePayload is the raw request body. Both members stay untyped so that
// falsy JSON values can be told apart from malformed ones.
type scorePayload struct {
	Config  any `json:"config"`
	Metrics any `json:"metrics"`
}

// request converts the payload into a ScoreRequest. Falsy metrics (null, false,
// 0 or "") count as missing; falsy config counts as no override.
func (p scorePayload) request() (schema.ScoreRequest, error) {
	if isFalsy(p.Metrics) {
		return schema.ScoreRequest{}, contract.ErrMissingMetrics
	}
	metrics, ok := p.Metrics.(map[string]any)
	if !ok {
		return schema.ScoreRequest{}, fmt.Errorf("invalid metrics: expected an object, got %T", p.Metrics)
	}
	if isFalsy(p.Config) {
		return schema.ScoreRequest{Metrics: metrics}, nil
	}
	config, ok := p.Config.(map[string]any)
	if !ok {
		return schema.ScoreRequest{}, fmt.Errorf("invalid config: expected an object, got %T", p.Config)
	}
	return schema.ScoreRequest{Config: config, Metrics: metrics}, nil
}

func isFalsy(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return !v
	case float64:
		return v == 0
	case string:
		return v == ""
	default:
		return false
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// handleScore serves POST /api/score-function.
func (h *handlers) handleScore(w http.ResponseWriter, r *http.Request) {
	h.score(w, r)
}

// handleWorker serves every path under /score-function and accepts POST only.
func (h *handlers) handleWorker(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte("POST only"))
		return
	}
	h.score(w, r)
}

func (h *handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: h.version})
}

func (h *handlers) score(w http.ResponseWriter, r *http.Request) {
	var payload scorePayload
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	req, err := payload.request()
	if err != nil {
		h.writeScoreError(w, r, err)
		return
	}
	result, err := h.evaluator.Evaluate(r.Context(), req)
	if err != nil {
		h.writeScoreError(w, r, err)
		return
	}

	if counter, err := scoreMeter.Int64Counter("scorefn.gate_ok"); err == nil {
		counter.Add(r.Context(), 1, otelmetric.WithAttributes(
			attribute.String("scorefn.profile", result.Profile),
			attribute.Bool("scorefn.gate_ok", result.GateOK),
		))
	}
	writeJSON(w, http.StatusOK, result)
}

// writeScoreError maps a missing metrics payload to 400 and everything else to 500.
func (h *handlers) writeScoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, contract.ErrMissingMetrics) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.logger.Warn("score evaluation failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
	writeError(w, http.StatusInternalServerError, err)
}

// writeJSON writes data as a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes {"error": message}, falling back to a generic message when err has none.
func writeError(w http.ResponseWriter, status int, err error) {
	msg := unexpectedErrorMessage
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
