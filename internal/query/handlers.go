package query

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/MiningCadastre/MC-Backend/internal/metrics"
	"github.com/MiningCadastre/MC-Backend/internal/middleware"
	"github.com/MiningCadastre/MC-Backend/internal/respond"
	"github.com/MiningCadastre/MC-Backend/internal/storeerr"
)

type Handler struct {
	exec *Executor
	log  *zap.SugaredLogger
}

func NewHandler(exec *Executor, log *zap.SugaredLogger) *Handler {
	return &Handler{exec: exec, log: log}
}

type rawRequest struct {
	Query  string        `json:"query"`
	Params []interface{} `json:"params"`
}

// Execute handles POST /query. This is an admin surface for ad-hoc SQL, so
// unlike the record endpoints the underlying store message is reported back
// in the envelope's message field for diagnostics.
func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	var req rawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.exec.Execute(r.Context(), req.Query, req.Params)
	if err != nil {
		switch {
		case errors.Is(err, ErrRejectedStatement):
			metrics.RawRejectedTotal.Inc()
			respond.Fail(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, storeerr.ErrUnavailable):
			respond.Fail(w, http.StatusServiceUnavailable, storeerr.ErrUnavailable.Error())
		default:
			h.log.Errorw("raw statement failed",
				"request_id", middleware.RequestIDFrom(r.Context()),
				"error", err,
			)
			respond.JSON(w, http.StatusInternalServerError, respond.Envelope{
				Success: false,
				Error:   "statement execution failed",
				Message: err.Error(),
			})
		}
		return
	}

	metrics.RawStatementsTotal.WithLabelValues(res.Command).Inc()
	respond.OK(w, res, respond.Count(res.Count))
}
