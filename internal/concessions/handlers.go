package concessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MiningCadastre/MC-Backend/internal/middleware"
	"github.com/MiningCadastre/MC-Backend/internal/respond"
	"github.com/MiningCadastre/MC-Backend/internal/storeerr"
)

// Store is the persistence surface the handlers need; satisfied by
// *Repository.
type Store interface {
	ListAll(ctx context.Context) ([]ConcessionRecord, error)
	Search(ctx context.Context, c SearchCriteria) ([]ConcessionRecord, error)
	Count(ctx context.Context) (int64, error)
	FindByPoint(ctx context.Context, lat, lng float64) ([]ConcessionRecord, error)
	Create(ctx context.Context, in ConcessionInput) (string, error)
	Update(ctx context.Context, id string, in ConcessionInput) error
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	store Store
	log   *zap.SugaredLogger
}

func NewHandler(store Store, log *zap.SugaredLogger) *Handler {
	return &Handler{store: store, log: log}
}

// List handles GET /concessions.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListAll(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.OK(w, records, respond.Count(len(records)))
}

// Count handles GET /concessions/count. The data shape is a single-row
// array, matching what a bare COUNT(*) query returns.
func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.Count(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.OK(w, []map[string]int64{{"count": n}}, nil)
}

// Search handles POST /concessions/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var criteria SearchCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	records, err := h.store.Search(r.Context(), criteria)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.OK(w, records, respond.Count(len(records)))
}

// Contains handles GET /concessions/contains?lat=&lng= — all concessions
// whose boundary contains the point.
func (h *Handler) Contains(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		respond.Fail(w, http.StatusBadRequest, "lat and lng must be numeric query parameters")
		return
	}
	records, err := h.store.FindByPoint(r.Context(), lat, lng)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.OK(w, records, respond.Count(len(records)))
}

// Create handles POST /concessions.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input ConcessionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.ID == "" {
		respond.Fail(w, http.StatusBadRequest, "id is required")
		return
	}
	id, err := h.store.Create(r.Context(), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, respond.Envelope{
		Success: true,
		Data:    map[string]string{"id": id},
		Message: "Concession created",
	})
}

// Update handles PUT /concessions/{id} — a full-record replace.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var input ConcessionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.Update(r.Context(), id, input); err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, respond.Envelope{
		Success: true,
		Data:    map[string]string{"id": id},
		Message: "Concession updated",
	})
}

// Delete handles DELETE /concessions/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	respond.OKMessage(w, fmt.Sprintf("Concession %s deleted", id))
}

// fail renders a failure through the envelope. Clients get the taxonomy
// category message; the underlying store error text is logged server-side
// with the request id rather than leaked in the response.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, public := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Errorw("concession operation failed",
			"request_id", middleware.RequestIDFrom(r.Context()),
			"error", err,
		)
	}
	respond.Fail(w, status, public)
}

func statusFor(err error) (int, string) {
	var ig *InvalidGeometryError
	switch {
	case errors.As(err, &ig):
		return http.StatusBadRequest, ig.Error()
	case errors.Is(err, ErrDuplicateID):
		return http.StatusBadRequest, ErrDuplicateID.Error()
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, ErrNotFound.Error()
	case errors.Is(err, storeerr.ErrUnavailable):
		return http.StatusServiceUnavailable, storeerr.ErrUnavailable.Error()
	default:
		return http.StatusInternalServerError, "unexpected datastore failure"
	}
}
