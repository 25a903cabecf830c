package localinv

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aalshehri/wms-backend/internal/modules/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Handler exposes branch inventory HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/local-inventory", func(r chi.Router) {
		r.Get("/", h.listRegion) // ?region=... (defaults to own region)
		r.Get("/all", h.listAll)
		r.Put("/count", h.setCount)
	})
}

func (h *Handler) listRegion(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "missing session"})
		return
	}

	records, err := h.service.ListRegion(r.Context(), sess, r.URL.Query().Get("region"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, records)
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "missing session"})
		return
	}

	records, err := h.service.ListAll(r.Context(), sess)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, records)
}

func (h *Handler) setCount(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "missing session"})
		return
	}

	var req struct {
		ItemName string `json:"item_name" validate:"required"`
		Qty      int    `json:"qty" validate:"gte=0"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rec, err := h.service.SetCount(r.Context(), sess, req.ItemName, req.Qty)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, rec)
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrValidation):
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrNotPermitted):
		respond(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	default:
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
