package inventory

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/atelierhq/atelier/pkg/tenant"
)

// Service exposes the inventory endpoints for the tenant bound on the
// request. Handlers contain no tenancy checks of their own: the binding
// middleware and the database policies already decided whose rows are
// visible by the time a handler runs.
type Service struct {
	storage Storage
	log     *slog.Logger
}

// NewService creates the inventory service. A nil logger falls back to
// slog.Default.
func NewService(storage Storage, log *slog.Logger) *Service {
	if storage == nil {
		panic("inventory: storage cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{storage: storage, log: log}
}

// Handle returns the module router. Mount it behind the tenant binding
// middleware; RequireTenant turns a request that slipped through without
// a binding into a 403 instead of a repository error.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(tenant.RequireTenant(nil))

	r.Get("/items", s.listItems)
	r.Post("/items", s.addItem)
	r.Post("/items/{id}/adjust", s.adjustQuantity)

	return r
}

func (s *Service) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.storage.List(r.Context())
	if err != nil {
		s.fail(w, r, "list items", err)
		return
	}
	if items == nil {
		items = []Item{}
	}

	writeJSON(w, http.StatusOK, items)
}

type addItemRequest struct {
	SKU        string  `json:"sku"`
	Name       string  `json:"name"`
	Metal      string  `json:"metal"`
	Carat      float64 `json:"carat"`
	PriceCents int64   `json:"price_cents"`
	Quantity   int32   `json:"quantity"`
}

func (s *Service) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	if req.SKU == "" || req.Name == "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "sku and name are required"})
		return
	}
	if req.Carat < 0 || req.PriceCents < 0 || req.Quantity < 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "carat, price and quantity must not be negative"})
		return
	}

	item, err := s.storage.Add(r.Context(), AddItemParams{
		SKU:        req.SKU,
		Name:       req.Name,
		Metal:      req.Metal,
		Carat:      req.Carat,
		PriceCents: req.PriceCents,
		Quantity:   req.Quantity,
	})
	if err != nil {
		if errors.Is(err, ErrSKUTaken) {
			writeJSON(w, http.StatusConflict, errorBody{Error: "sku already in use"})
			return
		}
		s.fail(w, r, "add item", err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

type adjustQuantityRequest struct {
	Delta int32 `json:"delta"`
}

func (s *Service) adjustQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid item id"})
		return
	}

	var req adjustQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	if req.Delta == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "delta must not be zero"})
		return
	}

	item, err := s.storage.AdjustQuantity(r.Context(), id, req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, ErrItemNotFound):
			writeJSON(w, http.StatusNotFound, errorBody{Error: "item not found"})
		case errors.Is(err, ErrQuantityBelowZero):
			writeJSON(w, http.StatusConflict, errorBody{Error: "quantity cannot go below zero"})
		default:
			s.fail(w, r, "adjust quantity", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// fail logs the underlying error and answers with a generic body; row and
// connection details never reach the client.
func (s *Service) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.log.ErrorContext(r.Context(), "inventory operation failed",
		slog.String("operation", op),
		slog.Any("error", err))
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
