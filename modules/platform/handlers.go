package platform

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/atelierhq/atelier/pkg/isolation"
	"github.com/atelierhq/atelier/pkg/tenant"
)

// Handle returns the admin router. Mount it under an admin prefix so the
// binding middleware applies its platform-administrator gate: admitted
// requests arrive with a bypassed isolation session, everyone else
// arrives without one and is turned away here.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(requireSession)

	r.Get("/tenants", s.listTenants)
	r.Post("/tenants", s.createTenant)
	r.Post("/tenants/{id}/suspend", s.suspendTenant)
	r.Post("/tenants/{id}/reinstate", s.reinstateTenant)
	r.Post("/tenants/{id}/mark-deletion", s.markPendingDeletion)

	return r
}

// requireSession rejects requests that reached the admin surface without
// a bound isolation session, i.e. callers the administrator gate did not
// admit.
func requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := isolation.FromContext(r.Context()); !ok {
			writeJSON(w, http.StatusForbidden, errorBody{Error: "platform administrator access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Service) listTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := s.ListTenants(r.Context())
	if err != nil {
		s.fail(w, r, "list tenants", err)
		return
	}
	if tenants == nil {
		tenants = []tenant.Tenant{}
	}

	writeJSON(w, http.StatusOK, tenants)
}

type createTenantRequest struct {
	Name string `json:"name"`
}

func (s *Service) createTenant(w http.ResponseWriter, r *http.Request) {
	var req createTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	created, err := s.CreateTenant(r.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrNameRequired):
			writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "name is required"})
		case errors.Is(err, ErrSlugTaken):
			writeJSON(w, http.StatusConflict, errorBody{Error: "a shop with this name already exists"})
		default:
			s.fail(w, r, "create tenant", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Service) suspendTenant(w http.ResponseWriter, r *http.Request) {
	s.serveTransition(w, r, s.SuspendTenant)
}

func (s *Service) reinstateTenant(w http.ResponseWriter, r *http.Request) {
	s.serveTransition(w, r, s.ReinstateTenant)
}

func (s *Service) markPendingDeletion(w http.ResponseWriter, r *http.Request) {
	s.serveTransition(w, r, s.MarkPendingDeletion)
}

func (s *Service) serveTransition(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID) (*tenant.Tenant, error)) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid tenant id"})
		return
	}

	updated, err := op(r.Context(), id)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody{Error: "tenant not found"})
			return
		}
		s.fail(w, r, "update tenant status", err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// fail logs the underlying error and answers with a generic body.
func (s *Service) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.log.ErrorContext(r.Context(), "platform operation failed",
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
