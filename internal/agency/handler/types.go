package handler

import (
	"net/http"

	"distributors/pkg/platform/httputil"
	"distributors/pkg/requestcontext"
)

// HandleListDistributorTypes handles GET /distributor-types.
func (h *Handler) HandleListDistributorTypes(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListDistributorTypes(r.Context())
	if err != nil {
		h.fail(w, r, "list distributor types failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

// HandleCreateDistributorType handles POST /distributor-types.
func (h *Handler) HandleCreateDistributorType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[DistributorTypeRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	t, err := h.service.CreateDistributorType(ctx, req.Name, *req.MaxDebt)
	if err != nil {
		h.fail(w, r, "create distributor type failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, t)
}

// HandleGetDistributorType handles GET /distributor-types/{id}.
func (h *Handler) HandleGetDistributorType(w http.ResponseWriter, r *http.Request) {
	id, ok := h.withID(w, r)
	if !ok {
		return
	}
	t, err := h.service.GetDistributorType(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get distributor type failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, t)
}

// HandleUpdateDistributorType handles PUT /distributor-types/{id}. Lowering
// max_debt below an existing distributor's debt answers 400.
func (h *Handler) HandleUpdateDistributorType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.withID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[DistributorTypeRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	t, err := h.service.UpdateDistributorType(ctx, id, req.Name, *req.MaxDebt)
	if err != nil {
		h.fail(w, r, "update distributor type failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, t)
}

// HandleDeleteDistributorType handles DELETE /distributor-types/{id}.
func (h *Handler) HandleDeleteDistributorType(w http.ResponseWriter, r *http.Request) {
	id, ok := h.withID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteDistributorType(r.Context(), id); err != nil {
		h.fail(w, r, "delete distributor type failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListTypeDistributors handles GET /distributor-types/{id}/distributors.
func (h *Handler) HandleListTypeDistributors(w http.ResponseWriter, r *http.Request) {
	id, ok := h.withID(w, r)
	if !ok {
		return
	}
	list, err := h.service.ListTypeDistributors(r.Context(), id)
	if err != nil {
		h.fail(w, r, "list type distributors failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}
