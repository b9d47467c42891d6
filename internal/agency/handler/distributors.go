package handler

import (
	"net/http"

	"distributors/pkg/platform/httputil"
	"distributors/pkg/requestcontext"
)

// HandleListDistributors handles GET /distributors.
func (h *Handler) HandleListDistributors(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListDistributors(r.Context())
	if err != nil {
		h.fail(w, r, "list distributors failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

// HandleSearchDistributors handles GET /distributors/search?keyword=.
func (h *Handler) HandleSearchDistributors(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.SearchDistributors(r.Context(), r.URL.Query().Get("keyword"))
	if err != nil {
		h.fail(w, r, "search distributors failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

// HandleCreateDistributor handles POST /distributors. Rule failures answer
// 400 with a constraint_violation envelope.
func (h *Handler) HandleCreateDistributor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[DistributorRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	d, err := h.service.CreateDistributor(ctx, req.Input())
	if err != nil {
		h.fail(w, r, "create distributor failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, d)
}

// HandleGetDistributor handles GET /distributors/{id}.
func (h *Handler) HandleGetDistributor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.withID(w, r)
	if !ok {
		return
	}
	d, err := h.service.GetDistributor(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get distributor failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

// HandleUpdateDistributor handles PUT /distributors/{id}.
func (h *Handler) HandleUpdateDistributor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.withID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[DistributorRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	d, err := h.service.UpdateDistributor(ctx, id, req.Input())
	if err != nil {
		h.fail(w, r, "update distributor failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

// HandleDeleteDistributor handles DELETE /distributors/{id}. A distributor
// with outstanding debt answers 400.
func (h *Handler) HandleDeleteDistributor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.withID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteDistributor(r.Context(), id); err != nil {
		h.fail(w, r, "delete distributor failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
