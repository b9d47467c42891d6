package handler

import (
	"net/http"

	"distributors/pkg/platform/httputil"
	"distributors/pkg/requestcontext"
)

// HandleListDistricts handles GET /districts and GET /districts/counts.
func (h *Handler) HandleListDistricts(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListDistricts(r.Context())
	if err != nil {
		h.fail(w, r, "list districts failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

// HandleCreateDistrict handles POST /districts.
func (h *Handler) HandleCreateDistrict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[DistrictRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	d, err := h.service.CreateDistrict(ctx, req.Name)
	if err != nil {
		h.fail(w, r, "create district failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, d)
}

// HandleGetDistrict handles GET /districts/{id}.
func (h *Handler) HandleGetDistrict(w http.ResponseWriter, r *http.Request) {
	id, ok := h.withID(w, r)
	if !ok {
		return
	}
	d, err := h.service.GetDistrict(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get district failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

// HandleUpdateDistrict handles PUT /districts/{id}.
func (h *Handler) HandleUpdateDistrict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.withID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[DistrictRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	d, err := h.service.UpdateDistrict(ctx, id, req.Name)
	if err != nil {
		h.fail(w, r, "update district failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

// HandleDeleteDistrict handles DELETE /districts/{id}. A district that still
// has distributors answers 400.
func (h *Handler) HandleDeleteDistrict(w http.ResponseWriter, r *http.Request) {
	id, ok := h.withID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteDistrict(r.Context(), id); err != nil {
		h.fail(w, r, "delete district failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListDistrictDistributors handles GET /districts/{id}/distributors.
func (h *Handler) HandleListDistrictDistributors(w http.ResponseWriter, r *http.Request) {
	id, ok := h.withID(w, r)
	if !ok {
		return
	}
	list, err := h.service.ListDistrictDistributors(r.Context(), id)
	if err != nil {
		h.fail(w, r, "list district distributors failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}
