package handler

import (
	"net/http"

	"distributors/pkg/platform/httputil"
	"distributors/pkg/requestcontext"
)

// HandleListRegulations handles GET /regulations.
func (h *Handler) HandleListRegulations(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListRegulations(r.Context())
	if err != nil {
		h.fail(w, r, "list regulations failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

// HandleGetRegulationByName handles GET /regulations/by-name?name=.
func (h *Handler) HandleGetRegulationByName(w http.ResponseWriter, r *http.Request) {
	reg, err := h.service.GetRegulationByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.fail(w, r, "get regulation by name failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reg)
}

// HandleCreateRegulation handles POST /regulations. A taken name answers 409.
func (h *Handler) HandleCreateRegulation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[RegulationRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	reg, err := h.service.CreateRegulation(ctx, req.Regulation())
	if err != nil {
		h.fail(w, r, "create regulation failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, reg)
}

// HandleEnsureRegulation handles POST /regulations/ensure: 200 with the
// existing regulation, or 201 when this call created it.
func (h *Handler) HandleEnsureRegulation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[RegulationRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	reg, created, err := h.service.EnsureRegulation(ctx, req.Regulation())
	if err != nil {
		h.fail(w, r, "ensure regulation failed", err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	httputil.WriteJSON(w, status, reg)
}

// HandleGetRegulation handles GET /regulations/{id}.
func (h *Handler) HandleGetRegulation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.withID(w, r)
	if !ok {
		return
	}
	reg, err := h.service.GetRegulation(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get regulation failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reg)
}

// HandleUpdateRegulation handles PUT /regulations/{id}.
func (h *Handler) HandleUpdateRegulation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.withID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RegulationRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	reg, err := h.service.UpdateRegulation(ctx, id, req.Regulation())
	if err != nil {
		h.fail(w, r, "update regulation failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reg)
}

// HandleDeleteRegulation handles DELETE /regulations/{id}.
func (h *Handler) HandleDeleteRegulation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.withID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteRegulation(r.Context(), id); err != nil {
		h.fail(w, r, "delete regulation failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
