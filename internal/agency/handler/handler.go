package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"distributors/internal/agency/models"
	"distributors/internal/agency/service"
	dErrors "distributors/pkg/domain-errors"
	"distributors/pkg/platform/httputil"
	"distributors/pkg/requestcontext"
)

// Service defines the registry operations the handlers expose.
type Service interface {
	ListDistricts(ctx context.Context) ([]models.DistrictSummary, error)
	GetDistrict(ctx context.Context, id int64) (*models.DistrictSummary, error)
	CreateDistrict(ctx context.Context, name string) (*models.District, error)
	UpdateDistrict(ctx context.Context, id int64, name string) (*models.District, error)
	DeleteDistrict(ctx context.Context, id int64) error
	ListDistrictDistributors(ctx context.Context, id int64) ([]models.DistributorView, error)

	ListDistributorTypes(ctx context.Context) ([]models.DistributorTypeSummary, error)
	GetDistributorType(ctx context.Context, id int64) (*models.DistributorTypeSummary, error)
	CreateDistributorType(ctx context.Context, name string, maxDebt decimal.Decimal) (*models.DistributorType, error)
	UpdateDistributorType(ctx context.Context, id int64, name string, maxDebt decimal.Decimal) (*models.DistributorType, error)
	DeleteDistributorType(ctx context.Context, id int64) error
	ListTypeDistributors(ctx context.Context, id int64) ([]models.DistributorView, error)

	ListDistributors(ctx context.Context) ([]models.DistributorView, error)
	GetDistributor(ctx context.Context, id int64) (*models.DistributorView, error)
	SearchDistributors(ctx context.Context, keyword string) ([]models.DistributorView, error)
	CreateDistributor(ctx context.Context, in service.DistributorInput) (*models.DistributorView, error)
	UpdateDistributor(ctx context.Context, id int64, in service.DistributorInput) (*models.DistributorView, error)
	DeleteDistributor(ctx context.Context, id int64) error

	ListRegulations(ctx context.Context) ([]models.Regulation, error)
	GetRegulation(ctx context.Context, id int64) (*models.Regulation, error)
	GetRegulationByName(ctx context.Context, name string) (*models.Regulation, error)
	CreateRegulation(ctx context.Context, r models.Regulation) (*models.Regulation, error)
	UpdateRegulation(ctx context.Context, id int64, r models.Regulation) (*models.Regulation, error)
	DeleteRegulation(ctx context.Context, id int64) error
	EnsureRegulation(ctx context.Context, r models.Regulation) (*models.Regulation, bool, error)
}

// Handler wires registry endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a registry handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the registry endpoints on r. Callers mount r under /api.
func (h *Handler) Register(r chi.Router) {
	r.Route("/districts", func(r chi.Router) {
		r.Get("/", h.HandleListDistricts)
		r.Post("/", h.HandleCreateDistrict)
		r.Get("/counts", h.HandleListDistricts)
		r.Get("/{id}", h.HandleGetDistrict)
		r.Put("/{id}", h.HandleUpdateDistrict)
		r.Delete("/{id}", h.HandleDeleteDistrict)
		r.Get("/{id}/distributors", h.HandleListDistrictDistributors)
	})
	r.Route("/distributor-types", func(r chi.Router) {
		r.Get("/", h.HandleListDistributorTypes)
		r.Post("/", h.HandleCreateDistributorType)
		r.Get("/{id}", h.HandleGetDistributorType)
		r.Put("/{id}", h.HandleUpdateDistributorType)
		r.Delete("/{id}", h.HandleDeleteDistributorType)
		r.Get("/{id}/distributors", h.HandleListTypeDistributors)
	})
	r.Route("/distributors", func(r chi.Router) {
		r.Get("/", h.HandleListDistributors)
		r.Post("/", h.HandleCreateDistributor)
		r.Get("/search", h.HandleSearchDistributors)
		r.Get("/{id}", h.HandleGetDistributor)
		r.Put("/{id}", h.HandleUpdateDistributor)
		r.Delete("/{id}", h.HandleDeleteDistributor)
	})
	r.Route("/regulations", func(r chi.Router) {
		r.Get("/", h.HandleListRegulations)
		r.Post("/", h.HandleCreateRegulation)
		r.Get("/by-name", h.HandleGetRegulationByName)
		r.Post("/ensure", h.HandleEnsureRegulation)
		r.Get("/{id}", h.HandleGetRegulation)
		r.Put("/{id}", h.HandleUpdateRegulation)
		r.Delete("/{id}", h.HandleDeleteRegulation)
	})
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid id")
	}
	return id, nil
}

// withID parses {id} and writes a 400 when it is malformed.
func (h *Handler) withID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return 0, false
	}
	return id, true
}

// fail logs a service error and writes its envelope. Client errors log at
// warn, everything else at error.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	level := slog.LevelWarn
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	httputil.WriteError(w, err)
}
