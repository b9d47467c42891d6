package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"distributors/internal/agency/constraint"
	"distributors/internal/agency/metrics"
	"distributors/internal/agency/models"
	"distributors/pkg/attrs"
	dErrors "distributors/pkg/domain-errors"
	"distributors/pkg/platform/audit"
	"distributors/pkg/platform/sentinel"
	"distributors/pkg/requestcontext"
)

// Store is the persistence surface the service drives. Reads used by the
// constraint engine come from the same store so checks and writes share one
// transaction.
type Store interface {
	constraint.Reader

	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	Ping(ctx context.Context) error

	ListDistricts(ctx context.Context) ([]models.DistrictSummary, error)
	FindDistrict(ctx context.Context, id int64) (*models.District, error)
	CreateDistrict(ctx context.Context, d *models.District) error
	UpdateDistrict(ctx context.Context, d *models.District) error
	DeleteDistrict(ctx context.Context, id int64) error

	ListDistributorTypes(ctx context.Context) ([]models.DistributorTypeSummary, error)
	CreateDistributorType(ctx context.Context, t *models.DistributorType) error
	UpdateDistributorType(ctx context.Context, t *models.DistributorType) error
	DeleteDistributorType(ctx context.Context, id int64) error

	ListDistributors(ctx context.Context) ([]models.DistributorView, error)
	ListDistributorsByDistrict(ctx context.Context, districtID int64) ([]models.DistributorView, error)
	ListDistributorsByType(ctx context.Context, typeID int64) ([]models.DistributorView, error)
	SearchDistributors(ctx context.Context, keyword string) ([]models.DistributorView, error)
	FindDistributor(ctx context.Context, id int64) (*models.DistributorView, error)
	CreateDistributor(ctx context.Context, d *models.Distributor) error
	UpdateDistributor(ctx context.Context, d *models.Distributor) error
	DeleteDistributor(ctx context.Context, id int64) error

	ListRegulations(ctx context.Context) ([]models.Regulation, error)
	FindRegulation(ctx context.Context, id int64) (*models.Regulation, error)
	CreateRegulation(ctx context.Context, r *models.Regulation) error
	UpdateRegulation(ctx context.Context, r *models.Regulation) error
	DeleteRegulation(ctx context.Context, id int64) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates the registry: every mutation runs its constraint
// checks and its write inside one store transaction.
type Service struct {
	store          Store
	engine         *constraint.Engine
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer replaces the tracer that spans each write transaction.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service over store. Spans go to the global tracer provider
// unless WithTracer is given.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		engine: constraint.New(store),
		tracer: otel.Tracer("distributors/agency"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Health reports whether the backing store is reachable.
func (s *Service) Health(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "store unavailable")
	}
	return nil
}

// write runs fn in a transaction, tracing it and recording its duration.
func (s *Service) write(ctx context.Context, entity string, fn func(ctx context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "agency.write", trace.WithAttributes(
		attribute.String("agency.entity", entity),
	))
	defer span.End()

	start := time.Now()
	err := s.store.RunInTx(ctx, fn)
	if s.metrics != nil {
		s.metrics.ObserveWrite(entity, start)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")
	}
	return err
}

// translate converts store and engine failures into coded errors. Errors that
// already carry a code pass through unchanged.
func (s *Service) translate(err error, subject, fallback string) error {
	if err == nil {
		return nil
	}
	var coded *dErrors.Error
	if errors.As(err, &coded) {
		return err
	}
	if v, ok := constraint.AsViolation(err); ok {
		if s.metrics != nil {
			s.metrics.IncrementViolation(string(v.Kind))
		}
		return dErrors.Wrap(v, dErrors.CodeConstraintViolation, v.Error())
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Newf(dErrors.CodeNotFound, "%s not found", subject)
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Newf(dErrors.CodeConflict, "%s already exists", subject)
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.Newf(dErrors.CodeConstraintViolation, "%s is referenced by other records", subject)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, fallback)
	}
}

func validateName(field, name string, maxLen int) error {
	if name == "" {
		return dErrors.Newf(dErrors.CodeValidation, "%s is required", field)
	}
	if len([]rune(name)) > maxLen {
		return dErrors.Newf(dErrors.CodeValidation, "%s must be at most %d characters", field, maxLen)
	}
	return nil
}

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(event), "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event), args...)
	}
	entity := attrs.ExtractString(attributes, "entity")
	if s.metrics != nil {
		s.metrics.IncrementMutation(entity, string(event))
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		Timestamp: requestcontext.Now(ctx),
		Action:    string(event),
		Entity:    entity,
		EntityID:  attrs.ExtractInt64(attributes, "entity_id"),
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
	}); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "event", string(event), "error", err)
	}
}
