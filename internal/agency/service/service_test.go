package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"distributors/internal/agency/metrics"
	"distributors/internal/agency/models"
	"distributors/internal/agency/store"
	dErrors "distributors/pkg/domain-errors"
	"distributors/pkg/platform/audit"
	auditmemory "distributors/pkg/platform/audit/store/memory"
	"distributors/pkg/platform/audit/publisher"
	"distributors/pkg/requestcontext"
)

// =============================================================================
// Registry Service Test Suite
// =============================================================================
// Runs against the in-memory store so every rule is exercised end to end
// through the same transaction path the SQL backends use.

type ServiceSuite struct {
	suite.Suite
	store   *store.InMemory
	audit   *auditmemory.InMemoryStore
	metrics *metrics.Metrics
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = store.NewInMemory()
	s.audit = auditmemory.NewInMemoryStore()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(s.store,
		WithAuditPublisher(publisher.NewPublisher(s.audit)),
		WithMetrics(s.metrics),
	)
	s.ctx = requestcontext.WithTime(
		requestcontext.WithRequestID(context.Background(), "req-1"),
		time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	)
}

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func (s *ServiceSuite) givenDistrict(name string) *models.District {
	d, err := s.service.CreateDistrict(s.ctx, name)
	s.Require().NoError(err)
	return d
}

func (s *ServiceSuite) givenType(name string, maxDebt int64) *models.DistributorType {
	t, err := s.service.CreateDistributorType(s.ctx, name, money(maxDebt))
	s.Require().NoError(err)
	return t
}

func (s *ServiceSuite) input(district *models.District, typ *models.DistributorType, debt int64) DistributorInput {
	return DistributorInput{
		Name:              "Dai ly",
		Phone:             "0901234567",
		Address:           "1 Nguyen Hue",
		DistrictID:        district.ID,
		DistributorTypeID: typ.ID,
		Debt:              money(debt),
	}
}

func (s *ServiceSuite) givenDistributor(district *models.District, typ *models.DistributorType, debt int64) *models.DistributorView {
	v, err := s.service.CreateDistributor(s.ctx, s.input(district, typ, debt))
	s.Require().NoError(err)
	return v
}

func (s *ServiceSuite) requireCode(err error, code dErrors.Code) {
	s.Require().Error(err)
	s.Equal(code, dErrors.CodeOf(err), "error: %v", err)
}

// =============================================================================
// District Tests
// =============================================================================

func (s *ServiceSuite) TestDistricts() {
	s.Run("create trims and validates the name", func() {
		d, err := s.service.CreateDistrict(s.ctx, "  Quan 1  ")
		s.Require().NoError(err)
		s.Equal("Quan 1", d.Name)

		_, err = s.service.CreateDistrict(s.ctx, "   ")
		s.requireCode(err, dErrors.CodeValidation)

		_, err = s.service.CreateDistrict(s.ctx, string(make([]rune, models.MaxDistrictNameLength+1)))
		s.requireCode(err, dErrors.CodeValidation)
	})

	s.Run("get includes the distributor count", func() {
		d := s.givenDistrict("Counted")
		s.givenDistributor(d, s.givenType("T", 100), 0)

		got, err := s.service.GetDistrict(s.ctx, d.ID)
		s.Require().NoError(err)
		s.Equal(1, got.DistributorCount)
	})

	s.Run("unknown district is not found", func() {
		_, err := s.service.GetDistrict(s.ctx, 999)
		s.requireCode(err, dErrors.CodeNotFound)
		_, err = s.service.UpdateDistrict(s.ctx, 999, "x")
		s.requireCode(err, dErrors.CodeNotFound)
		s.requireCode(s.service.DeleteDistrict(s.ctx, 999), dErrors.CodeNotFound)
		_, err = s.service.ListDistrictDistributors(s.ctx, 999)
		s.requireCode(err, dErrors.CodeNotFound)
	})

	s.Run("delete with dependents is a constraint violation", func() {
		d := s.givenDistrict("Busy")
		s.givenDistributor(d, s.givenType("T2", 100), 0)

		err := s.service.DeleteDistrict(s.ctx, d.ID)
		s.requireCode(err, dErrors.CodeConstraintViolation)
		s.Contains(err.Error(), "cannot delete a district that has distributors")
		s.Equal(1.0, testutil.ToFloat64(s.metrics.ConstraintViolations.WithLabelValues("has_dependents")))
	})

	s.Run("delete of empty district succeeds and is audited", func() {
		d := s.givenDistrict("Empty")
		s.Require().NoError(s.service.DeleteDistrict(s.ctx, d.ID))

		events, err := s.audit.ListByEntity(s.ctx, "district", d.ID)
		s.Require().NoError(err)
		s.Require().Len(events, 2)
		s.Equal(string(audit.EventDistrictCreated), events[0].Action)
		s.Equal(string(audit.EventDistrictDeleted), events[1].Action)
		s.Equal("req-1", events[1].RequestID)
	})
}

// =============================================================================
// Distributor Type Tests
// =============================================================================

func (s *ServiceSuite) TestDistributorTypes() {
	s.Run("rejects negative, fractional and oversized ceilings", func() {
		for _, v := range []decimal.Decimal{money(-1), decimal.RequireFromString("1.5"), decimal.New(1, 18)} {
			_, err := s.service.CreateDistributorType(s.ctx, "Bad", v)
			s.requireCode(err, dErrors.CodeValidation)
		}
	})

	s.Run("lowering the ceiling below an existing debt fails; to the debt succeeds", func() {
		typ := s.givenType("Loai 1", 1000)
		s.givenDistributor(s.givenDistrict("D"), typ, 500)

		_, err := s.service.UpdateDistributorType(s.ctx, typ.ID, typ.Name, money(400))
		s.requireCode(err, dErrors.CodeConstraintViolation)

		updated, err := s.service.UpdateDistributorType(s.ctx, typ.ID, typ.Name, money(500))
		s.Require().NoError(err)
		s.True(updated.MaxDebt.Equal(money(500)))

		_, err = s.service.UpdateDistributorType(s.ctx, typ.ID, "Renamed", money(10000))
		s.Require().NoError(err)
	})

	s.Run("delete is refused while in use", func() {
		typ := s.givenType("Used", 10)
		v := s.givenDistributor(s.givenDistrict("D2"), typ, 0)
		s.requireCode(s.service.DeleteDistributorType(s.ctx, typ.ID), dErrors.CodeConstraintViolation)

		s.Require().NoError(s.service.DeleteDistributor(s.ctx, v.ID))
		s.NoError(s.service.DeleteDistributorType(s.ctx, typ.ID))
	})

	s.Run("list type distributors", func() {
		typ := s.givenType("Listed", 10)
		s.givenDistributor(s.givenDistrict("D3"), typ, 0)
		list, err := s.service.ListTypeDistributors(s.ctx, typ.ID)
		s.Require().NoError(err)
		s.Len(list, 1)

		got, err := s.service.GetDistributorType(s.ctx, typ.ID)
		s.Require().NoError(err)
		s.Equal(1, got.DistributorCount)
	})
}

// =============================================================================
// Distributor Tests
// =============================================================================

func (s *ServiceSuite) TestCreateDistributor() {
	d := s.givenDistrict("Quan 1")
	typ := s.givenType("Loai 1", 1000)

	s.Run("stamps the intake date from the request clock", func() {
		v := s.givenDistributor(d, typ, 1000)
		s.Equal("2024-06-01", v.IntakeDate.String())
		s.Equal("Quan 1", v.DistrictName)
		s.Equal("Loai 1", v.DistributorTypeName)
	})

	s.Run("debt above the ceiling fails", func() {
		_, err := s.service.CreateDistributor(s.ctx, s.input(d, typ, 1001))
		s.requireCode(err, dErrors.CodeConstraintViolation)
		s.Contains(dErrors.MessageOf(err), "1000")
	})

	s.Run("field validation", func() {
		bad := s.input(d, typ, 0)
		bad.Phone = "12345"
		_, err := s.service.CreateDistributor(s.ctx, bad)
		s.requireCode(err, dErrors.CodeValidation)

		bad = s.input(d, typ, 0)
		bad.Email = "not-an-email"
		_, err = s.service.CreateDistributor(s.ctx, bad)
		s.requireCode(err, dErrors.CodeValidation)

		bad = s.input(d, typ, 0)
		bad.Name = ""
		_, err = s.service.CreateDistributor(s.ctx, bad)
		s.requireCode(err, dErrors.CodeValidation)
	})

	s.Run("missing district or type is a validation error", func() {
		in := s.input(d, typ, 0)
		in.DistrictID = 999
		_, err := s.service.CreateDistributor(s.ctx, in)
		s.requireCode(err, dErrors.CodeValidation)

		in = s.input(d, typ, 0)
		in.DistributorTypeID = 999
		_, err = s.service.CreateDistributor(s.ctx, in)
		s.requireCode(err, dErrors.CodeValidation)
	})
}

func (s *ServiceSuite) TestDistrictQuota() {
	typ := s.givenType("Loai", 1000)
	full := s.givenDistrict("D")
	other := s.givenDistrict("E")
	_, created, err := s.service.EnsureRegulation(s.ctx, models.Regulation{
		Name:  models.RegulationMaxDistributorsPerDistrict,
		Value: "2",
	})
	s.Require().NoError(err)
	s.Require().True(created)

	s.givenDistributor(full, typ, 0)
	s.givenDistributor(full, typ, 0)

	s.Run("third distributor in a full district fails", func() {
		_, err := s.service.CreateDistributor(s.ctx, s.input(full, typ, 0))
		s.requireCode(err, dErrors.CodeConstraintViolation)
		s.Contains(err.Error(), "maximum number of distributors (2)")
	})

	s.Run("another district still accepts", func() {
		s.givenDistributor(other, typ, 0)
	})

	s.Run("moving a distributor into a full district is not re-checked", func() {
		moved := s.givenDistributor(other, typ, 0)
		in := s.input(full, typ, 0)
		_, err := s.service.UpdateDistributor(s.ctx, moved.ID, in)
		s.NoError(err)
	})
}

func (s *ServiceSuite) TestUpdateAndDeleteDistributor() {
	d := s.givenDistrict("D")
	typ := s.givenType("T", 1000)
	v := s.givenDistributor(d, typ, 200)

	s.Run("update keeps the intake date and re-checks the ceiling", func() {
		later := requestcontext.WithTime(s.ctx, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		in := s.input(d, typ, 900)
		in.Email = " shop@example.com "
		updated, err := s.service.UpdateDistributor(later, v.ID, in)
		s.Require().NoError(err)
		s.Equal("2024-06-01", updated.IntakeDate.String())
		s.Equal("shop@example.com", updated.Email)

		_, err = s.service.UpdateDistributor(s.ctx, v.ID, s.input(d, typ, 1001))
		s.requireCode(err, dErrors.CodeConstraintViolation)
	})

	s.Run("update of unknown distributor is not found", func() {
		_, err := s.service.UpdateDistributor(s.ctx, 999, s.input(d, typ, 0))
		s.requireCode(err, dErrors.CodeNotFound)
	})

	s.Run("delete with outstanding debt fails", func() {
		err := s.service.DeleteDistributor(s.ctx, v.ID)
		s.requireCode(err, dErrors.CodeConstraintViolation)
		s.Contains(err.Error(), "outstanding debt")
	})

	s.Run("delete after settling the debt succeeds", func() {
		_, err := s.service.UpdateDistributor(s.ctx, v.ID, s.input(d, typ, 0))
		s.Require().NoError(err)
		s.Require().NoError(s.service.DeleteDistributor(s.ctx, v.ID))
		_, err = s.service.GetDistributor(s.ctx, v.ID)
		s.requireCode(err, dErrors.CodeNotFound)
	})
}

func (s *ServiceSuite) TestSearchDistributors() {
	d := s.givenDistrict("D")
	typ := s.givenType("T", 10)
	s.givenDistributor(d, typ, 0)

	s.Run("empty keyword returns an empty list", func() {
		list, err := s.service.SearchDistributors(s.ctx, "")
		s.Require().NoError(err)
		s.NotNil(list)
		s.Empty(list)
	})

	s.Run("keyword is matched without trimming", func() {
		list, err := s.service.SearchDistributors(s.ctx, " nguyen ")
		s.Require().NoError(err)
		s.Len(list, 1)

		list, err = s.service.SearchDistributors(s.ctx, "   ")
		s.Require().NoError(err)
		s.NotNil(list)
		s.Empty(list)

		list, err = s.service.SearchDistributors(s.ctx, " hue ")
		s.Require().NoError(err)
		s.Empty(list)
	})

	s.Run("matches case-insensitively", func() {
		list, err := s.service.SearchDistributors(s.ctx, "NGUYEN")
		s.Require().NoError(err)
		s.Len(list, 1)
	})
}

// =============================================================================
// Regulation Tests
// =============================================================================

func (s *ServiceSuite) TestRegulations() {
	s.Run("duplicate names conflict", func() {
		_, err := s.service.CreateRegulation(s.ctx, models.Regulation{Name: "Dup", Value: "1"})
		s.Require().NoError(err)
		_, err = s.service.CreateRegulation(s.ctx, models.Regulation{Name: "Dup", Value: "2"})
		s.requireCode(err, dErrors.CodeConflict)
	})

	s.Run("by name requires a name and reports absence", func() {
		_, err := s.service.GetRegulationByName(s.ctx, " ")
		s.requireCode(err, dErrors.CodeBadRequest)
		_, err = s.service.GetRegulationByName(s.ctx, "Missing")
		s.requireCode(err, dErrors.CodeNotFound)
	})

	s.Run("ensure never modifies an existing value", func() {
		first, created, err := s.service.EnsureRegulation(s.ctx, models.Regulation{Name: "Ensured", Value: "1"})
		s.Require().NoError(err)
		s.True(created)

		second, created, err := s.service.EnsureRegulation(s.ctx, models.Regulation{Name: "Ensured", Value: "99"})
		s.Require().NoError(err)
		s.False(created)
		s.Equal(first.ID, second.ID)
		s.Equal("1", second.Value)
	})

	s.Run("update and delete", func() {
		r, err := s.service.CreateRegulation(s.ctx, models.Regulation{Name: "Tmp", Value: "a"})
		s.Require().NoError(err)
		updated, err := s.service.UpdateRegulation(s.ctx, r.ID, models.Regulation{Name: "Tmp", Value: "b"})
		s.Require().NoError(err)
		s.Equal("b", updated.Value)
		s.Require().NoError(s.service.DeleteRegulation(s.ctx, r.ID))
		s.requireCode(s.service.DeleteRegulation(s.ctx, r.ID), dErrors.CodeNotFound)
	})

	s.Run("oversized value is rejected", func() {
		_, err := s.service.CreateRegulation(s.ctx, models.Regulation{Name: "Big", Value: string(make([]rune, models.MaxRegulationValueLength+1))})
		s.requireCode(err, dErrors.CodeValidation)
	})
}

// =============================================================================
// Seed and Health Tests
// =============================================================================

func (s *ServiceSuite) TestSeedDevelopmentData() {
	s.Require().NoError(s.service.SeedDevelopmentData(s.ctx))
	s.Require().NoError(s.service.SeedDevelopmentData(s.ctx))

	districts, err := s.service.ListDistricts(s.ctx)
	s.Require().NoError(err)
	s.Len(districts, 3)

	reg, err := s.service.GetRegulationByName(s.ctx, models.RegulationMaxDistributorsPerDistrict)
	s.Require().NoError(err)
	s.Equal("4", reg.Value)
}

type failingStore struct {
	*store.InMemory
}

func (failingStore) Ping(context.Context) error { return errors.New("down") }

func (failingStore) ListDistricts(context.Context) ([]models.DistrictSummary, error) {
	return nil, errors.New("disk on fire")
}

func (s *ServiceSuite) TestStoreFailuresAreInternal() {
	svc := New(failingStore{store.NewInMemory()})

	s.requireCode(svc.Health(s.ctx), dErrors.CodeInternal)
	_, err := svc.ListDistricts(s.ctx)
	s.requireCode(err, dErrors.CodeInternal)
}

func (s *ServiceSuite) TestWritesAreTraced() {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	svc := New(s.store, WithTracer(provider.Tracer("test")))

	_, err := svc.CreateDistrict(s.ctx, "Quan 10")
	s.Require().NoError(err)
	_, err = svc.UpdateDistrict(s.ctx, 999, "Nowhere")
	s.Require().Error(err)

	spans := recorder.Ended()
	s.Require().Len(spans, 2)
	s.Equal("agency.write", spans[0].Name())
	s.Contains(spans[0].Attributes(), attribute.String("agency.entity", "district"))
	s.Equal(otelcodes.Unset, spans[0].Status().Code)
	s.Equal(otelcodes.Error, spans[1].Status().Code)
}
