package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distributors/internal/agency/models"
	"distributors/internal/agency/service"
	"distributors/internal/agency/store"
	"distributors/pkg/testutil"
)

var intakeTime = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

// newRouter serves the handlers over a real service backed by a fresh
// in-memory store.
func newRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(service.New(store.NewInMemory(), service.WithLogger(logger)), logger)
	r := chi.NewRouter()
	r.Route("/api", h.Register)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.WithRequestScope(testutil.NewJSONRequest(t, method, path, body), "req-test", intakeTime)
	return testutil.Serve(r, req)
}

func mustCreate[T any](t *testing.T, r http.Handler, path string, body any) T {
	t.Helper()
	rr := do(t, r, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return testutil.DecodeJSON[T](t, rr)
}

func distributorBody(districtID, typeID int64, debt string) map[string]any {
	return map[string]any{
		"name":                "Dai ly Minh Anh",
		"phone":               "0901234567",
		"address":             "12 Le Loi",
		"district_id":         districtID,
		"distributor_type_id": typeID,
		"email":               "minhanh@example.com",
		"debt":                debt,
	}
}

func TestDistrictEndpoints(t *testing.T) {
	r := newRouter(t)

	testutil.Given(t, "an empty registry", func(t *testing.T) {
		testutil.When(t, "creating a district", func(t *testing.T) {
			d := mustCreate[models.District](t, r, "/api/districts", map[string]any{"name": "Quan 1"})

			testutil.Then(t, "it is readable with a zero count", func(t *testing.T) {
				rr := do(t, r, http.MethodGet, fmt.Sprintf("/api/districts/%d", d.ID), nil)
				testutil.AssertStatus(t, rr, http.StatusOK)
				got := testutil.DecodeJSON[models.DistrictSummary](t, rr)
				assert.Equal(t, "Quan 1", got.Name)
				assert.Zero(t, got.DistributorCount)
			})

			testutil.Then(t, "it is renamed with PUT", func(t *testing.T) {
				rr := do(t, r, http.MethodPut, fmt.Sprintf("/api/districts/%d", d.ID), map[string]any{"name": "Quan Nhat"})
				testutil.AssertStatus(t, rr, http.StatusOK)
				assert.Equal(t, "Quan Nhat", testutil.DecodeJSON[models.District](t, rr).Name)
			})
		})

		testutil.When(t, "the name is blank", func(t *testing.T) {
			rr := do(t, r, http.MethodPost, "/api/districts", map[string]any{"name": "  "})
			testutil.Then(t, "a validation error is returned", func(t *testing.T) {
				testutil.AssertError(t, rr, http.StatusBadRequest, "validation_error")
			})
		})

		testutil.When(t, "the body is malformed", func(t *testing.T) {
			rr := testutil.Serve(r, testutil.NewRawRequest(http.MethodPost, "/api/districts", "{"))
			testutil.Then(t, "a bad request is returned", func(t *testing.T) {
				testutil.AssertError(t, rr, http.StatusBadRequest, "bad_request")
			})
		})
	})

	testutil.Given(t, "a malformed or unknown id", func(t *testing.T) {
		testutil.Then(t, "a non-numeric id is a bad request", func(t *testing.T) {
			rr := do(t, r, http.MethodGet, "/api/districts/abc", nil)
			testutil.AssertError(t, rr, http.StatusBadRequest, "bad_request")
		})
		testutil.Then(t, "a missing district is not found", func(t *testing.T) {
			rr := do(t, r, http.MethodGet, "/api/districts/999", nil)
			testutil.AssertError(t, rr, http.StatusNotFound, "not_found")
		})
		testutil.Then(t, "listing distributors of a missing district is not found", func(t *testing.T) {
			rr := do(t, r, http.MethodGet, "/api/districts/999/distributors", nil)
			testutil.AssertError(t, rr, http.StatusNotFound, "not_found")
		})
	})
}

func TestDistributorLifecycle(t *testing.T) {
	r := newRouter(t)
	district := mustCreate[models.District](t, r, "/api/districts", map[string]any{"name": "Quan 3"})
	typ := mustCreate[models.DistributorType](t, r, "/api/distributor-types", map[string]any{"name": "Loai 1", "max_debt": "1000"})

	var created models.DistributorView
	t.Run("create stamps the intake date and joins names", func(t *testing.T) {
		created = mustCreate[models.DistributorView](t, r, "/api/distributors", distributorBody(district.ID, typ.ID, "500"))
		assert.Equal(t, "2024-06-01", created.IntakeDate.String())
		assert.Equal(t, "Quan 3", created.DistrictName)
		assert.Equal(t, "Loai 1", created.DistributorTypeName)
		assert.Equal(t, "500", created.Debt.String())
	})

	t.Run("debt above the type ceiling is a constraint violation", func(t *testing.T) {
		rr := do(t, r, http.MethodPost, "/api/distributors", distributorBody(district.ID, typ.ID, "1001"))
		testutil.AssertError(t, rr, http.StatusBadRequest, "constraint_violation")
	})

	t.Run("invalid phone is a validation error", func(t *testing.T) {
		body := distributorBody(district.ID, typ.ID, "0")
		body["phone"] = "12345"
		rr := do(t, r, http.MethodPost, "/api/distributors", body)
		testutil.AssertError(t, rr, http.StatusBadRequest, "validation_error")
	})

	t.Run("unknown district is a validation error", func(t *testing.T) {
		rr := do(t, r, http.MethodPost, "/api/distributors", distributorBody(999, typ.ID, "0"))
		testutil.AssertError(t, rr, http.StatusBadRequest, "validation_error")
	})

	t.Run("the type mentions its distributor", func(t *testing.T) {
		rr := do(t, r, http.MethodGet, fmt.Sprintf("/api/distributor-types/%d/distributors", typ.ID), nil)
		testutil.AssertStatus(t, rr, http.StatusOK)
		list := testutil.DecodeJSON[[]models.DistributorView](t, rr)
		require.Len(t, list, 1)
		assert.Equal(t, created.ID, list[0].ID)
	})

	t.Run("district with dependents cannot be deleted", func(t *testing.T) {
		rr := do(t, r, http.MethodDelete, fmt.Sprintf("/api/districts/%d", district.ID), nil)
		testutil.AssertError(t, rr, http.StatusBadRequest, "constraint_violation")
	})

	t.Run("type with dependents cannot be deleted", func(t *testing.T) {
		rr := do(t, r, http.MethodDelete, fmt.Sprintf("/api/distributor-types/%d", typ.ID), nil)
		testutil.AssertError(t, rr, http.StatusBadRequest, "constraint_violation")
	})

	t.Run("distributor with outstanding debt cannot be deleted", func(t *testing.T) {
		rr := do(t, r, http.MethodDelete, fmt.Sprintf("/api/distributors/%d", created.ID), nil)
		testutil.AssertError(t, rr, http.StatusBadRequest, "constraint_violation")
	})

	t.Run("once settled the distributor is deleted", func(t *testing.T) {
		path := fmt.Sprintf("/api/distributors/%d", created.ID)
		rr := do(t, r, http.MethodPut, path, distributorBody(district.ID, typ.ID, "0"))
		testutil.AssertStatus(t, rr, http.StatusOK)

		rr = do(t, r, http.MethodDelete, path, nil)
		testutil.AssertStatus(t, rr, http.StatusNoContent)

		rr = do(t, r, http.MethodGet, path, nil)
		testutil.AssertError(t, rr, http.StatusNotFound, "not_found")
	})

	t.Run("empty district is deleted", func(t *testing.T) {
		rr := do(t, r, http.MethodDelete, fmt.Sprintf("/api/districts/%d", district.ID), nil)
		testutil.AssertStatus(t, rr, http.StatusNoContent)
	})
}

func TestLoweringTypeCeiling(t *testing.T) {
	r := newRouter(t)
	district := mustCreate[models.District](t, r, "/api/districts", map[string]any{"name": "Thu Duc"})
	typ := mustCreate[models.DistributorType](t, r, "/api/distributor-types", map[string]any{"name": "Loai 2", "max_debt": "1000"})
	mustCreate[models.DistributorView](t, r, "/api/distributors", distributorBody(district.ID, typ.ID, "500"))
	path := fmt.Sprintf("/api/distributor-types/%d", typ.ID)

	testutil.Given(t, "a distributor owing 500 under a 1000 ceiling", func(t *testing.T) {
		testutil.When(t, "lowering the ceiling to 400", func(t *testing.T) {
			rr := do(t, r, http.MethodPut, path, map[string]any{"name": "Loai 2", "max_debt": "400"})
			testutil.Then(t, "the update is rejected", func(t *testing.T) {
				testutil.AssertError(t, rr, http.StatusBadRequest, "constraint_violation")
			})
		})
		testutil.When(t, "lowering the ceiling to exactly 500", func(t *testing.T) {
			rr := do(t, r, http.MethodPut, path, map[string]any{"name": "Loai 2", "max_debt": "500"})
			testutil.Then(t, "the update succeeds", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusOK)
				assert.Equal(t, "500", testutil.DecodeJSON[models.DistributorType](t, rr).MaxDebt.String())
			})
		})
	})

	t.Run("missing max_debt is a validation error", func(t *testing.T) {
		rr := do(t, r, http.MethodPut, path, map[string]any{"name": "Loai 2"})
		testutil.AssertError(t, rr, http.StatusBadRequest, "validation_error")
	})
}

func TestDistrictQuotaOverHTTP(t *testing.T) {
	r := newRouter(t)
	full := mustCreate[models.District](t, r, "/api/districts", map[string]any{"name": "Quan 1"})
	other := mustCreate[models.District](t, r, "/api/districts", map[string]any{"name": "Quan 5"})
	typ := mustCreate[models.DistributorType](t, r, "/api/distributor-types", map[string]any{"name": "Loai 1", "max_debt": "1000"})
	mustCreate[models.Regulation](t, r, "/api/regulations", map[string]any{"name": models.RegulationMaxDistributorsPerDistrict, "value": "2"})

	mustCreate[models.DistributorView](t, r, "/api/distributors", distributorBody(full.ID, typ.ID, "0"))
	mustCreate[models.DistributorView](t, r, "/api/distributors", distributorBody(full.ID, typ.ID, "0"))

	t.Run("third distributor in the full district fails", func(t *testing.T) {
		rr := do(t, r, http.MethodPost, "/api/distributors", distributorBody(full.ID, typ.ID, "0"))
		testutil.AssertError(t, rr, http.StatusBadRequest, "constraint_violation")
	})

	t.Run("another district still accepts", func(t *testing.T) {
		mustCreate[models.DistributorView](t, r, "/api/distributors", distributorBody(other.ID, typ.ID, "0"))
	})

	t.Run("counts reflect the distribution", func(t *testing.T) {
		rr := do(t, r, http.MethodGet, "/api/districts/counts", nil)
		testutil.AssertStatus(t, rr, http.StatusOK)
		counts := map[string]int{}
		for _, d := range testutil.DecodeJSON[[]models.DistrictSummary](t, rr) {
			counts[d.Name] = d.DistributorCount
		}
		assert.Equal(t, map[string]int{"Quan 1": 2, "Quan 5": 1}, counts)
	})
}

func TestSearchEndpoint(t *testing.T) {
	r := newRouter(t)
	district := mustCreate[models.District](t, r, "/api/districts", map[string]any{"name": "Quan 1"})
	typ := mustCreate[models.DistributorType](t, r, "/api/distributor-types", map[string]any{"name": "Loai 1", "max_debt": "1000"})
	mustCreate[models.DistributorView](t, r, "/api/distributors", distributorBody(district.ID, typ.ID, "0"))

	tests := []struct {
		name    string
		keyword string
		want    int
	}{
		{name: "empty keyword", keyword: "", want: 0},
		{name: "case-insensitive name match", keyword: "minh%20ANH", want: 1},
		{name: "phone substring", keyword: "01234", want: 1},
		{name: "no match", keyword: "nothing", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, r, http.MethodGet, "/api/distributors/search?keyword="+tt.keyword, nil)
			testutil.AssertStatus(t, rr, http.StatusOK)
			assert.Len(t, testutil.DecodeJSON[[]models.DistributorView](t, rr), tt.want)
		})
	}

	t.Run("empty keyword encodes an empty array", func(t *testing.T) {
		rr := do(t, r, http.MethodGet, "/api/distributors/search?keyword=", nil)
		assert.JSONEq(t, "[]", rr.Body.String())
	})
}

func TestRegulationEndpoints(t *testing.T) {
	r := newRouter(t)
	body := map[string]any{"name": "MaxDistributorsPerDistrict", "value": "4", "description": "quota"}

	t.Run("by-name without a name is a bad request", func(t *testing.T) {
		rr := do(t, r, http.MethodGet, "/api/regulations/by-name", nil)
		testutil.AssertError(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("by-name for an absent regulation is not found", func(t *testing.T) {
		rr := do(t, r, http.MethodGet, "/api/regulations/by-name?name=MaxDistributorsPerDistrict", nil)
		testutil.AssertError(t, rr, http.StatusNotFound, "not_found")
	})

	var ensured models.Regulation
	t.Run("ensure creates on first call", func(t *testing.T) {
		rr := do(t, r, http.MethodPost, "/api/regulations/ensure", body)
		testutil.AssertStatus(t, rr, http.StatusCreated)
		ensured = testutil.DecodeJSON[models.Regulation](t, rr)
		assert.Equal(t, "4", ensured.Value)
	})

	t.Run("ensure returns the existing record unchanged", func(t *testing.T) {
		rr := do(t, r, http.MethodPost, "/api/regulations/ensure", map[string]any{"name": "MaxDistributorsPerDistrict", "value": "9"})
		testutil.AssertStatus(t, rr, http.StatusOK)
		got := testutil.DecodeJSON[models.Regulation](t, rr)
		assert.Equal(t, ensured.ID, got.ID)
		assert.Equal(t, "4", got.Value)
	})

	t.Run("duplicate create is a conflict", func(t *testing.T) {
		rr := do(t, r, http.MethodPost, "/api/regulations", body)
		testutil.AssertError(t, rr, http.StatusConflict, "conflict")
	})

	t.Run("update then delete", func(t *testing.T) {
		path := fmt.Sprintf("/api/regulations/%d", ensured.ID)
		rr := do(t, r, http.MethodPut, path, map[string]any{"name": "MaxDistributorsPerDistrict", "value": "6"})
		testutil.AssertStatus(t, rr, http.StatusOK)
		assert.Equal(t, "6", testutil.DecodeJSON[models.Regulation](t, rr).Value)

		rr = do(t, r, http.MethodDelete, path, nil)
		testutil.AssertStatus(t, rr, http.StatusNoContent)

		rr = do(t, r, http.MethodGet, path, nil)
		testutil.AssertError(t, rr, http.StatusNotFound, "not_found")
	})
}
