package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"distributors/internal/agency/models"
	"distributors/pkg/platform/sentinel"
)

// InMemory is a map-backed store. RunInTx serializes transactions with a
// coarse lock; individual operations take a read/write lock of their own.
type InMemory struct {
	txMu sync.Mutex

	mu           sync.RWMutex
	districts    map[int64]models.District
	types        map[int64]models.DistributorType
	distributors map[int64]models.Distributor
	regulations  map[int64]models.Regulation

	nextDistrict    int64
	nextType        int64
	nextDistributor int64
	nextRegulation  int64
}

// NewInMemory creates an empty store.
func NewInMemory() *InMemory {
	return &InMemory{
		districts:    make(map[int64]models.District),
		types:        make(map[int64]models.DistributorType),
		distributors: make(map[int64]models.Distributor),
		regulations:  make(map[int64]models.Regulation),
	}
}

// RunInTx runs fn while holding the transaction lock. Nested calls reuse the
// lock already held.
func (s *InMemory) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}

// Ping always succeeds.
func (s *InMemory) Ping(context.Context) error {
	return nil
}

func sortedByID[T any](m map[int64]T) []T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

// Districts

func (s *InMemory) ListDistricts(_ context.Context) ([]models.DistrictSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := s.countByDistrict()
	out := make([]models.DistrictSummary, 0, len(s.districts))
	for _, d := range sortedByID(s.districts) {
		out = append(out, models.DistrictSummary{District: d, DistributorCount: counts[d.ID]})
	}
	return out, nil
}

func (s *InMemory) FindDistrict(_ context.Context, id int64) (*models.District, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.districts[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &d, nil
}

func (s *InMemory) CreateDistrict(_ context.Context, d *models.District) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextDistrict++
	d.ID = s.nextDistrict
	s.districts[d.ID] = *d
	return nil
}

func (s *InMemory) UpdateDistrict(_ context.Context, d *models.District) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.districts[d.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.districts[d.ID] = *d
	return nil
}

func (s *InMemory) DeleteDistrict(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.districts[id]; !ok {
		return sentinel.ErrNotFound
	}
	if s.countByDistrict()[id] > 0 {
		return sentinel.ErrInvalidState
	}
	delete(s.districts, id)
	return nil
}

// Distributor types

func (s *InMemory) ListDistributorTypes(_ context.Context) ([]models.DistributorTypeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := s.countByType()
	out := make([]models.DistributorTypeSummary, 0, len(s.types))
	for _, t := range sortedByID(s.types) {
		out = append(out, models.DistributorTypeSummary{DistributorType: t, DistributorCount: counts[t.ID]})
	}
	return out, nil
}

func (s *InMemory) FindDistributorType(_ context.Context, id int64) (*models.DistributorType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.types[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &t, nil
}

func (s *InMemory) CreateDistributorType(_ context.Context, t *models.DistributorType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextType++
	t.ID = s.nextType
	s.types[t.ID] = *t
	return nil
}

func (s *InMemory) UpdateDistributorType(_ context.Context, t *models.DistributorType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.types[t.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.types[t.ID] = *t
	return nil
}

func (s *InMemory) DeleteDistributorType(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.types[id]; !ok {
		return sentinel.ErrNotFound
	}
	if s.countByType()[id] > 0 {
		return sentinel.ErrInvalidState
	}
	delete(s.types, id)
	return nil
}

// Distributors

func (s *InMemory) ListDistributors(_ context.Context) ([]models.DistributorView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.views(func(*models.Distributor) bool { return true }), nil
}

func (s *InMemory) ListDistributorsByDistrict(_ context.Context, districtID int64) ([]models.DistributorView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.views(func(d *models.Distributor) bool { return d.DistrictID == districtID }), nil
}

func (s *InMemory) ListDistributorsByType(_ context.Context, typeID int64) ([]models.DistributorView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.views(func(d *models.Distributor) bool { return d.DistributorTypeID == typeID }), nil
}

// SearchDistributors matches keyword against name, phone, address and email.
// An empty keyword matches nothing.
func (s *InMemory) SearchDistributors(_ context.Context, keyword string) ([]models.DistributorView, error) {
	if keyword == "" {
		return []models.DistributorView{}, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.views(func(d *models.Distributor) bool { return matchesKeyword(d, keyword) }), nil
}

func (s *InMemory) FindDistributor(_ context.Context, id int64) (*models.DistributorView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.distributors[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	v := s.view(d)
	return &v, nil
}

func (s *InMemory) CreateDistributor(_ context.Context, d *models.Distributor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkReferences(d); err != nil {
		return err
	}
	s.nextDistributor++
	d.ID = s.nextDistributor
	s.distributors[d.ID] = *d
	return nil
}

// UpdateDistributor rewrites every field except the intake date.
func (s *InMemory) UpdateDistributor(_ context.Context, d *models.Distributor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.distributors[d.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if err := s.checkReferences(d); err != nil {
		return err
	}
	updated := *d
	updated.IntakeDate = existing.IntakeDate
	s.distributors[d.ID] = updated
	return nil
}

func (s *InMemory) DeleteDistributor(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.distributors[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.distributors, id)
	return nil
}

func (s *InMemory) CountDistributorsByDistrict(_ context.Context, districtID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countByDistrict()[districtID], nil
}

func (s *InMemory) CountDistributorsByType(_ context.Context, typeID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countByType()[typeID], nil
}

func (s *InMemory) HasDistributorOfTypeWithDebtAbove(_ context.Context, typeID int64, ceiling decimal.Decimal) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.distributors {
		if d.DistributorTypeID == typeID && d.Debt.GreaterThan(ceiling) {
			return true, nil
		}
	}
	return false, nil
}

// Regulations

func (s *InMemory) ListRegulations(_ context.Context) ([]models.Regulation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.regulations), nil
}

func (s *InMemory) FindRegulation(_ context.Context, id int64) (*models.Regulation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.regulations[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &r, nil
}

func (s *InMemory) FindRegulationByName(_ context.Context, name string) (*models.Regulation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.regulations {
		if r.Name == name {
			return &r, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) CreateRegulation(_ context.Context, r *models.Regulation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.regulationNameTaken(r.Name, 0) {
		return sentinel.ErrConflict
	}
	s.nextRegulation++
	r.ID = s.nextRegulation
	s.regulations[r.ID] = *r
	return nil
}

func (s *InMemory) UpdateRegulation(_ context.Context, r *models.Regulation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.regulations[r.ID]; !ok {
		return sentinel.ErrNotFound
	}
	if s.regulationNameTaken(r.Name, r.ID) {
		return sentinel.ErrConflict
	}
	s.regulations[r.ID] = *r
	return nil
}

func (s *InMemory) DeleteRegulation(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.regulations[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.regulations, id)
	return nil
}

// helpers; callers hold s.mu

func (s *InMemory) countByDistrict() map[int64]int {
	counts := make(map[int64]int)
	for _, d := range s.distributors {
		counts[d.DistrictID]++
	}
	return counts
}

func (s *InMemory) countByType() map[int64]int {
	counts := make(map[int64]int)
	for _, d := range s.distributors {
		counts[d.DistributorTypeID]++
	}
	return counts
}

func (s *InMemory) checkReferences(d *models.Distributor) error {
	if _, ok := s.districts[d.DistrictID]; !ok {
		return sentinel.ErrInvalidState
	}
	if _, ok := s.types[d.DistributorTypeID]; !ok {
		return sentinel.ErrInvalidState
	}
	return nil
}

func (s *InMemory) regulationNameTaken(name string, except int64) bool {
	for id, r := range s.regulations {
		if id != except && r.Name == name {
			return true
		}
	}
	return false
}

func (s *InMemory) view(d models.Distributor) models.DistributorView {
	return models.DistributorView{
		Distributor:         d,
		DistrictName:        s.districts[d.DistrictID].Name,
		DistributorTypeName: s.types[d.DistributorTypeID].Name,
	}
}

func (s *InMemory) views(keep func(*models.Distributor) bool) []models.DistributorView {
	out := []models.DistributorView{}
	for _, d := range s.distributors {
		if keep(&d) {
			out = append(out, s.view(d))
		}
	}
	slices.SortFunc(out, func(a, b models.DistributorView) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
