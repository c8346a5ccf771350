package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"stockpulse/internal/models"
	"stockpulse/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock repositories and services

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) List(ctx context.Context, warehouseID *uuid.UUID) ([]*models.InventoryItem, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, newQuantity int, expectedVersion int64) error {
	args := m.Called(ctx, id, newQuantity, expectedVersion)
	return args.Error(0)
}

func (m *MockItemRepository) MarkCounted(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockItemRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) Create(ctx context.Context, alert *models.StockAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAlertRepository) ListActiveByItem(ctx context.Context, itemID uuid.UUID) ([]*models.StockAlert, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StockAlert), args.Error(1)
}

func (m *MockAlertRepository) Resolve(ctx context.Context, alertID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, alertID, at)
	return args.Error(0)
}

func (m *MockAlertRepository) Search(ctx context.Context, filter *models.AlertSearchFilter) ([]*models.StockAlert, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StockAlert), args.Error(1)
}

func (m *MockAlertRepository) CountActiveByPriority(ctx context.Context, priority models.AlertPriority, warehouseID *uuid.UUID) (int, error) {
	args := m.Called(ctx, priority, warehouseID)
	return args.Int(0), args.Error(1)
}

type MockCycleCountRepository struct {
	mock.Mock
}

func (m *MockCycleCountRepository) Create(ctx context.Context, record *models.CycleCountRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCycleCountRepository) ListByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]*models.CycleCountRecord, error) {
	args := m.Called(ctx, itemID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CycleCountRecord), args.Error(1)
}

type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) List(ctx context.Context) ([]*models.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Warehouse), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetStatsReport(ctx context.Context, key string) (*models.StatsReport, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatsReport), args.Error(1)
}

func (m *MockCacheService) SetStatsReport(ctx context.Context, key string, report *models.StatsReport, ttl time.Duration) error {
	args := m.Called(ctx, key, report, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteStatsReports(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

// fakeTxRunner hands the given repositories to the callback without a real
// transaction, so service logic can be tested against mocks.
type fakeTxRunner struct {
	items  repositories.ItemRepository
	alerts repositories.AlertRepository
	counts repositories.CycleCountRepository
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(items repositories.ItemRepository, alerts repositories.AlertRepository, counts repositories.CycleCountRepository) error) error {
	return fn(f.items, f.alerts, f.counts)
}

// memAlertRepo is an in-memory alert store used for the reconciliation
// invariant test.
type memAlertRepo struct {
	mu     sync.Mutex
	alerts map[uuid.UUID]*models.StockAlert
}

func newMemAlertRepo() *memAlertRepo {
	return &memAlertRepo{alerts: make(map[uuid.UUID]*models.StockAlert)}
}

func (r *memAlertRepo) Create(_ context.Context, alert *models.StockAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *alert
	r.alerts[alert.ID] = &copied
	return nil
}

func (r *memAlertRepo) ListActiveByItem(_ context.Context, itemID uuid.UUID) ([]*models.StockAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.StockAlert
	for _, alert := range r.alerts {
		if alert.InventoryItemID == itemID && alert.ResolvedAt == nil {
			copied := *alert
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memAlertRepo) Resolve(_ context.Context, alertID uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	alert, ok := r.alerts[alertID]
	if !ok {
		return models.ErrAlertNotFound
	}
	if alert.ResolvedAt != nil {
		return models.ErrAlreadyResolved
	}
	alert.ResolvedAt = &at
	return nil
}

func (r *memAlertRepo) Search(_ context.Context, _ *models.AlertSearchFilter) ([]*models.StockAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.StockAlert
	for _, alert := range r.alerts {
		copied := *alert
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := models.PriorityRank(out[i].Priority), models.PriorityRank(out[j].Priority)
		if ri != rj {
			return ri < rj
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *memAlertRepo) CountActiveByPriority(_ context.Context, priority models.AlertPriority, _ *uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, alert := range r.alerts {
		if alert.ResolvedAt == nil && alert.Priority == priority {
			count++
		}
	}
	return count, nil
}
