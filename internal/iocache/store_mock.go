package iocache

import (
	"github.com/fredline/fredline/internal/contract"
	"github.com/fredline/fredline/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetSeriesStore implements the StoreManager interface.
func (m *MockStoreManager) GetSeriesStore() contract.SeriesStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SeriesStore)
	return store
}

// MockSeriesStore is a mock implementation of SeriesStore for testing.
type MockSeriesStore struct {
	mock.Mock
}

var _ contract.SeriesStore = &MockSeriesStore{} // Compile-time check

// SaveSeries implements the SeriesStore interface.
func (m *MockSeriesStore) SaveSeries(rec schema.SeriesRecord) error {
	args := m.Called(rec)
	return args.Error(0)
}

// GetSeries implements the SeriesStore interface.
func (m *MockSeriesStore) GetSeries(seriesID string) (schema.SeriesRecord, error) {
	args := m.Called(seriesID)
	return args.Get(0).(schema.SeriesRecord), args.Error(1)
}

// ListSeries implements the SeriesStore interface.
func (m *MockSeriesStore) ListSeries() ([]schema.SeriesSummary, error) {
	args := m.Called()
	summaries, _ := args.Get(0).([]schema.SeriesSummary)
	return summaries, args.Error(1)
}

// DeleteSeries implements the SeriesStore interface.
func (m *MockSeriesStore) DeleteSeries(seriesID string) error {
	args := m.Called(seriesID)
	return args.Error(0)
}

// GetStatus implements the SeriesStore interface.
func (m *MockSeriesStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the SeriesStore interface.
func (m *MockSeriesStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
