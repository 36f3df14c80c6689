package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockFredClient is a mock implementation of FredClient for testing.
type MockFredClient struct {
	mock.Mock
}

var _ FredClient = &MockFredClient{} // Compile-time check

// FetchSeriesMetadata implements the FredClient interface.
func (m *MockFredClient) FetchSeriesMetadata(ctx context.Context, seriesID string) (string, error) {
	args := m.Called(ctx, seriesID)
	return args.String(0), args.Error(1)
}

// FetchSeriesObservations implements the FredClient interface.
func (m *MockFredClient) FetchSeriesObservations(ctx context.Context, seriesID, startDate, endDate string) (string, error) {
	args := m.Called(ctx, seriesID, startDate, endDate)
	return args.String(0), args.Error(1)
}
