package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jaiswal-sarthak/AI-POWERED-SMART-SURVEILLANCE-SYSTEM/pkg/detection"
	"github.com/jaiswal-sarthak/AI-POWERED-SMART-SURVEILLANCE-SYSTEM/pkg/models"
)

// MockDetectionClient is a mock implementation of the DetectionClient interface
type MockDetectionClient struct {
	mock.Mock
}

// Ensure MockDetectionClient implements DetectionClient
var _ detection.DetectionClient = (*MockDetectionClient)(nil)

func (m *MockDetectionClient) FetchStatus(ctx context.Context) (*models.SystemStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SystemStatus), args.Error(1)
}

func (m *MockDetectionClient) FetchLatestAnomaly(ctx context.Context) (*models.AnomalySnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnomalySnapshot), args.Error(1)
}

func (m *MockDetectionClient) FetchCustomAnomalies(ctx context.Context) ([]models.CustomAnomaly, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CustomAnomaly), args.Error(1)
}

func (m *MockDetectionClient) ClearAnomaly(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
