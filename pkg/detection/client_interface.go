package detection

import (
	"context"

	"github.com/jaiswal-sarthak/AI-POWERED-SMART-SURVEILLANCE-SYSTEM/pkg/models"
)

// DetectionClient defines the interface for a detection backend client
// This allows us to mock the client for testing
type DetectionClient interface {
	FetchStatus(ctx context.Context) (*models.SystemStatus, error)
	FetchLatestAnomaly(ctx context.Context) (*models.AnomalySnapshot, error)
	FetchCustomAnomalies(ctx context.Context) ([]models.CustomAnomaly, error)
	ClearAnomaly(ctx context.Context) error
}

// Ensure Client implements DetectionClient
var _ DetectionClient = (*Client)(nil)
