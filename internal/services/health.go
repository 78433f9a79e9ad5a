package services

import (
	"context"
)

// HealthResult reports service liveness and database reachability.
type HealthResult struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// HealthService implements the health check
type HealthService struct {
	serviceName string
	pingDB      func() error
}

// NewHealthService creates a new health service. pingDB may be nil when no
// database check is wanted.
func NewHealthService(serviceName string, pingDB func() error) *HealthService {
	return &HealthService{serviceName: serviceName, pingDB: pingDB}
}

// Check implements the health check method
func (s *HealthService) Check(ctx context.Context) *HealthResult {
	status := "healthy"
	if s.pingDB != nil {
		if err := s.pingDB(); err != nil {
			status = "degraded"
		}
	}
	return &HealthResult{Status: status, Service: s.serviceName}
}
