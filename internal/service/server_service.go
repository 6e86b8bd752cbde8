package service

import (
	"context"

	"github.com/tracewatch/tracewatch-backend/internal/models"
	"github.com/tracewatch/tracewatch-backend/internal/repository"
)

// ServerService reports the server instances an application had running
// within a window.
type ServerService struct {
	repo repository.InstanceRepository
}

// NewServerService wires a ServerService.
func NewServerService(repo repository.InstanceRepository) *ServerService {
	return &ServerService{repo: repo}
}

// AllServers lists the instances registered before the window end that
// were still heartbeating after the window start.
func (s *ServerService) AllServers(ctx context.Context, applicationID int, startSecondBucket, endSecondBucket int64) ([]models.AppServerInfo, error) {
	return s.repo.ActiveInstances(ctx, applicationID, startSecondBucket, endSecondBucket)
}
