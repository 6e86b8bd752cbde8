package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tracewatch/tracewatch-backend/internal/models"
	"github.com/tracewatch/tracewatch-backend/internal/pkg/metrics"
	"github.com/tracewatch/tracewatch-backend/internal/pkg/timebucket"
	"github.com/tracewatch/tracewatch-backend/internal/pkg/topologycache"
	"github.com/tracewatch/tracewatch-backend/internal/repository"
	"github.com/tracewatch/tracewatch-backend/internal/topology"
)

// TopologyRequest is one dashboard window: a step and the start/end
// buckets at that step.
type TopologyRequest struct {
	Step  models.Step
	Start int64
	End   int64
}

// TopologyService builds the dependency topology for a window.
type TopologyService interface {
	Topology(ctx context.Context, req TopologyRequest) (*models.Topology, error)
}

type topologyStore interface {
	repository.ComponentRepository
	repository.MappingRepository
	repository.MetricRepository
}

type topologyService struct {
	store   topologyStore
	builder *topology.Builder
	cache   *topologycache.Cache
}

// NewTopologyService wires a TopologyService over the metric store and the
// graph builder.
func NewTopologyService(store topologyStore, builder *topology.Builder, cache *topologycache.Cache) TopologyService {
	return &topologyService{store: store, builder: builder, cache: cache}
}

func (s *topologyService) Topology(ctx context.Context, req TopologyRequest) (*models.Topology, error) {
	startSecond, err := timebucket.StartSecondBucket(req.Step, req.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid window start: %w", err)
	}
	endSecond, err := timebucket.EndSecondBucket(req.Step, req.End)
	if err != nil {
		return nil, fmt.Errorf("invalid window end: %w", err)
	}

	if cached, ok := s.cache.Get(req.Step, req.Start, req.End); ok {
		return cached, nil
	}

	components, err := s.store.Components(ctx, req.Step, req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load components: %w", err)
	}
	mappings, err := s.store.Mappings(ctx, req.Step, req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load mappings: %w", err)
	}
	applicationMetrics, err := s.store.ApplicationMetrics(ctx, req.Step, req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load application metrics: %w", err)
	}
	callerReferences, err := s.store.ReferenceMetrics(ctx, req.Step, req.Start, req.End, models.MetricSourceCaller)
	if err != nil {
		return nil, fmt.Errorf("failed to load caller references: %w", err)
	}
	calleeReferences, err := s.store.ReferenceMetrics(ctx, req.Step, req.Start, req.End, models.MetricSourceCallee)
	if err != nil {
		return nil, fmt.Errorf("failed to load callee references: %w", err)
	}

	buildStart := time.Now()
	top := s.builder.Build(ctx, topology.BuildInput{
		Components:            components,
		Mappings:              mappings,
		ApplicationMetrics:    applicationMetrics,
		CallerReferences:      callerReferences,
		CalleeReferences:      calleeReferences,
		Step:                  req.Step,
		StartTimeBucket:       req.Start,
		EndTimeBucket:         req.End,
		StartSecondTimeBucket: startSecond,
		EndSecondTimeBucket:   endSecond,
	})
	metrics.TopologyBuildDurationSeconds.Observe(time.Since(buildStart).Seconds())
	metrics.TopologyNodesTotal.Set(float64(len(top.Nodes)))

	s.cache.Set(req.Step, req.Start, req.End, top)
	return top, nil
}
