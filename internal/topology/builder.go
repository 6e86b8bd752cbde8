// Package topology builds the service-dependency graph shown on the
// dashboard from pre-fetched, time-windowed metric rows.
package topology

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tracewatch/tracewatch-backend/internal/models"
	"github.com/tracewatch/tracewatch-backend/internal/pkg/quality"
)

// ApplicationProvider resolves application metadata by id.
type ApplicationProvider interface {
	ApplicationByID(ctx context.Context, applicationID int) models.Application
}

// ComponentCatalog resolves component ids to display names and the server
// kinds they connect to.
type ComponentCatalog interface {
	ComponentName(componentID int) string
	ServerIDOf(componentID int) int
	ServerName(serverID int) string
}

// ServerLister reports the active server instances of an application in a
// second-granularity window.
type ServerLister interface {
	AllServers(ctx context.Context, applicationID int, startSecondBucket, endSecondBucket int64) ([]models.AppServerInfo, error)
}

// AlarmLister runs paged alarm queries at the three entity scopes.
type AlarmLister interface {
	ApplicationAlarms(ctx context.Context, keyword string, step models.Step, startBucket, endBucket int64, limit, offset int) (*models.Alarm, error)
	InstanceAlarms(ctx context.Context, keyword string, step models.Step, startBucket, endBucket int64, limit, offset int) (*models.Alarm, error)
	EndpointAlarms(ctx context.Context, keyword string, step models.Step, startBucket, endBucket int64, limit, offset int) (*models.Alarm, error)
}

// MinutesCalculator reports the minutes an application was observable
// within a second-granularity window.
type MinutesCalculator interface {
	MinutesBetween(ctx context.Context, applicationID int, startSecondBucket, endSecondBucket int64) (int64, error)
}

// BuildInput carries the pre-fetched rows and the window one build runs
// over.
type BuildInput struct {
	Components         []models.ApplicationComponent
	Mappings           []models.ApplicationMapping
	ApplicationMetrics []models.ApplicationMetric
	CallerReferences   []models.ReferenceMetric
	CalleeReferences   []models.ReferenceMetric

	Step                  models.Step
	StartTimeBucket       int64
	EndTimeBucket         int64
	StartSecondTimeBucket int64
	EndSecondTimeBucket   int64
}

// Builder assembles one Topology per call. Stateless; all collaborators
// must be safe for concurrent reads so builds can run per dashboard
// request in parallel.
type Builder struct {
	applications ApplicationProvider
	catalog      ComponentCatalog
	servers      ServerLister
	alarms       AlarmLister
	minutes      MinutesCalculator
	log          *slog.Logger
}

// NewBuilder wires a Builder with its lookup collaborators.
func NewBuilder(applications ApplicationProvider, catalog ComponentCatalog, servers ServerLister, alarms AlarmLister, minutes MinutesCalculator, log *slog.Logger) *Builder {
	return &Builder{
		applications: applications,
		catalog:      catalog,
		servers:      servers,
		alarms:       alarms,
		minutes:      minutes,
		log:          log,
	}
}

// Build runs the single-pass pipeline: lookup tables, row sanitization,
// node materialization, caller-side edges, callee-side edges, assembly.
// Per-field lookup failures (minutes arithmetic, alarm queries) are logged
// and leave the field at its default; they never abort the build.
func (b *Builder) Build(ctx context.Context, in BuildInput) *models.Topology {
	nodeCompMap := b.buildNodeCompMap(in.Components)
	conjecturalCompMap := b.buildConjecturalCompMap(in.Components)
	mappings := mappingsToAliasTable(in.Mappings)

	callerReferences := filterZeroReference(in.CallerReferences)
	calleeReferences := b.narrowCalleeReferences(ctx, filterZeroReference(in.CalleeReferences))

	nodes := make([]models.Node, 0, len(in.ApplicationMetrics))
	for _, metric := range in.ApplicationMetrics {
		nodes = append(nodes, b.buildApplicationNode(ctx, metric, nodeCompMap, in))
	}

	calls := make([]models.Call, 0, len(callerReferences)+len(calleeReferences))
	seenNodeIDs := make(map[int]bool)

	for _, reference := range callerReferences {
		source := b.applications.ApplicationByID(ctx, reference.Source)
		target := b.applications.ApplicationByID(ctx, reference.Target)

		if target.IsAddress && !hasAlias(mappings, target.ApplicationID) {
			if !seenNodeIDs[target.ApplicationID] {
				nodes = append(nodes, models.ConjecturalNode{NodeBase: models.NodeBase{
					ID:   target.ApplicationID,
					Name: target.ApplicationCode,
					Type: typeOrUnknown(conjecturalCompMap, target.ApplicationID),
				}})
				seenNodeIDs[target.ApplicationID] = true
			}
		}

		// Re-scan the node list here: application nodes from the metric
		// pass are not tracked in seenNodeIDs.
		if !collectNodeIDs(nodes)[source.ApplicationID] {
			nodes = append(nodes, models.ApplicationNode{
				NodeBase: models.NodeBase{
					ID:   source.ApplicationID,
					Name: source.ApplicationCode,
					Type: typeOrUnknown(nodeCompMap, source.ApplicationID),
				},
				// No own metric row in this window; report it healthy.
				SLA:   100,
				Apdex: 100,
			})
		}

		actualTargetID := target.ApplicationID
		if canonical, ok := mappings[target.ApplicationID]; ok {
			actualTargetID = canonical
		}

		call := models.Call{
			Source:     source.ApplicationID,
			SourceName: source.ApplicationCode,
			Target:     actualTargetID,
			TargetName: b.applications.ApplicationByID(ctx, actualTargetID).ApplicationCode,
			Alert:      false,
			// Classified by the observed target, not the alias it
			// collapses into.
			CallType: nodeCompMap[reference.Target],
		}
		if minutes, err := b.minutes.MinutesBetween(ctx, source.ApplicationID, in.StartSecondTimeBucket, in.EndSecondTimeBucket); err != nil {
			b.log.Error("minutes between failed", "application_id", source.ApplicationID, "error", err)
		} else {
			call.CallsPerMinute = safeDiv(reference.Calls, minutes)
		}
		call.AvgResponseTime = safeDiv(reference.Durations, reference.Calls)
		calls = append(calls, call)
	}

	for _, reference := range calleeReferences {
		source := b.applications.ApplicationByID(ctx, reference.Source)
		target := b.applications.ApplicationByID(ctx, reference.Target)

		if source.ApplicationID == models.NoneApplicationID {
			if !seenNodeIDs[source.ApplicationID] {
				nodes = append(nodes, models.VisualUserNode{NodeBase: models.NodeBase{
					ID:   source.ApplicationID,
					Name: models.UserCode,
					Type: strings.ToUpper(models.UserCode),
				}})
				seenNodeIDs[source.ApplicationID] = true
			}
		}

		if source.IsAddress {
			if !seenNodeIDs[source.ApplicationID] {
				nodes = append(nodes, models.ConjecturalNode{NodeBase: models.NodeBase{
					ID:   source.ApplicationID,
					Name: source.ApplicationCode,
					// Keyed by the target on this side.
					Type: typeOrUnknown(conjecturalCompMap, target.ApplicationID),
				}})
				seenNodeIDs[source.ApplicationID] = true
			}
		}

		call := models.Call{
			Source:     source.ApplicationID,
			SourceName: source.ApplicationCode,
			Target:     target.ApplicationID,
			TargetName: target.ApplicationCode,
			Alert:      false,
		}
		if source.ApplicationID != models.NoneApplicationID {
			call.CallType = nodeCompMap[reference.Target]
		}
		if minutes, err := b.minutes.MinutesBetween(ctx, target.ApplicationID, in.StartSecondTimeBucket, in.EndSecondTimeBucket); err != nil {
			b.log.Error("minutes between failed", "application_id", target.ApplicationID, "error", err)
		} else {
			call.CallsPerMinute = safeDiv(reference.Calls, minutes)
		}
		call.AvgResponseTime = safeDiv(reference.Durations, reference.Calls)
		calls = append(calls, call)
	}

	return &models.Topology{Nodes: nodes, Calls: calls}
}

func (b *Builder) buildApplicationNode(ctx context.Context, metric models.ApplicationMetric, nodeCompMap map[int]string, in BuildInput) models.ApplicationNode {
	application := b.applications.ApplicationByID(ctx, metric.ID)
	node := models.ApplicationNode{
		NodeBase: models.NodeBase{
			ID:   metric.ID,
			Name: application.ApplicationCode,
			Type: typeOrUnknown(nodeCompMap, application.ApplicationID),
		},
	}

	node.SLA = quality.SLA(metric.ErrorCalls, metric.Calls)
	if minutes, err := b.minutes.MinutesBetween(ctx, metric.ID, in.StartSecondTimeBucket, in.EndSecondTimeBucket); err != nil {
		b.log.Error("minutes between failed", "application_id", metric.ID, "error", err)
	} else {
		node.CallsPerMinute = safeDiv(metric.Calls, minutes)
	}
	node.AvgResponseTime = safeDiv(metric.Durations, metric.Calls)
	node.Apdex = quality.Apdex(metric.SatisfiedCount, metric.ToleratingCount, metric.FrustratedCount)

	if alarm, err := b.alarms.ApplicationAlarms(ctx, "", in.Step, in.StartTimeBucket, in.EndTimeBucket, 1, 0); err != nil {
		b.log.Error("application alarm query failed", "application_id", metric.ID, "error", err)
	} else if len(alarm.Items) > 0 {
		node.Alarm = true
	}

	if servers, err := b.servers.AllServers(ctx, metric.ID, in.StartSecondTimeBucket, in.EndSecondTimeBucket); err != nil {
		b.log.Error("server lookup failed", "application_id", metric.ID, "error", err)
	} else {
		node.NumOfServer = len(servers)
	}

	if alarm, err := b.alarms.InstanceAlarms(ctx, "", in.Step, in.StartTimeBucket, in.EndTimeBucket, 1000, 0); err != nil {
		b.log.Error("instance alarm query failed", "application_id", metric.ID, "error", err)
	} else {
		node.NumOfServerAlarm = len(alarm.Items)
	}

	if alarm, err := b.alarms.EndpointAlarms(ctx, "", in.Step, in.StartTimeBucket, in.EndTimeBucket, 1000, 0); err != nil {
		b.log.Error("endpoint alarm query failed", "application_id", metric.ID, "error", err)
	} else {
		node.NumOfServiceAlarm = len(alarm.Items)
	}

	return node
}

// narrowCalleeReferences keeps only rows whose true origin is outside
// instrumentation: an address-type source or anonymous end-user traffic.
// Instrumented pairs are already covered by the caller-side rows.
func (b *Builder) narrowCalleeReferences(ctx context.Context, references []models.ReferenceMetric) []models.ReferenceMetric {
	narrowed := make([]models.ReferenceMetric, 0, len(references))
	for _, reference := range references {
		source := b.applications.ApplicationByID(ctx, reference.Source)
		if source.IsAddress || source.ApplicationID == models.NoneApplicationID {
			narrowed = append(narrowed, reference)
		}
	}
	return narrowed
}

// buildNodeCompMap maps each application to the display name of its
// observed component.
func (b *Builder) buildNodeCompMap(components []models.ApplicationComponent) map[int]string {
	compMap := make(map[int]string, len(components))
	for _, component := range components {
		compMap[component.ApplicationID] = b.catalog.ComponentName(component.ComponentID)
	}
	return compMap
}

// buildConjecturalCompMap maps each application to the server kind behind
// its component, so inferred externals read "MySQL" rather than
// "mysql-connector".
func (b *Builder) buildConjecturalCompMap(components []models.ApplicationComponent) map[int]string {
	compMap := make(map[int]string, len(components))
	for _, component := range components {
		serverID := b.catalog.ServerIDOf(component.ComponentID)
		compMap[component.ApplicationID] = b.catalog.ServerName(serverID)
	}
	return compMap
}

func mappingsToAliasTable(mappings []models.ApplicationMapping) map[int]int {
	aliases := make(map[int]int, len(mappings))
	for _, mapping := range mappings {
		aliases[mapping.MappingApplicationID] = mapping.ApplicationID
	}
	return aliases
}

// filterZeroReference drops rows carrying the invalid-id sentinel on
// either side, preserving order.
func filterZeroReference(references []models.ReferenceMetric) []models.ReferenceMetric {
	filtered := make([]models.ReferenceMetric, 0, len(references))
	for _, reference := range references {
		if reference.Source != 0 && reference.Target != 0 {
			filtered = append(filtered, reference)
		}
	}
	return filtered
}

func collectNodeIDs(nodes []models.Node) map[int]bool {
	ids := make(map[int]bool, len(nodes))
	for _, node := range nodes {
		ids[node.GetID()] = true
	}
	return ids
}

func hasAlias(mappings map[int]int, applicationID int) bool {
	_, ok := mappings[applicationID]
	return ok
}

func typeOrUnknown(compMap map[int]string, applicationID int) string {
	if name, ok := compMap[applicationID]; ok && name != "" {
		return name
	}
	return models.UnknownType
}

// safeDiv is integer division with a defined zero when the denominator is
// zero. Metric rows with zero calls should not reach the builder; if one
// does, the derived rate stays 0 instead of panicking mid-build.
func safeDiv(numerator, denominator int64) int64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
