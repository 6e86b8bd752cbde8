package models

// Node is the common surface of all topology node variants. Concrete
// variants embed NodeBase; callers dispatch on the concrete type when the
// variant matters.
type Node interface {
	GetID() int
	GetName() string
	GetType() string
}

// NodeBase carries the fields every node variant shares.
type NodeBase struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func (b NodeBase) GetID() int      { return b.ID }
func (b NodeBase) GetName() string { return b.Name }
func (b NodeBase) GetType() string { return b.Type }

// ApplicationNode is an instrumented application with its derived health
// and volume metrics for the requested window.
type ApplicationNode struct {
	NodeBase
	SLA               int   `json:"sla"`
	CallsPerMinute    int64 `json:"cpm"`
	AvgResponseTime   int64 `json:"avgResponseTime"`
	Apdex             int   `json:"apdex"`
	Alarm             bool  `json:"isAlarm"`
	NumOfServer       int   `json:"numOfServer"`
	NumOfServerAlarm  int   `json:"numOfServerAlarm"`
	NumOfServiceAlarm int   `json:"numOfServiceAlarm"`
}

// ConjecturalNode is an inferred external endpoint (database, third-party
// host) known only through address metadata.
type ConjecturalNode struct {
	NodeBase
}

// VisualUserNode is the synthetic node standing in for anonymous end-user
// traffic.
type VisualUserNode struct {
	NodeBase
}

// Call is a directed edge between two nodes, annotated with per-window
// volume metrics. Alert is always false here; the alarm correlation pass
// that raises it lives outside the topology build.
type Call struct {
	Source          int    `json:"source"`
	SourceName      string `json:"sourceName"`
	Target          int    `json:"target"`
	TargetName      string `json:"targetName"`
	Alert           bool   `json:"isAlert"`
	CallType        string `json:"callType"`
	CallsPerMinute  int64  `json:"cpm"`
	AvgResponseTime int64  `json:"avgResponseTime"`
}

// Topology is the assembled dependency graph for one dashboard request.
// Built fresh per request and never mutated after return.
type Topology struct {
	Nodes []Node `json:"nodes"`
	Calls []Call `json:"calls"`
}
