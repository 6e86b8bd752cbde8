package models

// AlarmScope selects which entity kind an alarm query covers.
type AlarmScope string

const (
	AlarmScopeApplication AlarmScope = "APPLICATION"
	AlarmScopeInstance    AlarmScope = "INSTANCE"
	AlarmScopeEndpoint    AlarmScope = "ENDPOINT"
)

// AlarmItem is one triggered alarm row.
type AlarmItem struct {
	ID        int        `db:"id" json:"id"`
	Scope     AlarmScope `db:"scope" json:"scope"`
	Title     string     `db:"title" json:"title"`
	Content   string     `db:"content" json:"content"`
	StartTime int64      `db:"start_time_bucket" json:"startTime"`
}

// Alarm is one page of alarm items plus the total match count.
type Alarm struct {
	Items []AlarmItem `json:"items"`
	Total int         `json:"total"`
}

// AppServerInfo describes one running server instance of an application.
type AppServerInfo struct {
	InstanceID    int    `db:"instance_id" json:"id"`
	ApplicationID int    `db:"application_id" json:"applicationId"`
	Host          string `db:"host" json:"host"`
	PID           int    `db:"pid" json:"pid"`
	IPv4          string `db:"ipv4" json:"ipv4"`
	OSName        string `db:"os_name" json:"osName"`
}
