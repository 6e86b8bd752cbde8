package models

// Reserved application ids and labels shared across the topology pipeline.
const (
	// NoneApplicationID is the reserved id carried by reference metrics whose
	// true origin is anonymous end-user traffic rather than an instrumented
	// application.
	NoneApplicationID = 1

	// UserCode is the display name of the synthetic end-user node.
	UserCode = "User"

	// UnknownType is the fallback type label when no component classification
	// is known for an application.
	UnknownType = "UNKNOWN"
)

// Application is the registered metadata for one monitored application.
// Address-type applications represent external endpoints (a database host,
// a third-party URL) detected from call addresses instead of agent reporting.
type Application struct {
	ApplicationID   int    `db:"application_id" json:"applicationId"`
	ApplicationCode string `db:"application_code" json:"applicationCode"`
	IsAddress       bool   `db:"is_address" json:"isAddress"`
	RegisterTime    int64  `db:"register_time" json:"registerTime"` // second time bucket
}

// ApplicationComponent links an application to the component library entry
// (Tomcat, MySQL driver, Redis client, ...) observed in its spans.
type ApplicationComponent struct {
	ApplicationID int `db:"application_id" json:"applicationId"`
	ComponentID   int `db:"component_id" json:"componentId"`
}

// ApplicationMapping collapses a duplicate address-application id into the
// canonical application id it resolves to for display.
type ApplicationMapping struct {
	ApplicationID        int `db:"application_id" json:"applicationId"`
	MappingApplicationID int `db:"mapping_application_id" json:"mappingApplicationId"`
}
