// Package pkg holds types and constants shared by the HTTP layer.
package pkg

// API path constants.
const (
	// BasePath is the root path for the versioned API.
	BasePath = "/v1"

	NamesPath   = BasePath + "/names"
	DomainsPath = NamesPath + "/:name/domains"
	QuotaPath   = BasePath + "/quota"

	LivenessPath  = BasePath + "/health/live"
	ReadinessPath = BasePath + "/health/ready"

	// HealthCheckPath is the legacy ping endpoint.
	HealthCheckPath = "/ping"
)
