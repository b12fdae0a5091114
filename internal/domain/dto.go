package domain

import "time"

// GenerateNamesRequestDTO is the body of a name generation request.
type GenerateNamesRequestDTO struct {
	Query   string           `json:"query" binding:"required,max=200"`
	Filters *FilterSelection `json:"filters"`
}

// GenerateNamesResponseDTO carries the full replacement result list.
type GenerateNamesResponseDTO struct {
	Items []GeneratedName `json:"items"`
}

// DomainAvailabilityResponseDTO lists the zones found available for a name.
type DomainAvailabilityResponseDTO struct {
	Name  string               `json:"name"`
	Items []DomainAvailability `json:"items"`
}

// QuotaStatusResponseDTO describes the caller's position in the quota window.
type QuotaStatusResponseDTO struct {
	Used      int        `json:"used"`
	Limit     int        `json:"limit"`
	Remaining int        `json:"remaining"`
	ResetAt   *time.Time `json:"reset_at,omitempty"`
}
