package domain

// GeneratedName is one suggestion parsed from a generation reply. ID is the
// 1-based position within that reply.
type GeneratedName struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DomainAvailability reports whether name+Zone can be registered.
type DomainAvailability struct {
	Zone      string `json:"zone"`
	Available bool   `json:"available"`
}
