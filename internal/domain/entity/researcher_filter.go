package entity

// ResearcherFilter is a domain-level filter for querying researchers.
// Used by repository layer to avoid coupling with delivery DTOs.
type ResearcherFilter struct {
	Query string // Case-insensitive substring match against name, field, or institution
}
