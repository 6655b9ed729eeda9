package dto

// Request DTOs

// ProfileEntry is one submitted platform/URL pair. Pairs with either side
// blank after trimming are dropped before persistence, never rejected.
type ProfileEntry struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type CreateResearcherRequest struct {
	Name             string         `json:"name" validate:"required"`
	Field            string         `json:"field" validate:"omitempty"`
	Institution      string         `json:"institution" validate:"omitempty"`
	Email            string         `json:"email" validate:"omitempty"`
	Bio              string         `json:"bio" validate:"omitempty"`
	CitationCount    int            `json:"citation_count" validate:"gte=0"`
	PublicationCount int            `json:"publication_count" validate:"gte=0"`
	Photo            string         `json:"photo,omitempty"`
	Profiles         []ProfileEntry `json:"profiles"`
}

type UpdateResearcherRequest struct {
	Name             string         `json:"name" validate:"required"`
	Field            string         `json:"field" validate:"omitempty"`
	Institution      string         `json:"institution" validate:"omitempty"`
	Email            string         `json:"email" validate:"omitempty"`
	Bio              string         `json:"bio" validate:"omitempty"`
	CitationCount    int            `json:"citation_count" validate:"gte=0"`
	PublicationCount int            `json:"publication_count" validate:"gte=0"`
	Photo            *string        `json:"photo,omitempty"` // nil keeps the stored photo
	Profiles         []ProfileEntry `json:"profiles"`
}

// Response DTOs

type ResearcherResponse struct {
	ID               uint           `json:"id"`
	Name             string         `json:"name"`
	Field            string         `json:"field,omitempty"`
	Institution      string         `json:"institution,omitempty"`
	Email            string         `json:"email,omitempty"`
	Bio              string         `json:"bio,omitempty"`
	CitationCount    int            `json:"citation_count"`
	PublicationCount int            `json:"publication_count"`
	Photo            string         `json:"photo,omitempty"`
	Profiles         []ProfileEntry `json:"profiles"`
}

type ResearcherListResponse struct {
	Researchers []ResearcherResponse `json:"researchers"`
	Total       int                  `json:"total"`
}
