package converter

import (
	"research-directory/internal/delivery/dto"
	"research-directory/internal/domain/entity"
)

// ResearcherToResponse converts a Researcher entity to ResearcherResponse DTO
func ResearcherToResponse(researcher *entity.Researcher) *dto.ResearcherResponse {
	if researcher == nil {
		return nil
	}

	photo := ""
	if researcher.Photo != nil {
		photo = *researcher.Photo
	}

	profiles := make([]dto.ProfileEntry, len(researcher.Profiles))
	for i, p := range researcher.Profiles {
		profiles[i] = dto.ProfileEntry{
			Platform: p.Platform,
			URL:      p.URL,
		}
	}

	return &dto.ResearcherResponse{
		ID:               researcher.ID,
		Name:             researcher.Name,
		Field:            researcher.Field,
		Institution:      researcher.Institution,
		Email:            researcher.Email,
		Bio:              researcher.Bio,
		CitationCount:    researcher.CitationCount,
		PublicationCount: researcher.PublicationCount,
		Photo:            photo,
		Profiles:         profiles,
	}
}

// ResearchersToResponses converts a slice of Researcher entities to ResearcherResponse DTOs
func ResearchersToResponses(researchers []entity.Researcher) []dto.ResearcherResponse {
	responses := make([]dto.ResearcherResponse, len(researchers))
	for i := range researchers {
		responses[i] = *ResearcherToResponse(&researchers[i])
	}
	return responses
}
