package repository

import (
	"research-directory/internal/domain/entity"

	"gorm.io/gorm"
)

type ResearchProfileRepository interface {
	Create(db *gorm.DB, profile *entity.ResearchProfile) error
	FindByResearcherID(db *gorm.DB, researcherID uint) ([]entity.ResearchProfile, error)
	DeleteByResearcherID(db *gorm.DB, researcherID uint) error
}
