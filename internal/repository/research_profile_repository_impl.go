package repository

import (
	"research-directory/internal/domain/entity"
	domainRepo "research-directory/internal/domain/repository"

	"gorm.io/gorm"
)

type researchProfileRepository struct{}

func NewResearchProfileRepository() domainRepo.ResearchProfileRepository {
	return &researchProfileRepository{}
}

func (r *researchProfileRepository) Create(db *gorm.DB, profile *entity.ResearchProfile) error {
	return db.Create(profile).Error
}

func (r *researchProfileRepository) FindByResearcherID(db *gorm.DB, researcherID uint) ([]entity.ResearchProfile, error) {
	var profiles []entity.ResearchProfile
	err := db.Where("researcher_id = ?", researcherID).Order("id ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *researchProfileRepository) DeleteByResearcherID(db *gorm.DB, researcherID uint) error {
	return db.Where("researcher_id = ?", researcherID).Delete(&entity.ResearchProfile{}).Error
}
