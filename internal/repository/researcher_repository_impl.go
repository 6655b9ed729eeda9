package repository

import (
	"errors"
	"strings"

	"research-directory/internal/domain/entity"
	domainRepo "research-directory/internal/domain/repository"

	"gorm.io/gorm"
)

type researcherRepository struct{}

func NewResearcherRepository() domainRepo.ResearcherRepository {
	return &researcherRepository{}
}

func (r *researcherRepository) Create(db *gorm.DB, researcher *entity.Researcher) error {
	return db.Create(researcher).Error
}

func (r *researcherRepository) FindByID(db *gorm.DB, id uint) (*entity.Researcher, error) {
	var researcher entity.Researcher
	err := db.Preload("Profiles").Where("id = ?", id).First(&researcher).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &researcher, nil
}

// FindAll returns researchers in primary-key order with their profile links
// preloaded. A non-empty filter query narrows the result to rows where the
// query is a case-insensitive substring of name, field, or institution.
// LOWER(...) LIKE keeps the match portable across postgres and sqlite.
func (r *researcherRepository) FindAll(db *gorm.DB, filter *entity.ResearcherFilter) ([]entity.Researcher, error) {
	var researchers []entity.Researcher
	query := db.Model(&entity.Researcher{})

	if filter != nil && filter.Query != "" {
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(field) LIKE ? OR LOWER(institution) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	err := query.
		Preload("Profiles", func(db *gorm.DB) *gorm.DB {
			return db.Order("research_profiles.id ASC")
		}).
		Order("researchers.id ASC").
		Find(&researchers).Error
	if err != nil {
		return nil, err
	}
	return researchers, nil
}

func (r *researcherRepository) Update(db *gorm.DB, researcher *entity.Researcher) error {
	return db.Omit("Profiles").Save(researcher).Error
}

func (r *researcherRepository) Delete(db *gorm.DB, id uint) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Researcher{})
	return affected.RowsAffected, affected.Error
}
