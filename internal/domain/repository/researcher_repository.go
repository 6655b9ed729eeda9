package repository

import (
	"research-directory/internal/domain/entity"

	"gorm.io/gorm"
)

type ResearcherRepository interface {
	Create(db *gorm.DB, researcher *entity.Researcher) error
	FindByID(db *gorm.DB, id uint) (*entity.Researcher, error)
	FindAll(db *gorm.DB, filter *entity.ResearcherFilter) ([]entity.Researcher, error)
	Update(db *gorm.DB, researcher *entity.Researcher) error
	Delete(db *gorm.DB, id uint) (int64, error)
}
