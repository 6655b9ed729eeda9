package usecase

import (
	"context"
	"errors"
	"strings"

	"research-directory/internal/converter"
	"research-directory/internal/delivery/dto"
	"research-directory/internal/domain/entity"
	"research-directory/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrResearcherNotFound = errors.New("researcher not found")

type ResearcherUsecase interface {
	ListResearchers(ctx context.Context, filter *entity.ResearcherFilter) (*dto.ResearcherListResponse, error)
	GetResearcher(ctx context.Context, id uint) (*dto.ResearcherResponse, error)
	CreateResearcher(ctx context.Context, req *dto.CreateResearcherRequest) (*dto.ResearcherResponse, error)
	UpdateResearcher(ctx context.Context, id uint, req *dto.UpdateResearcherRequest) (*dto.ResearcherResponse, error)
	DeleteResearcher(ctx context.Context, id uint) error
}

type researcherUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	researchers repository.ResearcherRepository
	profiles    repository.ResearchProfileRepository
}

func NewResearcherUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	researchers repository.ResearcherRepository,
	profiles repository.ResearchProfileRepository,
) ResearcherUsecase {
	return &researcherUsecase{
		db:          db,
		log:         log,
		researchers: researchers,
		profiles:    profiles,
	}
}

func (u *researcherUsecase) ListResearchers(ctx context.Context, filter *entity.ResearcherFilter) (*dto.ResearcherListResponse, error) {
	researchers, err := u.researchers.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list researchers: %+v", err)
		return nil, err
	}

	responses := converter.ResearchersToResponses(researchers)

	return &dto.ResearcherListResponse{
		Researchers: responses,
		Total:       len(responses),
	}, nil
}

func (u *researcherUsecase) GetResearcher(ctx context.Context, id uint) (*dto.ResearcherResponse, error) {
	researcher, err := u.researchers.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find researcher: %+v", err)
		return nil, err
	}
	if researcher == nil {
		return nil, ErrResearcherNotFound
	}

	return converter.ResearcherToResponse(researcher), nil
}

func (u *researcherUsecase) CreateResearcher(ctx context.Context, req *dto.CreateResearcherRequest) (*dto.ResearcherResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	researcher := &entity.Researcher{
		Name:             req.Name,
		Field:            req.Field,
		Institution:      req.Institution,
		Email:            req.Email,
		Bio:              req.Bio,
		CitationCount:    req.CitationCount,
		PublicationCount: req.PublicationCount,
	}
	if req.Photo != "" {
		photo := req.Photo
		researcher.Photo = &photo
	}

	if err := u.researchers.Create(tx, researcher); err != nil {
		u.log.Warnf("Failed to create researcher: %+v", err)
		return nil, err
	}

	if err := u.insertProfiles(tx, researcher.ID, req.Profiles); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.GetResearcher(ctx, researcher.ID)
}

func (u *researcherUsecase) UpdateResearcher(ctx context.Context, id uint, req *dto.UpdateResearcherRequest) (*dto.ResearcherResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	researcher, err := u.researchers.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find researcher: %+v", err)
		return nil, err
	}
	if researcher == nil {
		return nil, ErrResearcherNotFound
	}

	// Scalar fields are fully overwritten; the photo is kept unless a new
	// one was stored for this request.
	researcher.Name = req.Name
	researcher.Field = req.Field
	researcher.Institution = req.Institution
	researcher.Email = req.Email
	researcher.Bio = req.Bio
	researcher.CitationCount = req.CitationCount
	researcher.PublicationCount = req.PublicationCount
	if req.Photo != nil && *req.Photo != "" {
		researcher.Photo = req.Photo
	}

	if err := u.researchers.Update(tx, researcher); err != nil {
		u.log.Warnf("Failed to update researcher: %+v", err)
		return nil, err
	}

	// Replace the full profile set from the submitted list.
	if err := u.profiles.DeleteByResearcherID(tx, id); err != nil {
		u.log.Warnf("Failed to delete research profiles: %+v", err)
		return nil, err
	}
	if err := u.insertProfiles(tx, id, req.Profiles); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.GetResearcher(ctx, id)
}

// DeleteResearcher removes the researcher and its profile links. Profiles are
// deleted explicitly rather than relying on the engine's cascade constraint.
// Deleting an id that does not exist is a no-op.
func (u *researcherUsecase) DeleteResearcher(ctx context.Context, id uint) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.profiles.DeleteByResearcherID(tx, id); err != nil {
		u.log.Warnf("Failed to delete research profiles: %+v", err)
		return err
	}

	if _, err := u.researchers.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete researcher: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// insertProfiles persists the submitted platform/URL pairs. A pair is only
// stored when both sides are non-empty after trimming; incomplete pairs are
// dropped without error.
func (u *researcherUsecase) insertProfiles(tx *gorm.DB, researcherID uint, entries []dto.ProfileEntry) error {
	for _, entry := range entries {
		platform := strings.TrimSpace(entry.Platform)
		url := strings.TrimSpace(entry.URL)
		if platform == "" || url == "" {
			continue
		}

		profile := &entity.ResearchProfile{
			ResearcherID: researcherID,
			Platform:     platform,
			URL:          url,
		}
		if err := u.profiles.Create(tx, profile); err != nil {
			if isForeignKeyError(err, "researcher") {
				return ErrResearcherNotFound
			}
			u.log.Warnf("Failed to create research profile: %+v", err)
			return err
		}
	}
	return nil
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
