package usecase

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"research-directory/internal/delivery/dto"
	"research-directory/internal/domain/entity"
	"research-directory/internal/infrastructure/database"
	"research-directory/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestUsecase(t *testing.T) (ResearcherUsecase, *gorm.DB) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	log := logrus.New()
	log.SetOutput(io.Discard)

	uc := NewResearcherUsecase(db, log, repository.NewResearcherRepository(), repository.NewResearchProfileRepository())
	return uc, db
}

func TestCreateResearcherDropsIncompleteProfilePairs(t *testing.T) {
	uc, db := newTestUsecase(t)
	ctx := context.Background()

	created, err := uc.CreateResearcher(ctx, &dto.CreateResearcherRequest{
		Name:             "Sok Kou",
		Field:            "AI",
		PublicationCount: 5,
		Profiles: []dto.ProfileEntry{
			{Platform: "ORCID", URL: "http://x"},
			{Platform: "", URL: "http://y"},
			{Platform: "  ", URL: "http://z"},
			{Platform: "LinkedIn", URL: "   "},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 0, created.CitationCount)
	require.Equal(t, 5, created.PublicationCount)
	require.Len(t, created.Profiles, 1)
	require.Equal(t, "ORCID", created.Profiles[0].Platform)
	require.Equal(t, "http://x", created.Profiles[0].URL)

	var count int64
	require.NoError(t, db.Model(&entity.ResearchProfile{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCreateResearcherTrimsProfilePairs(t *testing.T) {
	uc, _ := newTestUsecase(t)

	created, err := uc.CreateResearcher(context.Background(), &dto.CreateResearcherRequest{
		Name: "Vannak Chhay",
		Profiles: []dto.ProfileEntry{
			{Platform: "  Google Scholar  ", URL: " https://scholar.google.com/vannak "},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Profiles, 1)
	require.Equal(t, "Google Scholar", created.Profiles[0].Platform)
	require.Equal(t, "https://scholar.google.com/vannak", created.Profiles[0].URL)
}

func TestUpdateResearcherReplacesProfileSet(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	created, err := uc.CreateResearcher(ctx, &dto.CreateResearcherRequest{
		Name: "Chenda Ly",
		Profiles: []dto.ProfileEntry{
			{Platform: "ORCID", URL: "https://orcid.org/1"},
			{Platform: "LinkedIn", URL: "https://linkedin.com/in/chenda"},
		},
	})
	require.NoError(t, err)

	updated, err := uc.UpdateResearcher(ctx, created.ID, &dto.UpdateResearcherRequest{
		Name: "Chenda Ly",
		Profiles: []dto.ProfileEntry{
			{Platform: "ResearchGate", URL: "https://researchgate.net/chenda"},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Profiles, 1)
	require.Equal(t, "ResearchGate", updated.Profiles[0].Platform)
}

func TestUpdateResearcherEmptyProfileSetRemovesAll(t *testing.T) {
	uc, db := newTestUsecase(t)
	ctx := context.Background()

	created, err := uc.CreateResearcher(ctx, &dto.CreateResearcherRequest{
		Name: "Dara Heng",
		Profiles: []dto.ProfileEntry{
			{Platform: "ORCID", URL: "https://orcid.org/2"},
		},
	})
	require.NoError(t, err)

	updated, err := uc.UpdateResearcher(ctx, created.ID, &dto.UpdateResearcherRequest{
		Name:     "Dara Heng",
		Profiles: nil,
	})
	require.NoError(t, err)
	require.Empty(t, updated.Profiles)

	var count int64
	require.NoError(t, db.Model(&entity.ResearchProfile{}).Where("researcher_id = ?", created.ID).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestUpdateResearcherOverwritesScalars(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	created, err := uc.CreateResearcher(ctx, &dto.CreateResearcherRequest{
		Name:          "Kosal Ngin",
		Field:         "HCI",
		Institution:   "University of Cambodia",
		Email:         "kosal@example.com",
		Bio:           "HCI researcher",
		CitationCount: 10,
	})
	require.NoError(t, err)

	updated, err := uc.UpdateResearcher(ctx, created.ID, &dto.UpdateResearcherRequest{
		Name:             "Kosal Ngin",
		Field:            "HCI, Data Science",
		PublicationCount: 3,
	})
	require.NoError(t, err)
	require.Equal(t, "HCI, Data Science", updated.Field)
	// Scalars not submitted are overwritten with their zero value, there is
	// no field-level merge.
	require.Equal(t, "", updated.Institution)
	require.Equal(t, "", updated.Email)
	require.Equal(t, 0, updated.CitationCount)
	require.Equal(t, 3, updated.PublicationCount)
}

func TestUpdateResearcherPhotoSemantics(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	created, err := uc.CreateResearcher(ctx, &dto.CreateResearcherRequest{
		Name:  "Srey Chea",
		Photo: "srey.jpg",
	})
	require.NoError(t, err)
	require.Equal(t, "srey.jpg", created.Photo)

	// No photo submitted keeps the stored reference.
	updated, err := uc.UpdateResearcher(ctx, created.ID, &dto.UpdateResearcherRequest{Name: "Srey Chea"})
	require.NoError(t, err)
	require.Equal(t, "srey.jpg", updated.Photo)

	// A newly stored photo replaces it.
	newPhoto := "srey_2024.png"
	updated, err = uc.UpdateResearcher(ctx, created.ID, &dto.UpdateResearcherRequest{Name: "Srey Chea", Photo: &newPhoto})
	require.NoError(t, err)
	require.Equal(t, "srey_2024.png", updated.Photo)
}

func TestUpdateResearcherNotFound(t *testing.T) {
	uc, _ := newTestUsecase(t)

	_, err := uc.UpdateResearcher(context.Background(), 999, &dto.UpdateResearcherRequest{Name: "Nobody"})
	require.ErrorIs(t, err, ErrResearcherNotFound)
}

func TestDeleteResearcherCascades(t *testing.T) {
	uc, db := newTestUsecase(t)
	ctx := context.Background()

	created, err := uc.CreateResearcher(ctx, &dto.CreateResearcherRequest{
		Name: "Rithy Phan",
		Profiles: []dto.ProfileEntry{
			{Platform: "ORCID", URL: "https://orcid.org/3"},
			{Platform: "LinkedIn", URL: "https://linkedin.com/in/rithy"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteResearcher(ctx, created.ID))

	var researchers, profiles int64
	require.NoError(t, db.Model(&entity.Researcher{}).Count(&researchers).Error)
	require.NoError(t, db.Model(&entity.ResearchProfile{}).Count(&profiles).Error)
	require.EqualValues(t, 0, researchers)
	require.EqualValues(t, 0, profiles)
}

func TestDeleteResearcherMissingIDIsNoOp(t *testing.T) {
	uc, db := newTestUsecase(t)
	ctx := context.Background()

	_, err := uc.CreateResearcher(ctx, &dto.CreateResearcherRequest{Name: "Pich Meas"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteResearcher(ctx, 12345))

	var count int64
	require.NoError(t, db.Model(&entity.Researcher{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestListResearchersSearch(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	_, err := uc.CreateResearcher(ctx, &dto.CreateResearcherRequest{Name: "Sok Kou", Field: "AI"})
	require.NoError(t, err)
	_, err = uc.CreateResearcher(ctx, &dto.CreateResearcherRequest{Name: "Vannak Chhay", Field: "Networking"})
	require.NoError(t, err)

	all, err := uc.ListResearchers(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 2, all.Total)

	matched, err := uc.ListResearchers(ctx, &entity.ResearcherFilter{Query: "AI"})
	require.NoError(t, err)
	require.Equal(t, 1, matched.Total)
	require.Equal(t, "Sok Kou", matched.Researchers[0].Name)
}

func TestGetResearcherNotFound(t *testing.T) {
	uc, _ := newTestUsecase(t)

	_, err := uc.GetResearcher(context.Background(), 7)
	require.ErrorIs(t, err, ErrResearcherNotFound)
}
