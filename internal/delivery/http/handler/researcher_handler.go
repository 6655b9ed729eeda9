package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"research-directory/internal/delivery/dto"
	"research-directory/internal/domain/entity"
	"research-directory/internal/service"
	"research-directory/internal/usecase"
	"research-directory/pkg/response"
	"research-directory/pkg/validator"

	"github.com/gorilla/mux"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing; larger
// photo payloads spill to temp files.
const maxUploadMemory = 10 << 20

type ResearcherHandler struct {
	researcherUsecase usecase.ResearcherUsecase
	photoStorage      service.PhotoStorage
	validator         *validator.CustomValidator
}

func NewResearcherHandler(
	researcherUsecase usecase.ResearcherUsecase,
	photoStorage service.PhotoStorage,
	validator *validator.CustomValidator,
) *ResearcherHandler {
	return &ResearcherHandler{
		researcherUsecase: researcherUsecase,
		photoStorage:      photoStorage,
		validator:         validator,
	}
}

// ListResearchers is the public directory view. An optional q parameter
// narrows the listing to case-insensitive substring matches on name, field,
// or institution.
func (h *ResearcherHandler) ListResearchers(w http.ResponseWriter, r *http.Request) {
	var filter *entity.ResearcherFilter
	if q := r.URL.Query().Get("q"); q != "" {
		filter = &entity.ResearcherFilter{Query: q}
	}

	researchers, err := h.researcherUsecase.ListResearchers(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list researchers")
		return
	}

	response.Success(w, http.StatusOK, "Researchers retrieved successfully", researchers)
}

// ListAllResearchers backs the admin overview; always unfiltered.
func (h *ResearcherHandler) ListAllResearchers(w http.ResponseWriter, r *http.Request) {
	researchers, err := h.researcherUsecase.ListResearchers(r.Context(), nil)
	if err != nil {
		response.InternalServerError(w, "Failed to list researchers")
		return
	}

	response.Success(w, http.StatusOK, "Researchers retrieved successfully", researchers)
}

func (h *ResearcherHandler) GetResearcher(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	researcher, err := h.researcherUsecase.GetResearcher(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrResearcherNotFound) {
			response.NotFound(w, "Researcher not found")
			return
		}
		response.InternalServerError(w, "Failed to get researcher")
		return
	}

	response.Success(w, http.StatusOK, "Researcher retrieved successfully", researcher)
}

func (h *ResearcherHandler) CreateResearcher(w http.ResponseWriter, r *http.Request) {
	fields, photoFile, err := parseResearcherForm(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	req := &dto.CreateResearcherRequest{
		Name:             fields.name,
		Field:            fields.field,
		Institution:      fields.institution,
		Email:            fields.email,
		Bio:              fields.bio,
		CitationCount:    fields.citationCount,
		PublicationCount: fields.publicationCount,
		Profiles:         fields.profiles,
	}

	if len(fields.errors) > 0 {
		response.ValidationError(w, fields.errors)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	// Stored only after the gate and validation passed. A rejected extension
	// comes back as "", which creates the researcher without a photo.
	photo, err := h.photoStorage.Store(photoFile)
	if err != nil {
		response.InternalServerError(w, "Failed to store photo")
		return
	}
	req.Photo = photo

	researcher, err := h.researcherUsecase.CreateResearcher(r.Context(), req)
	if err != nil {
		response.InternalServerError(w, "Failed to create researcher")
		return
	}

	response.Success(w, http.StatusCreated, "Researcher created successfully", researcher)
}

func (h *ResearcherHandler) UpdateResearcher(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	fields, photoFile, err := parseResearcherForm(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	req := &dto.UpdateResearcherRequest{
		Name:             fields.name,
		Field:            fields.field,
		Institution:      fields.institution,
		Email:            fields.email,
		Bio:              fields.bio,
		CitationCount:    fields.citationCount,
		PublicationCount: fields.publicationCount,
		Profiles:         fields.profiles,
	}

	if len(fields.errors) > 0 {
		response.ValidationError(w, fields.errors)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	photo, err := h.photoStorage.Store(photoFile)
	if err != nil {
		response.InternalServerError(w, "Failed to store photo")
		return
	}
	if photo != "" {
		req.Photo = &photo
	}

	researcher, err := h.researcherUsecase.UpdateResearcher(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, usecase.ErrResearcherNotFound) {
			response.NotFound(w, "Researcher not found")
			return
		}
		response.InternalServerError(w, "Failed to update researcher")
		return
	}

	response.Success(w, http.StatusOK, "Researcher updated successfully", researcher)
}

func (h *ResearcherHandler) DeleteResearcher(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	// Deleting an unknown id is a no-op, not an error.
	if err := h.researcherUsecase.DeleteResearcher(r.Context(), id); err != nil {
		response.InternalServerError(w, "Failed to delete researcher")
		return
	}

	response.Success(w, http.StatusOK, "Researcher deleted successfully", nil)
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid researcher ID", nil)
		return 0, false
	}
	return uint(id), true
}

type researcherFormFields struct {
	name             string
	field            string
	institution      string
	email            string
	bio              string
	citationCount    int
	publicationCount int
	profiles         []dto.ProfileEntry
	errors           map[string]string
}

// parseResearcherForm reads the create/edit form. Multipart is the usual
// encoding (it carries the photo); urlencoded bodies are accepted for
// photo-less submissions.
func parseResearcherForm(r *http.Request) (*researcherFormFields, *multipart.FileHeader, error) {
	var photoFile *multipart.FileHeader

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, err
		}
		if err := r.ParseForm(); err != nil {
			return nil, nil, err
		}
	} else if files := r.MultipartForm.File["photo"]; len(files) > 0 {
		photoFile = files[0]
	}

	fields := &researcherFormFields{
		name:        r.FormValue("name"),
		field:       r.FormValue("field"),
		institution: r.FormValue("institution"),
		email:       r.FormValue("email"),
		bio:         r.FormValue("bio"),
		profiles:    profileEntries(r.Form),
		errors:      map[string]string{},
	}

	var err error
	if fields.citationCount, err = parseCount(r.FormValue("citation_count")); err != nil {
		fields.errors["citation_count"] = "citation_count must be a non-negative integer"
	}
	if fields.publicationCount, err = parseCount(r.FormValue("publication_count")); err != nil {
		fields.errors["publication_count"] = "publication_count must be a non-negative integer"
	}

	return fields, photoFile, nil
}

// parseCount treats a blank count as zero; anything else must parse as a
// non-negative integer.
func parseCount(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, errors.New("not a non-negative integer")
	}
	return n, nil
}

// profileEntries pairs the repeated platform/url fields positionally,
// truncating to the shorter list.
func profileEntries(form url.Values) []dto.ProfileEntry {
	platforms := form["profile_platform[]"]
	urls := form["profile_url[]"]

	n := len(platforms)
	if len(urls) < n {
		n = len(urls)
	}

	entries := make([]dto.ProfileEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, dto.ProfileEntry{
			Platform: platforms[i],
			URL:      urls[i],
		})
	}
	return entries
}
