package api

import (
	"alcyxob/coachy/internal/domain"
	"alcyxob/coachy/internal/platform/logger"
	"alcyxob/coachy/internal/service"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler serves the exercise catalog.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	mediaService    service.MediaService
	log             *logger.Logger
}

func NewExerciseHandler(exerciseService service.ExerciseService, mediaService service.MediaService, log *logger.Logger) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, mediaService: mediaService, log: log}
}

// --- DTOs ---

// ExerciseRequest is the body for creating or updating a custom exercise.
type ExerciseRequest struct {
	Name             string               `json:"name" binding:"required"`
	Description      string               `json:"description"`
	PrimaryMuscles   []domain.MuscleGroup `json:"primaryMuscles" binding:"required,min=1"`
	SecondaryMuscles []domain.MuscleGroup `json:"secondaryMuscles"`
	VariationOf      string               `json:"variationOf"`
}

func (r ExerciseRequest) toInput() service.ExerciseInput {
	return service.ExerciseInput{
		Name:             r.Name,
		Description:      r.Description,
		PrimaryMuscles:   r.PrimaryMuscles,
		SecondaryMuscles: r.SecondaryMuscles,
		VariationOf:      r.VariationOf,
	}
}

type MediaUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type MediaConfirmRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// ListExercisesResponse wraps the filtered list with the catalog size so the
// client can tell "no matches" from "empty catalog".
type ListExercisesResponse struct {
	Exercises     []domain.Exercise `json:"exercises"`
	Total         int               `json:"total"`
	FiltersActive bool              `json:"filtersActive"`
}

// --- Handler Methods ---

// ListExercises godoc
// @Summary List exercises
// @Description Lists the catalog narrowed by search query and filters. Repeated query params form sets.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search term"
// @Param muscleGroup query []string false "Muscle groups (any)"
// @Param bodyPart query []string false "Body parts (any)"
// @Param source query []string false "Sources (any)"
// @Param customOnly query bool false "Only user/community exercises; ignored when source is set"
// @Success 200 {object} ListExercisesResponse
// @Failure 400 {object} gin.H "Invalid filter value"
// @Failure 503 {object} gin.H "Catalog could not be fetched"
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	all, err := h.exerciseService.ListAll(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusServiceUnavailable, "Failed to fetch exercises. Please try again.")
		return
	}

	c.JSON(http.StatusOK, ListExercisesResponse{
		Exercises:     domain.ApplyFilters(all, filters),
		Total:         len(all),
		FiltersActive: filters.IsActive(),
	})
}

// GetExercise godoc
// @Summary Get an exercise
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} domain.Exercise
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exercise, err := h.exerciseService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusServiceUnavailable, "Failed to fetch exercise. Please try again.")
		return
	}
	if exercise == nil {
		abortWithError(c, http.StatusNotFound, service.ErrExerciseNotFound.Error())
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// GetExerciseDetails godoc
// @Summary Get an exercise with its variations and similar exercises
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} domain.ExerciseDetails
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id}/details [get]
func (h *ExerciseHandler) GetExerciseDetails(c *gin.Context) {
	details, err := h.exerciseService.GetDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusServiceUnavailable, "Failed to fetch exercise. Please try again.")
		return
	}
	if details == nil {
		abortWithError(c, http.StatusNotFound, service.ErrExerciseNotFound.Error())
		return
	}
	c.JSON(http.StatusOK, details)
}

// CreateExercise godoc
// @Summary Create a custom exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 201 {object} domain.Exercise
// @Failure 400 {object} gin.H "Validation error"
// @Failure 403 {object} gin.H "Guests cannot author exercises"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	author, err := principalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	exercise, err := h.exerciseService.CreateCustomExercise(c.Request.Context(), author, req.toInput())
	if err != nil {
		h.writeServiceError(c, err, "Failed to create exercise.")
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

// UpdateExercise godoc
// @Summary Update a custom exercise owned by the caller
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 200 {object} domain.Exercise
// @Failure 403 {object} gin.H "Not the author"
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [put]
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	author, err := principalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	exercise, err := h.exerciseService.UpdateCustomExercise(c.Request.Context(), author, c.Param("id"), req.toInput())
	if err != nil {
		h.writeServiceError(c, err, "Failed to update exercise.")
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// RequestMediaUpload godoc
// @Summary Get a presigned URL to upload demo media for a custom exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param body body MediaUploadRequest true "Media content type"
// @Success 200 {object} service.UploadTicket
// @Router /exercises/{id}/media [post]
func (h *ExerciseHandler) RequestMediaUpload(c *gin.Context) {
	var req MediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	author, err := principalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	ticket, err := h.mediaService.RequestUpload(c.Request.Context(), author, c.Param("id"), req.ContentType)
	if err != nil {
		h.writeServiceError(c, err, "Failed to prepare media upload.")
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// ConfirmMediaUpload godoc
// @Summary Attach an uploaded object to a custom exercise
// @Description Call after the PUT to the presigned URL succeeded. Replaced media is deleted.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param body body MediaConfirmRequest true "Object key from the upload ticket"
// @Success 200 {object} domain.Exercise
// @Failure 400 {object} gin.H "Key does not belong to the exercise"
// @Router /exercises/{id}/media/confirm [post]
func (h *ExerciseHandler) ConfirmMediaUpload(c *gin.Context) {
	var req MediaConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	author, err := principalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	exercise, err := h.mediaService.ConfirmUpload(c.Request.Context(), author, c.Param("id"), req.ObjectKey)
	if err != nil {
		h.writeServiceError(c, err, "Failed to confirm media upload.")
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// GetMedia godoc
// @Summary Get a presigned download URL for an exercise's demo media
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} gin.H
// @Router /exercises/{id}/media [get]
func (h *ExerciseHandler) GetMedia(c *gin.Context) {
	url, err := h.mediaService.GetDownloadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err, "Failed to fetch media.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// DeriveBodyParts godoc
// @Summary Map muscle groups to the body parts they belong to
// @Tags Exercises
// @Produce json
// @Param muscle query []string true "Muscle groups"
// @Success 200 {object} gin.H
// @Router /body-parts [get]
func (h *ExerciseHandler) DeriveBodyParts(c *gin.Context) {
	muscles, err := parseEnumList(c, "muscle", domain.MuscleGroup.IsValid)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bodyParts": domain.DeriveBodyParts(muscles)})
}

func (h *ExerciseHandler) writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidationFailed), errors.Is(err, service.ErrUnsupportedMedia):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrGuestNotAllowed), errors.Is(err, service.ErrExerciseAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrExerciseNotFound), errors.Is(err, service.ErrNoMedia):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrMediaStorageMissing):
		abortWithError(c, http.StatusNotImplemented, err.Error())
	default:
		h.log.Error(fallback, "path", c.FullPath(), "error", err)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// parseFilters reads the filter query params. Values may repeat or be comma-separated.
func parseFilters(c *gin.Context) (domain.ExerciseFilters, error) {
	var (
		f   domain.ExerciseFilters
		err error
	)
	f.SearchQuery = strings.TrimSpace(c.Query("q"))

	if f.MuscleGroups, err = parseEnumList(c, "muscleGroup", domain.MuscleGroup.IsValid); err != nil {
		return f, err
	}
	if f.BodyParts, err = parseEnumList(c, "bodyPart", domain.BodyPart.IsValid); err != nil {
		return f, err
	}
	if f.Sources, err = parseEnumList(c, "source", domain.ExerciseSource.IsValid); err != nil {
		return f, err
	}
	if raw := c.Query("customOnly"); raw != "" {
		if f.CustomOnly, err = strconv.ParseBool(raw); err != nil {
			return f, fmt.Errorf("invalid customOnly value %q", raw)
		}
	}
	return f, nil
}

func parseEnumList[T ~string](c *gin.Context, key string, valid func(T) bool) ([]T, error) {
	var out []T
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v := T(part)
			if !valid(v) {
				return nil, fmt.Errorf("invalid %s value %q", key, part)
			}
			out = append(out, v)
		}
	}
	return out, nil
}
