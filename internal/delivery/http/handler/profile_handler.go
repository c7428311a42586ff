package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/profilematch/backend/internal/delivery/http/middleware"
	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/usecase/profile"
)

type ProfileHandler struct {
	usecase *profile.UseCase
	log     *logger.Logger
}

func NewProfileHandler(usecase *profile.UseCase, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{usecase: usecase, log: log}
}

// GetProfile handles GET /profile/:user_id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	p, err := h.usecase.Get(c.Request.Context(), userID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateProfile handles POST /profile/:user_id
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	userID, ok := h.ownUserID(c)
	if !ok {
		return
	}

	var req profile.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.usecase.Create(c.Request.Context(), userID, req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdateProfile handles PUT /profile/:user_id
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.ownUserID(c)
	if !ok {
		return
	}

	var req profile.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.usecase.Update(c.Request.Context(), userID, req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProfile handles DELETE /profile/:user_id
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	userID, ok := h.ownUserID(c)
	if !ok {
		return
	}

	if err := h.usecase.Delete(c.Request.Context(), userID); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "profile deleted"})
}

// SearchProfiles handles GET /profile/search
func (h *ProfileHandler) SearchProfiles(c *gin.Context) {
	var req profile.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	profiles, err := h.usecase.Search(c.Request.Context(), req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles, "count": len(profiles)})
}

// Genders handles GET /profile/dictionaries/genders
func (h *ProfileHandler) Genders(c *gin.Context) {
	genders, err := h.usecase.Genders(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, genders)
}

// Regions handles GET /profile/dictionaries/regions
func (h *ProfileHandler) Regions(c *gin.Context) {
	var level *int
	if raw := c.Query("level"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid level"})
			return
		}
		level = &parsed
	}
	parentID, ok := queryUUID(c, "parent_id")
	if !ok {
		return
	}

	regions, err := h.usecase.Regions(c.Request.Context(), level, parentID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, regions)
}

// Occupations handles GET /profile/dictionaries/occupations
func (h *ProfileHandler) Occupations(c *gin.Context) {
	categoryID, ok := queryUUID(c, "category_id")
	if !ok {
		return
	}

	occupations, err := h.usecase.Occupations(c.Request.Context(), categoryID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, occupations)
}

// EducationLevels handles GET /profile/dictionaries/education-levels
func (h *ProfileHandler) EducationLevels(c *gin.Context) {
	levels, err := h.usecase.EducationLevels(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, levels)
}

// RelationshipStatuses handles GET /profile/dictionaries/relationship-statuses
func (h *ProfileHandler) RelationshipStatuses(c *gin.Context) {
	statuses, err := h.usecase.RelationshipStatuses(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

// ownUserID parses the user_id path parameter and requires it to match
// the authenticated user. Profiles are world-readable but only their
// owner may mutate them.
func (h *ProfileHandler) ownUserID(c *gin.Context) (userID uuid.UUID, ok bool) {
	userID, ok = pathUUID(c, "user_id")
	if !ok {
		return userID, false
	}

	authUserID, exists := middleware.UserID(c)
	if !exists || authUserID != userID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
		return userID, false
	}
	return userID, true
}
