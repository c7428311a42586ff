package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/profilematch/backend/internal/delivery/http/middleware"
	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/usecase/ego"
)

type EgoHandler struct {
	usecase *ego.UseCase
	log     *logger.Logger
}

func NewEgoHandler(usecase *ego.UseCase, log *logger.Logger) *EgoHandler {
	return &EgoHandler{usecase: usecase, log: log}
}

// ListFunctions handles GET /ego/cognitive-functions
func (h *EgoHandler) ListFunctions(c *gin.Context) {
	var req ego.ListFunctionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	functions, err := h.usecase.ListFunctions(c.Request.Context(), req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, functions)
}

// ListScores handles GET /ego/cognitive-functions/:user_id
func (h *EgoHandler) ListScores(c *gin.Context) {
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	scores, err := h.usecase.ListScores(c.Request.Context(), userID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, scores)
}

// RecordScore handles POST /ego/cognitive-functions/:user_id
func (h *EgoHandler) RecordScore(c *gin.Context) {
	userID, ok := h.ownUserID(c)
	if !ok {
		return
	}

	var req ego.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	score, err := h.usecase.RecordScore(c.Request.Context(), userID, req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, score)
}

// UpdateScore handles PUT /ego/cognitive-functions/:user_id/:function_id
func (h *EgoHandler) UpdateScore(c *gin.Context) {
	userID, ok := h.ownUserID(c)
	if !ok {
		return
	}
	functionID, ok := pathUUID(c, "function_id")
	if !ok {
		return
	}

	var req ego.UpdateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	score, err := h.usecase.UpdateScore(c.Request.Context(), userID, functionID, req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

// DeleteScore handles DELETE /ego/cognitive-functions/:user_id/:function_id
func (h *EgoHandler) DeleteScore(c *gin.Context) {
	userID, ok := h.ownUserID(c)
	if !ok {
		return
	}
	functionID, ok := pathUUID(c, "function_id")
	if !ok {
		return
	}

	if err := h.usecase.DeleteScore(c.Request.Context(), userID, functionID); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "cognitive function score removed"})
}

// Distribution handles GET /ego/cognitive-functions/:user_id/distribution
func (h *EgoHandler) Distribution(c *gin.Context) {
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	dist, err := h.usecase.Distribution(c.Request.Context(), userID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dist)
}

// TraitCategories handles GET /ego/trait-categories
func (h *EgoHandler) TraitCategories(c *gin.Context) {
	categories, err := h.usecase.TraitCategories(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// TraitValueTypes handles GET /ego/trait-value-types
func (h *EgoHandler) TraitValueTypes(c *gin.Context) {
	types, err := h.usecase.TraitValueTypes(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

// ListTraits handles GET /ego/personality-traits
func (h *EgoHandler) ListTraits(c *gin.Context) {
	var req ego.ListTraitsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	traits, err := h.usecase.ListTraits(c.Request.Context(), req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, traits)
}

// ListTraitValues handles GET /ego/personality-traits/:user_id
func (h *EgoHandler) ListTraitValues(c *gin.Context) {
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}
	categoryID, ok := queryUUID(c, "category_id")
	if !ok {
		return
	}

	values, err := h.usecase.ListTraitValues(c.Request.Context(), userID, categoryID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, values)
}

// RecordTraitValue handles POST /ego/personality-traits/:user_id
func (h *EgoHandler) RecordTraitValue(c *gin.Context) {
	userID, ok := h.ownUserID(c)
	if !ok {
		return
	}

	var req ego.TraitValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	value, err := h.usecase.RecordTraitValue(c.Request.Context(), userID, req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, value)
}

// UpdateTraitValue handles PUT /ego/personality-traits/:user_id/:trait_id
func (h *EgoHandler) UpdateTraitValue(c *gin.Context) {
	userID, ok := h.ownUserID(c)
	if !ok {
		return
	}
	traitID, ok := pathUUID(c, "trait_id")
	if !ok {
		return
	}

	var req ego.UpdateTraitValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	value, err := h.usecase.UpdateTraitValue(c.Request.Context(), userID, traitID, req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, value)
}

// DeleteTraitValue handles DELETE /ego/personality-traits/:user_id/:trait_id
func (h *EgoHandler) DeleteTraitValue(c *gin.Context) {
	userID, ok := h.ownUserID(c)
	if !ok {
		return
	}
	traitID, ok := pathUUID(c, "trait_id")
	if !ok {
		return
	}

	if err := h.usecase.DeleteTraitValue(c.Request.Context(), userID, traitID); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "trait value removed"})
}

func (h *EgoHandler) ownUserID(c *gin.Context) (userID uuid.UUID, ok bool) {
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
