package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/profilematch/backend/internal/delivery/http/middleware"
	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/usecase/interests"
)

type InterestHandler struct {
	usecase *interests.UseCase
	log     *logger.Logger
}

func NewInterestHandler(usecase *interests.UseCase, log *logger.Logger) *InterestHandler {
	return &InterestHandler{usecase: usecase, log: log}
}

// ListInterests handles GET /interests
func (h *InterestHandler) ListInterests(c *gin.Context) {
	hobbies, err := h.usecase.ListInterests(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, hobbies)
}

// ListByCategory handles GET /interests/categories/:category
func (h *InterestHandler) ListByCategory(c *gin.Context) {
	hobbies, err := h.usecase.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, hobbies)
}

// UserInterests handles GET /users/:user_id/interests
func (h *InterestHandler) UserInterests(c *gin.Context) {
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	hobbies, err := h.usecase.UserInterests(c.Request.Context(), userID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, hobbies)
}

// SetUserInterests handles PUT /users/:user_id/interests
func (h *InterestHandler) SetUserInterests(c *gin.Context) {
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}
	authUserID, exists := middleware.UserID(c)
	if !exists || authUserID != userID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
		return
	}

	var req interests.SetInterestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	hobbies, err := h.usecase.SetUserInterests(c.Request.Context(), userID, req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, hobbies)
}
