package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/profilematch/backend/internal/delivery/http/middleware"
	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/usecase/attributes"
)

type AttributeHandler struct {
	usecase *attributes.UseCase
	log     *logger.Logger
}

func NewAttributeHandler(usecase *attributes.UseCase, log *logger.Logger) *AttributeHandler {
	return &AttributeHandler{usecase: usecase, log: log}
}

// CategoryTree handles GET /attributes/categories/tree
func (h *AttributeHandler) CategoryTree(c *gin.Context) {
	var req attributes.TreeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	tree, err := h.usecase.CategoryTree(c.Request.Context(), req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

// Subcategories handles GET /attributes/categories/:category_id/subcategories
func (h *AttributeHandler) Subcategories(c *gin.Context) {
	categoryID, ok := pathUUID(c, "category_id")
	if !ok {
		return
	}

	subcategories, err := h.usecase.Subcategories(c.Request.Context(), categoryID, c.Query("include_inactive") == "true")
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, subcategories)
}

// CategoryAttributes handles GET /attributes/categories/:category_id/attributes
func (h *AttributeHandler) CategoryAttributes(c *gin.Context) {
	categoryID, ok := pathUUID(c, "category_id")
	if !ok {
		return
	}

	attrs, err := h.usecase.CategoryAttributes(c.Request.Context(), categoryID, c.Query("include_inactive") == "true")
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, attrs)
}

// Search handles GET /attributes/search
func (h *AttributeHandler) Search(c *gin.Context) {
	var req attributes.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	attrs, err := h.usecase.Search(c.Request.Context(), req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attributes": attrs, "count": len(attrs)})
}

// Popular handles GET /attributes/popular
func (h *AttributeHandler) Popular(c *gin.Context) {
	var req attributes.PopularRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	attrs, err := h.usecase.Popular(c.Request.Context(), req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, attrs)
}

// ListUserAttributes handles GET /attributes/user/:user_id
func (h *AttributeHandler) ListUserAttributes(c *gin.Context) {
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	var req attributes.ListUserAttributesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	associations, err := h.usecase.ListUserAttributes(c.Request.Context(), userID, req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, associations)
}

// Associate handles POST /attributes/user/:user_id
func (h *AttributeHandler) Associate(c *gin.Context) {
	userID, ok := h.ownUserID(c)
	if !ok {
		return
	}

	var req attributes.AssociateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	association, err := h.usecase.Associate(c.Request.Context(), userID, req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, association)
}

// UpdateAssociation handles PUT /attributes/user/:user_id/:attribute_id
func (h *AttributeHandler) UpdateAssociation(c *gin.Context) {
	userID, ok := h.ownUserID(c)
	if !ok {
		return
	}
	attributeID, ok := pathUUID(c, "attribute_id")
	if !ok {
		return
	}

	var req attributes.UpdateAssociationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	association, err := h.usecase.UpdateAssociation(c.Request.Context(), userID, attributeID, req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, association)
}

// RemoveAssociation handles DELETE /attributes/user/:user_id/:attribute_id
func (h *AttributeHandler) RemoveAssociation(c *gin.Context) {
	userID, ok := h.ownUserID(c)
	if !ok {
		return
	}
	attributeID, ok := pathUUID(c, "attribute_id")
	if !ok {
		return
	}

	if err := h.usecase.RemoveAssociation(c.Request.Context(), userID, attributeID); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "attribute association removed"})
}

func (h *AttributeHandler) ownUserID(c *gin.Context) (userID uuid.UUID, ok bool) {
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
