package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/profilematch/backend/internal/delivery/http/middleware"
	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/usecase/auth"
)

type AuthHandler struct {
	usecase *auth.UseCase
	log     *logger.Logger
}

func NewAuthHandler(usecase *auth.UseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{usecase: usecase, log: log}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.usecase.Register(c.Request.Context(), req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	session, err := h.usecase.Login(c.Request.Context(), req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	user, err := h.usecase.Me(c.Request.Context(), userID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
