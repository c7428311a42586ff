package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/profilematch/backend/internal/delivery/http/middleware"
	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/usecase/teams"
)

type TeamHandler struct {
	usecase *teams.UseCase
	log     *logger.Logger
}

func NewTeamHandler(usecase *teams.UseCase, log *logger.Logger) *TeamHandler {
	return &TeamHandler{usecase: usecase, log: log}
}

// ListEvents handles GET /teams/events
func (h *TeamHandler) ListEvents(c *gin.Context) {
	events, err := h.usecase.ListEvents(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// JoinEvent handles POST /teams/events/:event_id/join
func (h *TeamHandler) JoinEvent(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}
	eventID, ok := pathUUID(c, "event_id")
	if !ok {
		return
	}

	req := teams.JoinEventRequest{EventID: eventID}
	if err := h.usecase.JoinEvent(c.Request.Context(), userID, req); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "joined event"})
}

// CreateTeam handles POST /teams/create
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req teams.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	team, err := h.usecase.CreateTeam(c.Request.Context(), userID, req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

// JoinTeam handles POST /teams/join/:team_id
func (h *TeamHandler) JoinTeam(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}
	teamID, ok := pathUUID(c, "team_id")
	if !ok {
		return
	}

	team, err := h.usecase.JoinTeam(c.Request.Context(), userID, teamID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// LeaveTeam handles POST /teams/leave
func (h *TeamHandler) LeaveTeam(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.usecase.LeaveTeam(c.Request.Context(), userID); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "left team"})
}

// MyTeam handles GET /teams/members
func (h *TeamHandler) MyTeam(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	roster, err := h.usecase.MyTeam(c.Request.Context(), userID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, roster)
}

// ListSkills handles GET /teams/skills/all
func (h *TeamHandler) ListSkills(c *gin.Context) {
	skills, err := h.usecase.ListSkills(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

// MySkills handles GET /teams/skills
func (h *TeamHandler) MySkills(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	skills, err := h.usecase.MySkills(c.Request.Context(), userID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

// SetSkills handles POST /teams/skills
func (h *TeamHandler) SetSkills(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req teams.SetSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	skills, err := h.usecase.SetSkills(c.Request.Context(), userID, req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

// TeamMembers handles GET /teams/:team_id/members
func (h *TeamHandler) TeamMembers(c *gin.Context) {
	teamID, ok := pathUUID(c, "team_id")
	if !ok {
		return
	}

	roster, err := h.usecase.TeamMembers(c.Request.Context(), teamID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, roster)
}

// CreatePost handles POST /teams/posts
func (h *TeamHandler) CreatePost(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req teams.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	post, err := h.usecase.CreatePost(c.Request.Context(), userID, req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// ListPosts handles GET /teams/posts
func (h *TeamHandler) ListPosts(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	posts, err := h.usecase.ListPosts(c.Request.Context(), userID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// UpdatePost handles PATCH /teams/posts/:post_id
func (h *TeamHandler) UpdatePost(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}
	postID, ok := pathUUID(c, "post_id")
	if !ok {
		return
	}

	var req teams.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	post, err := h.usecase.UpdatePost(c.Request.Context(), userID, postID, req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost handles DELETE /teams/posts/:post_id
func (h *TeamHandler) DeletePost(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}
	postID, ok := pathUUID(c, "post_id")
	if !ok {
		return
	}

	if err := h.usecase.DeletePost(c.Request.Context(), userID, postID); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "post deleted"})
}

// ListUsers handles GET /teams/users
func (h *TeamHandler) ListUsers(c *gin.Context) {
	users, err := h.usecase.ListUsers(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// ListRecommendations handles GET /teams/recommendations
func (h *TeamHandler) ListRecommendations(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	recommendations, err := h.usecase.ListRecommendations(c.Request.Context(), userID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, recommendations)
}

// RespondRecommendation handles PATCH /teams/recommendations/:recommendation_id
func (h *TeamHandler) RespondRecommendation(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}
	recommendationID, ok := pathUUID(c, "recommendation_id")
	if !ok {
		return
	}

	var req teams.RespondRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	team, err := h.usecase.RespondRecommendation(c.Request.Context(), userID, recommendationID, req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	if team == nil {
		c.JSON(http.StatusOK, MessageResponse{Message: "recommendation rejected"})
		return
	}
	c.JSON(http.StatusOK, team)
}
