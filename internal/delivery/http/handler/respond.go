package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/profilematch/backend/internal/domain"
	"github.com/profilematch/backend/internal/pkg/logger"
)

// ErrorResponse is the error body for every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body for replies that carry no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

// handleError maps domain sentinel errors onto HTTP statuses. Unknown
// errors become opaque 500s; the detail goes to the log only.
func handleError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrAttributeNotFound),
		errors.Is(err, domain.ErrUserAttributeNotFound),
		errors.Is(err, domain.ErrCognitiveFunctionNotFound),
		errors.Is(err, domain.ErrUserCognitiveFunctionNotFound),
		errors.Is(err, domain.ErrDistributionNotFound),
		errors.Is(err, domain.ErrTraitNotFound),
		errors.Is(err, domain.ErrUserTraitNotFound),
		errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrTeamNotFound),
		errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrRecommendationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrProfileAlreadyExists),
		errors.Is(err, domain.ErrUserAttributeExists),
		errors.Is(err, domain.ErrUserCognitiveFunctionExists),
		errors.Is(err, domain.ErrUserTraitExists),
		errors.Is(err, domain.ErrAlreadyJoinedEvent),
		errors.Is(err, domain.ErrAlreadyInTeam),
		errors.Is(err, domain.ErrAlreadyTeamMember),
		errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrEmptyUpdate),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrTraitValueMismatch),
		errors.Is(err, domain.ErrInvalidSkillIDs),
		errors.Is(err, domain.ErrInvalidHobbyIDs),
		errors.Is(err, domain.ErrUnknownHobbyCategory),
		errors.Is(err, domain.ErrNotEventParticipant),
		errors.Is(err, domain.ErrNotInTeam):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})

	default:
		log.Error("request failed", "error", err, "path", c.FullPath(), "method", c.Request.Method)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

// pathUUID parses a uuid path parameter, replying 400 on malformed
// input.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// queryUUID parses an optional uuid query parameter.
func queryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return nil, false
	}
	return &id, true
}
