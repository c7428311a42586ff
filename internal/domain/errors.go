package domain

import "errors"

// Profile errors
var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
)

// Attribute errors
var (
	ErrCategoryNotFound      = errors.New("attribute category not found")
	ErrAttributeNotFound     = errors.New("attribute not found")
	ErrUserAttributeExists   = errors.New("user already associated with this attribute")
	ErrUserAttributeNotFound = errors.New("user attribute association not found")
)

// Ego errors
var (
	ErrCognitiveFunctionNotFound     = errors.New("cognitive function not found")
	ErrUserCognitiveFunctionExists   = errors.New("user already has a score for this cognitive function")
	ErrUserCognitiveFunctionNotFound = errors.New("user cognitive function score not found")
	ErrDistributionNotFound          = errors.New("cognitive function distribution not found")
	ErrTraitNotFound                 = errors.New("personality trait not found")
	ErrUserTraitExists               = errors.New("user already has a value for this trait")
	ErrUserTraitNotFound             = errors.New("user personality trait not found")
	ErrTraitValueMismatch            = errors.New("trait value does not match the trait's value type")
)

// Team errors
var (
	ErrEventNotFound          = errors.New("event not found")
	ErrAlreadyJoinedEvent     = errors.New("already joined this event")
	ErrNotEventParticipant    = errors.New("must join the event first")
	ErrAlreadyInTeam          = errors.New("already in a team")
	ErrTeamNotFound           = errors.New("team not found")
	ErrAlreadyTeamMember      = errors.New("already in this team")
	ErrNotInTeam              = errors.New("not in any team")
	ErrPostNotFound           = errors.New("post not found")
	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrInvalidSkillIDs        = errors.New("invalid skill ids")
)

// Interests errors
var (
	ErrInvalidHobbyIDs      = errors.New("invalid interest ids")
	ErrUnknownHobbyCategory = errors.New("unknown interest category")
)

// Auth errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrEmailTaken   = errors.New("email already registered")
)

// Shared input errors
var (
	ErrEmptyUpdate  = errors.New("no fields to update")
	ErrInvalidInput = errors.New("invalid input")
)
