package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/profilematch/backend/internal/domain"
)

// UpdateTeamPostInput carries a partial post update; nil fields are
// untouched.
type UpdateTeamPostInput struct {
	Title   *string
	Content *string
}

// TeamRepository persists events, teams, membership, posts and
// recommendations. Multi-row mutations (team creation, joining,
// leaving) run inside a single database transaction.
type TeamRepository interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	GetEvent(ctx context.Context, eventID uuid.UUID) (*domain.Event, error)
	GetParticipant(ctx context.Context, eventID, userID uuid.UUID) (*domain.EventParticipant, error)
	GetParticipantByUser(ctx context.Context, userID uuid.UUID) (*domain.EventParticipant, error)
	JoinEvent(ctx context.Context, eventID, userID uuid.UUID) error

	GetTeam(ctx context.Context, teamID uuid.UUID) (*domain.Team, error)
	// CreateTeam inserts the team and enrolls the creator as its first
	// member in one transaction.
	CreateTeam(ctx context.Context, eventID, creatorID uuid.UUID, name string, saySomething *string) (*domain.Team, error)
	// AddMember enrolls the user and stamps the participant row's team
	// back-reference in one transaction.
	AddMember(ctx context.Context, teamID, eventID, userID uuid.UUID) error
	// RemoveMember drops the membership, clears the participant row's
	// back-reference, and deletes the team when its last member left.
	// Reports whether the team was deleted.
	RemoveMember(ctx context.Context, teamID, eventID, userID uuid.UUID) (bool, error)

	GetRoster(ctx context.Context, teamID uuid.UUID) (*domain.TeamRoster, error)
	GetMemberSkillIDs(ctx context.Context, teamID, userID uuid.UUID) ([]int, error)
	SetMemberSkillIDs(ctx context.Context, teamID, userID uuid.UUID, skillIDs []int) error
	// FilterUnknownSkillIDs reports which of the given ids have no
	// skill dictionary row.
	FilterUnknownSkillIDs(ctx context.Context, skillIDs []int) ([]int, error)

	CreatePost(ctx context.Context, teamID, authorID uuid.UUID, title, content string) (*domain.TeamPost, error)
	ListPosts(ctx context.Context, teamID uuid.UUID) ([]domain.TeamPost, error)
	GetPost(ctx context.Context, postID uuid.UUID) (*domain.TeamPost, error)
	UpdatePost(ctx context.Context, postID uuid.UUID, input UpdateTeamPostInput) (*domain.TeamPost, error)
	SoftDeletePost(ctx context.Context, postID uuid.UUID) error

	ListRecommendations(ctx context.Context, userID uuid.UUID) ([]domain.TeamRecommendation, error)
	GetRecommendation(ctx context.Context, recommendationID, userID uuid.UUID) (*domain.TeamRecommendation, error)
	SetRecommendationStatus(ctx context.Context, recommendationID uuid.UUID, status string) error
}
