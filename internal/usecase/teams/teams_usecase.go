package teams

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/profilematch/backend/internal/domain"
	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/repository"
)

// CreateTeamRequest forms a new team within an event.
type CreateTeamRequest struct {
	EventID      uuid.UUID `json:"event_id" binding:"required"`
	Name         string    `json:"name" binding:"required,min=1,max=100"`
	SaySomething *string   `json:"say_something" binding:"omitempty,max=500"`
}

// JoinEventRequest enrolls the current user into an event.
type JoinEventRequest struct {
	EventID uuid.UUID `json:"event_id" binding:"required"`
}

// SetSkillsRequest replaces the current user's skill tags within their
// team.
type SetSkillsRequest struct {
	SkillIDs []int `json:"skill_ids" binding:"required,max=2"`
}

// CreatePostRequest publishes a post on the current user's team wall.
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=200"`
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// UpdatePostRequest is a partial post edit.
type UpdatePostRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=1,max=200"`
	Content *string `json:"content" binding:"omitempty,min=1,max=5000"`
}

// RespondRecommendationRequest accepts or rejects a team
// recommendation.
type RespondRecommendationRequest struct {
	Accept bool `json:"accept"`
}

type UseCase struct {
	teams        repository.TeamRepository
	profiles     repository.ProfileRepository
	dictionaries repository.DictionaryRepository
	log          *logger.Logger
}

func NewUseCase(teams repository.TeamRepository, profiles repository.ProfileRepository, dictionaries repository.DictionaryRepository, log *logger.Logger) *UseCase {
	return &UseCase{teams: teams, profiles: profiles, dictionaries: dictionaries, log: log}
}

func (uc *UseCase) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return uc.teams.ListEvents(ctx)
}

func (uc *UseCase) JoinEvent(ctx context.Context, userID uuid.UUID, req JoinEventRequest) error {
	if _, err := uc.teams.GetEvent(ctx, req.EventID); err != nil {
		return err
	}
	if err := uc.teams.JoinEvent(ctx, req.EventID, userID); err != nil {
		return err
	}

	uc.log.Info("user joined event", "user_id", userID, "event_id", req.EventID)
	return nil
}

func (uc *UseCase) CreateTeam(ctx context.Context, userID uuid.UUID, req CreateTeamRequest) (*domain.Team, error) {
	participant, err := uc.teams.GetParticipant(ctx, req.EventID, userID)
	if err != nil {
		return nil, err
	}
	if participant.TeamID != nil {
		return nil, domain.ErrAlreadyInTeam
	}

	team, err := uc.teams.CreateTeam(ctx, req.EventID, userID, req.Name, req.SaySomething)
	if err != nil {
		return nil, err
	}

	uc.log.Info("team created", "team_id", team.ID, "event_id", req.EventID, "creator_id", userID)
	return team, nil
}

func (uc *UseCase) JoinTeam(ctx context.Context, userID, teamID uuid.UUID) (*domain.Team, error) {
	team, err := uc.teams.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	participant, err := uc.teams.GetParticipant(ctx, team.EventID, userID)
	if err != nil {
		return nil, err
	}
	if participant.TeamID != nil {
		return nil, domain.ErrAlreadyInTeam
	}

	if err := uc.teams.AddMember(ctx, teamID, team.EventID, userID); err != nil {
		return nil, err
	}

	uc.log.Info("user joined team", "user_id", userID, "team_id", teamID)
	return uc.teams.GetTeam(ctx, teamID)
}

func (uc *UseCase) LeaveTeam(ctx context.Context, userID uuid.UUID) error {
	participant, err := uc.teams.GetParticipantByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotEventParticipant) {
			return domain.ErrNotInTeam
		}
		return err
	}
	if participant.TeamID == nil {
		return domain.ErrNotInTeam
	}

	deleted, err := uc.teams.RemoveMember(ctx, *participant.TeamID, participant.EventID, userID)
	if err != nil {
		return err
	}

	uc.log.Info("user left team", "user_id", userID, "team_id", *participant.TeamID, "team_deleted", deleted)
	return nil
}

// MyTeam returns the roster of the team the user currently belongs to.
func (uc *UseCase) MyTeam(ctx context.Context, userID uuid.UUID) (*domain.TeamRoster, error) {
	participant, err := uc.teams.GetParticipantByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotEventParticipant) {
			return nil, domain.ErrNotInTeam
		}
		return nil, err
	}
	if participant.TeamID == nil {
		return nil, domain.ErrNotInTeam
	}
	return uc.teams.GetRoster(ctx, *participant.TeamID)
}

func (uc *UseCase) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	return uc.dictionaries.ListSkills(ctx)
}

func (uc *UseCase) MySkills(ctx context.Context, userID uuid.UUID) ([]domain.Skill, error) {
	participant, err := uc.currentTeamParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids, err := uc.teams.GetMemberSkillIDs(ctx, *participant.TeamID, userID)
	if err != nil {
		return nil, err
	}
	return uc.resolveSkills(ctx, ids)
}

func (uc *UseCase) SetSkills(ctx context.Context, userID uuid.UUID, req SetSkillsRequest) ([]domain.Skill, error) {
	participant, err := uc.currentTeamParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	unknown, err := uc.teams.FilterUnknownSkillIDs(ctx, req.SkillIDs)
	if err != nil {
		return nil, err
	}
	if len(unknown) > 0 {
		return nil, domain.ErrInvalidSkillIDs
	}

	if err := uc.teams.SetMemberSkillIDs(ctx, *participant.TeamID, userID, req.SkillIDs); err != nil {
		return nil, err
	}
	return uc.resolveSkills(ctx, req.SkillIDs)
}

func (uc *UseCase) TeamMembers(ctx context.Context, teamID uuid.UUID) (*domain.TeamRoster, error) {
	return uc.teams.GetRoster(ctx, teamID)
}

func (uc *UseCase) CreatePost(ctx context.Context, userID uuid.UUID, req CreatePostRequest) (*domain.TeamPost, error) {
	participant, err := uc.currentTeamParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	post, err := uc.teams.CreatePost(ctx, *participant.TeamID, userID, req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	uc.log.Info("team post created", "post_id", post.ID, "team_id", post.TeamID, "author_id", userID)
	return post, nil
}

func (uc *UseCase) ListPosts(ctx context.Context, userID uuid.UUID) ([]domain.TeamPost, error) {
	participant, err := uc.currentTeamParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.teams.ListPosts(ctx, *participant.TeamID)
}

func (uc *UseCase) UpdatePost(ctx context.Context, userID, postID uuid.UUID, req UpdatePostRequest) (*domain.TeamPost, error) {
	post, err := uc.teams.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, domain.ErrForbidden
	}

	return uc.teams.UpdatePost(ctx, postID, repository.UpdateTeamPostInput{
		Title:   req.Title,
		Content: req.Content,
	})
}

func (uc *UseCase) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := uc.teams.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return domain.ErrForbidden
	}
	return uc.teams.SoftDeletePost(ctx, postID)
}

func (uc *UseCase) ListUsers(ctx context.Context) ([]*domain.Profile, error) {
	return uc.profiles.ListActive(ctx)
}

func (uc *UseCase) ListRecommendations(ctx context.Context, userID uuid.UUID) ([]domain.TeamRecommendation, error) {
	return uc.teams.ListRecommendations(ctx, userID)
}

// RespondRecommendation marks the recommendation accepted or rejected.
// Accepting moves the user onto the recommended team, leaving their
// current team first when they have one.
func (uc *UseCase) RespondRecommendation(ctx context.Context, userID, recommendationID uuid.UUID, req RespondRecommendationRequest) (*domain.Team, error) {
	rec, err := uc.teams.GetRecommendation(ctx, recommendationID, userID)
	if err != nil {
		return nil, err
	}

	if !req.Accept {
		if err := uc.teams.SetRecommendationStatus(ctx, recommendationID, domain.RecommendationRejected); err != nil {
			return nil, err
		}
		uc.log.Info("recommendation rejected", "user_id", userID, "recommendation_id", recommendationID)
		return nil, nil
	}

	team, err := uc.teams.GetTeam(ctx, rec.TeamID)
	if err != nil {
		return nil, err
	}

	participant, err := uc.teams.GetParticipant(ctx, team.EventID, userID)
	if errors.Is(err, domain.ErrNotEventParticipant) {
		if err := uc.teams.JoinEvent(ctx, team.EventID, userID); err != nil {
			return nil, err
		}
		participant, err = uc.teams.GetParticipant(ctx, team.EventID, userID)
	}
	if err != nil {
		return nil, err
	}

	if participant.TeamID != nil && *participant.TeamID != rec.TeamID {
		if _, err := uc.teams.RemoveMember(ctx, *participant.TeamID, team.EventID, userID); err != nil {
			return nil, err
		}
		participant.TeamID = nil
	}

	if participant.TeamID == nil {
		if err := uc.teams.AddMember(ctx, rec.TeamID, team.EventID, userID); err != nil {
			return nil, err
		}
	}

	if err := uc.teams.SetRecommendationStatus(ctx, recommendationID, domain.RecommendationAccepted); err != nil {
		return nil, err
	}

	uc.log.Info("recommendation accepted", "user_id", userID, "recommendation_id", recommendationID, "team_id", rec.TeamID)
	return uc.teams.GetTeam(ctx, rec.TeamID)
}

// currentTeamParticipant resolves the user's participant row and
// requires team membership.
func (uc *UseCase) currentTeamParticipant(ctx context.Context, userID uuid.UUID) (*domain.EventParticipant, error) {
	participant, err := uc.teams.GetParticipantByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotEventParticipant) {
			return nil, domain.ErrNotInTeam
		}
		return nil, err
	}
	if participant.TeamID == nil {
		return nil, domain.ErrNotInTeam
	}
	return participant, nil
}

func (uc *UseCase) resolveSkills(ctx context.Context, ids []int) ([]domain.Skill, error) {
	all, err := uc.dictionaries.ListSkills(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]domain.Skill, len(all))
	for _, s := range all {
		byID[s.ID] = s
	}

	skills := make([]domain.Skill, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			skills = append(skills, s)
		}
	}
	return skills, nil
}
