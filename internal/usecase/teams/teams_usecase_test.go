package teams

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilematch/backend/internal/domain"
	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/repository"
)

type fakeTeam struct {
	id           uuid.UUID
	eventID      uuid.UUID
	name         string
	saySomething *string
	members      []uuid.UUID
}

type fakeRec struct {
	rec    domain.TeamRecommendation
	userID uuid.UUID
	active bool
	status string
}

type fakeTeamRepo struct {
	events       map[uuid.UUID]domain.Event
	participants []*domain.EventParticipant
	teams        map[uuid.UUID]*fakeTeam
	memberSkills map[uuid.UUID]map[uuid.UUID][]int
	knownSkills  map[int]string
	posts        map[uuid.UUID]*domain.TeamPost
	recs         map[uuid.UUID]*fakeRec
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		events:       map[uuid.UUID]domain.Event{},
		teams:        map[uuid.UUID]*fakeTeam{},
		memberSkills: map[uuid.UUID]map[uuid.UUID][]int{},
		knownSkills:  map[int]string{1: "backend", 2: "frontend", 3: "design"},
		posts:        map[uuid.UUID]*domain.TeamPost{},
		recs:         map[uuid.UUID]*fakeRec{},
	}
}

func (f *fakeTeamRepo) addEvent() uuid.UUID {
	id := uuid.New()
	f.events[id] = domain.Event{ID: id, Name: "hackathon"}
	return id
}

func (f *fakeTeamRepo) ListEvents(ctx context.Context) ([]domain.Event, error) {
	out := []domain.Event{}
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeTeamRepo) GetEvent(ctx context.Context, eventID uuid.UUID) (*domain.Event, error) {
	e, ok := f.events[eventID]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return &e, nil
}

func (f *fakeTeamRepo) GetParticipant(ctx context.Context, eventID, userID uuid.UUID) (*domain.EventParticipant, error) {
	for _, p := range f.participants {
		if p.EventID == eventID && p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotEventParticipant
}

func (f *fakeTeamRepo) GetParticipantByUser(ctx context.Context, userID uuid.UUID) (*domain.EventParticipant, error) {
	for i := len(f.participants) - 1; i >= 0; i-- {
		if f.participants[i].UserID == userID {
			cp := *f.participants[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotEventParticipant
}

func (f *fakeTeamRepo) JoinEvent(ctx context.Context, eventID, userID uuid.UUID) error {
	if _, ok := f.events[eventID]; !ok {
		return domain.ErrEventNotFound
	}
	for _, p := range f.participants {
		if p.EventID == eventID && p.UserID == userID {
			return domain.ErrAlreadyJoinedEvent
		}
	}
	f.participants = append(f.participants, &domain.EventParticipant{
		ID: uuid.New(), EventID: eventID, UserID: userID,
	})
	return nil
}

func (f *fakeTeamRepo) toDomainTeam(t *fakeTeam) *domain.Team {
	return &domain.Team{
		ID:           t.id,
		EventID:      t.eventID,
		Name:         t.name,
		SaySomething: t.saySomething,
		MemberIDs:    append([]uuid.UUID{}, t.members...),
		MemberCount:  len(t.members),
		CreatedAt:    time.Now(),
	}
}

func (f *fakeTeamRepo) GetTeam(ctx context.Context, teamID uuid.UUID) (*domain.Team, error) {
	t, ok := f.teams[teamID]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	return f.toDomainTeam(t), nil
}

func (f *fakeTeamRepo) stamp(eventID, userID uuid.UUID, teamID *uuid.UUID) {
	for _, p := range f.participants {
		if p.EventID == eventID && p.UserID == userID {
			p.TeamID = teamID
		}
	}
}

func (f *fakeTeamRepo) CreateTeam(ctx context.Context, eventID, creatorID uuid.UUID, name string, saySomething *string) (*domain.Team, error) {
	if _, ok := f.events[eventID]; !ok {
		return nil, domain.ErrEventNotFound
	}
	t := &fakeTeam{id: uuid.New(), eventID: eventID, name: name, saySomething: saySomething, members: []uuid.UUID{creatorID}}
	f.teams[t.id] = t
	f.stamp(eventID, creatorID, &t.id)
	return f.toDomainTeam(t), nil
}

func (f *fakeTeamRepo) AddMember(ctx context.Context, teamID, eventID, userID uuid.UUID) error {
	t, ok := f.teams[teamID]
	if !ok {
		return domain.ErrTeamNotFound
	}
	for _, m := range t.members {
		if m == userID {
			return domain.ErrAlreadyTeamMember
		}
	}
	t.members = append(t.members, userID)
	f.stamp(eventID, userID, &teamID)
	return nil
}

func (f *fakeTeamRepo) RemoveMember(ctx context.Context, teamID, eventID, userID uuid.UUID) (bool, error) {
	t, ok := f.teams[teamID]
	if !ok {
		return false, domain.ErrTeamNotFound
	}
	kept := t.members[:0]
	removed := false
	for _, m := range t.members {
		if m == userID {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	if !removed {
		return false, domain.ErrNotInTeam
	}
	t.members = kept
	f.stamp(eventID, userID, nil)
	if len(t.members) == 0 {
		delete(f.teams, teamID)
		return true, nil
	}
	return false, nil
}

func (f *fakeTeamRepo) GetRoster(ctx context.Context, teamID uuid.UUID) (*domain.TeamRoster, error) {
	t, ok := f.teams[teamID]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	members := make([]domain.TeamMember, 0, len(t.members))
	for _, m := range t.members {
		members = append(members, domain.TeamMember{UserID: m, Skills: []string{}})
	}
	return &domain.TeamRoster{TeamID: teamID, TeamName: t.name, Members: members, MemberCount: len(members)}, nil
}

func (f *fakeTeamRepo) GetMemberSkillIDs(ctx context.Context, teamID, userID uuid.UUID) ([]int, error) {
	return f.memberSkills[teamID][userID], nil
}

func (f *fakeTeamRepo) SetMemberSkillIDs(ctx context.Context, teamID, userID uuid.UUID, skillIDs []int) error {
	if f.memberSkills[teamID] == nil {
		f.memberSkills[teamID] = map[uuid.UUID][]int{}
	}
	f.memberSkills[teamID][userID] = skillIDs
	return nil
}

func (f *fakeTeamRepo) FilterUnknownSkillIDs(ctx context.Context, skillIDs []int) ([]int, error) {
	unknown := []int{}
	for _, id := range skillIDs {
		if _, ok := f.knownSkills[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	return unknown, nil
}

func (f *fakeTeamRepo) CreatePost(ctx context.Context, teamID, authorID uuid.UUID, title, content string) (*domain.TeamPost, error) {
	post := &domain.TeamPost{ID: uuid.New(), TeamID: teamID, AuthorID: authorID, Title: title, Content: content, CreatedAt: time.Now()}
	f.posts[post.ID] = post
	return post, nil
}

func (f *fakeTeamRepo) ListPosts(ctx context.Context, teamID uuid.UUID) ([]domain.TeamPost, error) {
	out := []domain.TeamPost{}
	for _, p := range f.posts {
		if p.TeamID == teamID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) GetPost(ctx context.Context, postID uuid.UUID) (*domain.TeamPost, error) {
	p, ok := f.posts[postID]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeTeamRepo) UpdatePost(ctx context.Context, postID uuid.UUID, input repository.UpdateTeamPostInput) (*domain.TeamPost, error) {
	p, ok := f.posts[postID]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if input.Title == nil && input.Content == nil {
		return nil, domain.ErrEmptyUpdate
	}
	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Content != nil {
		p.Content = *input.Content
	}
	cp := *p
	return &cp, nil
}

func (f *fakeTeamRepo) SoftDeletePost(ctx context.Context, postID uuid.UUID) error {
	if _, ok := f.posts[postID]; !ok {
		return domain.ErrPostNotFound
	}
	delete(f.posts, postID)
	return nil
}

func (f *fakeTeamRepo) ListRecommendations(ctx context.Context, userID uuid.UUID) ([]domain.TeamRecommendation, error) {
	out := []domain.TeamRecommendation{}
	for _, r := range f.recs {
		if r.userID == userID && r.active {
			out = append(out, r.rec)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) GetRecommendation(ctx context.Context, recommendationID, userID uuid.UUID) (*domain.TeamRecommendation, error) {
	r, ok := f.recs[recommendationID]
	if !ok || r.userID != userID || !r.active {
		return nil, domain.ErrRecommendationNotFound
	}
	cp := r.rec
	return &cp, nil
}

func (f *fakeTeamRepo) SetRecommendationStatus(ctx context.Context, recommendationID uuid.UUID, status string) error {
	r, ok := f.recs[recommendationID]
	if !ok || !r.active {
		return domain.ErrRecommendationNotFound
	}
	r.status = status
	r.active = false
	return nil
}

type fakeDictionaries struct {
	repository.DictionaryRepository
	skills []domain.Skill
}

func (f *fakeDictionaries) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	return f.skills, nil
}

func newTestUseCase(repo *fakeTeamRepo) *UseCase {
	dicts := &fakeDictionaries{skills: []domain.Skill{
		{ID: 1, Name: "backend"}, {ID: 2, Name: "frontend"}, {ID: 3, Name: "design"},
	}}
	return NewUseCase(repo, nil, dicts, logger.NewNop())
}

func TestJoinEventTwiceConflicts(t *testing.T) {
	repo := newFakeTeamRepo()
	uc := newTestUseCase(repo)
	eventID := repo.addEvent()
	userID := uuid.New()

	require.NoError(t, uc.JoinEvent(context.Background(), userID, JoinEventRequest{EventID: eventID}))
	err := uc.JoinEvent(context.Background(), userID, JoinEventRequest{EventID: eventID})
	assert.ErrorIs(t, err, domain.ErrAlreadyJoinedEvent)
}

func TestJoinEventUnknownEvent(t *testing.T) {
	repo := newFakeTeamRepo()
	uc := newTestUseCase(repo)

	err := uc.JoinEvent(context.Background(), uuid.New(), JoinEventRequest{EventID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestCreateTeamRequiresEventParticipation(t *testing.T) {
	repo := newFakeTeamRepo()
	uc := newTestUseCase(repo)
	eventID := repo.addEvent()

	_, err := uc.CreateTeam(context.Background(), uuid.New(), CreateTeamRequest{EventID: eventID, Name: "alpha"})
	assert.ErrorIs(t, err, domain.ErrNotEventParticipant)
}

func TestCreateTeamEnrollsCreator(t *testing.T) {
	repo := newFakeTeamRepo()
	uc := newTestUseCase(repo)
	eventID := repo.addEvent()
	userID := uuid.New()
	require.NoError(t, uc.JoinEvent(context.Background(), userID, JoinEventRequest{EventID: eventID}))

	team, err := uc.CreateTeam(context.Background(), userID, CreateTeamRequest{EventID: eventID, Name: "alpha"})
	require.NoError(t, err)
	assert.Equal(t, 1, team.MemberCount)
	assert.Equal(t, []uuid.UUID{userID}, team.MemberIDs)

	participant, err := repo.GetParticipant(context.Background(), eventID, userID)
	require.NoError(t, err)
	require.NotNil(t, participant.TeamID)
	assert.Equal(t, team.ID, *participant.TeamID)
}

func TestCreateSecondTeamWhileInOneConflicts(t *testing.T) {
	repo := newFakeTeamRepo()
	uc := newTestUseCase(repo)
	eventID := repo.addEvent()
	userID := uuid.New()
	require.NoError(t, uc.JoinEvent(context.Background(), userID, JoinEventRequest{EventID: eventID}))
	_, err := uc.CreateTeam(context.Background(), userID, CreateTeamRequest{EventID: eventID, Name: "alpha"})
	require.NoError(t, err)

	_, err = uc.CreateTeam(context.Background(), userID, CreateTeamRequest{EventID: eventID, Name: "beta"})
	assert.ErrorIs(t, err, domain.ErrAlreadyInTeam)
}

func TestJoinTeamWhileInAnotherConflicts(t *testing.T) {
	repo := newFakeTeamRepo()
	uc := newTestUseCase(repo)
	eventID := repo.addEvent()
	creator := uuid.New()
	joiner := uuid.New()
	require.NoError(t, uc.JoinEvent(context.Background(), creator, JoinEventRequest{EventID: eventID}))
	require.NoError(t, uc.JoinEvent(context.Background(), joiner, JoinEventRequest{EventID: eventID}))

	first, err := uc.CreateTeam(context.Background(), creator, CreateTeamRequest{EventID: eventID, Name: "alpha"})
	require.NoError(t, err)
	second, err := uc.CreateTeam(context.Background(), joiner, CreateTeamRequest{EventID: eventID, Name: "beta"})
	require.NoError(t, err)

	_, err = uc.JoinTeam(context.Background(), joiner, first.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyInTeam)
	_ = second
}

func TestLeaveTeamLastMemberDeletesTeam(t *testing.T) {
	repo := newFakeTeamRepo()
	uc := newTestUseCase(repo)
	eventID := repo.addEvent()
	userID := uuid.New()
	require.NoError(t, uc.JoinEvent(context.Background(), userID, JoinEventRequest{EventID: eventID}))
	team, err := uc.CreateTeam(context.Background(), userID, CreateTeamRequest{EventID: eventID, Name: "alpha"})
	require.NoError(t, err)

	require.NoError(t, uc.LeaveTeam(context.Background(), userID))

	_, err = repo.GetTeam(context.Background(), team.ID)
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)
}

func TestLeaveTeamShrinksRemainingTeam(t *testing.T) {
	repo := newFakeTeamRepo()
	uc := newTestUseCase(repo)
	eventID := repo.addEvent()
	creator := uuid.New()
	joiner := uuid.New()
	require.NoError(t, uc.JoinEvent(context.Background(), creator, JoinEventRequest{EventID: eventID}))
	require.NoError(t, uc.JoinEvent(context.Background(), joiner, JoinEventRequest{EventID: eventID}))
	team, err := uc.CreateTeam(context.Background(), creator, CreateTeamRequest{EventID: eventID, Name: "alpha"})
	require.NoError(t, err)
	_, err = uc.JoinTeam(context.Background(), joiner, team.ID)
	require.NoError(t, err)

	require.NoError(t, uc.LeaveTeam(context.Background(), joiner))

	got, err := repo.GetTeam(context.Background(), team.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MemberCount)
	assert.Equal(t, []uuid.UUID{creator}, got.MemberIDs)
}

func TestLeaveTeamWithoutTeam(t *testing.T) {
	repo := newFakeTeamRepo()
	uc := newTestUseCase(repo)
	eventID := repo.addEvent()
	userID := uuid.New()
	require.NoError(t, uc.JoinEvent(context.Background(), userID, JoinEventRequest{EventID: eventID}))

	assert.ErrorIs(t, uc.LeaveTeam(context.Background(), userID), domain.ErrNotInTeam)
}

func TestSetSkillsRejectsUnknownIDs(t *testing.T) {
	repo := newFakeTeamRepo()
	uc := newTestUseCase(repo)
	eventID := repo.addEvent()
	userID := uuid.New()
	require.NoError(t, uc.JoinEvent(context.Background(), userID, JoinEventRequest{EventID: eventID}))
	_, err := uc.CreateTeam(context.Background(), userID, CreateTeamRequest{EventID: eventID, Name: "alpha"})
	require.NoError(t, err)

	_, err = uc.SetSkills(context.Background(), userID, SetSkillsRequest{SkillIDs: []int{1, 99}})
	assert.ErrorIs(t, err, domain.ErrInvalidSkillIDs)
}

func TestSetSkillsResolvesNames(t *testing.T) {
	repo := newFakeTeamRepo()
	uc := newTestUseCase(repo)
	eventID := repo.addEvent()
	userID := uuid.New()
	require.NoError(t, uc.JoinEvent(context.Background(), userID, JoinEventRequest{EventID: eventID}))
	_, err := uc.CreateTeam(context.Background(), userID, CreateTeamRequest{EventID: eventID, Name: "alpha"})
	require.NoError(t, err)

	skills, err := uc.SetSkills(context.Background(), userID, SetSkillsRequest{SkillIDs: []int{2, 1}})
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.Equal(t, "frontend", skills[0].Name)
	assert.Equal(t, "backend", skills[1].Name)
}

func TestUpdatePostOnlyByAuthor(t *testing.T) {
	repo := newFakeTeamRepo()
	uc := newTestUseCase(repo)
	eventID := repo.addEvent()
	author := uuid.New()
	other := uuid.New()
	require.NoError(t, uc.JoinEvent(context.Background(), author, JoinEventRequest{EventID: eventID}))
	_, err := uc.CreateTeam(context.Background(), author, CreateTeamRequest{EventID: eventID, Name: "alpha"})
	require.NoError(t, err)

	post, err := uc.CreatePost(context.Background(), author, CreatePostRequest{Title: "hello", Content: "world"})
	require.NoError(t, err)

	_, err = uc.UpdatePost(context.Background(), other, post.ID, UpdatePostRequest{Title: strPtr("hijacked")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := uc.UpdatePost(context.Background(), author, post.ID, UpdatePostRequest{Title: strPtr("edited")})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Title)
}

func TestRejectRecommendationDeactivatesIt(t *testing.T) {
	repo := newFakeTeamRepo()
	uc := newTestUseCase(repo)
	eventID := repo.addEvent()
	creator := uuid.New()
	require.NoError(t, uc.JoinEvent(context.Background(), creator, JoinEventRequest{EventID: eventID}))
	team, err := uc.CreateTeam(context.Background(), creator, CreateTeamRequest{EventID: eventID, Name: "alpha"})
	require.NoError(t, err)

	userID := uuid.New()
	recID := uuid.New()
	repo.recs[recID] = &fakeRec{
		rec:    domain.TeamRecommendation{ID: recID, TeamID: team.ID, TeamName: team.Name},
		userID: userID,
		active: true,
	}

	got, err := uc.RespondRecommendation(context.Background(), userID, recID, RespondRecommendationRequest{Accept: false})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, domain.RecommendationRejected, repo.recs[recID].status)

	_, err = uc.RespondRecommendation(context.Background(), userID, recID, RespondRecommendationRequest{Accept: true})
	assert.ErrorIs(t, err, domain.ErrRecommendationNotFound)
}

func TestAcceptRecommendationMovesUserBetweenTeams(t *testing.T) {
	repo := newFakeTeamRepo()
	uc := newTestUseCase(repo)
	eventID := repo.addEvent()
	creatorA := uuid.New()
	creatorB := uuid.New()
	mover := uuid.New()
	for _, id := range []uuid.UUID{creatorA, creatorB, mover} {
		require.NoError(t, uc.JoinEvent(context.Background(), id, JoinEventRequest{EventID: eventID}))
	}
	teamA, err := uc.CreateTeam(context.Background(), creatorA, CreateTeamRequest{EventID: eventID, Name: "alpha"})
	require.NoError(t, err)
	teamB, err := uc.CreateTeam(context.Background(), creatorB, CreateTeamRequest{EventID: eventID, Name: "beta"})
	require.NoError(t, err)
	_, err = uc.JoinTeam(context.Background(), mover, teamA.ID)
	require.NoError(t, err)

	recID := uuid.New()
	repo.recs[recID] = &fakeRec{
		rec:    domain.TeamRecommendation{ID: recID, TeamID: teamB.ID, TeamName: teamB.Name},
		userID: mover,
		active: true,
	}

	got, err := uc.RespondRecommendation(context.Background(), mover, recID, RespondRecommendationRequest{Accept: true})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, teamB.ID, got.ID)
	assert.Contains(t, got.MemberIDs, mover)

	oldTeam, err := repo.GetTeam(context.Background(), teamA.ID)
	require.NoError(t, err)
	assert.NotContains(t, oldTeam.MemberIDs, mover)
	assert.Equal(t, domain.RecommendationAccepted, repo.recs[recID].status)
}

func strPtr(s string) *string { return &s }
