package interests

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilematch/backend/internal/domain"
	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/repository"
)

// fakeDictionaries serves a fixed hobby table.
type fakeDictionaries struct {
	repository.DictionaryRepository
	hobbies []domain.Hobby
}

func (f *fakeDictionaries) ListHobbies(_ context.Context) ([]domain.Hobby, error) {
	return f.hobbies, nil
}

func (f *fakeDictionaries) ListHobbiesByCategory(_ context.Context, category string) ([]domain.Hobby, error) {
	out := make([]domain.Hobby, 0)
	for _, h := range f.hobbies {
		if h.Category == category {
			out = append(out, h)
		}
	}
	return out, nil
}

// fakeProfiles tracks which users have a profile and their hobby ids.
type fakeProfiles struct {
	repository.ProfileRepository
	profiles map[uuid.UUID][]int
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: map[uuid.UUID][]int{}}
}

func (f *fakeProfiles) Exists(_ context.Context, userID uuid.UUID) (bool, error) {
	_, ok := f.profiles[userID]
	return ok, nil
}

func (f *fakeProfiles) GetHobbyIDs(_ context.Context, userID uuid.UUID) ([]int, error) {
	return f.profiles[userID], nil
}

func (f *fakeProfiles) SetHobbyIDs(_ context.Context, userID uuid.UUID, hobbyIDs []int) error {
	f.profiles[userID] = hobbyIDs
	return nil
}

func newInterestsUseCase(profiles *fakeProfiles) *UseCase {
	dict := &fakeDictionaries{hobbies: []domain.Hobby{
		{ID: 1, Name: "Hiking", Category: "outdoor"},
		{ID: 2, Name: "Climbing", Category: "outdoor"},
		{ID: 3, Name: "Chess", Category: "games"},
	}}
	return NewUseCase(profiles, dict, logger.NewNop())
}

func TestListByCategoryReturnsMatchingHobbies(t *testing.T) {
	uc := newInterestsUseCase(newFakeProfiles())

	hobbies, err := uc.ListByCategory(context.Background(), "outdoor")

	require.NoError(t, err)
	require.Len(t, hobbies, 2)
	assert.Equal(t, "Hiking", hobbies[0].Name)
}

func TestListByCategoryRejectsUnknownCategory(t *testing.T) {
	uc := newInterestsUseCase(newFakeProfiles())

	_, err := uc.ListByCategory(context.Background(), "underwater-basket-weaving")

	assert.ErrorIs(t, err, domain.ErrUnknownHobbyCategory)
}

func TestSetUserInterestsReplacesSelection(t *testing.T) {
	profiles := newFakeProfiles()
	userID := uuid.New()
	profiles.profiles[userID] = []int{3}
	uc := newInterestsUseCase(profiles)

	hobbies, err := uc.SetUserInterests(context.Background(), userID, SetInterestsRequest{InterestIDs: []int{1, 2}})

	require.NoError(t, err)
	require.Len(t, hobbies, 2)
	assert.Equal(t, []int{1, 2}, profiles.profiles[userID])
}

func TestSetUserInterestsRejectsUnknownIDs(t *testing.T) {
	profiles := newFakeProfiles()
	userID := uuid.New()
	profiles.profiles[userID] = nil
	uc := newInterestsUseCase(profiles)

	_, err := uc.SetUserInterests(context.Background(), userID, SetInterestsRequest{InterestIDs: []int{1, 99}})

	assert.ErrorIs(t, err, domain.ErrInvalidHobbyIDs)
}

func TestSetUserInterestsRequiresExistingProfile(t *testing.T) {
	uc := newInterestsUseCase(newFakeProfiles())

	_, err := uc.SetUserInterests(context.Background(), uuid.New(), SetInterestsRequest{InterestIDs: []int{1}})

	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
