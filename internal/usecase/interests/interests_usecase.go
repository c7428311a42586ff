package interests

import (
	"context"

	"github.com/google/uuid"

	"github.com/profilematch/backend/internal/domain"
	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/repository"
)

// SetInterestsRequest replaces a user's interest selection.
type SetInterestsRequest struct {
	InterestIDs []int `json:"interest_ids" binding:"required,max=50"`
}

type UseCase struct {
	profiles     repository.ProfileRepository
	dictionaries repository.DictionaryRepository
	log          *logger.Logger
}

func NewUseCase(profiles repository.ProfileRepository, dictionaries repository.DictionaryRepository, log *logger.Logger) *UseCase {
	return &UseCase{profiles: profiles, dictionaries: dictionaries, log: log}
}

func (uc *UseCase) ListInterests(ctx context.Context) ([]domain.Hobby, error) {
	return uc.dictionaries.ListHobbies(ctx)
}

// ListByCategory rejects categories absent from the hobby reference
// table instead of answering with an empty list.
func (uc *UseCase) ListByCategory(ctx context.Context, category string) ([]domain.Hobby, error) {
	all, err := uc.dictionaries.ListHobbies(ctx)
	if err != nil {
		return nil, err
	}

	known := false
	for _, h := range all {
		if h.Category == category {
			known = true
			break
		}
	}
	if !known {
		return nil, domain.ErrUnknownHobbyCategory
	}

	return uc.dictionaries.ListHobbiesByCategory(ctx, category)
}

func (uc *UseCase) UserInterests(ctx context.Context, userID uuid.UUID) ([]domain.Hobby, error) {
	ids, err := uc.profiles.GetHobbyIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	all, err := uc.dictionaries.ListHobbies(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]domain.Hobby, len(all))
	for _, h := range all {
		byID[h.ID] = h
	}

	hobbies := make([]domain.Hobby, 0, len(ids))
	for _, id := range ids {
		if h, ok := byID[id]; ok {
			hobbies = append(hobbies, h)
		}
	}
	return hobbies, nil
}

// SetUserInterests replaces the user's selection after checking the
// profile exists and every id against the hobby dictionary.
func (uc *UseCase) SetUserInterests(ctx context.Context, userID uuid.UUID, req SetInterestsRequest) ([]domain.Hobby, error) {
	exists, err := uc.profiles.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrProfileNotFound
	}

	all, err := uc.dictionaries.ListHobbies(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]domain.Hobby, len(all))
	for _, h := range all {
		byID[h.ID] = h
	}

	selected := make([]domain.Hobby, 0, len(req.InterestIDs))
	for _, id := range req.InterestIDs {
		h, ok := byID[id]
		if !ok {
			return nil, domain.ErrInvalidHobbyIDs
		}
		selected = append(selected, h)
	}

	if err := uc.profiles.SetHobbyIDs(ctx, userID, req.InterestIDs); err != nil {
		return nil, err
	}

	uc.log.Info("user interests updated", "user_id", userID, "count", len(req.InterestIDs))
	return selected, nil
}
