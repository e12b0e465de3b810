package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"fashionswap-backend/internal/domain"
	"fashionswap-backend/internal/logger"
	"fashionswap-backend/internal/repository"
	"fashionswap-backend/internal/security"
	"fashionswap-backend/internal/utils"
)

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// GetProfile returns an empty profile for a wallet that has never saved one;
// stats are still computed from its rentals and listings.
func (s *profileService) GetProfile(ctx context.Context, address string) (*domain.UserProfile, *domain.ProfileStats, error) {
	address = security.NormalizeAddress(address)
	profile, err := s.profileRepo.GetByAddress(ctx, address)
	if errors.Is(err, repository.ErrNotFound) {
		profile = &domain.UserProfile{Address: address}
	} else if err != nil {
		return nil, nil, err
	}

	stats, err := s.profileRepo.GetStats(ctx, address)
	if err != nil {
		return nil, nil, err
	}
	return profile, stats, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	logger.EnterMethod("profileService.UpdateProfile", "address", profile.Address)

	profile.Address = security.NormalizeAddress(profile.Address)
	profile.Name = strings.TrimSpace(profile.Name)
	profile.Email = strings.TrimSpace(profile.Email)
	if profile.Address == "" {
		err := fmt.Errorf("%w: wallet address is required", utils.ErrInvalidArgument)
		logger.ExitMethodWithError("profileService.UpdateProfile", err)
		return nil, err
	}
	if profile.Email != "" {
		if _, err := mail.ParseAddress(profile.Email); err != nil {
			err = fmt.Errorf("%w: invalid email %q", utils.ErrInvalidArgument, profile.Email)
			logger.ExitMethodWithError("profileService.UpdateProfile", err)
			return nil, err
		}
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		logger.ExitMethodWithError("profileService.UpdateProfile", err)
		return nil, err
	}
	logger.ExitMethod("profileService.UpdateProfile", "address", profile.Address)
	return profile, nil
}
