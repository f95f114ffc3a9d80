package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/avoronin/devconnect-server/internal/logger"
	"github.com/avoronin/devconnect-server/internal/model"
)

// Profile manages developer profiles and account deletion.
type Profile struct {
	profileStore model.ProfileStore
	userStore    model.UserStore
	storage      model.Storage
	logger       *logger.Logger
}

func NewProfile(
	profileStore model.ProfileStore,
	userStore model.UserStore,
	storage model.Storage,
	logger *logger.Logger,
) *Profile {
	return &Profile{
		profileStore: profileStore,
		userStore:    userStore,
		storage:      storage,
		logger:       logger,
	}
}

// ProfileInput carries validated profile upsert fields. Skills is the
// raw comma-separated string the client submits.
type ProfileInput struct {
	Status         string
	Skills         string
	Company        string
	Website        string
	Location       string
	Bio            string
	GithubUsername string
	Youtube        string
	Facebook       string
	Twitter        string
	Linkedin       string
	Instagram      string
}

func (s *Profile) GetAll(ctx context.Context) ([]model.Profile, error) {
	profiles, err := s.profileStore.GetAll(ctx)
	if err != nil {
		s.logger.Error("Profile service: failed to list profiles",
			"error", err.Error())
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (s *Profile) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Profile{}, model.ErrNotFound
	}
	if err != nil {
		s.logger.Error("Profile service: failed to get profile",
			"user_id", userID,
			"error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// Upsert creates the caller's profile or replaces its editable fields.
// Experience and education entries survive an update untouched.
func (s *Profile) Upsert(ctx context.Context, userID uuid.UUID, input ProfileInput) (model.Profile, error) {
	s.logger.Debug("Profile service: upserting profile",
		"user_id", userID)

	profile := model.Profile{
		ID:         uuid.New(),
		UserID:     userID,
		Experience: []model.Experience{},
		Education:  []model.Education{},
	}

	existing, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		s.logger.Error("Profile service: failed to get profile",
			"user_id", userID,
			"error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	if err == nil {
		profile.ID = existing.ID
		profile.Experience = existing.Experience
		profile.Education = existing.Education
	}

	profile.Status = strings.TrimSpace(input.Status)
	profile.Skills = splitSkills(input.Skills)
	profile.Company = strings.TrimSpace(input.Company)
	profile.Website = strings.TrimSpace(input.Website)
	profile.Location = strings.TrimSpace(input.Location)
	profile.Bio = strings.TrimSpace(input.Bio)
	profile.GithubUsername = strings.TrimSpace(input.GithubUsername)
	profile.Social = model.SocialLinks{
		Youtube:   strings.TrimSpace(input.Youtube),
		Facebook:  strings.TrimSpace(input.Facebook),
		Twitter:   strings.TrimSpace(input.Twitter),
		Linkedin:  strings.TrimSpace(input.Linkedin),
		Instagram: strings.TrimSpace(input.Instagram),
	}

	saved, err := s.profileStore.Upsert(ctx, profile)
	if err != nil {
		s.logger.Error("Profile service: failed to upsert profile",
			"user_id", userID,
			"error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to upsert profile: %w", err)
	}

	s.logger.Info("Profile service: profile saved",
		"user_id", userID)

	return saved, nil
}

// AddExperience prepends a work history entry to the caller's profile.
func (s *Profile) AddExperience(ctx context.Context, userID uuid.UUID, exp model.Experience) (model.Profile, error) {
	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}

	exp.ID = uuid.New()
	profile.Experience = append([]model.Experience{exp}, profile.Experience...)

	return s.save(ctx, profile)
}

// RemoveExperience deletes a work history entry by its id.
func (s *Profile) RemoveExperience(ctx context.Context, userID, expID uuid.UUID) (model.Profile, error) {
	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}

	idx := -1
	for i, exp := range profile.Experience {
		if exp.ID == expID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.Profile{}, model.ErrNotFound
	}

	profile.Experience = append(profile.Experience[:idx], profile.Experience[idx+1:]...)

	return s.save(ctx, profile)
}

// AddEducation prepends an education entry to the caller's profile.
func (s *Profile) AddEducation(ctx context.Context, userID uuid.UUID, edu model.Education) (model.Profile, error) {
	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}

	edu.ID = uuid.New()
	profile.Education = append([]model.Education{edu}, profile.Education...)

	return s.save(ctx, profile)
}

// RemoveEducation deletes an education entry by its id.
func (s *Profile) RemoveEducation(ctx context.Context, userID, eduID uuid.UUID) (model.Profile, error) {
	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}

	idx := -1
	for i, edu := range profile.Education {
		if edu.ID == eduID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.Profile{}, model.ErrNotFound
	}

	profile.Education = append(profile.Education[:idx], profile.Education[idx+1:]...)

	return s.save(ctx, profile)
}

// DeleteAccount removes the caller's profile, user record and stored
// avatar. Posts and likes go with the user via cascading deletes.
func (s *Profile) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	s.logger.Debug("Profile service: deleting account",
		"user_id", userID)

	if err := s.storage.Delete(ctx, avatarKey(userID)); err != nil {
		// Best effort: most accounts never uploaded an avatar.
		s.logger.Debug("Profile service: no stored avatar to delete",
			"user_id", userID,
			"error", err.Error())
	}

	if err := s.profileStore.Delete(ctx, userID); err != nil {
		s.logger.Error("Profile service: failed to delete profile",
			"user_id", userID,
			"error", err.Error())
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	if err := s.userStore.Delete(ctx, userID); err != nil {
		s.logger.Error("Profile service: failed to delete user",
			"user_id", userID,
			"error", err.Error())
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("Profile service: account deleted",
		"user_id", userID)

	return nil
}

func (s *Profile) save(ctx context.Context, profile model.Profile) (model.Profile, error) {
	saved, err := s.profileStore.Upsert(ctx, profile)
	if err != nil {
		s.logger.Error("Profile service: failed to save profile",
			"user_id", profile.UserID,
			"error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to save profile: %w", err)
	}
	return saved, nil
}

func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if skill := strings.TrimSpace(part); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

func avatarKey(userID uuid.UUID) string {
	return "avatars/" + userID.String()
}
