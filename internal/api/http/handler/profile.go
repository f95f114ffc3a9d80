package handler

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/avoronin/devconnect-server/internal/logger"
	"github.com/avoronin/devconnect-server/internal/model"
	"github.com/avoronin/devconnect-server/internal/service"
)

// ProfileService defines profile management operations.
type ProfileService interface {
	GetAll(ctx context.Context) ([]model.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error)
	Upsert(ctx context.Context, userID uuid.UUID, input service.ProfileInput) (model.Profile, error)
	AddExperience(ctx context.Context, userID uuid.UUID, exp model.Experience) (model.Profile, error)
	RemoveExperience(ctx context.Context, userID, expID uuid.UUID) (model.Profile, error)
	AddEducation(ctx context.Context, userID uuid.UUID, edu model.Education) (model.Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID uuid.UUID) (model.Profile, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// Profile handles HTTP endpoints for developer profiles.
type Profile struct {
	profileService ProfileService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewProfile creates a new Profile handler.
func NewProfile(profileService ProfileService, contextManager model.ContextManager, logger *logger.Logger) *Profile {
	return &Profile{
		profileService: profileService,
		contextManager: contextManager,
		logger:         logger,
	}
}

const noProfileMsg = "There is no profile for this user"

// ProfilePayload is the profile upsert request body.
type ProfilePayload struct {
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"github_username"`
	Youtube        string `json:"youtube"`
	Facebook       string `json:"facebook"`
	Twitter        string `json:"twitter"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// Validate checks the payload.
func (p ProfilePayload) Validate() error {
	return collectFieldErrors([]fieldRule{
		{"status", validation.Validate(p.Status,
			validation.Required.Error("Status is required"))},
		{"skills", validation.Validate(p.Skills,
			validation.Required.Error("Skills are required"))},
	})
}

// ExperiencePayload is the add-experience request body.
type ExperiencePayload struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

// Validate checks the payload.
func (p ExperiencePayload) Validate() error {
	return collectFieldErrors([]fieldRule{
		{"title", validation.Validate(p.Title,
			validation.Required.Error("Title is required"))},
		{"company", validation.Validate(p.Company,
			validation.Required.Error("Company is required"))},
		{"from", validation.Validate(p.From,
			validation.Required.Error("From date is required"))},
	})
}

// EducationPayload is the add-education request body.
type EducationPayload struct {
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

// Validate checks the payload.
func (p EducationPayload) Validate() error {
	return collectFieldErrors([]fieldRule{
		{"school", validation.Validate(p.School,
			validation.Required.Error("School is required"))},
		{"degree", validation.Validate(p.Degree,
			validation.Required.Error("Degree is required"))},
		{"field_of_study", validation.Validate(p.FieldOfStudy,
			validation.Required.Error("Field of study is required"))},
		{"from", validation.Validate(p.From,
			validation.Required.Error("From date is required"))},
	})
}

// GetAll responds with every profile, public.
func (h *Profile) GetAll(c *fiber.Ctx) error {
	profiles, err := h.profileService.GetAll(c.UserContext())
	if err != nil {
		h.logger.Error("Profile handler: failed to list profiles",
			"error", err.Error())
		return handleError(c, err)
	}

	return c.JSON(profiles)
}

// Me responds with the caller's own profile.
func (h *Profile) Me(c *fiber.Ctx) error {
	userID, ok := h.contextManager.UserID(c.UserContext())
	if !ok {
		return unauthenticated(c, "Token is not valid")
	}

	profile, err := h.profileService.GetByUserID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return notFound(c, noProfileMsg)
		}
		return handleError(c, err)
	}

	return c.JSON(profile)
}

// GetByUserID responds with a user's profile, public. A malformed user
// id reads as an absent profile, like the source treated bad object
// ids.
func (h *Profile) GetByUserID(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return notFound(c, noProfileMsg)
	}

	profile, err := h.profileService.GetByUserID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return notFound(c, noProfileMsg)
		}
		return handleError(c, err)
	}

	return c.JSON(profile)
}

// Upsert creates or updates the caller's profile.
func (h *Profile) Upsert(c *fiber.Ctx) error {
	userID, ok := h.contextManager.UserID(c.UserContext())
	if !ok {
		return unauthenticated(c, "Token is not valid")
	}

	payload := new(ProfilePayload)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return handleError(c, err)
	}

	profile, err := h.profileService.Upsert(c.UserContext(), userID, service.ProfileInput{
		Status:         payload.Status,
		Skills:         payload.Skills,
		Company:        payload.Company,
		Website:        payload.Website,
		Location:       payload.Location,
		Bio:            payload.Bio,
		GithubUsername: payload.GithubUsername,
		Youtube:        payload.Youtube,
		Facebook:       payload.Facebook,
		Twitter:        payload.Twitter,
		Linkedin:       payload.Linkedin,
		Instagram:      payload.Instagram,
	})
	if err != nil {
		h.logger.Error("Profile handler: failed to upsert profile",
			"user_id", userID,
			"error", err.Error())
		return handleError(c, err)
	}

	return c.JSON(profile)
}

// Delete removes the caller's profile and account.
func (h *Profile) Delete(c *fiber.Ctx) error {
	userID, ok := h.contextManager.UserID(c.UserContext())
	if !ok {
		return unauthenticated(c, "Token is not valid")
	}

	if err := h.profileService.DeleteAccount(c.UserContext(), userID); err != nil {
		h.logger.Error("Profile handler: failed to delete account",
			"user_id", userID,
			"error", err.Error())
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{"msg": "User has been successfully deleted"})
}

// AddExperience prepends a work history entry.
func (h *Profile) AddExperience(c *fiber.Ctx) error {
	userID, ok := h.contextManager.UserID(c.UserContext())
	if !ok {
		return unauthenticated(c, "Token is not valid")
	}

	payload := new(ExperiencePayload)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return handleError(c, err)
	}

	profile, err := h.profileService.AddExperience(c.UserContext(), userID, model.Experience{
		Title:       payload.Title,
		Company:     payload.Company,
		Location:    payload.Location,
		From:        payload.From,
		To:          payload.To,
		Current:     payload.Current,
		Description: payload.Description,
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return notFound(c, noProfileMsg)
		}
		return handleError(c, err)
	}

	return c.JSON(profile)
}

// RemoveExperience deletes a work history entry by id.
func (h *Profile) RemoveExperience(c *fiber.Ctx) error {
	userID, ok := h.contextManager.UserID(c.UserContext())
	if !ok {
		return unauthenticated(c, "Token is not valid")
	}

	expID, err := uuid.Parse(c.Params("exp_id"))
	if err != nil {
		return notFound(c, "Experience not found")
	}

	profile, err := h.profileService.RemoveExperience(c.UserContext(), userID, expID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return notFound(c, "Experience not found")
		}
		return handleError(c, err)
	}

	return c.JSON(profile)
}

// AddEducation prepends an education entry.
func (h *Profile) AddEducation(c *fiber.Ctx) error {
	userID, ok := h.contextManager.UserID(c.UserContext())
	if !ok {
		return unauthenticated(c, "Token is not valid")
	}

	payload := new(EducationPayload)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return handleError(c, err)
	}

	profile, err := h.profileService.AddEducation(c.UserContext(), userID, model.Education{
		School:       payload.School,
		Degree:       payload.Degree,
		FieldOfStudy: payload.FieldOfStudy,
		From:         payload.From,
		To:           payload.To,
		Current:      payload.Current,
		Description:  payload.Description,
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return notFound(c, noProfileMsg)
		}
		return handleError(c, err)
	}

	return c.JSON(profile)
}

// RemoveEducation deletes an education entry by id.
func (h *Profile) RemoveEducation(c *fiber.Ctx) error {
	userID, ok := h.contextManager.UserID(c.UserContext())
	if !ok {
		return unauthenticated(c, "Token is not valid")
	}

	eduID, err := uuid.Parse(c.Params("edu_id"))
	if err != nil {
		return notFound(c, "Education not found")
	}

	profile, err := h.profileService.RemoveEducation(c.UserContext(), userID, eduID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return notFound(c, "Education not found")
		}
		return handleError(c, err)
	}

	return c.JSON(profile)
}
