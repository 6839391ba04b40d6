package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mindtrack/mindtrack/internal/model"
	"github.com/mindtrack/mindtrack/internal/repository"
	"github.com/mindtrack/mindtrack/internal/validation"
)

var ErrInvalidProfile = errors.New("invalid profile")

// maxConcerns caps the list kept on a profile, including merged chat topics.
const maxConcerns = 20

type ProfileInput struct {
	DisplayName        string   `json:"display_name"`
	Timezone           string   `json:"timezone"`
	CommunicationStyle string   `json:"communication_style"`
	Concerns           []string `json:"concerns"`
	NotifyEmail        string   `json:"notify_email"`
}

type ProfileService struct {
	profileRepo repository.ProfileRepository
	defaultLoc  *time.Location
}

func NewProfileService(profileRepo repository.ProfileRepository, defaultLoc *time.Location) *ProfileService {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &ProfileService{
		profileRepo: profileRepo,
		defaultLoc:  defaultLoc,
	}
}

// Profile returns the stored profile, or an empty one for users who never
// saved preferences.
func (s *ProfileService) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.profileRepo.ByUserID(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return &model.Profile{UserID: userID, Concerns: model.StringList{}}, nil
	}
	return profile, err
}

func (s *ProfileService) Update(ctx context.Context, userID string, in ProfileInput) (*model.Profile, error) {
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.Timezone = strings.TrimSpace(in.Timezone)
	in.CommunicationStyle = strings.ToLower(strings.TrimSpace(in.CommunicationStyle))
	in.NotifyEmail = strings.TrimSpace(in.NotifyEmail)
	concerns := normalizeConcerns(in.Concerns)

	if err := validation.ValidateName(in.DisplayName); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if err := validation.ValidateTimezone(in.Timezone); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if err := validation.ValidateStyle(in.CommunicationStyle); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if err := validation.ValidateConcerns(concerns); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if in.NotifyEmail != "" {
		if err := validation.ValidateEmail(in.NotifyEmail); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
		}
	}

	profile := &model.Profile{
		UserID:             userID,
		DisplayName:        in.DisplayName,
		Timezone:           in.Timezone,
		CommunicationStyle: in.CommunicationStyle,
		Concerns:           concerns,
		NotifyEmail:        in.NotifyEmail,
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

// MergeConcerns appends topics the profile does not list yet. Once the list
// is full, new topics are dropped.
func (s *ProfileService) MergeConcerns(ctx context.Context, userID string, topics []string) error {
	if len(topics) == 0 {
		return nil
	}

	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}

	merged := append(model.StringList{}, profile.Concerns...)
	for _, t := range topics {
		if len(merged) >= maxConcerns {
			break
		}
		if !merged.Contains(t) {
			merged = append(merged, t)
		}
	}
	if len(merged) == len(profile.Concerns) {
		return nil
	}

	if profile.ID == "" {
		profile.Concerns = merged
		return s.profileRepo.Upsert(ctx, profile)
	}
	return s.profileRepo.UpdateConcerns(ctx, userID, merged)
}

// Location resolves the zone that defines the user's calendar days.
func (s *ProfileService) Location(ctx context.Context, userID string) (*time.Location, error) {
	profile, err := s.profileRepo.ByUserID(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return s.defaultLoc, nil
	}
	if err != nil {
		return nil, err
	}
	if profile.Timezone == "" {
		return s.defaultLoc, nil
	}

	loc, err := time.LoadLocation(profile.Timezone)
	if err != nil {
		slog.Warn("stored timezone is invalid, using default", "user_id", userID, "timezone", profile.Timezone, "error", err)
		return s.defaultLoc, nil
	}
	return loc, nil
}

func normalizeConcerns(in []string) model.StringList {
	out := model.StringList{}
	for _, c := range in {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || out.Contains(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}
