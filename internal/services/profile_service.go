package services

import (
	"context"

	"taskdesk.com/taskdesk/internal/forms"
	model "taskdesk.com/taskdesk/pkg/models"
)

type ProfileService struct {
	api      ProfileAPI
	notifier Notifier

	form    forms.ProfileForm
	profile model.Profile
}

func NewProfileService(api ProfileAPI, notifier Notifier) *ProfileService {
	return &ProfileService{api: api, notifier: notifier}
}

func (s *ProfileService) Form() *forms.ProfileForm {
	return &s.form
}

func (s *ProfileService) Profile() model.Profile {
	return s.profile
}

func (s *ProfileService) Load(ctx context.Context) error {
	profile, err := s.api.Profile(ctx)
	if err != nil {
		s.notifier.Failure("Failed to load profile", err)
		return err
	}

	s.profile = profile
	s.form.Load(profile)
	return nil
}

// Save sends the form and reloads it from the server's answer. Invalid
// input returns the field errors without calling the API.
func (s *ProfileService) Save(ctx context.Context) error {
	req, ok := s.form.Validate()
	if !ok {
		return s.form.Errors()
	}

	profile, err := s.api.UpdateProfile(ctx, *req)
	if err != nil {
		s.notifier.Failure("Failed to update profile", err)
		return err
	}

	s.profile = profile
	s.form.Load(profile)
	s.notifier.Success("Profile updated successfully!")
	return nil
}
