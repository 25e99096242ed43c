package services

import (
	"context"

	"taskdesk.com/taskdesk/internal/forms"
)

type AuthService struct {
	api      AuthAPI
	session  TokenStore
	notifier Notifier
}

func NewAuthService(api AuthAPI, session TokenStore, notifier Notifier) *AuthService {
	return &AuthService{api: api, session: session, notifier: notifier}
}

// Login validates the form, signs in and stores the token. Invalid input
// returns the field errors without calling the API.
func (s *AuthService) Login(ctx context.Context, form *forms.LoginForm) error {
	req, ok := form.Validate()
	if !ok {
		return form.Errors()
	}

	token, err := s.api.Login(ctx, *req)
	if err != nil {
		s.notifier.Failure("Invalid credentials", err)
		return err
	}

	if err := s.session.SetToken(ctx, token); err != nil {
		s.notifier.Failure("Failed to save session", err)
		return err
	}

	s.notifier.Success("Logged in as " + req.Username)
	return nil
}

func (s *AuthService) Register(ctx context.Context, form *forms.RegisterForm) error {
	req, ok := form.Validate()
	if !ok {
		return form.Errors()
	}

	token, err := s.api.Register(ctx, *req)
	if err != nil {
		s.notifier.Failure("Registration failed", err)
		return err
	}

	if err := s.session.SetToken(ctx, token); err != nil {
		s.notifier.Failure("Failed to save session", err)
		return err
	}

	s.notifier.Success("Registered as " + req.Username)
	return nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.session.Logout(ctx); err != nil {
		s.notifier.Failure("Failed to clear session", err)
		return err
	}

	s.notifier.Success("Logged out")
	return nil
}
