package forms

import (
	dto "taskdesk.com/taskdesk/internal/data_models"
	"taskdesk.com/taskdesk/internal/validators"
)

type LoginForm struct {
	errorBag

	Username string
	Password string
}

func (f *LoginForm) Validate() (*dto.LoginRequest, bool) {
	errs := validators.ValidateLogin(validators.LoginInput{
		Username: f.Username,
		Password: f.Password,
	})
	if !errs.Valid() {
		f.setErrors(errs)
		return nil, false
	}

	f.clearErrors()
	return &dto.LoginRequest{Username: f.Username, Password: f.Password}, true
}

type RegisterForm struct {
	errorBag

	Username string
	Email    string
	Password string
}

func (f *RegisterForm) Validate() (*dto.RegisterRequest, bool) {
	errs := validators.ValidateRegister(validators.RegisterInput{
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password,
	})
	if !errs.Valid() {
		f.setErrors(errs)
		return nil, false
	}

	f.clearErrors()
	return &dto.RegisterRequest{
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password,
	}, true
}
