package forms

import (
	dto "taskdesk.com/taskdesk/internal/data_models"
	"taskdesk.com/taskdesk/internal/validators"
	model "taskdesk.com/taskdesk/pkg/models"
)

// ProfileForm edits the mutable part of a profile. The username is shown
// but never sent.
type ProfileForm struct {
	errorBag

	Username  string
	FirstName string
	LastName  string
	Email     string
}

func (f *ProfileForm) Load(p model.Profile) {
	f.Username = p.Username
	f.FirstName = p.FirstName
	f.LastName = p.LastName
	f.Email = p.Email
}

func (f *ProfileForm) Reset() {
	f.Username = ""
	f.FirstName = ""
	f.LastName = ""
	f.Email = ""
	f.clearErrors()
}

func (f *ProfileForm) Set(field, value string) error {
	switch field {
	case "firstName":
		f.FirstName = value
	case "lastName":
		f.LastName = value
	case "email":
		f.Email = value
	default:
		return ErrUnknownField
	}
	f.ClearFieldError(field)
	return nil
}

func (f *ProfileForm) Validate() (*dto.ProfileUpdateRequest, bool) {
	errs := validators.ValidateProfile(validators.ProfileInput{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
	})
	if !errs.Valid() {
		f.setErrors(errs)
		return nil, false
	}

	f.clearErrors()
	return &dto.ProfileUpdateRequest{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
	}, true
}
