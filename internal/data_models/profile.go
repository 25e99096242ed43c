package dto

// ProfileUpdateRequest carries the names verbatim so an empty value clears
// the stored one.
type ProfileUpdateRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}
