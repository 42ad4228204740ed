package services

// UpdateProfileRequest is the body of a profile update.
type UpdateProfileRequest struct {
	ID       string `json:"_id" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,loose_email"`
}

// UpdatePointsRequest is the body of a points update. A zero Points value
// counts as missing.
type UpdatePointsRequest struct {
	ID     string  `json:"_id" validate:"required"`
	Points float64 `json:"points" validate:"required"`
}

// DeleteAccountRequest carries no validation tags; an empty id is reported
// as an unknown user and an empty password as a wrong one.
type DeleteAccountRequest struct {
	ID       string `json:"_id"`
	Password string `json:"password"`
}

// UpdatePasswordRequest is checked only once the current password matches;
// an empty NewPassword is then rejected.
type UpdatePasswordRequest struct {
	ID          string `json:"_id"`
	Password    string `json:"password"`
	NewPassword string `json:"new_password"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,loose_email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
