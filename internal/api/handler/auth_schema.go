package handler

import "github.com/planvista/visionboard-api/internal/core/domain"

// --- Request / Response types ---

// loginRequest accepts both the JSON and the form encoding the login page
// posts. The login field is historically named "username" but matches
// username or email.
type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type registerRequest struct {
	Name     string `json:"name"     form:"name"`
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Username string `json:"username" form:"username" validate:"required,min=3"`
	Password string `json:"password" form:"password" validate:"required,min=8,max=72"`
}

// registerResponse is the structured envelope the registration form consumes.
// Failures are delivered with a 200 status and result=false; ErrorField names
// the offending input.
type registerResponse struct {
	Result       bool         `json:"result"`
	User         *domain.User `json:"user,omitempty"`
	ErrorMessage string       `json:"errorMessage,omitempty"`
	ErrorField   string       `json:"errorField,omitempty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8,max=72"`
}
