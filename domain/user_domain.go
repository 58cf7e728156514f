package domain

import (
	"fmt"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessRegister      = "registration successful, please check your email to verify your account"
	MessageSuccessLogin         = "login successful"
	MessageSuccessVerify        = "email verified successfully"
	MessageSuccessGetDetailUser = "user retrieved successfully"
	MessageSuccessUpdateUser    = "user updated successfully"

	MessageFailedRegister      = "failed to register"
	MessageFailedLogin         = "failed to login"
	MessageFailedVerify        = "failed to verify email"
	MessageFailedGetDetailUser = "failed to retrieve user"
	MessageFailedUpdateUser    = "failed to update user"

	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
	ErrEmailAlreadyExists  = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrUsernameTaken       = fmt.Errorf("%w: username already taken", ErrConflict)
	ErrCredentialsNotMatch = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	ErrAccountNotVerified  = fmt.Errorf("%w: email address is not verified", ErrForbidden)
	ErrInvalidVerifyToken  = fmt.Errorf("verification token %w", ErrNotFound)
)

type (
	RegisterRequest struct {
		Username  string `json:"username" validate:"required,min=3,max=150"`
		Email     string `json:"email" validate:"required,email,max=254"`
		Password  string `json:"password" validate:"required,min=8"`
		Password2 string `json:"password2" validate:"required,eqfield=Password"`
		FirstName string `json:"first_name" validate:"omitempty,max=150"`
		LastName  string `json:"last_name" validate:"omitempty,max=150"`
		Phone     string `json:"phone" validate:"omitempty,max=20"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
		User  *User  `json:"user"`
	}

	UpdateUserRequest struct {
		FirstName       *string               `json:"first_name" form:"first_name" validate:"omitempty,max=150"`
		LastName        *string               `json:"last_name" form:"last_name" validate:"omitempty,max=150"`
		Phone           *string               `json:"phone" form:"phone" validate:"omitempty,max=20"`
		Location        *string               `json:"location" form:"location" validate:"omitempty,max=200"`
		Occupation      *string               `json:"occupation" form:"occupation" validate:"omitempty,max=100"`
		FacebookAccount *string               `json:"facebook_account" form:"facebook_account" validate:"omitempty,max=200"`
		ProfilePicture  *multipart.FileHeader `json:"-" form:"profile_picture"`
	}

	User struct {
		ID              string    `json:"id"`
		Username        string    `json:"username"`
		Email           string    `json:"email"`
		FirstName       string    `json:"first_name"`
		LastName        string    `json:"last_name"`
		Phone           string    `json:"phone"`
		Location        string    `json:"location"`
		Occupation      string    `json:"occupation"`
		FacebookAccount string    `json:"facebook_account"`
		ProfilePicture  string    `json:"profile_picture,omitempty"`
		Role            string    `json:"role"`
		IsAdmin         bool      `json:"is_admin"`
		IsVerified      bool      `json:"is_verified"`
		CreatedAt       time.Time `json:"created_at"`
	}
)
