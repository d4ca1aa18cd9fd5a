package api

import (
	"context"
	"strings"

	"github.com/abhisek/lernix/internal/auth"
)

// MinPasswordLength is the client-side minimum before a registration or
// password change is sent anywhere.
const MinPasswordLength = 8

// Session is the credential payload returned by login and signup.
type Session struct {
	Token string       `json:"token"`
	User  auth.Profile `json:"user"`
}

// Credentials are the login inputs.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterInput are the signup inputs.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// LogIn exchanges credentials for a session token and profile. Empty
// credentials are rejected locally with a ValidationError and never sent.
func (c *Client) LogIn(ctx context.Context, creds Credentials) (*Session, error) {
	if strings.TrimSpace(creds.Username) == "" {
		return nil, fieldError("username", "username is required")
	}
	if creds.Password == "" {
		return nil, fieldError("password", "password is required")
	}

	var session Session
	if err := c.post(ctx, "login/", false, creds, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Register creates an account and returns its first session. Input is
// validated locally first; the backend's field-level errors surface as a
// ValidationError when it rejects anyway (e.g. a taken username).
func (c *Client) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, fieldError("username", "username is required")
	}
	if !strings.Contains(in.Email, "@") {
		return nil, fieldError("email", "enter a valid email address")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, fieldError("password", "password must be at least 8 characters")
	}

	var session Session
	if err := c.post(ctx, "signup/", false, in, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// FetchProfile returns the authenticated user's current profile.
func (c *Client) FetchProfile(ctx context.Context) (*auth.Profile, error) {
	var p auth.Profile
	if err := c.get(ctx, "profile/", true, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ProfileUpdate carries the fields of a partial profile update. Nil
// fields are omitted and left untouched server-side.
type ProfileUpdate struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// UpdateProfile applies a partial update. The server merges and returns
// the authoritative profile; callers must apply that response, not their
// own optimistic copy.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*auth.Profile, error) {
	var p auth.Profile
	if err := c.patch(ctx, "profile/update/", true, update, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ChangePassword rotates the account password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	if len(next) < MinPasswordLength {
		return fieldError("password", "password must be at least 8 characters")
	}
	body := map[string]string{
		"current_password": current,
		"new_password":     next,
	}
	return c.post(ctx, "profile/change-password/", true, body, nil)
}
