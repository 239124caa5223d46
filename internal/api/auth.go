package api

import (
	"context"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/models"
)

type SignupRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token and the user record.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := c.post(ctx, "/api/auth/login", loginRequest{Email: email, Password: password}, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Signup creates an account and logs it in in one step.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := c.post(ctx, "/api/auth/signup", req, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Logout invalidates the current token server-side. Local session teardown
// happens regardless of the result.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/auth/logout", nil, nil)
}

// Me fetches the authenticated user.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
