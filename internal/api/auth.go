package api

import (
	"context"
	"net/http"

	"orderhai/internal/model"
)

// OTPResponse acknowledges an OTP send.
type OTPResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// LoginResponse is a verified OTP exchange: a bearer token plus the profile.
type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Validate checks the login payload against the contract.
func (r *LoginResponse) Validate() error {
	if r.Token == "" {
		return &DecodeError{Field: "token", Reason: "missing"}
	}
	if r.User.ID == "" {
		return &DecodeError{Field: "user.id", Reason: "missing"}
	}
	if r.User.Phone == "" {
		return &DecodeError{Field: "user.phone", Reason: "missing"}
	}
	return nil
}

// SendLoginOTP requests an OTP for the given phone number.
func (c *Client) SendLoginOTP(ctx context.Context, phone string) (*OTPResponse, error) {
	body := map[string]string{"phone": phone}
	var out OTPResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login-otp", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyLoginOTP exchanges a phone+OTP pair for a bearer token and profile.
func (c *Client) VerifyLoginOTP(ctx context.Context, phone, otp string) (*LoginResponse, error) {
	body := map[string]string{"phone": phone, "otp": otp}
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/verify-otp", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
