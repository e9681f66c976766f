package api

import (
	"context"
	"net/http"

	"orderhai/internal/model"
)

// MeResponse is the authenticated user's profile with embedded addresses.
type MeResponse struct {
	model.User
}

// Validate checks the profile payload against the contract.
func (r *MeResponse) Validate() error {
	if r.ID == "" {
		return &DecodeError{Field: "id", Reason: "missing"}
	}
	if r.Phone == "" {
		return &DecodeError{Field: "phone", Reason: "missing"}
	}
	return nil
}

// UpdateMeRequest carries the mutable profile fields.
type UpdateMeRequest struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// UpdateMeResponse acknowledges a profile update.
type UpdateMeResponse struct {
	Message string     `json:"message"`
	User    model.User `json:"user"`
}

// AddressRequest carries the fields for creating or updating an address.
type AddressRequest struct {
	Label     string  `json:"label,omitempty"`
	Line1     string  `json:"line1,omitempty"`
	Line2     string  `json:"line2,omitempty"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Pincode   string  `json:"pincode,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	IsDefault bool    `json:"isDefault,omitempty"`
}

// AddressResponse acknowledges an address mutation.
type AddressResponse struct {
	Message string        `json:"message"`
	Address model.Address `json:"address"`
}

// GetMe retrieves the authenticated user's profile.
func (c *Client) GetMe(ctx context.Context) (*model.User, error) {
	var out MeResponse
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// UpdateMe updates the authenticated user's profile.
func (c *Client) UpdateMe(ctx context.Context, req UpdateMeRequest) (*model.User, error) {
	var out UpdateMeResponse
	if err := c.do(ctx, http.MethodPut, "/api/users/me", req, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// AddAddress creates a new saved address.
func (c *Client) AddAddress(ctx context.Context, req AddressRequest) (*model.Address, error) {
	var out AddressResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/addresses", req, &out); err != nil {
		return nil, err
	}
	return &out.Address, nil
}

// UpdateAddress updates a saved address by its opaque id.
func (c *Client) UpdateAddress(ctx context.Context, addressID string, req AddressRequest) (*model.Address, error) {
	var out AddressResponse
	if err := c.do(ctx, http.MethodPut, "/api/users/addresses/"+addressID, req, &out); err != nil {
		return nil, err
	}
	return &out.Address, nil
}

// DeleteAddress removes a saved address by its opaque id.
func (c *Client) DeleteAddress(ctx context.Context, addressID string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/addresses/"+addressID, nil, nil)
}
