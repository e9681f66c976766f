package api

import (
	"context"
	"net/http"

	"orderhai/internal/model"
)

// ListFavorites retrieves the user's favorited products in full.
func (c *Client) ListFavorites(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	if err := c.do(ctx, http.MethodGet, "/api/users/favorites", nil, &out); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].ID == "" {
			return nil, &DecodeError{Field: "_id", Reason: "missing"}
		}
	}
	return out, nil
}

// AddFavorite adds a product to the user's favorites.
func (c *Client) AddFavorite(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodPost, "/api/users/favorites/"+productID, nil, nil)
}

// RemoveFavorite removes a product from the user's favorites.
func (c *Client) RemoveFavorite(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/favorites/"+productID, nil, nil)
}
