package api

import (
	"context"
	"fmt"
	"net/http"

	"orderhai/internal/model"
)

// validateProduct checks a catalogue entry against the contract.
func validateProduct(p *model.Product) error {
	if p.ID == "" {
		return &DecodeError{Field: "_id", Reason: "missing"}
	}
	if p.Name == "" {
		return &DecodeError{Field: "name", Reason: "missing"}
	}
	if p.Price < 0 {
		return &DecodeError{Field: "price", Reason: "negative"}
	}
	for i, v := range p.Variants {
		if v.Name == "" {
			return &DecodeError{Field: fmt.Sprintf("variants[%d].name", i), Reason: "missing"}
		}
		if v.Price < 0 {
			return &DecodeError{Field: fmt.Sprintf("variants[%d].price", i), Reason: "negative"}
		}
	}
	return nil
}

// ListProducts retrieves the full product catalogue.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &out); err != nil {
		return nil, err
	}
	for i := range out {
		if err := validateProduct(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// GetProduct retrieves a single product by id.
func (c *Client) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	var out model.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+productID, nil, &out); err != nil {
		return nil, err
	}
	if err := validateProduct(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
