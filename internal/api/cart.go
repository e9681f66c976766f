package api

import (
	"context"
	"fmt"
	"net/http"

	"orderhai/internal/model"
)

// CartItem is the wire shape of one remote cart entry.
type CartItem struct {
	Product     string  `json:"product"`
	Name        string  `json:"name"`
	VariantName string  `json:"variantName,omitempty"`
	Price       float64 `json:"price"`
	Qty         int     `json:"qty"`
	Image       string  `json:"image,omitempty"`
}

// Line maps a wire cart entry to a local cart line, applying the
// product+variant identity key rule.
func (i CartItem) Line() model.CartLine {
	return model.CartLine{
		ID:          model.LineID(i.Product, i.VariantName),
		ProductID:   i.Product,
		Name:        i.Name,
		VariantName: i.VariantName,
		UnitPrice:   i.Price,
		Quantity:    i.Qty,
		Image:       i.Image,
	}
}

// CartItemFromLine maps a local cart line back to the wire shape.
func CartItemFromLine(l model.CartLine) CartItem {
	return CartItem{
		Product:     l.ProductID,
		Name:        l.Name,
		VariantName: l.VariantName,
		Price:       l.UnitPrice,
		Qty:         l.Quantity,
		Image:       l.Image,
	}
}

// CartResponse is the authoritative remote cart.
type CartResponse struct {
	Items []CartItem `json:"items"`
}

// Validate checks the cart payload against the contract.
func (r *CartResponse) Validate() error {
	for i, item := range r.Items {
		if item.Product == "" {
			return &DecodeError{Field: fmt.Sprintf("items[%d].product", i), Reason: "missing"}
		}
		if item.Qty < 1 {
			return &DecodeError{Field: fmt.Sprintf("items[%d].qty", i), Reason: "below 1"}
		}
		if item.Price < 0 {
			return &DecodeError{Field: fmt.Sprintf("items[%d].price", i), Reason: "negative"}
		}
	}
	return nil
}

// AddCartItemRequest adds units of one product+variant to the remote cart.
type AddCartItemRequest struct {
	ProductID   string `json:"productId"`
	Qty         int    `json:"qty"`
	VariantName string `json:"variantName,omitempty"`
}

// UpdateCartItemRequest sets the quantity of one product+variant.
type UpdateCartItemRequest struct {
	Qty         int    `json:"qty"`
	VariantName string `json:"variantName,omitempty"`
}

// RemoveCartItemRequest removes one product+variant entirely.
type RemoveCartItemRequest struct {
	VariantName string `json:"variantName,omitempty"`
}

// GetCart retrieves the full authoritative remote cart.
func (c *Client) GetCart(ctx context.Context) (*CartResponse, error) {
	var out CartResponse
	if err := c.do(ctx, http.MethodGet, "/api/users/cart", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddCartItem adds units of a product to the remote cart.
func (c *Client) AddCartItem(ctx context.Context, req AddCartItemRequest) error {
	return c.do(ctx, http.MethodPost, "/api/users/cart", req, nil)
}

// UpdateCartItem sets the remote quantity for one product+variant.
func (c *Client) UpdateCartItem(ctx context.Context, productID string, req UpdateCartItemRequest) error {
	return c.do(ctx, http.MethodPatch, "/api/users/cart/"+productID, req, nil)
}

// RemoveCartItem removes one product+variant from the remote cart.
func (c *Client) RemoveCartItem(ctx context.Context, productID string, req RemoveCartItemRequest) error {
	return c.do(ctx, http.MethodDelete, "/api/users/cart/"+productID, req, nil)
}

// ClearCart empties the remote cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/users/cart", nil, nil)
}
