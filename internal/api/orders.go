package api

import (
	"context"
	"net/http"
	"time"

	"orderhai/internal/model"
)

// Order is the wire shape of a placed order.
type Order struct {
	ID            string              `json:"id,omitempty"`
	MongoID       string              `json:"_id,omitempty"`
	OrderID       string              `json:"orderId"`
	CreatedAt     time.Time           `json:"createdAt"`
	Items         []CartItem          `json:"items"`
	Total         float64             `json:"total"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod"`
	Address       string              `json:"address"`
	Phone         string              `json:"phone,omitempty"`
	Name          string              `json:"name,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	Status        model.OrderStatus   `json:"status"`
}

// Validate checks the order payload against the contract.
func (o *Order) Validate() error {
	if o.OrderID == "" {
		return &DecodeError{Field: "orderId", Reason: "missing"}
	}
	if !o.Status.Valid() {
		return &DecodeError{Field: "status", Reason: "unknown value " + string(o.Status)}
	}
	if !o.PaymentMethod.Valid() {
		return &DecodeError{Field: "paymentMethod", Reason: "unknown value " + string(o.PaymentMethod)}
	}
	return nil
}

// Model maps the wire order to its local snapshot form.
func (o *Order) Model() model.Order {
	id := o.ID
	if id == "" {
		id = o.MongoID
	}
	items := make([]model.CartLine, len(o.Items))
	for i, item := range o.Items {
		items[i] = item.Line()
	}
	return model.Order{
		ID:            id,
		OrderID:       o.OrderID,
		CreatedAt:     o.CreatedAt,
		Items:         items,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		Address:       o.Address,
		Phone:         o.Phone,
		Name:          o.Name,
		Notes:         o.Notes,
		Status:        o.Status,
	}
}

// PlaceOrderRequest carries the full order submission payload.
type PlaceOrderRequest struct {
	Items         []CartItem          `json:"items"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod"`
	Address       string              `json:"address"`
	Phone         string              `json:"phone"`
	Name          string              `json:"name,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	Location      *model.Location     `json:"location,omitempty"`
}

// CancelOrderResponse acknowledges a cancellation with the updated record.
type CancelOrderResponse struct {
	Message string `json:"message"`
	Order   Order  `json:"order"`
}

// Validate checks the cancellation payload against the contract.
func (r *CancelOrderResponse) Validate() error {
	return r.Order.Validate()
}

// PlaceOrder submits an order and returns the server-assigned record.
func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodPost, "/api/users/orders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListOrders retrieves the user's order history, most recent first.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/api/users/orders", nil, &out); err != nil {
		return nil, err
	}
	for i := range out {
		if err := out[i].Validate(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// CancelOrder requests cancellation of an order by its server id.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (*Order, error) {
	var out CancelOrderResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/orders/"+orderID+"/cancel", nil, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}
