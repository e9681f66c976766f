package model

import "time"

// PaymentMethod identifies how an order is paid.
type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "COD"
	PaymentOnline PaymentMethod = "ONLINE"
)

// Valid reports whether the payment method is one of the closed set.
func (p PaymentMethod) Valid() bool {
	return p == PaymentCOD || p == PaymentOnline
}

// OrderStatus is the server-assigned lifecycle state of an order.
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// Valid reports whether the status is one of the closed set.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Location is a latitude/longitude pair attached to an order.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Order is an immutable snapshot created at successful placement time.
// Items is a deep copy of the cart at placement and never aliases live
// cart state. Records are replaced wholesale on status changes, never
// patched in place.
type Order struct {
	ID            string        `json:"id,omitempty"`
	OrderID       string        `json:"orderId"`
	CreatedAt     time.Time     `json:"createdAt"`
	Items         []CartLine    `json:"items"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Address       string        `json:"address"`
	Phone         string        `json:"phone,omitempty"`
	Name          string        `json:"name,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	Status        OrderStatus   `json:"status"`
}
