package model

// Address is a saved delivery address, keyed by an opaque server id.
type Address struct {
	ID        string  `json:"_id"`
	Label     string  `json:"label"`
	Line1     string  `json:"line1"`
	Line2     string  `json:"line2,omitempty"`
	City      string  `json:"city"`
	State     string  `json:"state,omitempty"`
	Pincode   string  `json:"pincode,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	IsDefault bool    `json:"isDefault"`
}

// User is the minimal profile attached to an authenticated session.
type User struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name,omitempty"`
	Addresses []Address `json:"addresses,omitempty"`
}
