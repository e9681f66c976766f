package model

// Variant is a purchasable variation of a product with its own price.
type Variant struct {
	ID    string  `json:"_id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Sponsor marks a product as shop-sponsored; sponsored products carry a
// percentage discount applied client-side to the chosen variant's price.
type Sponsor struct {
	ShopID          string  `json:"shopId"`
	ShopName        string  `json:"shopName"`
	DiscountPercent float64 `json:"discountPercent"`
	Area            string  `json:"area"`
}

// Product represents a catalogue entry.
type Product struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Description  string    `json:"description,omitempty"`
	Image        string    `json:"image,omitempty"`
	Price        float64   `json:"price"`
	SellingPrice float64   `json:"sellingPrice,omitempty"`
	Rating       float64   `json:"rating,omitempty"`
	IsVeg        bool      `json:"isVeg,omitempty"`
	Unit         string    `json:"unit,omitempty"`
	Variants     []Variant `json:"variants,omitempty"`
	Sponsor      *Sponsor  `json:"sponsor,omitempty"`
}
