package model

// DefaultVariant is the sentinel variant name used when a product is added
// without choosing a variant. Two lines with the same product and variant
// are the same line.
const DefaultVariant = "default"

// CartLine represents one distinct product+variant combination in the cart.
type CartLine struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	VariantName string  `json:"variantName,omitempty"`
	UnitPrice   float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image,omitempty"`
}

// CartLineInput carries the caller-supplied fields for an add-to-cart call.
// Quantity is always 1 per call; repeated calls merge into the existing line.
type CartLineInput struct {
	ProductID   string
	Name        string
	VariantName string
	UnitPrice   float64
	Image       string
}

// LineID builds the identity key for a product+variant combination.
func LineID(productID, variantName string) string {
	if variantName == "" {
		variantName = DefaultVariant
	}
	return productID + "-" + variantName
}

// Subtotal returns the line's contribution to the cart total.
func (l CartLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// CopyLines returns a deep copy of a line slice. Order snapshots must not
// alias the live cart.
func CopyLines(lines []CartLine) []CartLine {
	if lines == nil {
		return nil
	}
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return out
}
