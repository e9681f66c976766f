package model

// Standard error codes for client-side guard failures.
const (
	ErrCodeEmptyCart        = "EMPTY_CART"
	ErrCodeNotAuthenticated = "NOT_AUTHENTICATED"
	ErrCodeInvalidPayment   = "INVALID_PAYMENT_METHOD"
)

// DomainError is a guard failure raised before any remote call is made.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptyCart        = NewDomainError(ErrCodeEmptyCart, "Cannot place an order with an empty cart")
	ErrNotAuthenticated = NewDomainError(ErrCodeNotAuthenticated, "No authenticated session")
	ErrInvalidPayment   = NewDomainError(ErrCodeInvalidPayment, "Payment method must be COD or ONLINE")
)
