// Package address manages the user's saved delivery addresses.
package address

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"orderhai/internal/api"
	"orderhai/internal/model"
)

// Remote is the subset of the API client the address book writes through.
type Remote interface {
	AddAddress(ctx context.Context, req api.AddressRequest) (*model.Address, error)
	UpdateAddress(ctx context.Context, addressID string, req api.AddressRequest) (*model.Address, error)
	DeleteAddress(ctx context.Context, addressID string) error
}

// Book exposes address mutations. The address list itself arrives embedded
// in the user profile.
type Book struct {
	remote Remote
	logger zerolog.Logger
}

// NewBook creates an address book.
func NewBook(remote Remote, logger zerolog.Logger) *Book {
	return &Book{
		remote: remote,
		logger: logger.With().Str("component", "address").Logger(),
	}
}

// Add creates a new saved address.
func (b *Book) Add(ctx context.Context, req api.AddressRequest) (*model.Address, error) {
	addr, err := b.remote.AddAddress(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to add address: %w", err)
	}
	b.logger.Info().Str("address_id", addr.ID).Msg("address added")
	return addr, nil
}

// Update modifies a saved address by its opaque id.
func (b *Book) Update(ctx context.Context, addressID string, req api.AddressRequest) (*model.Address, error) {
	addr, err := b.remote.UpdateAddress(ctx, addressID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return addr, nil
}

// Delete removes a saved address by its opaque id.
func (b *Book) Delete(ctx context.Context, addressID string) error {
	if err := b.remote.DeleteAddress(ctx, addressID); err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	b.logger.Info().Str("address_id", addressID).Msg("address deleted")
	return nil
}

// Default returns the default address, falling back to the first one, or
// nil when the list is empty.
func Default(addresses []model.Address) *model.Address {
	for i := range addresses {
		if addresses[i].IsDefault {
			return &addresses[i]
		}
	}
	if len(addresses) > 0 {
		return &addresses[0]
	}
	return nil
}
