// Package catalog reads the product catalogue and computes display prices,
// including the client-side sponsor discount.
package catalog

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"orderhai/internal/model"
)

// Remote is the subset of the API client the catalogue reads from.
type Remote interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
}

// Service exposes catalogue reads.
type Service struct {
	remote Remote
	logger zerolog.Logger
}

// NewService creates a catalogue service.
func NewService(remote Remote, logger zerolog.Logger) *Service {
	return &Service{
		remote: remote,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// List retrieves all products.
func (s *Service) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.remote.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	s.logger.Debug().Int("count", len(products)).Msg("products fetched")
	return products, nil
}

// Get retrieves a single product by id.
func (s *Service) Get(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.remote.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// EffectivePrice returns the discount-adjusted price for the chosen
// variant. The base is the named variant's price when one matches, else
// the selling price when set, else the list price. A sponsor's percentage
// discount is applied on top, rounded to the nearest integer currency unit.
func EffectivePrice(p *model.Product, variantName string) float64 {
	price := p.Price
	if p.SellingPrice > 0 {
		price = p.SellingPrice
	}
	if variantName != "" {
		for _, v := range p.Variants {
			if v.Name == variantName {
				price = v.Price
				break
			}
		}
	}

	if p.Sponsor != nil && p.Sponsor.DiscountPercent > 0 {
		price = math.Round(price * (100 - p.Sponsor.DiscountPercent) / 100)
	}

	return price
}

// Categories returns the unique product categories in first-seen order.
func Categories(products []model.Product) []string {
	seen := make(map[string]struct{}, len(products))
	var out []string
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
