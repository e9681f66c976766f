// Package cart maintains the local, UI-visible cart and keeps it
// approximately consistent with the remote authoritative cart. Mutations
// are applied locally first, then mirrored best-effort; remote failures
// never disturb the already-applied local state. Reconciliation replaces
// local state wholesale with the remote snapshot and is the only point
// where the two are guaranteed to match.
package cart

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"orderhai/internal/api"
	"orderhai/internal/model"
)

// Remote is the subset of the API client the cart mirrors against.
type Remote interface {
	GetCart(ctx context.Context) (*api.CartResponse, error)
	AddCartItem(ctx context.Context, req api.AddCartItemRequest) error
	UpdateCartItem(ctx context.Context, productID string, req api.UpdateCartItemRequest) error
	RemoveCartItem(ctx context.Context, productID string, req api.RemoveCartItemRequest) error
	ClearCart(ctx context.Context) error
}

// SessionSource reports whether an authenticated session is active.
type SessionSource interface {
	Authenticated() bool
}

// Cart is the cart synchronizer. Construct one per session scope. The
// mutex reproduces the single-writer discipline the mutation contract
// assumes; remote calls happen outside it.
type Cart struct {
	mu      sync.Mutex
	lines   []model.CartLine
	remote  Remote
	session SessionSource
	logger  zerolog.Logger
}

// New creates an empty cart synchronizer.
func New(remote Remote, session SessionSource, logger zerolog.Logger) *Cart {
	return &Cart{
		remote:  remote,
		session: session,
		logger:  logger.With().Str("component", "cart").Logger(),
	}
}

// AddItem adds one unit of a product+variant. Without a session this is a
// no-op: unauthenticated users cannot accumulate a server-tracked cart.
// The local merge-or-insert happens before the remote call; on remote
// success the full remote cart is re-fetched and replaces local state.
func (c *Cart) AddItem(ctx context.Context, input model.CartLineInput) model.Outcome {
	if !c.session.Authenticated() {
		return model.Skipped(model.ErrNotAuthenticated)
	}

	lineID := model.LineID(input.ProductID, input.VariantName)

	c.mu.Lock()
	if i := c.indexOf(lineID); i >= 0 {
		c.lines[i].Quantity++
	} else {
		c.lines = append(c.lines, model.CartLine{
			ID:          lineID,
			ProductID:   input.ProductID,
			Name:        input.Name,
			VariantName: input.VariantName,
			UnitPrice:   input.UnitPrice,
			Quantity:    1,
			Image:       input.Image,
		})
	}
	c.mu.Unlock()

	err := c.remote.AddCartItem(ctx, api.AddCartItemRequest{
		ProductID:   input.ProductID,
		Qty:         1,
		VariantName: input.VariantName,
	})
	if err != nil {
		c.logger.Debug().Err(err).Str("line_id", lineID).Msg("remote add failed, keeping local state")
		return model.LocalOnly(err)
	}

	// Authoritative reconciliation after a confirmed add. A failed
	// re-fetch leaves the optimistic state standing until the next
	// successful sync.
	if err := c.Reconcile(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("post-add reconciliation failed")
	}

	return model.Confirmed()
}

// UpdateQuantity sets the quantity of an existing line. Non-positive
// quantities delegate to RemoveItem.
func (c *Cart) UpdateQuantity(ctx context.Context, lineID string, quantity int) model.Outcome {
	if quantity <= 0 {
		return c.RemoveItem(ctx, lineID)
	}

	c.mu.Lock()
	i := c.indexOf(lineID)
	if i < 0 {
		c.mu.Unlock()
		return model.Skipped(nil)
	}
	c.lines[i].Quantity = quantity
	target := c.lines[i]
	c.mu.Unlock()

	if !c.session.Authenticated() {
		return model.LocalOnly(model.ErrNotAuthenticated)
	}

	err := c.remote.UpdateCartItem(ctx, target.ProductID, api.UpdateCartItemRequest{
		Qty:         quantity,
		VariantName: target.VariantName,
	})
	if err != nil {
		c.logger.Debug().Err(err).Str("line_id", lineID).Msg("remote update failed, keeping local state")
		return model.LocalOnly(err)
	}

	return model.Confirmed()
}

// RemoveItem removes a line locally regardless of whether the identity is
// known remotely, then best-effort removes it from the remote cart.
func (c *Cart) RemoveItem(ctx context.Context, lineID string) model.Outcome {
	c.mu.Lock()
	i := c.indexOf(lineID)
	if i < 0 {
		c.mu.Unlock()
		return model.Skipped(nil)
	}
	target := c.lines[i]
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.mu.Unlock()

	if !c.session.Authenticated() {
		return model.LocalOnly(model.ErrNotAuthenticated)
	}

	err := c.remote.RemoveCartItem(ctx, target.ProductID, api.RemoveCartItemRequest{
		VariantName: target.VariantName,
	})
	if err != nil {
		c.logger.Debug().Err(err).Str("line_id", lineID).Msg("remote remove failed, keeping local state")
		return model.LocalOnly(err)
	}

	return model.Confirmed()
}

// Clear empties the local cart and best-effort clears the remote one.
func (c *Cart) Clear(ctx context.Context) model.Outcome {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()

	if !c.session.Authenticated() {
		return model.LocalOnly(model.ErrNotAuthenticated)
	}

	if err := c.remote.ClearCart(ctx); err != nil {
		c.logger.Debug().Err(err).Msg("remote clear failed, keeping local state")
		return model.LocalOnly(err)
	}

	return model.Confirmed()
}

// Reconcile replaces local state wholesale with the remote cart. Without a
// session the local cart is forced empty: a logged-out user has no cart.
// On fetch failure local state is kept and the error returned; mount-time
// callers typically ignore it.
func (c *Cart) Reconcile(ctx context.Context) error {
	if !c.session.Authenticated() {
		c.mu.Lock()
		c.lines = nil
		c.mu.Unlock()
		return nil
	}

	res, err := c.remote.GetCart(ctx)
	if err != nil {
		return err
	}

	lines := make([]model.CartLine, 0, len(res.Items))
	byID := make(map[string]int, len(res.Items))
	for _, item := range res.Items {
		line := item.Line()
		// Identity keys stay unique locally even if the server ever
		// sends duplicates; the later entry wins in place.
		if i, ok := byID[line.ID]; ok {
			lines[i] = line
			continue
		}
		byID[line.ID] = len(lines)
		lines = append(lines, line)
	}

	c.mu.Lock()
	c.lines = lines
	c.mu.Unlock()

	c.logger.Debug().Int("line_count", len(lines)).Msg("cart reconciled from remote")
	return nil
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []model.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.CopyLines(c.lines)
}

// Snapshot returns a deep copy suitable for an order payload.
func (c *Cart) Snapshot() []model.CartLine {
	return c.Lines()
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// TotalPrice returns the sum of unit price times quantity over all lines.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// TotalItems returns the sum of quantities across all lines.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var count int
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// QuantityOf returns the current quantity for a product, or 0 when no line
// matches. An empty variantName matches the first line for the product.
func (c *Cart) QuantityOf(productID, variantName string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.lines {
		if l.ProductID != productID {
			continue
		}
		if variantName == "" || l.VariantName == variantName {
			return l.Quantity
		}
	}
	return 0
}

// indexOf returns the position of a line by identity key. Caller holds mu.
func (c *Cart) indexOf(lineID string) int {
	for i, l := range c.lines {
		if l.ID == lineID {
			return i
		}
	}
	return -1
}
