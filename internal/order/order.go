// Package order converts the current cart snapshot into a submitted order
// and caches the resulting history, most recent first. Unlike cart and
// favorites mutations, placement failures propagate: placing an order is a
// deliberate, single-shot action whose failure the UI must surface.
package order

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"orderhai/internal/api"
	"orderhai/internal/model"
)

// Remote is the subset of the API client the order flow submits against.
type Remote interface {
	PlaceOrder(ctx context.Context, req api.PlaceOrderRequest) (*api.Order, error)
	ListOrders(ctx context.Context) ([]api.Order, error)
	CancelOrder(ctx context.Context, orderID string) (*api.Order, error)
}

// CartSource is the cart the flow reads from and clears after success.
type CartSource interface {
	Snapshot() []model.CartLine
	Clear(ctx context.Context) model.Outcome
}

// SessionSource reports whether an authenticated session is active.
type SessionSource interface {
	Authenticated() bool
}

// PlaceRequest carries the delivery and payment metadata for a submission.
type PlaceRequest struct {
	Address       string
	Phone         string
	Name          string
	PaymentMethod model.PaymentMethod
	Notes         string
	Location      *model.Location
}

// Flow is the order placement flow plus the local history cache.
type Flow struct {
	mu      sync.Mutex
	history []model.Order
	cart    CartSource
	remote  Remote
	session SessionSource
	logger  zerolog.Logger
}

// New creates an order flow reading from the given cart.
func New(cart CartSource, remote Remote, session SessionSource, logger zerolog.Logger) *Flow {
	return &Flow{
		cart:    cart,
		remote:  remote,
		session: session,
		logger:  logger.With().Str("component", "order").Logger(),
	}
}

// Place submits the current cart as an order. An empty cart or a missing
// session fails before any remote call. On success the returned order is
// prepended to the history and the cart is cleared (local plus best-effort
// remote); on failure the cart is left untouched so the user can retry.
//
// Concurrent submissions are not de-duplicated here; keeping at most one
// call in flight is the triggering UI's responsibility.
func (f *Flow) Place(ctx context.Context, req PlaceRequest) (*model.Order, error) {
	snapshot := f.cart.Snapshot()
	if len(snapshot) == 0 {
		return nil, model.ErrEmptyCart
	}
	if !f.session.Authenticated() {
		return nil, model.ErrNotAuthenticated
	}
	if !req.PaymentMethod.Valid() {
		return nil, model.ErrInvalidPayment
	}

	items := make([]api.CartItem, len(snapshot))
	for i, line := range snapshot {
		items[i] = api.CartItemFromLine(line)
	}

	res, err := f.remote.PlaceOrder(ctx, api.PlaceOrderRequest{
		Items:         items,
		PaymentMethod: req.PaymentMethod,
		Address:       req.Address,
		Phone:         req.Phone,
		Name:          req.Name,
		Notes:         req.Notes,
		Location:      req.Location,
	})
	if err != nil {
		f.logger.Warn().Err(err).Int("line_count", len(items)).Msg("order placement failed")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	placed := res.Model()

	f.mu.Lock()
	f.history = append([]model.Order{placed}, f.history...)
	f.mu.Unlock()

	if out := f.cart.Clear(ctx); out.Status == model.SyncLocalOnly {
		f.logger.Debug().Err(out.Err).Msg("remote cart clear after placement failed")
	}

	f.logger.Info().
		Str("order_id", placed.OrderID).
		Int("line_count", len(placed.Items)).
		Float64("total", placed.Total).
		Msg("order placed")

	return &placed, nil
}

// History returns a copy of the cached orders, most recent first.
func (f *Flow) History() []model.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Order, len(f.history))
	copy(out, f.history)
	return out
}

// Refresh replaces the history cache with the server's order list. Without
// a session the cache is cleared.
func (f *Flow) Refresh(ctx context.Context) error {
	if !f.session.Authenticated() {
		f.mu.Lock()
		f.history = nil
		f.mu.Unlock()
		return nil
	}

	orders, err := f.remote.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh orders: %w", err)
	}

	history := make([]model.Order, len(orders))
	for i := range orders {
		history[i] = orders[i].Model()
	}

	f.mu.Lock()
	f.history = history
	f.mu.Unlock()

	return nil
}

// Cancel requests cancellation and, on success, replaces the matching
// history record wholesale with the server-confirmed one.
func (f *Flow) Cancel(ctx context.Context, orderID string) (*model.Order, error) {
	if !f.session.Authenticated() {
		return nil, model.ErrNotAuthenticated
	}

	res, err := f.remote.CancelOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	updated := res.Model()

	f.mu.Lock()
	for i := range f.history {
		if f.history[i].OrderID == updated.OrderID {
			f.history[i] = updated
			break
		}
	}
	f.mu.Unlock()

	f.logger.Info().Str("order_id", updated.OrderID).Msg("order cancelled")
	return &updated, nil
}
