// Package favorites maintains a local set of favorited product ids as a
// responsive mirror of the remote favorites list. Unlike the cart, a
// failed remote call rolls the optimistic toggle back: a heart icon that
// silently stuck would be more jarring than a cart quantity drifting.
package favorites

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"orderhai/internal/model"
)

// Remote is the subset of the API client the favorites set mirrors against.
type Remote interface {
	ListFavorites(ctx context.Context) ([]model.Product, error)
	AddFavorite(ctx context.Context, productID string) error
	RemoveFavorite(ctx context.Context, productID string) error
}

// SessionSource reports whether an authenticated session is active.
type SessionSource interface {
	Authenticated() bool
}

// Set is the favorites synchronizer. Insertion order is preserved for UI
// stability; membership is what matters.
type Set struct {
	mu      sync.Mutex
	ids     []string
	index   map[string]struct{}
	remote  Remote
	session SessionSource
	logger  zerolog.Logger
}

// New creates an empty favorites synchronizer.
func New(remote Remote, session SessionSource, logger zerolog.Logger) *Set {
	return &Set{
		index:   make(map[string]struct{}),
		remote:  remote,
		session: session,
		logger:  logger.With().Str("component", "favorites").Logger(),
	}
}

// Toggle flips a product's membership optimistically and mirrors the flip
// remotely, rolling back on failure. Safe to call without a session: it is
// a defensive no-op, not an error.
func (s *Set) Toggle(ctx context.Context, productID string) model.Outcome {
	if !s.session.Authenticated() {
		return model.Skipped(model.ErrNotAuthenticated)
	}

	s.mu.Lock()
	_, already := s.index[productID]
	if already {
		s.removeLocked(productID)
	} else {
		s.addLocked(productID)
	}
	s.mu.Unlock()

	var err error
	if already {
		err = s.remote.RemoveFavorite(ctx, productID)
	} else {
		err = s.remote.AddFavorite(ctx, productID)
	}

	if err != nil {
		// Re-flip to the pre-toggle state.
		s.mu.Lock()
		if already {
			s.addLocked(productID)
		} else {
			s.removeLocked(productID)
		}
		s.mu.Unlock()

		s.logger.Debug().Err(err).Str("product_id", productID).Msg("remote toggle failed, reverted")
		return model.Reverted(err)
	}

	return model.Confirmed()
}

// Contains reports whether a product is currently favorited.
func (s *Set) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[productID]
	return ok
}

// IDs returns a copy of the favorited product ids in insertion order.
func (s *Set) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of favorited products.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Reconcile replaces local state wholesale with the remote favorites list.
// Without a session local state is cleared.
func (s *Set) Reconcile(ctx context.Context) error {
	if !s.session.Authenticated() {
		s.mu.Lock()
		s.ids = nil
		s.index = make(map[string]struct{})
		s.mu.Unlock()
		return nil
	}

	products, err := s.remote.ListFavorites(ctx)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(products))
	index := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, ok := index[p.ID]; ok {
			continue
		}
		index[p.ID] = struct{}{}
		ids = append(ids, p.ID)
	}

	s.mu.Lock()
	s.ids = ids
	s.index = index
	s.mu.Unlock()

	s.logger.Debug().Int("count", len(ids)).Msg("favorites reconciled from remote")
	return nil
}

// addLocked appends a product id. Caller holds mu.
func (s *Set) addLocked(productID string) {
	if _, ok := s.index[productID]; ok {
		return
	}
	s.index[productID] = struct{}{}
	s.ids = append(s.ids, productID)
}

// removeLocked deletes a product id. Caller holds mu.
func (s *Set) removeLocked(productID string) {
	if _, ok := s.index[productID]; !ok {
		return
	}
	delete(s.index, productID)
	for i, id := range s.ids {
		if id == productID {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
}
