package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sss654654/rentdeck/internal/cache"
	"github.com/sss654654/rentdeck/internal/gateway"
	"github.com/sss654654/rentdeck/internal/store"
)

// Service coordinates the gateway, the query cache and the rental store.
//
// Queries go through the cache; a fresh rental list also replaces the
// store's collection wholesale. Every successful mutation invalidates both
// cache kinds (a rental mutation changes item stock server-side), patches
// the store and posts a success notice; a failed mutation posts an error
// notice carrying the server's message when there is one.
//
// Two mutations in flight at the same time race: the store keeps whichever
// server response arrives last. Request sequencing belongs to the backend
// and is deliberately not reinvented here.
type Service struct {
	api     gateway.API
	cache   *cache.Cache
	store   *store.Store
	notices *Notices
	logger  *slog.Logger
}

// New wires a Service. notices may be nil, in which case notifications are
// dropped.
func New(api gateway.API, c *cache.Cache, s *store.Store, notices *Notices) *Service {
	if notices == nil {
		notices = NewNotices(0)
	}
	return &Service{
		api:     api,
		cache:   c,
		store:   s,
		notices: notices,
		logger:  slog.Default().With("component", "service"),
	}
}

// Notices exposes the notification feed for the UI.
func (s *Service) Notices() *Notices { return s.notices }

// Store exposes the rental store for subscription.
func (s *Service) Store() *store.Store { return s.store }

// InvalidateRentals drops every cached rental query. Satisfies the push
// listener's Invalidator.
func (s *Service) InvalidateRentals() { s.cache.Invalidate(cache.KindRentals) }

// InvalidateItems drops every cached item query.
func (s *Service) InvalidateItems() { s.cache.Invalidate(cache.KindItems) }

// Rentals fetches the rental list (optionally filtered by status) through
// the cache and replaces the store's collection with the result. A fetch
// failure is returned as-is: callers can always tell "no data" from
// "fetch failed".
func (s *Service) Rentals(ctx context.Context, status gateway.RentalStatus) ([]gateway.Rental, error) {
	key := cache.Key{Kind: cache.KindRentals, Filter: string(status)}
	rentals, err := cache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]gateway.Rental, error) {
		return s.api.ListRentals(ctx, status)
	})
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	// Only the unfiltered list is authoritative for the whole collection.
	if status == "" {
		s.store.SetAll(rentals)
	}
	return rentals, nil
}

// Items fetches the item list through the cache.
func (s *Service) Items(ctx context.Context) ([]gateway.Item, error) {
	key := cache.Key{Kind: cache.KindItems}
	items, err := cache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]gateway.Item, error) {
		return s.api.ListItems(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// CreateRental records a rental and appends it to the store.
func (s *Service) CreateRental(ctx context.Context, req gateway.CreateRentalRequest) (*gateway.Rental, error) {
	rental, err := s.api.CreateRental(ctx, req)
	if err != nil {
		return nil, s.fail("create rental", err)
	}
	s.afterMutation()
	s.store.Add(*rental)
	s.notices.Post(LevelInfo, fmt.Sprintf("Rental recorded: %s → %s", rental.ItemName, rental.RenterName))
	return rental, nil
}

// UpdateRental patches rental metadata and replaces the stored record.
func (s *Service) UpdateRental(ctx context.Context, id int, req gateway.UpdateRentalRequest) (*gateway.Rental, error) {
	rental, err := s.api.UpdateRental(ctx, id, req)
	if err != nil {
		return nil, s.fail("update rental", err)
	}
	s.afterMutation()
	s.store.Update(rental.ID, *rental)
	s.notices.Post(LevelInfo, fmt.Sprintf("Rental updated: %s", rental.ItemName))
	return rental, nil
}

// ReturnRental marks a rental returned and replaces the stored record.
func (s *Service) ReturnRental(ctx context.Context, id int) (*gateway.Rental, error) {
	rental, err := s.api.ReturnRental(ctx, id)
	if err != nil {
		return nil, s.fail("return rental", err)
	}
	s.afterMutation()
	s.store.Update(rental.ID, *rental)
	s.notices.Post(LevelInfo, fmt.Sprintf("Returned: %s from %s", rental.ItemName, rental.RenterName))
	return rental, nil
}

// DeleteRental removes a rental record from the backend and the store.
func (s *Service) DeleteRental(ctx context.Context, id int) error {
	if err := s.api.DeleteRental(ctx, id); err != nil {
		return s.fail("delete rental", err)
	}
	s.afterMutation()
	s.store.Remove(id)
	s.notices.Post(LevelInfo, fmt.Sprintf("Rental record #%d deleted", id))
	return nil
}

// CreateItem registers an item.
func (s *Service) CreateItem(ctx context.Context, req gateway.CreateItemRequest) (*gateway.Item, error) {
	item, err := s.api.CreateItem(ctx, req)
	if err != nil {
		return nil, s.fail("create item", err)
	}
	s.afterMutation()
	s.notices.Post(LevelInfo, fmt.Sprintf("Item registered: %s", item.Name))
	return item, nil
}

// UpdateItem patches item metadata.
func (s *Service) UpdateItem(ctx context.Context, id int, req gateway.UpdateItemRequest) (*gateway.Item, error) {
	item, err := s.api.UpdateItem(ctx, id, req)
	if err != nil {
		return nil, s.fail("update item", err)
	}
	s.afterMutation()
	s.notices.Post(LevelInfo, fmt.Sprintf("Item updated: %s", item.Name))
	return item, nil
}

// DeleteItem removes an item.
func (s *Service) DeleteItem(ctx context.Context, id int) error {
	if err := s.api.DeleteItem(ctx, id); err != nil {
		return s.fail("delete item", err)
	}
	s.afterMutation()
	s.notices.Post(LevelInfo, fmt.Sprintf("Item #%d deleted", id))
	return nil
}

// afterMutation applies the cross-invalidation policy: any confirmed
// mutation makes both cached collections stale.
func (s *Service) afterMutation() {
	s.cache.Invalidate(cache.KindRentals)
	s.cache.Invalidate(cache.KindItems)
}

// fail logs a mutation failure, posts a distinguishable error notice
// (with the server's own message when available) and wraps the error.
func (s *Service) fail(op string, err error) error {
	text := fmt.Sprintf("Failed to %s", op)
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		text += ": " + apiErr.Message
	}
	s.notices.Post(LevelError, text)
	s.logger.Error("mutation failed", "op", op, "err", err)
	return fmt.Errorf("%s: %w", op, err)
}
