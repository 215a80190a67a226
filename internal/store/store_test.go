package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sss654654/rentdeck/internal/gateway"
)

func rental(id int, name string) gateway.Rental {
	return gateway.Rental{ID: id, ItemName: name, Status: gateway.StatusOngoing}
}

func TestStore_MutationsNotifyInSubscriptionOrder(t *testing.T) {
	s := New()

	var order []string
	s.Subscribe(func() { order = append(order, "first") })
	s.Subscribe(func() { order = append(order, "second") })

	s.SetAll([]gateway.Rental{rental(1, "Umbrella")})
	s.Add(rental(2, "Charger"))
	s.Update(2, rental(2, "Charger v2"))
	s.Remove(1)

	// Four mutations, two observers, first always before second.
	require.Len(t, order, 8)
	for i := 0; i < len(order); i += 2 {
		assert.Equal(t, "first", order[i])
		assert.Equal(t, "second", order[i+1])
	}

	rentals := s.Rentals()
	require.Len(t, rentals, 1)
	assert.Equal(t, "Charger v2", rentals[0].ItemName)
}

func TestStore_SetAllIsIdempotentButStillNotifies(t *testing.T) {
	s := New()

	calls := 0
	s.Subscribe(func() { calls++ })

	same := []gateway.Rental{rental(1, "Umbrella")}
	s.SetAll(same)
	s.SetAll(same)

	assert.Equal(t, 2, calls, "identical input must still notify")
	assert.Len(t, s.Rentals(), 1)
}

func TestStore_UnknownIDIsNoOpButNotifies(t *testing.T) {
	s := New()
	s.SetAll([]gateway.Rental{rental(1, "Umbrella")})

	calls := 0
	s.Subscribe(func() { calls++ })

	s.Update(99, rental(99, "Ghost"))
	s.Remove(99)

	assert.Equal(t, 2, calls)
	rentals := s.Rentals()
	require.Len(t, rentals, 1)
	assert.Equal(t, 1, rentals[0].ID)
}

func TestStore_UnsubscribeStopsNotifications(t *testing.T) {
	s := New()

	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	s.Add(rental(1, "Umbrella"))
	unsubscribe()
	s.Add(rental(2, "Charger"))
	s.Remove(1)

	assert.Equal(t, 1, calls)

	// Unsubscribing twice is harmless.
	unsubscribe()
}

func TestStore_DuplicateSubscriptionsAreIndependent(t *testing.T) {
	s := New()

	calls := 0
	fn := func() { calls++ }
	first := s.Subscribe(fn)
	second := s.Subscribe(fn)

	s.Notify()
	assert.Equal(t, 2, calls)

	first()
	s.Notify()
	assert.Equal(t, 3, calls, "one registration must survive the other's unsubscribe")

	second()
	s.Notify()
	assert.Equal(t, 3, calls)
}

func TestStore_PanickingObserverDoesNotSuppressLaterOnes(t *testing.T) {
	s := New()

	reached := false
	s.Subscribe(func() { panic("boom") })
	s.Subscribe(func() { reached = true })

	assert.NotPanics(t, func() { s.Add(rental(1, "Umbrella")) })
	assert.True(t, reached)
}

func TestStore_LastUpdateAdvances(t *testing.T) {
	s := New()
	assert.True(t, s.LastUpdate().IsZero())

	before := time.Now()
	s.SetAll(nil)
	first := s.LastUpdate()
	assert.False(t, first.Before(before))

	s.Add(rental(1, "Umbrella"))
	assert.False(t, s.LastUpdate().Before(first))
}

func TestStore_RentalsReturnsDefensiveCopy(t *testing.T) {
	s := New()
	s.SetAll([]gateway.Rental{rental(1, "Umbrella")})

	snapshot := s.Rentals()
	snapshot[0].ItemName = "mutated"

	assert.Equal(t, "Umbrella", s.Rentals()[0].ItemName)
}
