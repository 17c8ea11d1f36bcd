package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"service-courier-panel/internal/domain"
	"service-courier-panel/internal/logx"
	"service-courier-panel/internal/service/orders"
)

type stubStore struct {
	upsertFn func(context.Context, *domain.Order) error
	cancelFn func(context.Context, string) (bool, error)
}

func (s *stubStore) Upsert(ctx context.Context, o *domain.Order) error {
	if s.upsertFn == nil {
		return nil
	}
	return s.upsertFn(ctx, o)
}

func (s *stubStore) MarkCancelled(ctx context.Context, orderID string) (bool, error) {
	if s.cancelFn == nil {
		return true, nil
	}
	return s.cancelFn(ctx, orderID)
}

func validEvent(eventType string) orders.Event {
	courierID := "c1"
	return orders.Event{
		Type:            eventType,
		OrderID:         "o1",
		CourierID:       &courierID,
		Status:          "processing",
		ShippingAddress: "1 Main St",
		TotalAmount:     42.5,
		Customer: &orders.Customer{
			ID:    "u1",
			Name:  "Jane",
			Email: "jane@example.com",
			Phone: "+15551234567",
		},
		Items: []orders.EventItem{
			{ID: "i1", ProductID: "p1", ProductName: "Widget", Quantity: 2, Price: 10},
		},
		CreatedAt: time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC),
	}
}

func TestProcessor_Handle_Created_Upserts(t *testing.T) {
	t.Parallel()

	var stored *domain.Order
	store := &stubStore{
		upsertFn: func(_ context.Context, o *domain.Order) error {
			stored = o
			return nil
		},
	}
	p := orders.NewProcessor(store, logx.Nop())

	require.NoError(t, p.Handle(context.Background(), validEvent(orders.EventCreated)))
	require.NotNil(t, stored)
	require.Equal(t, "o1", stored.ID)
	require.Equal(t, domain.StatusProcessing, stored.Status)
	require.Equal(t, "u1", stored.CustomerID)
	require.Len(t, stored.Items, 1)
	require.Equal(t, "Widget", stored.Items[0].ProductName)
}

func TestProcessor_Handle_Updated_Upserts(t *testing.T) {
	t.Parallel()

	calls := 0
	store := &stubStore{
		upsertFn: func(context.Context, *domain.Order) error {
			calls++
			return nil
		},
	}
	p := orders.NewProcessor(store, logx.Nop())

	require.NoError(t, p.Handle(context.Background(), validEvent(orders.EventUpdated)))
	require.Equal(t, 1, calls)
}

func TestProcessor_Handle_Cancelled(t *testing.T) {
	t.Parallel()

	for _, eventType := range []string{orders.EventCancelled, orders.EventDeleted} {
		eventType := eventType
		t.Run(eventType, func(t *testing.T) {
			t.Parallel()

			store := &stubStore{
				cancelFn: func(_ context.Context, orderID string) (bool, error) {
					require.Equal(t, "o1", orderID)
					return true, nil
				},
				upsertFn: func(context.Context, *domain.Order) error {
					t.Fatal("Upsert must not be called")
					return nil
				},
			}
			p := orders.NewProcessor(store, logx.Nop())
			require.NoError(t, p.Handle(context.Background(), validEvent(eventType)))
		})
	}
}

func TestProcessor_Handle_UnknownType_Skipped(t *testing.T) {
	t.Parallel()

	store := &stubStore{
		upsertFn: func(context.Context, *domain.Order) error {
			t.Fatal("Upsert must not be called")
			return nil
		},
	}
	p := orders.NewProcessor(store, logx.Nop())

	require.NoError(t, p.Handle(context.Background(), validEvent("refunded")))
}

func TestProcessor_Handle_UnknownStatus_DroppedWithoutError(t *testing.T) {
	t.Parallel()

	store := &stubStore{
		upsertFn: func(context.Context, *domain.Order) error {
			t.Fatal("Upsert must not be called")
			return nil
		},
	}
	p := orders.NewProcessor(store, logx.Nop())

	ev := validEvent(orders.EventCreated)
	ev.Status = "teleported"
	require.NoError(t, p.Handle(context.Background(), ev))
}

func TestProcessor_Handle_StoreErrorPropagates(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("db down")
	store := &stubStore{
		upsertFn: func(context.Context, *domain.Order) error { return sentinel },
	}
	p := orders.NewProcessor(store, logx.Nop())

	err := p.Handle(context.Background(), validEvent(orders.EventCreated))
	require.ErrorIs(t, err, sentinel)
}

func TestProcessor_Handle_CancelUnknownOrder_NoError(t *testing.T) {
	t.Parallel()

	store := &stubStore{
		cancelFn: func(context.Context, string) (bool, error) { return false, nil },
	}
	p := orders.NewProcessor(store, logx.Nop())

	require.NoError(t, p.Handle(context.Background(), validEvent(orders.EventCancelled)))
}
