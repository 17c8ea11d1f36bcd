package orders

import (
	"context"
	"fmt"
	"time"

	"service-courier-panel/internal/domain"
	"service-courier-panel/internal/logx"
)

// Processor applies order events to the local delivery store.
type Processor struct {
	store   orderStore
	logger  logx.Logger
	factory *actionFactory
	now     func() time.Time
}

// NewProcessor creates a new orders.Processor
func NewProcessor(store orderStore, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	p.factory = newActionFactory(p.onUpsert, p.onCancelled)
	return p
}

// Handle processes a single orders.Event. Events with an unknown type are
// skipped so a mixed topic does not stall the consumer group.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Type)
	if !ok {
		p.logger.Warn("skipping order event with unknown type",
			logx.String("type", e.Type),
			logx.String("order_id", e.OrderID),
		)
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onUpsert(ctx context.Context, e Event) error {
	order, err := p.toOrder(e)
	if err != nil {
		p.logger.Warn("dropping malformed order event",
			logx.String("order_id", e.OrderID),
			logx.Any("err", err),
		)
		return nil
	}
	if err := p.store.Upsert(ctx, &order); err != nil {
		return fmt.Errorf("upsert order %s: %w", e.OrderID, err)
	}
	p.logger.Info("order snapshot stored",
		logx.String("order_id", e.OrderID),
		logx.String("status", string(order.Status)),
	)
	return nil
}

func (p *Processor) onCancelled(ctx context.Context, e Event) error {
	if e.OrderID == "" {
		p.logger.Warn("dropping cancel event without order id")
		return nil
	}
	changed, err := p.store.MarkCancelled(ctx, e.OrderID)
	if err != nil {
		return fmt.Errorf("cancel order %s: %w", e.OrderID, err)
	}
	if !changed {
		p.logger.Warn("cancel event for unknown or finished order", logx.String("order_id", e.OrderID))
		return nil
	}
	p.logger.Info("order cancelled", logx.String("order_id", e.OrderID))
	return nil
}

func (p *Processor) toOrder(e Event) (domain.Order, error) {
	if e.OrderID == "" {
		return domain.Order{}, fmt.Errorf("missing order id")
	}
	status, ok := domain.ParseOrderStatus(e.Status)
	if !ok {
		return domain.Order{}, fmt.Errorf("order %s: unknown status %q", e.OrderID, e.Status)
	}
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = p.now().UTC()
	}

	order := domain.Order{
		ID:              e.OrderID,
		CourierID:       e.CourierID,
		Status:          status,
		ShippingAddress: e.ShippingAddress,
		TotalAmount:     e.TotalAmount,
		Notes:           e.Notes,
		CreatedAt:       createdAt,
		UpdatedAt:       p.now().UTC(),
	}
	if e.Customer != nil {
		order.CustomerID = e.Customer.ID
		order.Customer = &domain.Customer{
			ID:    e.Customer.ID,
			Name:  e.Customer.Name,
			Email: e.Customer.Email,
			Phone: e.Customer.Phone,
		}
	}
	for _, it := range e.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	return order, nil
}
