package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-courier-panel/internal/domain"
)

// OrderRepo represents order (delivery) repository.
type OrderRepo struct {
	db *pgxpool.Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{db: db}
}

const orderColumns = `o.id, o.courier_id, o.customer_id, o.status, o.shipping_address,
       o.total_amount::float8, COALESCE(o.notes, ''), o.estimated_delivery_time,
       o.delivered_at, o.created_at, o.updated_at`

// ListByCourier returns one page of the courier's orders ordered newest-first,
// together with the total row count for the filter.
func (r *OrderRepo) ListByCourier(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	where, args := buildOrderWhere(f)

	countQ := `SELECT COUNT(*) FROM orders o LEFT JOIN users c ON c.id = o.customer_id ` + where
	var total int64
	if err := r.db.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders for courier %s: %w", f.CourierID, err)
	}

	pageQ := `SELECT ` + orderColumns + `, c.id, c.name, c.email, c.phone
        FROM orders o
        LEFT JOIN users c ON c.id = o.customer_id ` + where +
		` ORDER BY o.created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, f.Limit, f.Offset())

	rows, err := r.db.Query(ctx, pageQ, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders for courier %s: %w", f.CourierID, err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, f.Limit)
	for rows.Next() {
		o, err := scanOrderWithCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// buildOrderWhere translates the typed filter into a WHERE clause. The
// courier restriction is always present and comes first.
func buildOrderWhere(f domain.OrderFilter) (string, []any) {
	where := `WHERE o.courier_id = $1`
	args := []any{f.CourierID}

	if f.Status != nil {
		args = append(args, *f.Status)
		where += ` AND o.status = $` + strconv.Itoa(len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := strconv.Itoa(len(args))
		where += ` AND (o.id ILIKE $` + n +
			` OR c.name ILIKE $` + n +
			` OR c.email ILIKE $` + n +
			` OR c.phone ILIKE $` + n + `)`
	}
	return where, args
}

func scanOrderWithCustomer(row pgx.Row) (domain.Order, error) {
	var (
		o                 domain.Order
		custID, custName  *string
		custEmail, custPh *string
	)
	err := row.Scan(
		&o.ID, &o.CourierID, &o.CustomerID, &o.Status, &o.ShippingAddress,
		&o.TotalAmount, &o.Notes, &o.EstimatedDeliveryTime,
		&o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt,
		&custID, &custName, &custEmail, &custPh,
	)
	if err != nil {
		return domain.Order{}, fmt.Errorf("scan order: %w", err)
	}
	if custID != nil {
		o.Customer = &domain.Customer{
			ID:    *custID,
			Name:  deref(custName),
			Email: deref(custEmail),
			Phone: deref(custPh),
		}
	}
	return o, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// loadItems attaches line items to the given orders with a single query.
func (r *OrderRepo) loadItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
	}

	rows, err := r.db.Query(ctx, `
        SELECT id, order_id, product_id, product_name, quantity, price::float8
        FROM order_items
        WHERE order_id = ANY($1)
        ORDER BY order_id, id
    `, ids)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it      domain.OrderItem
			orderID string
		)
		if err := rows.Scan(&it.ID, &orderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return rows.Err()
}

// GetByID returns the bare order row, without customer or items.
// Returns nil when the order does not exist.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.QueryRow(ctx, `
        SELECT `+orderColumns+`
        FROM orders o
        WHERE o.id = $1
    `, id).Scan(
		&o.ID, &o.CourierID, &o.CustomerID, &o.Status, &o.ShippingAddress,
		&o.TotalAmount, &o.Notes, &o.EstimatedDeliveryTime,
		&o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return &o, nil
}

// GetDetailed returns the order together with customer contact and items.
// Returns nil when the order does not exist.
func (r *OrderRepo) GetDetailed(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `
        SELECT `+orderColumns+`, c.id, c.name, c.email, c.phone
        FROM orders o
        LEFT JOIN users c ON c.id = o.customer_id
        WHERE o.id = $1
    `, id)

	o, err := scanOrderWithCustomer(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}

	page := []domain.Order{o}
	if err := r.loadItems(ctx, page); err != nil {
		return nil, err
	}
	return &page[0], nil
}

// ApplyStatusUpdate writes the new status. Absent optional fields keep the
// stored values; delivered_at is stamped on the first transition to delivered.
func (r *OrderRepo) ApplyStatusUpdate(ctx context.Context, u domain.StatusUpdate) error {
	ct, err := r.db.Exec(ctx, `
        UPDATE orders
        SET
            status                  = $2,
            notes                   = COALESCE($3, notes),
            estimated_delivery_time = COALESCE($4, estimated_delivery_time),
            delivered_at = CASE
                WHEN $2 = 'delivered' AND delivered_at IS NULL THEN now()
                ELSE delivered_at
            END,
            updated_at = now()
        WHERE id = $1
    `, u.OrderID, u.Status, u.Notes, u.EstimatedDeliveryTime)
	if err != nil {
		return fmt.Errorf("update order %s status: %w", u.OrderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", u.OrderID)
	}
	return nil
}

// Stats computes the aggregation bundle inside one read-only transaction so
// that all counters observe the same snapshot.
func (r *OrderRepo) Stats(ctx context.Context, courierID string, now time.Time) (st *domain.CourierStats, err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin stats tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := midnight.AddDate(0, 0, 1)
	sevenDaysAgo := now.AddDate(0, 0, -7)
	sixMonthsAgo := now.AddDate(0, -6, 0)

	st = &domain.CourierStats{}

	var avgSeconds *float64
	err = tx.QueryRow(ctx, `
        SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE status = 'processing'),
            COUNT(*) FILTER (WHERE status = 'delivered'),
            COUNT(*) FILTER (WHERE status = 'delivered' AND created_at >= $2 AND created_at < $3),
            COALESCE(SUM(total_amount) FILTER (WHERE status = 'delivered'), 0)::float8,
            COUNT(*) FILTER (WHERE created_at >= $4),
            EXTRACT(EPOCH FROM AVG(delivered_at - created_at)
                FILTER (WHERE status = 'delivered' AND delivered_at IS NOT NULL))::float8
        FROM orders
        WHERE courier_id = $1
    `, courierID, midnight, tomorrow, sevenDaysAgo).Scan(
		&st.TotalDeliveries,
		&st.PendingDeliveries,
		&st.CompletedDeliveries,
		&st.TodayDeliveries,
		&st.TotalEarnings,
		&st.RecentDeliveries,
		&avgSeconds,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate courier %s stats: %w", courierID, err)
	}
	if avgSeconds != nil {
		d := time.Duration(*avgSeconds * float64(time.Second))
		st.AverageDeliveryTime = &d
	}

	st.DeliveriesByStatus, err = queryStatusCounts(ctx, tx, courierID)
	if err != nil {
		return nil, err
	}

	st.MonthlyDeliveries, err = queryMonthlyCounts(ctx, tx, courierID, sixMonthsAgo)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx,
		`SELECT rating FROM users WHERE id = $1`, courierID,
	).Scan(&st.AverageRating)
	if err != nil {
		if !IsNotFound(err) {
			return nil, fmt.Errorf("get courier %s rating: %w", courierID, err)
		}
		err = nil
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit stats tx: %w", err)
	}
	return st, nil
}

func queryStatusCounts(ctx context.Context, tx pgx.Tx, courierID string) ([]domain.StatusCount, error) {
	rows, err := tx.Query(ctx, `
        SELECT status, COUNT(*)
        FROM orders
        WHERE courier_id = $1
        GROUP BY status
        ORDER BY status
    `, courierID)
	if err != nil {
		return nil, fmt.Errorf("count courier %s orders by status: %w", courierID, err)
	}
	defer rows.Close()

	out := make([]domain.StatusCount, 0, 6)
	for rows.Next() {
		var sc domain.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func queryMonthlyCounts(ctx context.Context, tx pgx.Tx, courierID string, since time.Time) ([]domain.MonthlyCount, error) {
	rows, err := tx.Query(ctx, `
        SELECT date_trunc('month', created_at) AS month, COUNT(*)
        FROM orders
        WHERE courier_id = $1 AND status = 'delivered' AND created_at >= $2
        GROUP BY month
        ORDER BY month
    `, courierID, since)
	if err != nil {
		return nil, fmt.Errorf("count courier %s monthly deliveries: %w", courierID, err)
	}
	defer rows.Close()

	var out []domain.MonthlyCount
	for rows.Next() {
		var mc domain.MonthlyCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, fmt.Errorf("scan monthly count: %w", err)
		}
		out = append(out, mc)
	}
	return out, rows.Err()
}

// Upsert writes an order snapshot coming from the order-event stream.
// Repeated events for the same order are idempotent.
func (r *OrderRepo) Upsert(ctx context.Context, o *domain.Order) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin upsert tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if o.Customer != nil {
		_, err = tx.Exec(ctx, `
            INSERT INTO users (id, name, email, phone, role, is_active)
            VALUES ($1, $2, $3, $4, 'customer', TRUE)
            ON CONFLICT (id) DO UPDATE
            SET name = EXCLUDED.name, email = EXCLUDED.email, phone = EXCLUDED.phone
        `, o.Customer.ID, o.Customer.Name, o.Customer.Email, o.Customer.Phone)
		if err != nil {
			return fmt.Errorf("upsert customer %s: %w", o.Customer.ID, err)
		}
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO orders (id, courier_id, customer_id, status, shipping_address,
                            total_amount, notes, estimated_delivery_time, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)
        ON CONFLICT (id) DO UPDATE
        SET courier_id   = EXCLUDED.courier_id,
            status       = EXCLUDED.status,
            total_amount = EXCLUDED.total_amount,
            updated_at   = now()
    `, o.ID, o.CourierID, o.CustomerID, o.Status, o.ShippingAddress,
		o.TotalAmount, o.Notes, o.EstimatedDeliveryTime, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert order %s: %w", o.ID, err)
	}

	for _, it := range o.Items {
		_, err = tx.Exec(ctx, `
            INSERT INTO order_items (id, order_id, product_id, product_name, quantity, price)
            VALUES ($1, $2, $3, $4, $5, $6)
            ON CONFLICT (id) DO NOTHING
        `, it.ID, o.ID, it.ProductID, it.ProductName, it.Quantity, it.Price)
		if err != nil {
			return fmt.Errorf("upsert order %s item %s: %w", o.ID, it.ID, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit upsert tx: %w", err)
	}
	return nil
}

// MarkCancelled moves the order to cancelled unless it already reached a
// terminal state. Returns true when a row was changed.
func (r *OrderRepo) MarkCancelled(ctx context.Context, orderID string) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE orders
        SET status = 'cancelled', updated_at = now()
        WHERE id = $1 AND status NOT IN ('delivered', 'cancelled')
    `, orderID)
	if err != nil {
		return false, fmt.Errorf("cancel order %s: %w", orderID, err)
	}
	return ct.RowsAffected() > 0, nil
}
