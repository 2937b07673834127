package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

const orderColumns = "id, customer_id, delivery_address, total_price_cents, total_price_currency, created_at, updated_at"

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

// BulkInsert вставляет заказы одним запросом и возвращает их с присвоенными ID.
// RETURNING для INSERT ... VALUES отдаёт строки в порядке кортежей VALUES:
// на этом держится позиционное соответствие входа и выхода.
func (r *orderRepository) BulkInsert(ctx context.Context, orders []domain.Order) ([]domain.Order, error) {
	if len(orders) == 0 {
		return []domain.Order{}, nil
	}

	var (
		sb   strings.Builder
		args = make([]any, 0, len(orders)*6)
	)
	sb.WriteString(`
		INSERT INTO orders (customer_id, delivery_address, total_price_cents, total_price_currency, created_at, updated_at)
		VALUES `)
	for i, order := range orders {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 6
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d)", base+1, base+2, base+3, base+4, base+5, base+6)
		args = append(args,
			order.CustomerID, order.DeliveryAddress,
			order.TotalPriceCents, order.TotalPriceCurrency,
			order.CreatedAt, order.UpdatedAt,
		)
	}
	sb.WriteString("\n\t\tRETURNING " + orderColumns)

	rows, err := querierFrom(ctx, r.db).QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("bulk insert orders: %w", err)
	}
	defer rows.Close()

	inserted, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(inserted) != len(orders) {
		return nil, fmt.Errorf("bulk insert orders: expected %d returned rows, got %d", len(orders), len(inserted))
	}

	return inserted, nil
}

// Query возвращает заказы по фильтру. Пустой срез ID/CustomerIDs означает
// отсутствие ограничения по соответствующему полю.
func (r *orderRepository) Query(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var (
		conds []string
		args  []any
	)
	if len(filter.IDs) > 0 {
		args = append(args, filter.IDs)
		conds = append(conds, fmt.Sprintf("id = ANY($%d)", len(args)))
	}
	if len(filter.CustomerIDs) > 0 {
		args = append(args, filter.CustomerIDs)
		conds = append(conds, fmt.Sprintf("customer_id = ANY($%d)", len(args)))
	}

	query := "SELECT " + orderColumns + " FROM orders"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id ASC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := querierFrom(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]domain.Order, error) {
	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID, &order.CustomerID, &order.DeliveryAddress,
			&order.TotalPriceCents, &order.TotalPriceCurrency,
			&order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

var _ domain.OrderRepository = (*orderRepository)(nil)
