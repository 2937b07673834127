package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

const orderItemColumns = "id, order_id, product_id, quantity, product_title, product_url, price_cents, price_currency, created_at, updated_at"

type orderItemRepository struct {
	db *sql.DB
}

// NewOrderItemRepository создаёт PostgreSQL-реализацию OrderItemRepository.
func NewOrderItemRepository(store *Store) domain.OrderItemRepository {
	return &orderItemRepository{db: store.DB()}
}

// BulkInsert вставляет позиции одним запросом, сохраняя позиционное
// соответствие входа и выхода (см. контракт OrderRepository.BulkInsert).
func (r *orderItemRepository) BulkInsert(ctx context.Context, items []domain.OrderItem) ([]domain.OrderItem, error) {
	if len(items) == 0 {
		return []domain.OrderItem{}, nil
	}

	var (
		sb   strings.Builder
		args = make([]any, 0, len(items)*9)
	)
	sb.WriteString(`
		INSERT INTO order_items (order_id, product_id, quantity, product_title, product_url, price_cents, price_currency, created_at, updated_at)
		VALUES `)
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 9
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9)
		args = append(args,
			item.OrderID, item.ProductID, item.Quantity,
			item.ProductTitle, item.ProductURL,
			item.PriceCents, item.PriceCurrency,
			item.CreatedAt, item.UpdatedAt,
		)
	}
	sb.WriteString("\n\t\tRETURNING " + orderItemColumns)

	rows, err := querierFrom(ctx, r.db).QueryContext(ctx, sb.String(), args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("bulk insert order items: %w", domain.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("bulk insert order items: %w", err)
	}
	defer rows.Close()

	inserted, err := scanOrderItems(rows)
	if err != nil {
		return nil, err
	}
	if len(inserted) != len(items) {
		return nil, fmt.Errorf("bulk insert order items: expected %d returned rows, got %d", len(items), len(inserted))
	}

	return inserted, nil
}

// Query возвращает позиции по фильтру, отсортированные по (order_id, id).
func (r *orderItemRepository) Query(ctx context.Context, filter domain.OrderItemFilter) ([]domain.OrderItem, error) {
	var (
		conds []string
		args  []any
	)
	if len(filter.IDs) > 0 {
		args = append(args, filter.IDs)
		conds = append(conds, fmt.Sprintf("id = ANY($%d)", len(args)))
	}
	if len(filter.OrderIDs) > 0 {
		args = append(args, filter.OrderIDs)
		conds = append(conds, fmt.Sprintf("order_id = ANY($%d)", len(args)))
	}

	query := "SELECT " + orderItemColumns + " FROM order_items"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY order_id ASC, id ASC"

	rows, err := querierFrom(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	return scanOrderItems(rows)
}

func scanOrderItems(rows *sql.Rows) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.ProductTitle, &item.ProductURL,
			&item.PriceCents, &item.PriceCurrency,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order item rows: %w", err)
	}

	return items, nil
}

var _ domain.OrderItemRepository = (*orderItemRepository)(nil)
