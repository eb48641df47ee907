package repository

import (
	"context"
	"database/sql"

	"github.com/mhakbari/orderstack/internal/model"
)

// OrderRepo persists order records.
type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

// Create inserts an order and returns the persisted record.
func (r *OrderRepo) Create(ctx context.Context, name string) (model.Order, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO orders (name) VALUES (?)", name)
	if err != nil {
		return model.Order{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Order{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// List returns all orders, newest first.
func (r *OrderRepo) List(ctx context.Context) ([]model.Order, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,created_at,updated_at FROM orders ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.Name, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// GetByID fetches one order.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (model.Order, error) {
	var o model.Order
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,created_at,updated_at FROM orders WHERE id=? LIMIT 1",
		id).Scan(&o.ID, &o.Name, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Order{}, ErrNotFound
	}
	return o, err
}

// Update renames an order and returns the updated record.
func (r *OrderRepo) Update(ctx context.Context, id uint64, name string) (model.Order, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.Order{}, err
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE orders SET name=? WHERE id=?", name, id); err != nil {
		return model.Order{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes an order.
func (r *OrderRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM orders WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
