package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"pakety/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	const q = `
SELECT cl.id::text, cl.session_id, cl.product_id::text, cl.quantity::text, cl.created_at,
       p.id::text, p.name, p.unit, p.price::text, p.image_url
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
WHERE cl.session_id = $1
ORDER BY cl.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []domain.CartLine{}
	for rows.Next() {
		var (
			line    domain.CartLine
			snap    domain.ProductSnapshot
			qtyText string
			price   string
		)
		if err := rows.Scan(
			&line.ID,
			&line.SessionID,
			&line.ProductID,
			&qtyText,
			&line.CreatedAt,
			&snap.ID,
			&snap.Name,
			&snap.Unit,
			&price,
			&snap.ImageURL,
		); err != nil {
			return nil, err
		}
		if line.Quantity, err = decimal.NewFromString(qtyText); err != nil {
			return nil, err
		}
		if snap.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		line.Product = &snap
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// AddLine merges into an existing line for the same product instead of
// creating a duplicate: at most one line per (session, product).
func (r *postgresRepo) AddLine(ctx context.Context, sessionID string, product domain.Product, quantity decimal.Decimal) (*domain.CartLine, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var lineID string
	var existingQty string
	err = tx.QueryRow(ctx, `
SELECT id::text, quantity::text
FROM cart_lines
WHERE session_id = $1 AND product_id = $2
FOR UPDATE
`, sessionID, product.ID).Scan(&lineID, &existingQty)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if err == nil {
		existing, perr := decimal.NewFromString(existingQty)
		if perr != nil {
			return nil, perr
		}
		newQty := existing.Add(quantity)
		if _, err := tx.Exec(ctx, `
UPDATE cart_lines
SET quantity = $1
WHERE id = $2
`, newQty.String(), lineID); err != nil {
			return nil, err
		}
	} else {
		if err := tx.QueryRow(ctx, `
INSERT INTO cart_lines (session_id, product_id, quantity)
VALUES ($1, $2, $3)
RETURNING id::text
`, sessionID, product.ID, quantity.String()).Scan(&lineID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.fetchLine(ctx, sessionID, lineID)
}

// SetQuantity updates a line's quantity; a non-positive quantity removes the
// line entirely.
func (r *postgresRepo) SetQuantity(ctx context.Context, sessionID, lineID string, quantity decimal.Decimal) error {
	if quantity.Sign() <= 0 {
		return r.DeleteLine(ctx, sessionID, lineID)
	}

	cmd, err := r.pool.Exec(ctx, `
UPDATE cart_lines
SET quantity = $1
WHERE id = $2 AND session_id = $3
`, quantity.String(), lineID, sessionID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteLine(ctx context.Context, sessionID, lineID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_lines
WHERE id = $1 AND session_id = $2
`, lineID, sessionID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ClearSession(ctx context.Context, sessionID string) error {
	_, err := r.pool.Exec(ctx, `
DELETE FROM cart_lines
WHERE session_id = $1
`, sessionID)
	return err
}

func (r *postgresRepo) fetchLine(ctx context.Context, sessionID, lineID string) (*domain.CartLine, error) {
	const q = `
SELECT cl.id::text, cl.session_id, cl.product_id::text, cl.quantity::text, cl.created_at,
       p.id::text, p.name, p.unit, p.price::text, p.image_url
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
WHERE cl.id = $1 AND cl.session_id = $2
`
	var (
		line    domain.CartLine
		snap    domain.ProductSnapshot
		qtyText string
		price   string
	)
	err := r.pool.QueryRow(ctx, q, lineID, sessionID).Scan(
		&line.ID,
		&line.SessionID,
		&line.ProductID,
		&qtyText,
		&line.CreatedAt,
		&snap.ID,
		&snap.Name,
		&snap.Unit,
		&price,
		&snap.ImageURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if line.Quantity, err = decimal.NewFromString(qtyText); err != nil {
		return nil, err
	}
	if snap.Price, err = decimal.NewFromString(price); err != nil {
		return nil, err
	}
	line.Product = &snap
	return &line, nil
}
