package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/obrasync/estoque-api/internal/domain"
	"github.com/obrasync/estoque-api/internal/domain/entity"
	"github.com/obrasync/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, description, category, unit, quantity, min_quantity, location, supplier, priority, unit_cost, created_at, updated_at`

// ProductRepo implementação de ProductRepository sobre PostgreSQL (usável com pool ou tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador de produtos. Passar pool ou tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste um novo produto.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.SKU, p.Name, p.Description, p.Category, p.Unit,
		p.Quantity, p.MinQuantity, p.Location, p.Supplier,
		p.Priority, p.UnitCost, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtém um produto por ID. Devolve nil se não existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByIDForUpdate obtém o produto bloqueando a linha (SELECT ... FOR UPDATE).
// Deve ser chamado dentro de uma transação ativa. Devolve nil se não existe.
func (r *ProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product for update")
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.Unit,
		&p.Quantity, &p.MinQuantity, &p.Location, &p.Supplier,
		&p.Priority, &p.UnitCost, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// List lista produtos com busca opcional (nome, SKU ou categoria) e paginação.
func (r *ProductRepo) List(search string, limit, offset int) ([]*entity.Product, error) {
	var rows pgx.Rows
	var err error
	if search != "" {
		query := `
			SELECT ` + productColumns + ` FROM products
			WHERE name ILIKE $1 OR sku ILIKE $1 OR category ILIKE $1
			ORDER BY name ASC LIMIT $2 OFFSET $3`
		rows, err = r.q.Query(context.Background(), query, "%"+search+"%", limit, offset)
	} else {
		query := `SELECT ` + productColumns + ` FROM products ORDER BY name ASC LIMIT $1 OFFSET $2`
		rows, err = r.q.Query(context.Background(), query, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.Unit,
			&p.Quantity, &p.MinQuantity, &p.Location, &p.Supplier,
			&p.Priority, &p.UnitCost, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update grava campos descritivos. Quantidade e custo ficam fora: passam
// exclusivamente por UpdateBalance.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products
		SET sku = $2, name = $3, description = $4, category = $5, unit = $6,
		    min_quantity = $7, location = $8, supplier = $9, priority = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		p.ID, p.SKU, p.Name, p.Description, p.Category, p.Unit, p.MinQuantity,
		p.Location, p.Supplier, p.Priority, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateBalance grava quantidade (e custo, se informado) e carimba updated_at.
// O caller deve segurar o lock de GetByIDForUpdate na mesma transação.
func (r *ProductRepo) UpdateBalance(id string, quantity decimal.Decimal, unitCost *decimal.Decimal, updatedAt time.Time) error {
	var err error
	if unitCost != nil {
		_, err = r.q.Exec(context.Background(),
			`UPDATE products SET quantity = $2, unit_cost = $3, updated_at = $4 WHERE id = $1`,
			id, quantity, *unitCost, updatedAt,
		)
	} else {
		_, err = r.q.Exec(context.Background(),
			`UPDATE products SET quantity = $2, updated_at = $3 WHERE id = $1`,
			id, quantity, updatedAt,
		)
	}
	if err != nil {
		return fmt.Errorf("update product balance: %w", err)
	}
	return nil
}

// Delete exclui um produto; movimentações e entregas caem em cascata (FK).
func (r *ProductRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TotalValue soma quantidade * custo unitário dos produtos com custo definido.
func (r *ProductRepo) TotalValue() (decimal.Decimal, error) {
	var total *decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT SUM(quantity * unit_cost) FROM products WHERE unit_cost IS NOT NULL AND unit_cost > 0`,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total value: %w", err)
	}
	if total == nil {
		return decimal.Zero, nil
	}
	return *total, nil
}
