package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/obrasync/estoque-api/internal/domain"
	"github.com/obrasync/estoque-api/internal/domain/entity"
	"github.com/obrasync/estoque-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

const deliveryColumns = `id, requested_at, source_location, destination_site, product_id, quantity, unit, contact_name, contact_phone, status, created_at`

// DeliveryRepo implementação de DeliveryRepository sobre PostgreSQL (usável com pool ou tx).
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository constrói o adaptador de entregas. Passar pool ou tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// Create persiste uma nova entrega.
func (r *DeliveryRepo) Create(d *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (` + deliveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.RequestedAt, d.SourceLocation, d.DestinationSite, d.ProductID,
		d.Quantity, d.Unit, d.ContactName, d.ContactPhone, d.Status, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// GetByID obtém uma entrega por ID. Devolve nil se não existe.
func (r *DeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE id = $1`
	var d entity.Delivery
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.RequestedAt, &d.SourceLocation, &d.DestinationSite, &d.ProductID,
		&d.Quantity, &d.Unit, &d.ContactName, &d.ContactPhone, &d.Status, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return &d, nil
}

// List lista entregas com nome e SKU do produto, mais recentes primeiro.
// LEFT JOIN: a entrega sobrevive na listagem mesmo com produto excluído.
func (r *DeliveryRepo) List(limit, offset int) ([]*entity.DeliveryListItem, error) {
	query := `
		SELECT e.id, e.requested_at, e.source_location, e.destination_site, e.product_id,
		       e.quantity, e.unit, e.contact_name, e.contact_phone, e.status, e.created_at,
		       p.name, p.sku
		FROM deliveries e
		LEFT JOIN products p ON e.product_id = p.id
		ORDER BY e.requested_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var list []*entity.DeliveryListItem
	for rows.Next() {
		var item entity.DeliveryListItem
		var name, sku *string
		if err := rows.Scan(
			&item.ID, &item.RequestedAt, &item.SourceLocation, &item.DestinationSite, &item.ProductID,
			&item.Quantity, &item.Unit, &item.ContactName, &item.ContactPhone, &item.Status, &item.CreatedAt,
			&name, &sku,
		); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		item.ProductName = "Produto Excluído"
		item.ProductSKU = "-"
		if name != nil {
			item.ProductName = *name
		}
		if sku != nil {
			item.ProductSKU = *sku
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// Update grava todos os campos mutáveis de uma entrega.
func (r *DeliveryRepo) Update(d *entity.Delivery) error {
	query := `
		UPDATE deliveries
		SET requested_at = $2, source_location = $3, destination_site = $4, product_id = $5,
		    quantity = $6, unit = $7, contact_name = $8, contact_phone = $9, status = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		d.ID, d.RequestedAt, d.SourceLocation, d.DestinationSite, d.ProductID,
		d.Quantity, d.Unit, d.ContactName, d.ContactPhone, d.Status,
	)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateDescriptive grava só os campos descritivos de uma entrega. O SQL não
// toca product_id, quantity nem unit: essas colunas pertencem ao remanejo.
func (r *DeliveryRepo) UpdateDescriptive(d *entity.Delivery) error {
	query := `
		UPDATE deliveries
		SET requested_at = $2, source_location = $3, destination_site = $4,
		    contact_name = $5, contact_phone = $6, status = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		d.ID, d.RequestedAt, d.SourceLocation, d.DestinationSite,
		d.ContactName, d.ContactPhone, d.Status,
	)
	if err != nil {
		return fmt.Errorf("update delivery descriptive: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus sobrescreve o rótulo de status de uma entrega.
func (r *DeliveryRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE deliveries SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update delivery status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove uma entrega.
func (r *DeliveryRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM deliveries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
