package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/obrasync/estoque-api/internal/domain/entity"
	"github.com/obrasync/estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, type, quantity, reason, created_at, delivery_id`

// MovementRepo implementação de MovementRepository sobre PostgreSQL (usável com pool ou tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository constrói o adaptador de movimentações. Passar pool ou tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste uma movimentação.
func (r *MovementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.Reason, m.CreatedAt, m.DeliveryID,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtém uma movimentação por ID. Devolve nil se não existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get movement")
}

// GetByDeliveryID obtém a movimentação vinculada a uma entrega. Devolve nil se não existe.
func (r *MovementRepo) GetByDeliveryID(deliveryID string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE delivery_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, deliveryID), "get movement by delivery")
}

func (r *MovementRepo) scanOne(row pgx.Row, op string) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Reason, &m.CreatedAt, &m.DeliveryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

// List lista movimentações, mais recentes primeiro, com filtro opcional por produto.
func (r *MovementRepo) List(productID string, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements`
	args := []any{}
	pos := 1
	if productID != "" {
		query += fmt.Sprintf(" WHERE product_id = $%d", pos)
		args = append(args, productID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Reason, &m.CreatedAt, &m.DeliveryID); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update grava produto, quantidade, motivo e vínculo de entrega de uma movimentação.
func (r *MovementRepo) Update(m *entity.Movement) error {
	query := `
		UPDATE movements SET product_id = $2, quantity = $3, reason = $4, delivery_id = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, m.ID, m.ProductID, m.Quantity, m.Reason, m.DeliveryID)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	return nil
}

// Delete remove uma movimentação.
func (r *MovementRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

// ClearDeliveryRef desvincula as movimentações de uma entrega antes da sua
// exclusão, preservando o histórico de auditoria.
func (r *MovementRepo) ClearDeliveryRef(deliveryID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE movements SET delivery_id = NULL WHERE delivery_id = $1`, deliveryID)
	if err != nil {
		return fmt.Errorf("clear movement delivery ref: %w", err)
	}
	return nil
}
