package repository

import "github.com/obrasync/estoque-api/internal/domain/entity"

// MovementRepository porta de persistência para movimentações.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// GetByDeliveryID localiza a movimentação de saída vinculada a uma entrega.
	GetByDeliveryID(deliveryID string) (*entity.Movement, error)
	List(productID string, limit, offset int) ([]*entity.Movement, error)
	Update(movement *entity.Movement) error
	Delete(id string) error
	// ClearDeliveryRef desvincula as movimentações de uma entrega (delivery_id
	// = NULL) para que o histórico sobreviva à exclusão da entrega.
	ClearDeliveryRef(deliveryID string) error
}
