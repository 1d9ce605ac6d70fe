package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/obrasync/estoque-api/internal/domain"
	"github.com/obrasync/estoque-api/internal/domain/entity"
	"github.com/obrasync/estoque-api/internal/domain/inventory"
	"github.com/obrasync/estoque-api/internal/domain/repository"
)

// Delete remove uma movimentação e desfaz seu efeito no saldo do produto, com
// clamp em zero. Ajustes não podem ser excluídos (o saldo anterior ao ajuste
// não é recuperável). Se a movimentação pertence a uma entrega, a entrega é
// removida junto: o débito dela já está sendo desfeito aqui.
func (uc *MovementUseCase) Delete(ctx context.Context, id string) (*entity.Product, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Product
	var previousQty decimal.Decimal

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		deliveryRepo repository.DeliveryRepository,
	) error {
		movement, err := movRepo.GetByID(id)
		if err != nil {
			return err
		}
		if movement == nil {
			return domain.ErrNotFound
		}
		if movement.Type == entity.MovementTypeAjuste {
			return domain.ErrInvalidOperation
		}

		product, err := productRepo.GetByIDForUpdate(movement.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		previousQty = product.Quantity

		reverse, err := inventory.ReverseDelta(movement)
		if err != nil {
			return err
		}
		newQty := inventory.ClampZero(product.Quantity.Add(reverse))

		now := time.Now()
		if err := productRepo.UpdateBalance(product.ID, newQty, nil, now); err != nil {
			return err
		}

		if movement.DeliveryID != nil {
			if err := deliveryRepo.Delete(*movement.DeliveryID); err != nil && !errors.Is(err, domain.ErrNotFound) {
				return err
			}
		}
		if err := movRepo.Delete(movement.ID); err != nil {
			return err
		}

		product.Quantity = newQty
		product.UpdatedAt = &now
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.alerter.Dispatch(updated, previousQty)
	return updated, nil
}

// List lista movimentações (opcionalmente filtradas por produto) fora de
// transação, direto no pool.
func (uc *MovementUseCase) List(productID string, limit, offset int) ([]*entity.Movement, error) {
	return uc.movRepo.List(productID, limit, offset)
}
