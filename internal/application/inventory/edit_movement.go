package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/obrasync/estoque-api/internal/domain"
	"github.com/obrasync/estoque-api/internal/domain/entity"
	"github.com/obrasync/estoque-api/internal/domain/inventory"
	"github.com/obrasync/estoque-api/internal/domain/repository"
)

// EditMovementInput campos editáveis de uma movimentação. Campos nil não mudam.
type EditMovementInput struct {
	Quantity *decimal.Decimal
	Reason   *string
}

// Edit corrige uma movimentação já lançada. Mudar a quantidade refaz o efeito
// no saldo: desfaz o delta antigo e aplica o novo sob bloqueio de linha. Se o
// saldo recalculado ficar negativo a transação é abortada com
// ErrInsufficientStock (sem clamp: correção retroativa não inventa estoque).
// Ajustes aceitam apenas edição do motivo.
func (uc *MovementUseCase) Edit(ctx context.Context, id string, input EditMovementInput) (*MovementResult, error) {
	if id == "" || (input.Quantity == nil && input.Reason == nil) {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity != nil && !input.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	var result MovementResult
	var previousQty decimal.Decimal
	var qtyChanged bool

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

		qtyChanged = input.Quantity != nil && !input.Quantity.Equal(movement.Quantity)
		if qtyChanged && movement.Type == entity.MovementTypeAjuste {
			return domain.ErrInvalidOperation
		}

		if qtyChanged {
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
			forward, err := inventory.Delta(movement.Type, *input.Quantity)
			if err != nil {
				return err
			}
			newQty := product.Quantity.Add(reverse).Add(forward)
			if newQty.IsNegative() {
				return domain.ErrInsufficientStock
			}

			now := time.Now()
			if err := productRepo.UpdateBalance(product.ID, newQty, nil, now); err != nil {
				return err
			}
			product.Quantity = newQty
			product.UpdatedAt = &now
			result.Product = product

			// Movimentação atrelada a entrega: a quantidade da entrega acompanha.
			if movement.DeliveryID != nil {
				dlv, err := deliveryRepo.GetByID(*movement.DeliveryID)
				if err != nil {
					return err
				}
				if dlv != nil {
					dlv.Quantity = *input.Quantity
					if err := deliveryRepo.Update(dlv); err != nil {
						return err
					}
				}
			}

			movement.Quantity = *input.Quantity
		}

		if input.Reason != nil {
			movement.Reason = *input.Reason
		}
		if err := movRepo.Update(movement); err != nil {
			return err
		}
		result.Movement = movement
		return nil
	})
	if err != nil {
		return nil, err
	}

	if qtyChanged {
		uc.alerter.Dispatch(result.Product, previousQty)
	}
	return &result, nil
}
