package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/obrasync/estoque-api/internal/domain"
	"github.com/obrasync/estoque-api/internal/domain/entity"
	"github.com/obrasync/estoque-api/internal/domain/inventory"
	"github.com/obrasync/estoque-api/internal/domain/repository"
)

// MovementUseCase registra, edita e exclui movimentações de forma transacional
// (entrada/saida/ajuste) com bloqueio de linha (SELECT FOR UPDATE) e
// Commit/Rollback. É o único caminho, junto com o fluxo de entregas, que muta
// o saldo de um produto.
type MovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository // atado ao pool, usado só em leituras
	alerter  *Alerter
}

// NewMovementUseCase constrói o caso de uso.
func NewMovementUseCase(txRunner TxRunner, movRepo repository.MovementRepository, alerter *Alerter) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, movRepo: movRepo, alerter: alerter}
}

// RegisterMovementInput entrada para registrar uma movimentação.
// Quantity é sempre positiva; para ajuste representa o saldo absoluto final.
// UnitCost só vale para entrada: recalcula o custo médio ponderado do produto.
type RegisterMovementInput struct {
	ProductID string
	Type      string
	Quantity  decimal.Decimal
	Reason    string
	UnitCost  *decimal.Decimal
}

// MovementResult resultado de uma mutação: a movimentação e a foto do produto
// já com o saldo pós-operação.
type MovementResult struct {
	Movement *entity.Movement
	Product  *entity.Product
}

// Register inicia a transação, bloqueia a linha do produto, aplica o novo
// saldo (com clamp em zero), grava a movimentação e faz Commit ou Rollback.
// O alerta de estoque baixo é despachado apenas após o commit.
func (uc *MovementUseCase) Register(ctx context.Context, input RegisterMovementInput) (*MovementResult, error) {
	if input.ProductID == "" || !entity.ValidMovementType(input.Type) || !input.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if input.UnitCost != nil && input.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var result MovementResult
	var previousQty decimal.Decimal

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		_ repository.DeliveryRepository,
	) error {
		product, err := productRepo.GetByIDForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		previousQty = product.Quantity

		newQty, err := inventory.Apply(product.Quantity, input.Type, input.Quantity)
		if err != nil {
			return err
		}

		// Entrada com custo informado recalcula o custo médio ponderado.
		var newCost *decimal.Decimal
		if input.Type == entity.MovementTypeEntrada && input.UnitCost != nil {
			current := decimal.Zero
			if product.UnitCost != nil {
				current = *product.UnitCost
			}
			avg := inventory.AverageCost(product.Quantity, current, input.Quantity, *input.UnitCost)
			newCost = &avg
		}

		now := time.Now()
		if err := productRepo.UpdateBalance(product.ID, newQty, newCost, now); err != nil {
			return err
		}

		movement := &entity.Movement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Type:      input.Type,
			Quantity:  input.Quantity,
			Reason:    input.Reason,
			CreatedAt: now,
		}
		if err := movRepo.Create(movement); err != nil {
			return err
		}

		product.Quantity = newQty
		if newCost != nil {
			product.UnitCost = newCost
		}
		product.UpdatedAt = &now
		result = MovementResult{Movement: movement, Product: product}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.alerter.Dispatch(result.Product, previousQty)
	return &result, nil
}
