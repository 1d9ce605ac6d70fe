package delivery

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinv "github.com/obrasync/estoque-api/internal/application/inventory"
	"github.com/obrasync/estoque-api/internal/domain"
	"github.com/obrasync/estoque-api/internal/domain/entity"
	"github.com/obrasync/estoque-api/internal/domain/inventory"
	"github.com/obrasync/estoque-api/internal/domain/repository"
)

// UseCase orquestra o ciclo de vida de entregas logísticas. Toda entrega
// nasce atrelada a uma movimentação de saída que debita o produto; a exclusão
// devolve o saldo via estorno (entrada compensatória), preservando o
// histórico original.
type UseCase struct {
	txRunner     TxRunner
	deliveryRepo repository.DeliveryRepository // atado ao pool, leituras e patches sem efeito no saldo
	alerter      *appinv.Alerter
}

// NewUseCase constrói o caso de uso de entregas.
func NewUseCase(txRunner TxRunner, deliveryRepo repository.DeliveryRepository, alerter *appinv.Alerter) *UseCase {
	return &UseCase{txRunner: txRunner, deliveryRepo: deliveryRepo, alerter: alerter}
}

// CreateInput dados para agendar uma entrega.
type CreateInput struct {
	RequestedAt     *time.Time
	SourceLocation  string
	DestinationSite string
	ProductID       string
	Quantity        decimal.Decimal
	ContactName     string
	ContactPhone    string
}

// Create agenda a entrega e debita o estoque na mesma transação. Diferente de
// uma saída avulsa, estoque insuficiente aqui é rejeição dura: não se promete
// entregar o que não existe.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*entity.Delivery, error) {
	if input.ProductID == "" || input.DestinationSite == "" || !input.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.Delivery
	var debited *entity.Product
	var previousQty decimal.Decimal

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		deliveryRepo repository.DeliveryRepository,
	) error {
		product, err := productRepo.GetByIDForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Quantity.LessThan(input.Quantity) {
			return domain.ErrInsufficientStock
		}
		previousQty = product.Quantity

		now := time.Now()
		requestedAt := now
		if input.RequestedAt != nil {
			requestedAt = *input.RequestedAt
		}

		dlv := &entity.Delivery{
			ID:              uuid.New().String(),
			RequestedAt:     requestedAt,
			SourceLocation:  input.SourceLocation,
			DestinationSite: input.DestinationSite,
			ProductID:       product.ID,
			Quantity:        input.Quantity,
			Unit:            product.Unit,
			ContactName:     input.ContactName,
			ContactPhone:    input.ContactPhone,
			Status:          entity.DeliveryStatusPendente,
			CreatedAt:       now,
		}
		if err := deliveryRepo.Create(dlv); err != nil {
			return err
		}

		newQty := product.Quantity.Sub(input.Quantity)
		if err := productRepo.UpdateBalance(product.ID, newQty, nil, now); err != nil {
			return err
		}

		movement := &entity.Movement{
			ID:         uuid.New().String(),
			ProductID:  product.ID,
			Type:       entity.MovementTypeSaida,
			Quantity:   input.Quantity,
			Reason:     "Entrega logística p/ " + input.DestinationSite,
			CreatedAt:  now,
			DeliveryID: &dlv.ID,
		}
		if err := movRepo.Create(movement); err != nil {
			return err
		}

		product.Quantity = newQty
		product.UpdatedAt = &now
		created = dlv
		debited = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.alerter.Dispatch(debited, previousQty)
	return created, nil
}

// UpdateFieldsInput campos descritivos de uma entrega. Nil não altera.
type UpdateFieldsInput struct {
	RequestedAt     *time.Time
	SourceLocation  *string
	DestinationSite *string
	ContactName     *string
	ContactPhone    *string
	Status          *string
}

// UpdateFields edita dados descritivos da entrega, sem efeito no saldo.
// Produto e quantidade mudam só pelo Reassign: a escrita passa por
// UpdateDescriptive, que não toca essas colunas, então um remanejo comitado
// entre a leitura e a gravação do patch nunca é revertido.
func (uc *UseCase) UpdateFields(ctx context.Context, id string, input UpdateFieldsInput) (*entity.Delivery, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	dlv, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dlv == nil {
		return nil, domain.ErrNotFound
	}

	if input.RequestedAt != nil {
		dlv.RequestedAt = *input.RequestedAt
	}
	if input.SourceLocation != nil {
		dlv.SourceLocation = *input.SourceLocation
	}
	if input.DestinationSite != nil {
		dlv.DestinationSite = *input.DestinationSite
	}
	if input.ContactName != nil {
		dlv.ContactName = *input.ContactName
	}
	if input.ContactPhone != nil {
		dlv.ContactPhone = *input.ContactPhone
	}
	if input.Status != nil && *input.Status != "" {
		dlv.Status = *input.Status
	}
	if err := uc.deliveryRepo.UpdateDescriptive(dlv); err != nil {
		return nil, err
	}
	// Releitura: produto/quantidade podem ter mudado por remanejo concorrente.
	return uc.deliveryRepo.GetByID(id)
}

// UpdateStatus muda o rótulo de status da entrega. O status é texto livre da
// operação (Pendente, Em Rota, Entregue...) e não tem efeito no estoque.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, status string) error {
	if id == "" || status == "" {
		return domain.ErrInvalidInput
	}
	return uc.deliveryRepo.UpdateStatus(id, status)
}

// ReassignInput novo produto e/ou nova quantidade para uma entrega existente.
type ReassignInput struct {
	ProductID *string
	Quantity  *decimal.Decimal
}

// Reassign troca o produto e/ou a quantidade de uma entrega, remanejando o
// débito de estoque: o produto antigo recebe de volta o que a entrega segurava
// e o novo é debitado, tudo sob bloqueio de linha na mesma transação. Com dois
// produtos envolvidos, as linhas são bloqueadas em ordem crescente de id para
// evitar deadlock entre remanejos concorrentes. A movimentação de saída
// atrelada é reescrita para refletir o novo débito.
func (uc *UseCase) Reassign(ctx context.Context, id string, input ReassignInput) (*entity.Delivery, error) {
	if id == "" || (input.ProductID == nil && input.Quantity == nil) {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity != nil && !input.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if input.ProductID != nil && *input.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Delivery
	var touched []dispatchTarget

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		deliveryRepo repository.DeliveryRepository,
	) error {
		dlv, err := deliveryRepo.GetByID(id)
		if err != nil {
			return err
		}
		if dlv == nil {
			return domain.ErrNotFound
		}

		newProductID := dlv.ProductID
		if input.ProductID != nil {
			newProductID = *input.ProductID
		}
		newQty := dlv.Quantity
		if input.Quantity != nil {
			newQty = *input.Quantity
		}
		if newProductID == dlv.ProductID && newQty.Equal(dlv.Quantity) {
			updated = dlv
			return nil
		}

		now := time.Now()
		touched = touched[:0]

		var target *entity.Product
		if newProductID == dlv.ProductID {
			product, err := productRepo.GetByIDForUpdate(dlv.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			// O saldo disponível inclui o que esta entrega já segura.
			available := product.Quantity.Add(dlv.Quantity)
			if available.LessThan(newQty) {
				return domain.ErrInsufficientStock
			}
			prev := product.Quantity
			product.Quantity = available.Sub(newQty)
			if err := productRepo.UpdateBalance(product.ID, product.Quantity, nil, now); err != nil {
				return err
			}
			product.UpdatedAt = &now
			target = product
			touched = append(touched, dispatchTarget{product, prev})
		} else {
			oldP, newP, err := lockPair(productRepo, dlv.ProductID, newProductID)
			if err != nil {
				return err
			}
			if newP == nil {
				return domain.ErrNotFound
			}
			if newP.Quantity.LessThan(newQty) {
				return domain.ErrInsufficientStock
			}

			// Crédito ao produto antigo (se ainda existir no catálogo).
			if oldP != nil {
				prev := oldP.Quantity
				oldP.Quantity = oldP.Quantity.Add(dlv.Quantity)
				if err := productRepo.UpdateBalance(oldP.ID, oldP.Quantity, nil, now); err != nil {
					return err
				}
				oldP.UpdatedAt = &now
				touched = append(touched, dispatchTarget{oldP, prev})
			}

			prev := newP.Quantity
			newP.Quantity = newP.Quantity.Sub(newQty)
			if err := productRepo.UpdateBalance(newP.ID, newP.Quantity, nil, now); err != nil {
				return err
			}
			newP.UpdatedAt = &now
			target = newP
			touched = append(touched, dispatchTarget{newP, prev})
		}

		dlv.ProductID = newProductID
		dlv.Quantity = newQty
		dlv.Unit = target.Unit
		if err := deliveryRepo.Update(dlv); err != nil {
			return err
		}

		movement, err := movRepo.GetByDeliveryID(dlv.ID)
		if err != nil {
			return err
		}
		if movement != nil {
			movement.ProductID = newProductID
			movement.Quantity = newQty
			movement.Reason = "Entrega logística p/ " + dlv.DestinationSite
			if err := movRepo.Update(movement); err != nil {
				return err
			}
		}

		updated = dlv
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, t := range touched {
		uc.alerter.Dispatch(t.product, t.previousQty)
	}
	return updated, nil
}

type dispatchTarget struct {
	product     *entity.Product
	previousQty decimal.Decimal
}

// lockPair bloqueia as linhas de dois produtos em ordem crescente de id e
// devolve (antigo, novo). O antigo pode ser nil se foi excluído do catálogo.
func lockPair(productRepo repository.ProductRepository, oldID, newID string) (*entity.Product, *entity.Product, error) {
	first, second := oldID, newID
	if second < first {
		first, second = second, first
	}
	firstP, err := productRepo.GetByIDForUpdate(first)
	if err != nil {
		return nil, nil, err
	}
	secondP, err := productRepo.GetByIDForUpdate(second)
	if err != nil {
		return nil, nil, err
	}
	if first == oldID {
		return firstP, secondP, nil
	}
	return secondP, firstP, nil
}

// Delete cancela a entrega devolvendo o saldo por estorno: uma entrada
// compensatória é lançada e a saída original fica no histórico, agora
// desvinculada. O saldo devolvido sofre clamp em zero como qualquer reversão.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}

	var restored *entity.Product
	var previousQty decimal.Decimal

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		deliveryRepo repository.DeliveryRepository,
	) error {
		dlv, err := deliveryRepo.GetByID(id)
		if err != nil {
			return err
		}
		if dlv == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		product, err := productRepo.GetByIDForUpdate(dlv.ProductID)
		if err != nil {
			return err
		}
		// Produto pode ter sido excluído depois da entrega; o estorno então
		// não tem onde creditar e a entrega só é removida.
		if product != nil {
			previousQty = product.Quantity
			newQty := inventory.ClampZero(product.Quantity.Add(dlv.Quantity))
			if err := productRepo.UpdateBalance(product.ID, newQty, nil, now); err != nil {
				return err
			}

			estorno := &entity.Movement{
				ID:        uuid.New().String(),
				ProductID: product.ID,
				Type:      entity.MovementTypeEntrada,
				Quantity:  dlv.Quantity,
				Reason:    "Estorno entrega p/ " + dlv.DestinationSite,
				CreatedAt: now,
			}
			if err := movRepo.Create(estorno); err != nil {
				return err
			}

			product.Quantity = newQty
			product.UpdatedAt = &now
			restored = product
		}

		// Desvincular a saída original antes de apagar a entrega preserva o
		// histórico e evita o cascade da FK.
		if err := movRepo.ClearDeliveryRef(dlv.ID); err != nil {
			return err
		}
		return deliveryRepo.Delete(dlv.ID)
	})
	if err != nil {
		return err
	}

	uc.alerter.Dispatch(restored, previousQty)
	return nil
}

// GetByID busca uma entrega pelo id.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	dlv, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dlv == nil {
		return nil, domain.ErrNotFound
	}
	return dlv, nil
}

// List lista entregas com nome e SKU do produto resolvidos.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.DeliveryListItem, error) {
	return uc.deliveryRepo.List(limit, offset)
}
