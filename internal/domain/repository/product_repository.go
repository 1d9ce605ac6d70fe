package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/obrasync/estoque-api/internal/domain/entity"
)

// ProductRepository porta de persistência para produtos.
// GetByIDForUpdate e UpdateBalance formam o ledger do produto: o caller
// bloqueia a linha, decide o novo saldo e grava — as regras de negócio
// (validação, clamp, custo médio) ficam nos casos de uso.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDForUpdate obtém o produto com SELECT ... FOR UPDATE. Deve ser a
	// primeira chamada de ledger de toda operação que muta saldo, dentro da
	// transação ativa. Devolve nil se o produto não existe.
	GetByIDForUpdate(id string) (*entity.Product, error)
	List(search string, limit, offset int) ([]*entity.Product, error)
	// Update grava apenas campos descritivos; nunca quantidade nem custo.
	Update(product *entity.Product) error
	// UpdateBalance grava quantidade (e opcionalmente custo médio) e carimba
	// updated_at. Sem validação: o caller já segura o lock da linha.
	UpdateBalance(id string, quantity decimal.Decimal, unitCost *decimal.Decimal, updatedAt time.Time) error
	Delete(id string) error
	// TotalValue soma quantidade * custo unitário dos produtos com custo.
	TotalValue() (decimal.Decimal, error)
}
