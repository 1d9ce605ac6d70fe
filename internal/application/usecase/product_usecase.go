package usecase

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/obrasync/estoque-api/internal/domain"
	"github.com/obrasync/estoque-api/internal/domain/entity"
	"github.com/obrasync/estoque-api/internal/domain/repository"
)

// ProductUseCase CRUD do catálogo de produtos. O saldo (quantity) só é
// escrito aqui na criação: depois disso toda mutação passa pelo fluxo de
// movimentações ou de entregas.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase constrói o caso de uso de produtos.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// CreateProductInput dados para cadastrar um produto.
type CreateProductInput struct {
	SKU         string
	Name        string
	Description string
	Category    string
	Unit        string
	Quantity    decimal.Decimal
	MinQuantity *decimal.Decimal
	Location    string
	Supplier    string
	Priority    bool
	UnitCost    *decimal.Decimal
}

// Create cadastra um produto. SKU vazio ganha um código gerado no formato
// PROD-XXXXXX; SKU repetido retorna ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, input CreateProductInput) (*entity.Product, error) {
	if input.Name == "" || input.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if input.MinQuantity != nil && input.MinQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if input.UnitCost != nil && input.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	sku := input.SKU
	if sku == "" {
		generated, err := generateSKU()
		if err != nil {
			return nil, err
		}
		sku = generated
	}

	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         sku,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Unit:        input.Unit,
		Quantity:    input.Quantity,
		MinQuantity: input.MinQuantity,
		Location:    input.Location,
		Supplier:    input.Supplier,
		Priority:    input.Priority,
		UnitCost:    input.UnitCost,
		CreatedAt:   time.Now(),
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID busca um produto pelo id.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List lista produtos, com busca opcional por nome, SKU ou categoria.
func (uc *ProductUseCase) List(ctx context.Context, search string, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(search, limit, offset)
}

// UpdateProductInput campos descritivos editáveis. Nil não altera.
// Quantidade e custo ficam de fora de propósito: mudam só via movimentação.
type UpdateProductInput struct {
	SKU         *string
	Name        *string
	Description *string
	Category    *string
	Unit        *string
	MinQuantity *decimal.Decimal
	Location    *string
	Supplier    *string
	Priority    *bool
}

// Update edita os dados descritivos de um produto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, input UpdateProductInput) (*entity.Product, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.MinQuantity != nil && input.MinQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if input.SKU != nil && *input.SKU != "" {
		product.SKU = *input.SKU
	}
	if input.Name != nil && *input.Name != "" {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Unit != nil && *input.Unit != "" {
		product.Unit = *input.Unit
	}
	if input.MinQuantity != nil {
		product.MinQuantity = input.MinQuantity
	}
	if input.Location != nil {
		product.Location = *input.Location
	}
	if input.Supplier != nil {
		product.Supplier = *input.Supplier
	}
	if input.Priority != nil {
		product.Priority = *input.Priority
	}

	now := time.Now()
	product.UpdatedAt = &now
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete remove um produto do catálogo. O histórico de movimentações fica;
// entregas do produto passam a listar como "Produto Excluído".
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.productRepo.Delete(id)
}

// TotalValue soma quantity * unit_cost dos produtos com custo cadastrado.
func (uc *ProductUseCase) TotalValue(ctx context.Context) (decimal.Decimal, error) {
	return uc.productRepo.TotalValue()
}

const skuCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateSKU produz um código PROD- seguido de 6 caracteres alfanuméricos.
func generateSKU() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = skuCharset[int(b)%len(skuCharset)]
	}
	return "PROD-" + string(buf), nil
}
