package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/obrasync/estoque-api/internal/domain/entity"
)

// CreateProductRequest payload de cadastro de produto.
type CreateProductRequest struct {
	SKU         string           `json:"sku"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Unit        string           `json:"unit"`
	Quantity    decimal.Decimal  `json:"quantity"`
	MinQuantity *decimal.Decimal `json:"min_quantity"`
	Location    string           `json:"location"`
	Supplier    string           `json:"supplier"`
	Priority    bool             `json:"priority"`
	UnitCost    *decimal.Decimal `json:"unit_cost"`
}

// UpdateProductRequest payload de edição: campos ausentes não mudam.
// Quantidade e custo não são editáveis por aqui.
type UpdateProductRequest struct {
	SKU         *string          `json:"sku"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Unit        *string          `json:"unit"`
	MinQuantity *decimal.Decimal `json:"min_quantity"`
	Location    *string          `json:"location"`
	Supplier    *string          `json:"supplier"`
	Priority    *bool            `json:"priority"`
}

// ProductResponse representação de um produto na API.
type ProductResponse struct {
	ID          string           `json:"id"`
	SKU         string           `json:"sku"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Category    string           `json:"category,omitempty"`
	Unit        string           `json:"unit"`
	Quantity    decimal.Decimal  `json:"quantity"`
	MinQuantity *decimal.Decimal `json:"min_quantity,omitempty"`
	Location    string           `json:"location,omitempty"`
	Supplier    string           `json:"supplier,omitempty"`
	Priority    bool             `json:"priority"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	LowStock    bool             `json:"low_stock"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

// ToProductResponse converte a entidade para o formato da API.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Unit:        p.Unit,
		Quantity:    p.Quantity,
		MinQuantity: p.MinQuantity,
		Location:    p.Location,
		Supplier:    p.Supplier,
		Priority:    p.Priority,
		UnitCost:    p.UnitCost,
		LowStock:    p.LowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converte uma lista de produtos.
func ToProductResponses(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}

// TotalValueResponse valor total do inventário (soma de quantity * unit_cost).
type TotalValueResponse struct {
	TotalValue decimal.Decimal `json:"total_value"`
}
