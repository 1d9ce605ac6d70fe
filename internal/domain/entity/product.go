package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto (SKU) do estoque.
// Quantity e UnitCost são mutados apenas via movimentações e entregas,
// nunca por update direto do produto.
type Product struct {
	ID          string
	SKU         string // código único gerado (PROD-XXXXXX)
	Name        string
	Description string
	Category    string
	Unit        string // unidade de medida (un, kg, m³, ...)
	Quantity    decimal.Decimal
	MinQuantity *decimal.Decimal // limite de estoque baixo; nil = sem alerta
	Location    string
	Supplier    string
	Priority    bool
	UnitCost    *decimal.Decimal // custo médio ponderado; nil = sem custo informado
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// LowStock indica se a quantidade atual está no limite mínimo ou abaixo dele.
func (p *Product) LowStock() bool {
	return p.MinQuantity != nil && p.Quantity.LessThanOrEqual(*p.MinQuantity)
}
