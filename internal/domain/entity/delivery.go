package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryStatusPendente é o status inicial de toda entrega.
// O status é um rótulo livre: qualquer valor sobrescreve o anterior.
const DeliveryStatusPendente = "Pendente"

// Delivery representa uma solicitação de entrega que consome estoque
// de um produto para uma obra de destino.
type Delivery struct {
	ID              string
	RequestedAt     time.Time
	SourceLocation  string // local de armazenagem de origem
	DestinationSite string // local da obra de destino
	ProductID       string
	Quantity        decimal.Decimal
	Unit            string // unidade copiada do produto na criação
	ContactName     string
	ContactPhone    string
	Status          string
	CreatedAt       time.Time
}

// DeliveryListItem é a projeção de listagem: entrega + dados do produto.
type DeliveryListItem struct {
	Delivery
	ProductName string
	ProductSKU  string
}
