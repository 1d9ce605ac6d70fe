package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/obrasync/estoque-api/internal/domain/entity"
)

// CreateDeliveryRequest payload para agendar uma entrega.
type CreateDeliveryRequest struct {
	RequestedAt     *time.Time      `json:"requested_at"`
	SourceLocation  string          `json:"source_location"`
	DestinationSite string          `json:"destination_site"`
	ProductID       string          `json:"product_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	ContactName     string          `json:"contact_name"`
	ContactPhone    string          `json:"contact_phone"`
}

// UpdateDeliveryRequest payload de edição descritiva. Campos ausentes não mudam.
type UpdateDeliveryRequest struct {
	RequestedAt     *time.Time `json:"requested_at"`
	SourceLocation  *string    `json:"source_location"`
	DestinationSite *string    `json:"destination_site"`
	ContactName     *string    `json:"contact_name"`
	ContactPhone    *string    `json:"contact_phone"`
	Status          *string    `json:"status"`
}

// UpdateDeliveryStatusRequest payload de mudança de status.
type UpdateDeliveryStatusRequest struct {
	Status string `json:"status"`
}

// ReassignDeliveryRequest troca de produto e/ou quantidade da entrega.
type ReassignDeliveryRequest struct {
	ProductID *string          `json:"product_id"`
	Quantity  *decimal.Decimal `json:"quantity"`
}

// DeliveryResponse representação de uma entrega na API.
type DeliveryResponse struct {
	ID              string          `json:"id"`
	RequestedAt     time.Time       `json:"requested_at"`
	SourceLocation  string          `json:"source_location,omitempty"`
	DestinationSite string          `json:"destination_site"`
	ProductID       string          `json:"product_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	ContactName     string          `json:"contact_name,omitempty"`
	ContactPhone    string          `json:"contact_phone,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToDeliveryResponse converte a entidade para o formato da API.
func ToDeliveryResponse(d *entity.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:              d.ID,
		RequestedAt:     d.RequestedAt,
		SourceLocation:  d.SourceLocation,
		DestinationSite: d.DestinationSite,
		ProductID:       d.ProductID,
		Quantity:        d.Quantity,
		Unit:            d.Unit,
		ContactName:     d.ContactName,
		ContactPhone:    d.ContactPhone,
		Status:          d.Status,
		CreatedAt:       d.CreatedAt,
	}
}

// DeliveryListItemResponse entrega com nome e SKU do produto resolvidos.
type DeliveryListItemResponse struct {
	DeliveryResponse
	ProductName string `json:"product_name"`
	ProductSKU  string `json:"product_sku"`
}

// ToDeliveryListResponses converte os itens de listagem.
func ToDeliveryListResponses(items []*entity.DeliveryListItem) []DeliveryListItemResponse {
	out := make([]DeliveryListItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, DeliveryListItemResponse{
			DeliveryResponse: ToDeliveryResponse(&it.Delivery),
			ProductName:      it.ProductName,
			ProductSKU:       it.ProductSKU,
		})
	}
	return out
}
