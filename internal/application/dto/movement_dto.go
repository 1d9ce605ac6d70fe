package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/obrasync/estoque-api/internal/domain/entity"
)

// RegisterMovementRequest payload para registrar uma movimentação.
// Para ajuste, quantity é o saldo absoluto final do produto.
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id"`
	Type      string           `json:"type"` // entrada, saida, ajuste
	Quantity  decimal.Decimal  `json:"quantity"`
	Reason    string           `json:"reason"`
	UnitCost  *decimal.Decimal `json:"unit_cost"` // só em entrada: recalcula custo médio
}

// EditMovementRequest payload de correção de movimentação. Campos ausentes
// não mudam; ajustes aceitam apenas reason.
type EditMovementRequest struct {
	Quantity *decimal.Decimal `json:"quantity"`
	Reason   *string          `json:"reason"`
}

// MovementResponse representação de uma movimentação na API.
type MovementResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Type       string          `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reason     string          `json:"reason,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	DeliveryID *string         `json:"delivery_id,omitempty"`
}

// ToMovementResponse converte a entidade para o formato da API.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		Reason:     m.Reason,
		CreatedAt:  m.CreatedAt,
		DeliveryID: m.DeliveryID,
	}
}

// ToMovementResponses converte uma lista de movimentações.
func ToMovementResponses(movements []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, ToMovementResponse(m))
	}
	return out
}

// MovementResultResponse movimentação gravada mais a foto do produto com o
// saldo pós-operação. Product fica ausente quando a operação não tocou o saldo.
type MovementResultResponse struct {
	Movement MovementResponse `json:"movement"`
	Product  *ProductResponse `json:"product,omitempty"`
}
