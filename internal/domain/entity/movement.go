package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimentação de estoque.
const (
	MovementTypeEntrada = "entrada" // entrada (soma ao saldo)
	MovementTypeSaida   = "saida"   // saída (subtrai do saldo)
	MovementTypeAjuste  = "ajuste"  // ajuste absoluto (define o saldo)
)

// ValidMovementType informa se o tipo é um dos três reconhecidos.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntrada || t == MovementTypeSaida || t == MovementTypeAjuste
}

// Movement é o registro de auditoria de uma alteração de saldo.
// Quantity é sempre positiva; o sinal é dado pelo tipo. Para ajuste,
// Quantity é o saldo absoluto definido, não um delta.
// Um ajuste nunca pode ser excluído nem ter a quantidade editada;
// a correção de um ajuste é um novo ajuste.
type Movement struct {
	ID         string
	ProductID  string
	Type       string
	Quantity   decimal.Decimal
	Reason     string
	CreatedAt  time.Time
	DeliveryID *string // referência à entrega que originou a movimentação
}
