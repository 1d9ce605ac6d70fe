package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/obrasync/estoque-api/internal/domain"
	"github.com/obrasync/estoque-api/internal/domain/entity"
)

// Funções puras de saldo: todo cálculo de quantidade do núcleo passa por aqui
// para que entradas, saídas, ajustes e estornos usem exatamente a mesma
// aritmética.

// Delta devolve o efeito de entrada/saida sobre o saldo: entrada +q, saida -q.
// Ajuste não é um delta (é atribuição absoluta) e retorna ErrInvalidOperation.
func Delta(movType string, quantity decimal.Decimal) (decimal.Decimal, error) {
	switch movType {
	case entity.MovementTypeEntrada:
		return quantity, nil
	case entity.MovementTypeSaida:
		return quantity.Neg(), nil
	default:
		return decimal.Zero, domain.ErrInvalidOperation
	}
}

// ReverseDelta devolve o delta que desfaz uma movimentação:
// entrada de Q reverte como -Q, saída de Q como +Q. Ajuste não é reversível.
func ReverseDelta(m *entity.Movement) (decimal.Decimal, error) {
	d, err := Delta(m.Type, m.Quantity)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Neg(), nil
}

// ClampZero trava o saldo no piso zero.
func ClampZero(q decimal.Decimal) decimal.Decimal {
	if q.IsNegative() {
		return decimal.Zero
	}
	return q
}

// Apply calcula o novo saldo após uma movimentação, com clamp em zero.
// Para ajuste a quantidade é o próprio saldo final.
func Apply(current decimal.Decimal, movType string, quantity decimal.Decimal) (decimal.Decimal, error) {
	if movType == entity.MovementTypeAjuste {
		return ClampZero(quantity), nil
	}
	d, err := Delta(movType, quantity)
	if err != nil {
		return decimal.Zero, err
	}
	return ClampZero(current.Add(d)), nil
}

// AverageCost recalcula o custo médio ponderado após uma entrada:
// ((saldoAtual * custoAtual) + (qtdEntrada * custoEntrada)) / (saldoAtual + qtdEntrada)
func AverageCost(currentQty, currentCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	total := currentQty.Add(inQty)
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	sum := currentQty.Mul(currentCost).Add(inQty.Mul(inCost))
	return sum.Div(total)
}

// CrossedMinimum informa se o novo saldo exige alerta de estoque baixo:
// limite definido, saldo novo no limite ou abaixo, e saldo de fato alterado.
func CrossedMinimum(previous, current decimal.Decimal, minimum *decimal.Decimal) bool {
	if minimum == nil {
		return false
	}
	return current.LessThanOrEqual(*minimum) && !current.Equal(previous)
}
