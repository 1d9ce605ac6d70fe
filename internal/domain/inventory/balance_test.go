package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrasync/estoque-api/internal/domain"
	"github.com/obrasync/estoque-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDelta(t *testing.T) {
	d, err := Delta(entity.MovementTypeEntrada, dec("10"))
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("10")))

	d, err = Delta(entity.MovementTypeSaida, dec("10"))
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("-10")))

	_, err = Delta(entity.MovementTypeAjuste, dec("10"))
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestReverseDelta(t *testing.T) {
	d, err := ReverseDelta(&entity.Movement{Type: entity.MovementTypeSaida, Quantity: dec("7.5")})
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("7.5")))

	d, err = ReverseDelta(&entity.Movement{Type: entity.MovementTypeEntrada, Quantity: dec("3")})
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("-3")))

	_, err = ReverseDelta(&entity.Movement{Type: entity.MovementTypeAjuste, Quantity: dec("3")})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestApply(t *testing.T) {
	cases := []struct {
		name    string
		current string
		movType string
		qty     string
		want    string
	}{
		{"entrada soma", "10", entity.MovementTypeEntrada, "5", "15"},
		{"saida subtrai", "10", entity.MovementTypeSaida, "4", "6"},
		{"saida maior que saldo trava em zero", "10", entity.MovementTypeSaida, "95", "0"},
		{"ajuste define saldo absoluto", "10", entity.MovementTypeAjuste, "42", "42"},
		{"quantidades fracionárias", "2.5", entity.MovementTypeEntrada, "0.75", "3.25"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Apply(dec(tc.current), tc.movType, dec(tc.qty))
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tc.want)), "esperado %s, obtido %s", tc.want, got)
		})
	}

	_, err := Apply(dec("10"), "transferencia", dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestAverageCost(t *testing.T) {
	// 10 un a 2.00 + 10 un a 4.00 = custo médio 3.00
	avg := AverageCost(dec("10"), dec("2"), dec("10"), dec("4"))
	assert.True(t, avg.Equal(dec("3")))

	// saldo zerado: custo médio vira o custo da entrada
	avg = AverageCost(dec("0"), dec("0"), dec("5"), dec("7.5"))
	assert.True(t, avg.Equal(dec("7.5")))

	avg = AverageCost(dec("0"), dec("0"), dec("0"), dec("9"))
	assert.True(t, avg.IsZero())
}

func TestCrossedMinimum(t *testing.T) {
	min := dec("10")

	assert.True(t, CrossedMinimum(dec("100"), dec("5"), &min))
	assert.True(t, CrossedMinimum(dec("100"), dec("10"), &min), "igual ao mínimo também alerta")
	assert.False(t, CrossedMinimum(dec("100"), dec("11"), &min))
	assert.False(t, CrossedMinimum(dec("5"), dec("5"), &min), "saldo inalterado não realerta")
	assert.False(t, CrossedMinimum(dec("100"), dec("5"), nil), "sem mínimo definido não há alerta")
}

func TestClampZero(t *testing.T) {
	assert.True(t, ClampZero(dec("-3")).IsZero())
	assert.True(t, ClampZero(dec("3")).Equal(dec("3")))
}
