package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrasync/estoque-api/internal/application/apptest"
	"github.com/obrasync/estoque-api/internal/application/inventory"
	"github.com/obrasync/estoque-api/internal/domain"
	"github.com/obrasync/estoque-api/internal/domain/entity"
	"github.com/obrasync/estoque-api/pkg/logger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string { return &s }

func newKit(t *testing.T) (*apptest.MemStore, *inventory.MovementUseCase, *apptest.CaptureNotifier) {
	t.Helper()
	store := apptest.NewMemStore()
	notifier := &apptest.CaptureNotifier{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	alerter := inventory.NewAlerter(notifier, nil, log)
	uc := inventory.NewMovementUseCase(&apptest.TxRunner{S: store}, &apptest.MovementRepo{S: store}, alerter)
	return store, uc, notifier
}

func seedProduct(store *apptest.MemStore, id, qty string, min, cost *decimal.Decimal) {
	store.Products[id] = &entity.Product{
		ID:          id,
		SKU:         "PROD-" + id,
		Name:        "Produto " + id,
		Unit:        "un",
		Quantity:    dec(qty),
		MinQuantity: min,
		UnitCost:    cost,
		CreatedAt:   time.Now(),
	}
}

func TestRegisterSaidaDebitaEAlerta(t *testing.T) {
	store, uc, notifier := newKit(t)
	seedProduct(store, "p1", "100", decPtr("10"), nil)

	result, err := uc.Register(context.Background(), inventory.RegisterMovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeSaida,
		Quantity:  dec("95"),
		Reason:    "consumo obra",
	})
	require.NoError(t, err)
	assert.True(t, result.Product.Quantity.Equal(dec("5")))
	assert.True(t, store.Products["p1"].Quantity.Equal(dec("5")))

	// movimentação persistida
	mov := store.Movements[result.Movement.ID]
	require.NotNil(t, mov)
	assert.Equal(t, entity.MovementTypeSaida, mov.Type)
	assert.True(t, mov.Quantity.Equal(dec("95")))

	// alerta emitido depois do commit, com o saldo novo
	assert.Eventually(t, func() bool { return notifier.Count() == 1 }, time.Second, 10*time.Millisecond)
	snap, ok := notifier.Last()
	require.True(t, ok)
	assert.Equal(t, "p1", snap.ID)
	assert.True(t, snap.Quantity.Equal(dec("5")))
}

func TestRegisterSaidaMaiorQueSaldoTravaEmZero(t *testing.T) {
	store, uc, _ := newKit(t)
	seedProduct(store, "p1", "50", nil, nil)

	result, err := uc.Register(context.Background(), inventory.RegisterMovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeSaida,
		Quantity:  dec("95"),
	})
	require.NoError(t, err)
	assert.True(t, result.Product.Quantity.IsZero())
	assert.True(t, store.Products["p1"].Quantity.IsZero())
	// a movimentação registra a quantidade pedida, não a debitada
	assert.True(t, result.Movement.Quantity.Equal(dec("95")))
}

func TestRegisterEntradaRecalculaCustoMedio(t *testing.T) {
	store, uc, _ := newKit(t)
	seedProduct(store, "p1", "10", nil, decPtr("2"))

	result, err := uc.Register(context.Background(), inventory.RegisterMovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeEntrada,
		Quantity:  dec("10"),
		UnitCost:  decPtr("4"),
	})
	require.NoError(t, err)
	assert.True(t, result.Product.Quantity.Equal(dec("20")))
	require.NotNil(t, store.Products["p1"].UnitCost)
	assert.True(t, store.Products["p1"].UnitCost.Equal(dec("3")))
}

func TestRegisterEntradaSemCustoNaoMexeNoCusto(t *testing.T) {
	store, uc, _ := newKit(t)
	seedProduct(store, "p1", "10", nil, decPtr("2"))

	_, err := uc.Register(context.Background(), inventory.RegisterMovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeEntrada,
		Quantity:  dec("5"),
	})
	require.NoError(t, err)
	assert.True(t, store.Products["p1"].UnitCost.Equal(dec("2")))
	assert.True(t, store.Products["p1"].Quantity.Equal(dec("15")))
}

func TestRegisterAjusteDefineSaldoAbsoluto(t *testing.T) {
	store, uc, _ := newKit(t)
	seedProduct(store, "p1", "37", nil, nil)

	result, err := uc.Register(context.Background(), inventory.RegisterMovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeAjuste,
		Quantity:  dec("12"),
		Reason:    "contagem física",
	})
	require.NoError(t, err)
	assert.True(t, result.Product.Quantity.Equal(dec("12")))
	assert.True(t, store.Products["p1"].Quantity.Equal(dec("12")))
}

func TestRegisterAjusteMesmoValorCarimbaAtualizacao(t *testing.T) {
	store, uc, notifier := newKit(t)
	seedProduct(store, "p1", "12", decPtr("20"), nil)
	require.Nil(t, store.Products["p1"].UpdatedAt)

	result, err := uc.Register(context.Background(), inventory.RegisterMovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeAjuste,
		Quantity:  dec("12"),
		Reason:    "contagem confirmou o saldo",
	})
	require.NoError(t, err)

	// o saldo não muda, mas a gravação acontece e carimba updated_at
	assert.True(t, store.Products["p1"].Quantity.Equal(dec("12")))
	require.NotNil(t, store.Products["p1"].UpdatedAt)
	assert.Contains(t, store.Movements, result.Movement.ID)

	// saldo igual não cruza o mínimo, mesmo estando abaixo dele
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, notifier.Count())
}

func TestRegisterValidacao(t *testing.T) {
	store, uc, _ := newKit(t)
	seedProduct(store, "p1", "10", nil, nil)

	cases := []struct {
		name  string
		input inventory.RegisterMovementInput
		want  error
	}{
		{"tipo desconhecido", inventory.RegisterMovementInput{ProductID: "p1", Type: "transferencia", Quantity: dec("1")}, domain.ErrInvalidInput},
		{"quantidade zero", inventory.RegisterMovementInput{ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: dec("0")}, domain.ErrInvalidInput},
		{"quantidade negativa", inventory.RegisterMovementInput{ProductID: "p1", Type: entity.MovementTypeSaida, Quantity: dec("-5")}, domain.ErrInvalidInput},
		{"custo negativo", inventory.RegisterMovementInput{ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: dec("1"), UnitCost: decPtr("-1")}, domain.ErrInvalidInput},
		{"produto inexistente", inventory.RegisterMovementInput{ProductID: "nope", Type: entity.MovementTypeEntrada, Quantity: dec("1")}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), tc.input)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// nada pode ter sido gravado
	assert.True(t, store.Products["p1"].Quantity.Equal(dec("10")))
	assert.Empty(t, store.Movements)
}

func TestEditSaidaRefazOSaldo(t *testing.T) {
	store, uc, _ := newKit(t)
	seedProduct(store, "p1", "90", nil, nil)
	store.Movements["m1"] = &entity.Movement{
		ID: "m1", ProductID: "p1", Type: entity.MovementTypeSaida,
		Quantity: dec("10"), CreatedAt: time.Now(),
	}

	// saída de 10 vira saída de 4: o produto recupera 6
	result, err := uc.Edit(context.Background(), "m1", inventory.EditMovementInput{Quantity: decPtr("4")})
	require.NoError(t, err)
	assert.True(t, result.Product.Quantity.Equal(dec("96")))
	assert.True(t, store.Movements["m1"].Quantity.Equal(dec("4")))
}

func TestEditSaidaSemSaldoAbortaSemEfeito(t *testing.T) {
	store, uc, _ := newKit(t)
	// saldo 2, saída original de 10: aumentar a saída para 20 exigiria 2+10-20 = -8
	seedProduct(store, "p1", "2", nil, nil)
	store.Movements["m1"] = &entity.Movement{
		ID: "m1", ProductID: "p1", Type: entity.MovementTypeSaida,
		Quantity: dec("10"), CreatedAt: time.Now(),
	}

	_, err := uc.Edit(context.Background(), "m1", inventory.EditMovementInput{Quantity: decPtr("20")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// rollback completo: nem saldo nem movimentação mudaram
	assert.True(t, store.Products["p1"].Quantity.Equal(dec("2")))
	assert.True(t, store.Movements["m1"].Quantity.Equal(dec("10")))
}

func TestEditAjusteSomenteMotivo(t *testing.T) {
	store, uc, _ := newKit(t)
	seedProduct(store, "p1", "12", nil, nil)
	store.Movements["m1"] = &entity.Movement{
		ID: "m1", ProductID: "p1", Type: entity.MovementTypeAjuste,
		Quantity: dec("12"), Reason: "contagem", CreatedAt: time.Now(),
	}

	_, err := uc.Edit(context.Background(), "m1", inventory.EditMovementInput{Quantity: decPtr("20")})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)

	result, err := uc.Edit(context.Background(), "m1", inventory.EditMovementInput{Reason: strPtr("contagem revisada")})
	require.NoError(t, err)
	assert.Equal(t, "contagem revisada", result.Movement.Reason)
	assert.Nil(t, result.Product, "edição só de motivo não toca o saldo")
	assert.True(t, store.Products["p1"].Quantity.Equal(dec("12")))
}

func TestEditSincronizaEntregaVinculada(t *testing.T) {
	store, uc, _ := newKit(t)
	seedProduct(store, "p1", "90", nil, nil)
	store.Deliveries["d1"] = &entity.Delivery{
		ID: "d1", ProductID: "p1", Quantity: dec("10"),
		DestinationSite: "Obra Leste", Status: entity.DeliveryStatusPendente,
		RequestedAt: time.Now(), CreatedAt: time.Now(),
	}
	deliveryID := "d1"
	store.Movements["m1"] = &entity.Movement{
		ID: "m1", ProductID: "p1", Type: entity.MovementTypeSaida,
		Quantity: dec("10"), CreatedAt: time.Now(), DeliveryID: &deliveryID,
	}

	_, err := uc.Edit(context.Background(), "m1", inventory.EditMovementInput{Quantity: decPtr("7")})
	require.NoError(t, err)
	assert.True(t, store.Deliveries["d1"].Quantity.Equal(dec("7")))
	assert.True(t, store.Products["p1"].Quantity.Equal(dec("93")))
}

func TestDeleteDesfazEfeitoComClamp(t *testing.T) {
	store, uc, _ := newKit(t)

	// excluir uma entrada subtrai, com clamp em zero
	seedProduct(store, "p1", "3", nil, nil)
	store.Movements["m1"] = &entity.Movement{
		ID: "m1", ProductID: "p1", Type: entity.MovementTypeEntrada,
		Quantity: dec("10"), CreatedAt: time.Now(),
	}
	product, err := uc.Delete(context.Background(), "m1")
	require.NoError(t, err)
	assert.True(t, product.Quantity.IsZero())
	assert.NotContains(t, store.Movements, "m1")

	// excluir uma saída devolve o saldo
	seedProduct(store, "p2", "5", nil, nil)
	store.Movements["m2"] = &entity.Movement{
		ID: "m2", ProductID: "p2", Type: entity.MovementTypeSaida,
		Quantity: dec("4"), CreatedAt: time.Now(),
	}
	product, err = uc.Delete(context.Background(), "m2")
	require.NoError(t, err)
	assert.True(t, product.Quantity.Equal(dec("9")))
}

func TestDeleteAjusteNaoPermitido(t *testing.T) {
	store, uc, _ := newKit(t)
	seedProduct(store, "p1", "12", nil, nil)
	store.Movements["m1"] = &entity.Movement{
		ID: "m1", ProductID: "p1", Type: entity.MovementTypeAjuste,
		Quantity: dec("12"), CreatedAt: time.Now(),
	}

	_, err := uc.Delete(context.Background(), "m1")
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.Contains(t, store.Movements, "m1")
}

func TestDeleteMovimentacaoDeEntregaRemoveEntrega(t *testing.T) {
	store, uc, _ := newKit(t)
	seedProduct(store, "p1", "90", nil, nil)
	store.Deliveries["d1"] = &entity.Delivery{
		ID: "d1", ProductID: "p1", Quantity: dec("10"),
		DestinationSite: "Obra Sul", Status: entity.DeliveryStatusPendente,
		RequestedAt: time.Now(), CreatedAt: time.Now(),
	}
	deliveryID := "d1"
	store.Movements["m1"] = &entity.Movement{
		ID: "m1", ProductID: "p1", Type: entity.MovementTypeSaida,
		Quantity: dec("10"), CreatedAt: time.Now(), DeliveryID: &deliveryID,
	}

	product, err := uc.Delete(context.Background(), "m1")
	require.NoError(t, err)
	assert.True(t, product.Quantity.Equal(dec("100")))
	assert.NotContains(t, store.Movements, "m1")
	assert.NotContains(t, store.Deliveries, "d1")
}

func TestAlertaNaoDisparaSemMinimoOuSemCruzamento(t *testing.T) {
	store, uc, notifier := newKit(t)
	seedProduct(store, "p1", "100", nil, nil)          // sem mínimo
	seedProduct(store, "p2", "100", decPtr("10"), nil) // com mínimo, saldo fica acima

	_, err := uc.Register(context.Background(), inventory.RegisterMovementInput{
		ProductID: "p1", Type: entity.MovementTypeSaida, Quantity: dec("99"),
	})
	require.NoError(t, err)
	_, err = uc.Register(context.Background(), inventory.RegisterMovementInput{
		ProductID: "p2", Type: entity.MovementTypeSaida, Quantity: dec("50"),
	})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, notifier.Count())
}
