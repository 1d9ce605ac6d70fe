package usecase_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrasync/estoque-api/internal/application/apptest"
	"github.com/obrasync/estoque-api/internal/application/usecase"
	"github.com/obrasync/estoque-api/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string { return &s }

func newKit() (*apptest.MemStore, *usecase.ProductUseCase) {
	store := apptest.NewMemStore()
	return store, usecase.NewProductUseCase(&apptest.ProductRepo{S: store})
}

var skuPattern = regexp.MustCompile(`^PROD-[A-Z0-9]{6}$`)

func TestCreateGeraSKU(t *testing.T) {
	store, uc := newKit()

	product, err := uc.Create(context.Background(), usecase.CreateProductInput{
		Name:     "Cimento CP-II",
		Unit:     "sc",
		Quantity: dec("100"),
	})
	require.NoError(t, err)
	assert.Regexp(t, skuPattern, product.SKU)
	assert.NotEmpty(t, product.ID)
	require.Contains(t, store.Products, product.ID)

	// SKU informado é respeitado
	product, err = uc.Create(context.Background(), usecase.CreateProductInput{
		SKU:  "CIM-042",
		Name: "Cimento CP-IV",
		Unit: "sc",
	})
	require.NoError(t, err)
	assert.Equal(t, "CIM-042", product.SKU)
}

func TestCreateSKUDuplicado(t *testing.T) {
	_, uc := newKit()

	_, err := uc.Create(context.Background(), usecase.CreateProductInput{SKU: "CIM-042", Name: "A", Unit: "un"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), usecase.CreateProductInput{SKU: "CIM-042", Name: "B", Unit: "un"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateValidacao(t *testing.T) {
	_, uc := newKit()

	cases := []struct {
		name  string
		input usecase.CreateProductInput
	}{
		{"sem nome", usecase.CreateProductInput{Unit: "un"}},
		{"sem unidade", usecase.CreateProductInput{Name: "Areia"}},
		{"quantidade negativa", usecase.CreateProductInput{Name: "Areia", Unit: "m³", Quantity: dec("-1")}},
		{"mínimo negativo", usecase.CreateProductInput{Name: "Areia", Unit: "m³", MinQuantity: decPtr("-1")}},
		{"custo negativo", usecase.CreateProductInput{Name: "Areia", Unit: "m³", UnitCost: decPtr("-1")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUpdateNaoTocaSaldoNemCusto(t *testing.T) {
	store, uc := newKit()
	created, err := uc.Create(context.Background(), usecase.CreateProductInput{
		Name:     "Vergalhão 10mm",
		Unit:     "un",
		Quantity: dec("50"),
		UnitCost: decPtr("12.5"),
	})
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), created.ID, usecase.UpdateProductInput{
		Name:     strPtr("Vergalhão CA-50 10mm"),
		Location: strPtr("Galpão 2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Vergalhão CA-50 10mm", updated.Name)
	assert.Equal(t, "Galpão 2", updated.Location)

	stored := store.Products[created.ID]
	assert.True(t, stored.Quantity.Equal(dec("50")))
	require.NotNil(t, stored.UnitCost)
	assert.True(t, stored.UnitCost.Equal(dec("12.5")))
}

func TestGetUpdateDeleteInexistente(t *testing.T) {
	_, uc := newKit()

	_, err := uc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(context.Background(), "nope", usecase.UpdateProductInput{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.Delete(context.Background(), "nope"), domain.ErrNotFound)
}

func TestTotalValue(t *testing.T) {
	_, uc := newKit()

	_, err := uc.Create(context.Background(), usecase.CreateProductInput{
		Name: "A", Unit: "un", Quantity: dec("10"), UnitCost: decPtr("2"),
	})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), usecase.CreateProductInput{
		Name: "B", Unit: "un", Quantity: dec("5"), UnitCost: decPtr("3"),
	})
	require.NoError(t, err)
	// sem custo: fora da soma
	_, err = uc.Create(context.Background(), usecase.CreateProductInput{
		Name: "C", Unit: "un", Quantity: dec("99"),
	})
	require.NoError(t, err)

	total, err := uc.TotalValue(context.Background())
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("35")))
}

func TestListComBusca(t *testing.T) {
	_, uc := newKit()
	for _, name := range []string{"Cimento CP-II", "Cimento CP-IV", "Areia média"} {
		_, err := uc.Create(context.Background(), usecase.CreateProductInput{Name: name, Unit: "un"})
		require.NoError(t, err)
	}

	products, err := uc.List(context.Background(), "cimento", 10, 0)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = uc.List(context.Background(), "", 2, 0)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}
