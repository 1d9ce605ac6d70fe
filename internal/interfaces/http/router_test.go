package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrasync/estoque-api/internal/application/apptest"
	"github.com/obrasync/estoque-api/internal/application/auth"
	"github.com/obrasync/estoque-api/internal/application/delivery"
	"github.com/obrasync/estoque-api/internal/application/inventory"
	"github.com/obrasync/estoque-api/internal/application/usecase"
	"github.com/obrasync/estoque-api/internal/domain/entity"
	apphttp "github.com/obrasync/estoque-api/internal/interfaces/http"
	"github.com/obrasync/estoque-api/pkg/config"
	"github.com/obrasync/estoque-api/pkg/logger"
)

// buildAPI monta a API completa sobre os dublês em memória.
func buildAPI(t *testing.T) (*fiber.App, *apptest.MemStore) {
	t.Helper()
	store := apptest.NewMemStore()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	alerter := inventory.NewAlerter(&apptest.CaptureNotifier{}, nil, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewUseCase(
			config.AuthConfig{AdminPassword: "segredo"},
			config.JWTConfig{Secret: testJWTSecret, Issuer: testIssuer, Expiration: testExpMin},
		),
		ProductUC:  usecase.NewProductUseCase(&apptest.ProductRepo{S: store}),
		MovementUC: inventory.NewMovementUseCase(&apptest.TxRunner{S: store}, &apptest.MovementRepo{S: store}, alerter),
		DeliveryUC: delivery.NewUseCase(&apptest.TxRunner{S: store}, &apptest.DeliveryRepo{S: store}, alerter),
		JWTSecret:  testJWTSecret,
	})
	return app, store
}

func TestRouter_PatchProdutoAtualizaParcialmente(t *testing.T) {
	app, store := buildAPI(t)
	store.Products["p1"] = &entity.Product{
		ID: "p1", SKU: "PROD-AAAAAA", Name: "Cimento CP-II", Unit: "sc",
		Quantity: decimal.RequireFromString("70"), CreatedAt: time.Now(),
	}

	body := bytes.NewBufferString(`{"name":"Cimento CP-II 50kg"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/products/p1", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", validToken(t))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "Cimento CP-II 50kg", got["name"])

	// patch parcial: os demais campos ficam como estavam
	assert.Equal(t, "Cimento CP-II 50kg", store.Products["p1"].Name)
	assert.Equal(t, "sc", store.Products["p1"].Unit)
	assert.True(t, store.Products["p1"].Quantity.Equal(decimal.RequireFromString("70")))
}
