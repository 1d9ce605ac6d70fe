package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/obrasync/estoque-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante atomicidade do núcleo de estoque.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		deliveryRepo repository.DeliveryRepository,
	) error) error
}

// ProductSnapshot é a foto pós-mutação enviada ao notificador de estoque baixo.
type ProductSnapshot struct {
	ID          string
	SKU         string
	Name        string
	Unit        string
	Quantity    decimal.Decimal
	MinQuantity decimal.Decimal
}

// Notifier entrega o alerta de estoque baixo. Erros são engolidos na borda:
// nunca abortam nem atrasam a operação que disparou o alerta.
type Notifier interface {
	Notify(ctx context.Context, snapshot ProductSnapshot) error
}

// CooldownStore limita a frequência de alertas por produto.
// Acquire devolve false quando o produto ainda está em janela de cooldown.
type CooldownStore interface {
	Acquire(ctx context.Context, productID string) (bool, error)
}
