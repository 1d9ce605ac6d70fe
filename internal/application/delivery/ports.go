package delivery

import (
	"context"

	"github.com/obrasync/estoque-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, com repositórios
// atados à tx. Criação, remanejo e exclusão de entregas sempre passam por aqui:
// entrega, movimentação e saldo mudam juntos ou não mudam.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		deliveryRepo repository.DeliveryRepository,
	) error) error
}
