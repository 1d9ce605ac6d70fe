package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/obrasync/estoque-api/internal/domain/entity"
	"github.com/obrasync/estoque-api/internal/domain/inventory"
	"github.com/obrasync/estoque-api/pkg/logger"
)

const notifyTimeout = 30 * time.Second

// Alerter dispara o alerta de estoque baixo após o commit da transação que
// mutou o saldo. O envio roda em goroutine própria (fire-and-forget): falha ou
// latência do notificador jamais chega ao caller da operação.
type Alerter struct {
	notifier Notifier
	cooldown CooldownStore
	log      *logger.Logger
}

// NewAlerter constrói o alerter. notifier nil desativa o envio; cooldown nil
// desativa a janela de supressão.
func NewAlerter(notifier Notifier, cooldown CooldownStore, log *logger.Logger) *Alerter {
	return &Alerter{notifier: notifier, cooldown: cooldown, log: log}
}

// Dispatch avalia o contrato pós-mutação do ledger: se o novo saldo está no
// limite mínimo ou abaixo e de fato mudou, agenda o alerta. Chamar somente
// depois que o sucesso da transação estiver determinado.
func (a *Alerter) Dispatch(product *entity.Product, previousQty decimal.Decimal) {
	if product == nil || !inventory.CrossedMinimum(previousQty, product.Quantity, product.MinQuantity) {
		return
	}
	snapshot := ProductSnapshot{
		ID:          product.ID,
		SKU:         product.SKU,
		Name:        product.Name,
		Unit:        product.Unit,
		Quantity:    product.Quantity,
		MinQuantity: *product.MinQuantity,
	}
	go a.send(snapshot)
}

func (a *Alerter) send(snapshot ProductSnapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if a.cooldown != nil {
		ok, err := a.cooldown.Acquire(ctx, snapshot.ID)
		if err != nil {
			// Cooldown indisponível: melhor alertar demais que de menos.
			a.log.Warn().Err(err).Str("product_id", snapshot.ID).Msg("cooldown de alerta indisponível")
		} else if !ok {
			a.log.Debug().Str("product_id", snapshot.ID).Msg("alerta de estoque baixo suprimido (cooldown)")
			return
		}
	}

	if a.notifier == nil {
		a.log.Debug().Str("sku", snapshot.SKU).Msg("notificador desativado, alerta de estoque baixo descartado")
		return
	}
	if err := a.notifier.Notify(ctx, snapshot); err != nil {
		a.log.Error().Err(err).Str("sku", snapshot.SKU).Str("name", snapshot.Name).
			Msg("falha ao enviar alerta de estoque baixo")
		return
	}
	a.log.Info().Str("sku", snapshot.SKU).Str("quantity", snapshot.Quantity.String()).
		Msg("alerta de estoque baixo enviado")
}
