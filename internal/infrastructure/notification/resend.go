package notification

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/obrasync/estoque-api/internal/application/inventory"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendMailer envia o alerta de estoque baixo por e-mail via API do Resend.
// Implementa inventory.Notifier.
type ResendMailer struct {
	client     *resty.Client
	apiKey     string
	from       string
	recipients []string
}

var _ inventory.Notifier = (*ResendMailer)(nil)

// NewResendMailer constrói o mailer. recipients vazio faz Notify virar no-op.
func NewResendMailer(apiKey, from string, recipients []string) *ResendMailer {
	return &ResendMailer{
		client:     resty.New(),
		apiKey:     apiKey,
		from:       from,
		recipients: recipients,
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Notify envia o e-mail de alerta para os destinatários configurados.
func (m *ResendMailer) Notify(ctx context.Context, snapshot inventory.ProductSnapshot) error {
	if len(m.recipients) == 0 {
		return nil
	}

	var body strings.Builder
	if err := alertTemplate.Execute(&body, alertData{
		Name:        snapshot.Name,
		SKU:         snapshot.SKU,
		Quantity:    snapshot.Quantity.String(),
		MinQuantity: snapshot.MinQuantity.String(),
		Unit:        snapshot.Unit,
	}); err != nil {
		return fmt.Errorf("renderizar e-mail de alerta: %w", err)
	}

	var apiErr resendError
	resp, err := m.client.R().
		SetContext(ctx).
		SetAuthToken(m.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(resendRequest{
			From:    m.from,
			To:      m.recipients,
			Subject: "⚠️ Alerta: Estoque Baixo - " + snapshot.Name,
			HTML:    body.String(),
		}).
		SetError(&apiErr).
		Post(resendEndpoint)
	if err != nil {
		return fmt.Errorf("enviar e-mail via resend: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("resend respondeu %d: %s", resp.StatusCode(), apiErr.Message)
	}
	return nil
}

type alertData struct {
	Name        string
	SKU         string
	Quantity    string
	MinQuantity string
	Unit        string
}

var alertTemplate = template.Must(template.New("low-stock-alert").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #d9534f;">⚠️ Alerta de Estoque Baixo</h2>
  <p>O produto abaixo atingiu ou ficou abaixo do estoque mínimo definido:</p>
  <table style="border-collapse: collapse; width: 100%;">
    <tr>
      <td style="border: 1px solid #ddd; padding: 8px; font-weight: bold;">Produto</td>
      <td style="border: 1px solid #ddd; padding: 8px;">{{.Name}}</td>
    </tr>
    <tr>
      <td style="border: 1px solid #ddd; padding: 8px; font-weight: bold;">SKU</td>
      <td style="border: 1px solid #ddd; padding: 8px;">{{.SKU}}</td>
    </tr>
    <tr>
      <td style="border: 1px solid #ddd; padding: 8px; font-weight: bold;">Estoque Atual</td>
      <td style="border: 1px solid #ddd; padding: 8px; color: #d9534f; font-weight: bold;">{{.Quantity}} {{.Unit}}</td>
    </tr>
    <tr>
      <td style="border: 1px solid #ddd; padding: 8px; font-weight: bold;">Mínimo Definido</td>
      <td style="border: 1px solid #ddd; padding: 8px;">{{.MinQuantity}} {{.Unit}}</td>
    </tr>
  </table>
  <p style="margin-top: 16px;">Providencie a reposição o quanto antes.</p>
  <p style="color: #999; font-size: 12px;">Mensagem automática do sistema de estoque.</p>
</div>
`))
