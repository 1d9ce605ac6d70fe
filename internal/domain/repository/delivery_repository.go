package repository

import "github.com/obrasync/estoque-api/internal/domain/entity"

// DeliveryRepository porta de persistência para entregas.
type DeliveryRepository interface {
	Create(delivery *entity.Delivery) error
	GetByID(id string) (*entity.Delivery, error)
	// List devolve entregas com nome e SKU do produto, mais recentes primeiro.
	List(limit, offset int) ([]*entity.DeliveryListItem, error)
	Update(delivery *entity.Delivery) error
	// UpdateDescriptive grava apenas os campos descritivos (datas, locais,
	// contato, status). Produto, quantidade e unidade nunca passam por aqui:
	// mudam só pelo remanejo, sob transação — um patch descritivo com leitura
	// defasada não pode reverter um remanejo concorrente.
	UpdateDescriptive(delivery *entity.Delivery) error
	UpdateStatus(id, status string) error
	Delete(id string) error
}
