// Package apptest fornece dublês em memória dos repositórios e do TxRunner
// para os testes dos casos de uso. O TxRunner fake opera sobre um clone do
// store e só o promove no commit, o que permite verificar rollback de verdade.
package apptest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/obrasync/estoque-api/internal/application/inventory"
	"github.com/obrasync/estoque-api/internal/domain"
	"github.com/obrasync/estoque-api/internal/domain/entity"
	"github.com/obrasync/estoque-api/internal/domain/repository"
)

// MemStore banco em memória dos testes.
type MemStore struct {
	Products   map[string]*entity.Product
	Movements  map[string]*entity.Movement
	Deliveries map[string]*entity.Delivery
}

// NewMemStore cria um store vazio.
func NewMemStore() *MemStore {
	return &MemStore{
		Products:   map[string]*entity.Product{},
		Movements:  map[string]*entity.Movement{},
		Deliveries: map[string]*entity.Delivery{},
	}
}

func (s *MemStore) clone() *MemStore {
	c := NewMemStore()
	for id, p := range s.Products {
		c.Products[id] = copyProduct(p)
	}
	for id, m := range s.Movements {
		c.Movements[id] = copyMovement(m)
	}
	for id, d := range s.Deliveries {
		c.Deliveries[id] = copyDelivery(d)
	}
	return c
}

func copyProduct(p *entity.Product) *entity.Product {
	cp := *p
	if p.MinQuantity != nil {
		v := *p.MinQuantity
		cp.MinQuantity = &v
	}
	if p.UnitCost != nil {
		v := *p.UnitCost
		cp.UnitCost = &v
	}
	if p.UpdatedAt != nil {
		v := *p.UpdatedAt
		cp.UpdatedAt = &v
	}
	return &cp
}

func copyMovement(m *entity.Movement) *entity.Movement {
	cm := *m
	if m.DeliveryID != nil {
		v := *m.DeliveryID
		cm.DeliveryID = &v
	}
	return &cm
}

func copyDelivery(d *entity.Delivery) *entity.Delivery {
	cd := *d
	return &cd
}

// ProductRepo repositório de produtos em memória.
type ProductRepo struct{ S *MemStore }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(p *entity.Product) error {
	for _, existing := range r.S.Products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.S.Products[p.ID] = copyProduct(p)
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.S.Products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (r *ProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *ProductRepo) List(search string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	needle := strings.ToLower(search)
	for _, p := range r.S.Products {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.SKU), needle) &&
			!strings.Contains(strings.ToLower(p.Category), needle) {
			continue
		}
		out = append(out, copyProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	stored, ok := r.S.Products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	qty, cost := stored.Quantity, stored.UnitCost
	cp := copyProduct(p)
	cp.Quantity, cp.UnitCost = qty, cost
	r.S.Products[p.ID] = cp
	return nil
}

func (r *ProductRepo) UpdateBalance(id string, quantity decimal.Decimal, unitCost *decimal.Decimal, updatedAt time.Time) error {
	stored, ok := r.S.Products[id]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Quantity = quantity
	if unitCost != nil {
		v := *unitCost
		stored.UnitCost = &v
	}
	at := updatedAt
	stored.UpdatedAt = &at
	return nil
}

func (r *ProductRepo) Delete(id string) error {
	if _, ok := r.S.Products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.S.Products, id)
	return nil
}

func (r *ProductRepo) TotalValue() (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.S.Products {
		if p.UnitCost != nil && p.UnitCost.IsPositive() {
			total = total.Add(p.Quantity.Mul(*p.UnitCost))
		}
	}
	return total, nil
}

// MovementRepo repositório de movimentações em memória.
type MovementRepo struct{ S *MemStore }

var _ repository.MovementRepository = (*MovementRepo)(nil)

func (r *MovementRepo) Create(m *entity.Movement) error {
	r.S.Movements[m.ID] = copyMovement(m)
	return nil
}

func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	m, ok := r.S.Movements[id]
	if !ok {
		return nil, nil
	}
	return copyMovement(m), nil
}

func (r *MovementRepo) GetByDeliveryID(deliveryID string) (*entity.Movement, error) {
	for _, m := range r.S.Movements {
		if m.DeliveryID != nil && *m.DeliveryID == deliveryID {
			return copyMovement(m), nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) List(productID string, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.S.Movements {
		if productID != "" && m.ProductID != productID {
			continue
		}
		out = append(out, copyMovement(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (r *MovementRepo) Update(m *entity.Movement) error {
	if _, ok := r.S.Movements[m.ID]; !ok {
		return domain.ErrNotFound
	}
	r.S.Movements[m.ID] = copyMovement(m)
	return nil
}

func (r *MovementRepo) Delete(id string) error {
	if _, ok := r.S.Movements[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.S.Movements, id)
	return nil
}

func (r *MovementRepo) ClearDeliveryRef(deliveryID string) error {
	for _, m := range r.S.Movements {
		if m.DeliveryID != nil && *m.DeliveryID == deliveryID {
			m.DeliveryID = nil
		}
	}
	return nil
}

// DeliveryRepo repositório de entregas em memória.
type DeliveryRepo struct{ S *MemStore }

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

func (r *DeliveryRepo) Create(d *entity.Delivery) error {
	r.S.Deliveries[d.ID] = copyDelivery(d)
	return nil
}

func (r *DeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	d, ok := r.S.Deliveries[id]
	if !ok {
		return nil, nil
	}
	return copyDelivery(d), nil
}

func (r *DeliveryRepo) List(limit, offset int) ([]*entity.DeliveryListItem, error) {
	var out []*entity.DeliveryListItem
	for _, d := range r.S.Deliveries {
		item := &entity.DeliveryListItem{Delivery: *copyDelivery(d), ProductName: "Produto Excluído", ProductSKU: "-"}
		if p, ok := r.S.Products[d.ProductID]; ok {
			item.ProductName = p.Name
			item.ProductSKU = p.SKU
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.After(out[j].RequestedAt) })
	return page(out, limit, offset), nil
}

func (r *DeliveryRepo) Update(d *entity.Delivery) error {
	if _, ok := r.S.Deliveries[d.ID]; !ok {
		return domain.ErrNotFound
	}
	r.S.Deliveries[d.ID] = copyDelivery(d)
	return nil
}

func (r *DeliveryRepo) UpdateDescriptive(d *entity.Delivery) error {
	stored, ok := r.S.Deliveries[d.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.RequestedAt = d.RequestedAt
	stored.SourceLocation = d.SourceLocation
	stored.DestinationSite = d.DestinationSite
	stored.ContactName = d.ContactName
	stored.ContactPhone = d.ContactPhone
	stored.Status = d.Status
	return nil
}

func (r *DeliveryRepo) UpdateStatus(id, status string) error {
	d, ok := r.S.Deliveries[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Status = status
	return nil
}

func (r *DeliveryRepo) Delete(id string) error {
	if _, ok := r.S.Deliveries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.S.Deliveries, id)
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// TxRunner roda a função sobre um clone do store e só promove o clone no
// commit. Erro na função descarta o clone, imitando o rollback.
type TxRunner struct{ S *MemStore }

func (t *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	deliveryRepo repository.DeliveryRepository,
) error) error {
	tx := t.S.clone()
	if err := fn(&ProductRepo{tx}, &MovementRepo{tx}, &DeliveryRepo{tx}); err != nil {
		return err
	}
	t.S.Products = tx.Products
	t.S.Movements = tx.Movements
	t.S.Deliveries = tx.Deliveries
	return nil
}

// CaptureNotifier guarda os alertas recebidos para inspeção nos testes.
type CaptureNotifier struct {
	mu        sync.Mutex
	snapshots []inventory.ProductSnapshot
}

var _ inventory.Notifier = (*CaptureNotifier)(nil)

func (n *CaptureNotifier) Notify(_ context.Context, snapshot inventory.ProductSnapshot) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.snapshots = append(n.snapshots, snapshot)
	return nil
}

// Count devolve quantos alertas já chegaram.
func (n *CaptureNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.snapshots)
}

// Last devolve o alerta mais recente, se houver.
func (n *CaptureNotifier) Last() (inventory.ProductSnapshot, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.snapshots) == 0 {
		return inventory.ProductSnapshot{}, false
	}
	return n.snapshots[len(n.snapshots)-1], true
}
