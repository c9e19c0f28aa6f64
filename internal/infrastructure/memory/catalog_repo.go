package memory

import (
	"sync"

	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/repository"
	"github.com/RealMSClassic/Tactica-Sheet/pkg/recid"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)
var _ repository.DepositoRepository = (*DepositoRepo)(nil)

// ProductoRepo catálogo de productos en memoria.
type ProductoRepo struct {
	mu   sync.RWMutex
	rows []*entity.Producto
}

// NewProductoRepo construye el catálogo, opcionalmente sembrado.
func NewProductoRepo(seed ...*entity.Producto) *ProductoRepo {
	r := &ProductoRepo{}
	for _, p := range seed {
		if p.RecID == "" {
			p.RecID = recid.New()
		}
		r.rows = append(r.rows, p)
	}
	return r
}

// List devuelve una copia del catálogo.
func (r *ProductoRepo) List() ([]*entity.Producto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Producto, len(r.rows))
	for i, p := range r.rows {
		c := *p
		out[i] = &c
	}
	return out, nil
}

// GetByRecID devuelve el producto o nil.
func (r *ProductoRepo) GetByRecID(recID string) (*entity.Producto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.rows {
		if p.RecID == recID {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

// DepositoRepo catálogo de depósitos en memoria.
type DepositoRepo struct {
	mu   sync.RWMutex
	rows []*entity.Deposito
}

// NewDepositoRepo construye el catálogo, opcionalmente sembrado.
func NewDepositoRepo(seed ...*entity.Deposito) *DepositoRepo {
	r := &DepositoRepo{}
	for _, d := range seed {
		if d.RecID == "" {
			d.RecID = recid.New()
		}
		r.rows = append(r.rows, d)
	}
	return r
}

// List devuelve una copia del catálogo.
func (r *DepositoRepo) List() ([]*entity.Deposito, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Deposito, len(r.rows))
	for i, d := range r.rows {
		c := *d
		out[i] = &c
	}
	return out, nil
}

// GetByRecID devuelve el depósito o nil.
func (r *DepositoRepo) GetByRecID(recID string) (*entity.Deposito, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.rows {
		if d.RecID == recID {
			c := *d
			return &c, nil
		}
	}
	return nil, nil
}
