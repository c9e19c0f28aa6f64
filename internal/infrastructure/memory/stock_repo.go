package memory

import (
	"sync"
	"time"

	"github.com/RealMSClassic/Tactica-Sheet/internal/domain"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/repository"
	"github.com/RealMSClassic/Tactica-Sheet/pkg/recid"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo almacén de stock en memoria. Reproduce la semántica de hoja de cálculo
// del almacén remoto: DeleteByRecID deja la fila en blanco en su posición y List la
// devuelve igualmente (el RecID vacío la marca como ausente para el núcleo).
type StockRepo struct {
	mu   sync.RWMutex
	rows []*entity.StockRow
}

// NewStockRepo construye el almacén vacío.
func NewStockRepo() *StockRepo {
	return &StockRepo{}
}

// List devuelve una copia de todas las filas, incluidas las borradas (en blanco).
func (r *StockRepo) List() ([]*entity.StockRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.StockRow, len(r.rows))
	for i, row := range r.rows {
		c := *row
		out[i] = &c
	}
	return out, nil
}

// GetByRecID devuelve la fila o nil si no existe.
func (r *StockRepo) GetByRecID(recID string) (*entity.StockRow, error) {
	if recID == "" {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, row := range r.rows {
		if row.RecID == recID {
			c := *row
			return &c, nil
		}
	}
	return nil, nil
}

// FindByProductoAndDeposito devuelve la primera fila del par o nil.
func (r *StockRepo) FindByProductoAndDeposito(productoID, depositoID string) (*entity.StockRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, row := range r.rows {
		if row.RecID != "" && row.ProductoID == productoID && row.DepositoID == depositoID {
			c := *row
			return &c, nil
		}
	}
	return nil, nil
}

// Add agrega una fila nueva con RecID generado y versión 1.
func (r *StockRepo) Add(productoID, depositoID string, cantidad int64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := recid.New()
	r.rows = append(r.rows, &entity.StockRow{
		RecID:      id,
		ProductoID: productoID,
		DepositoID: depositoID,
		Cantidad:   cantidad,
		Version:    1,
		UpdatedAt:  time.Now(),
	})
	return id, nil
}

// UpdateCantidad hace compare-and-swap sobre (RecID, Version).
func (r *StockRepo) UpdateCantidad(recID string, version, cantidad int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.RecID != recID {
			continue
		}
		if row.Version != version {
			return domain.ErrVersionConflict
		}
		row.Cantidad = cantidad
		row.Version++
		row.UpdatedAt = time.Now()
		return nil
	}
	return domain.ErrNotFound
}

// DeleteByRecID limpia el contenido de la fila; queda una fila en blanco en su lugar.
func (r *StockRepo) DeleteByRecID(recID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.RecID == recID {
			*row = entity.StockRow{}
			return nil
		}
	}
	return domain.ErrNotFound
}
