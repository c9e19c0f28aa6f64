package memory

import (
	"sync"

	"github.com/RealMSClassic/Tactica-Sheet/internal/domain"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/repository"
	"github.com/RealMSClassic/Tactica-Sheet/pkg/recid"
)

var _ repository.PendienteRepository = (*PendienteRepo)(nil)

// PendienteRepo tabla de pendientes en memoria, con la misma semántica de borrado
// en blanco que el almacén de stock.
type PendienteRepo struct {
	mu   sync.RWMutex
	rows []*entity.Pendiente
}

// NewPendienteRepo construye la tabla vacía.
func NewPendienteRepo() *PendienteRepo {
	return &PendienteRepo{}
}

// List devuelve una copia de todas las filas, incluidas las en blanco.
func (r *PendienteRepo) List() ([]*entity.Pendiente, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Pendiente, len(r.rows))
	for i, p := range r.rows {
		c := *p
		out[i] = &c
	}
	return out, nil
}

// GetByRecID devuelve la entrada o nil.
func (r *PendienteRepo) GetByRecID(recID string) (*entity.Pendiente, error) {
	if recID == "" {
		return nil, nil
	}
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

// Add inserta una entrada nueva con RecID generado.
func (r *PendienteRepo) Add(productoID, depositoID string, cantidad int64, movimiento, tipoAccion string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := recid.New()
	r.rows = append(r.rows, &entity.Pendiente{
		RecID:      id,
		ProductoID: productoID,
		DepositoID: depositoID,
		Cantidad:   cantidad,
		Movimiento: movimiento,
		TipoAccion: tipoAccion,
	})
	return id, nil
}

// DeleteByRecID limpia el contenido de la fila.
func (r *PendienteRepo) DeleteByRecID(recID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.rows {
		if p.RecID == recID {
			*p = entity.Pendiente{}
			return nil
		}
	}
	return domain.ErrNotFound
}
