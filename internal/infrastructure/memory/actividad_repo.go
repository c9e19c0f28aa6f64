package memory

import (
	"sync"
	"time"

	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/repository"
	"github.com/RealMSClassic/Tactica-Sheet/pkg/recid"
)

var _ repository.ActividadRepository = (*ActividadRepo)(nil)

// ActividadRepo registro de actividad en memoria (append-only).
type ActividadRepo struct {
	mu   sync.RWMutex
	rows []*entity.Actividad
}

// NewActividadRepo construye el registro vacío.
func NewActividadRepo() *ActividadRepo {
	return &ActividadRepo{}
}

// Append agrega una entrada con timestamp actual.
func (r *ActividadRepo) Append(mensaje string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, &entity.Actividad{
		RecID:     recid.New(),
		Mensaje:   mensaje,
		CreatedAt: time.Now(),
	})
	return nil
}

// ListRecent devuelve hasta limit entradas, más nuevas primero.
func (r *ActividadRepo) ListRecent(limit int) ([]*entity.Actividad, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := len(r.rows)
	if limit > n {
		limit = n
	}
	out := make([]*entity.Actividad, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		c := *r.rows[i]
		out = append(out, &c)
	}
	return out, nil
}
