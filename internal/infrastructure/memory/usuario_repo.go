package memory

import (
	"sync"

	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo usuarios en memoria, para el modo sin base de datos y tests.
type UsuarioRepo struct {
	mu   sync.RWMutex
	rows []*entity.Usuario
}

// NewUsuarioRepo construye el repositorio vacío.
func NewUsuarioRepo() *UsuarioRepo {
	return &UsuarioRepo{}
}

// Create agrega un usuario.
func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *u
	r.rows = append(r.rows, &c)
	return nil
}

// FindByUsername devuelve el usuario o nil.
func (r *UsuarioRepo) FindByUsername(username string) (*entity.Usuario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.rows {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}
