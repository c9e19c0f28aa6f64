package repository

import "github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia para Usuario.
type UsuarioRepository interface {
	Create(u *entity.Usuario) error
	FindByUsername(username string) (*entity.Usuario, error)
}
