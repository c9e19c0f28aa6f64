package repository

import "github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"

// ActividadRepository define el puerto del registro de actividad (append-only).
type ActividadRepository interface {
	Append(mensaje string) error
	ListRecent(limit int) ([]*entity.Actividad, error)
}
