package usecase

import (
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/repository"
)

// ActivityUseCase lectura del registro de actividad.
type ActivityUseCase struct {
	repo repository.ActividadRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActividadRepository) *ActivityUseCase {
	return &ActivityUseCase{repo: repo}
}

// Recientes devuelve las últimas entradas del registro, más nuevas primero.
func (uc *ActivityUseCase) Recientes(limit int) ([]*entity.Actividad, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.repo.ListRecent(limit)
}
