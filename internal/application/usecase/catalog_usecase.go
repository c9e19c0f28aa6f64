package usecase

import (
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/repository"
)

// CatalogUseCase lectura de los catálogos de productos y depósitos.
// El gestor de stock no los modifica; se mantienen en sus tablas externas.
type CatalogUseCase struct {
	prodRepo repository.ProductoRepository
	depoRepo repository.DepositoRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(prodRepo repository.ProductoRepository, depoRepo repository.DepositoRepository) *CatalogUseCase {
	return &CatalogUseCase{prodRepo: prodRepo, depoRepo: depoRepo}
}

// Productos lista el catálogo de productos.
func (uc *CatalogUseCase) Productos() ([]*entity.Producto, error) {
	return uc.prodRepo.List()
}

// Depositos lista el catálogo de depósitos.
func (uc *CatalogUseCase) Depositos() ([]*entity.Deposito, error) {
	return uc.depoRepo.List()
}
