package repository

import "github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"

// ProductoRepository define el puerto de lectura del catálogo de productos.
// El núcleo de stock no crea ni borra productos.
type ProductoRepository interface {
	List() ([]*entity.Producto, error)
	GetByRecID(recID string) (*entity.Producto, error)
}
