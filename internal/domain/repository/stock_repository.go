package repository

import "github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"

// StockRepository define el puerto CRUD de la tabla de stock.
// El contrato es fijo: toda implementación debe satisfacer exactamente este conjunto
// de capacidades, sin sondeo de métodos en tiempo de ejecución.
//
// Add genera y devuelve un RecID nuevo. UpdateCantidad hace compare-and-swap sobre
// (RecID, Version) y devuelve domain.ErrVersionConflict si el sello no coincide.
// DeleteByRecID puede dejar una fila en blanco; List debe omitir filas sin RecID.
type StockRepository interface {
	List() ([]*entity.StockRow, error)
	GetByRecID(recID string) (*entity.StockRow, error)
	// FindByProductoAndDeposito devuelve la primera fila del par (producto, depósito)
	// o nil si no existe. El diseño tolera duplicados agregando en lectura.
	FindByProductoAndDeposito(productoID, depositoID string) (*entity.StockRow, error)
	Add(productoID, depositoID string, cantidad int64) (string, error)
	UpdateCantidad(recID string, version, cantidad int64) error
	DeleteByRecID(recID string) error
}
