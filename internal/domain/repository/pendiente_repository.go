package repository

import "github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"

// PendienteRepository define el puerto CRUD de la tabla de pendientes (logsAcn).
// Add genera y devuelve un RecID nuevo para la entrada.
type PendienteRepository interface {
	List() ([]*entity.Pendiente, error)
	GetByRecID(recID string) (*entity.Pendiente, error)
	Add(productoID, depositoID string, cantidad int64, movimiento, tipoAccion string) (string, error)
	DeleteByRecID(recID string) error
}
