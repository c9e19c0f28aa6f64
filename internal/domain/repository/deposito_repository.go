package repository

import "github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"

// DepositoRepository define el puerto de lectura del catálogo de depósitos.
type DepositoRepository interface {
	List() ([]*entity.Deposito, error)
	GetByRecID(recID string) (*entity.Deposito, error)
}
