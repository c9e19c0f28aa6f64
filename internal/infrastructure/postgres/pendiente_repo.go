package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RealMSClassic/Tactica-Sheet/internal/domain"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/repository"
	"github.com/RealMSClassic/Tactica-Sheet/pkg/recid"
)

var _ repository.PendienteRepository = (*PendienteRepo)(nil)

// PendienteRepo tabla de pendientes (logsAcn) sobre PostgreSQL.
type PendienteRepo struct {
	pool *pgxpool.Pool
}

// NewPendienteRepo construye el adaptador.
func NewPendienteRepo(pool *pgxpool.Pool) *PendienteRepo {
	return &PendienteRepo{pool: pool}
}

// List devuelve todas las entradas pendientes.
func (r *PendienteRepo) List() ([]*entity.Pendiente, error) {
	ctx, cancel := opCtx()
	defer cancel()
	query := `
		SELECT data_ini_prox, rec_id, id_producto, id_deposito, cantidad, movimiento, tipo_accion
		FROM logs_acn`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pendientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pendiente
	for rows.Next() {
		var p entity.Pendiente
		if err := rows.Scan(&p.DataIniProx, &p.RecID, &p.ProductoID, &p.DepositoID, &p.Cantidad, &p.Movimiento, &p.TipoAccion); err != nil {
			return nil, fmt.Errorf("scan pendiente: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// GetByRecID devuelve la entrada o nil.
func (r *PendienteRepo) GetByRecID(recID string) (*entity.Pendiente, error) {
	ctx, cancel := opCtx()
	defer cancel()
	query := `
		SELECT data_ini_prox, rec_id, id_producto, id_deposito, cantidad, movimiento, tipo_accion
		FROM logs_acn WHERE rec_id = $1`
	var p entity.Pendiente
	err := r.pool.QueryRow(ctx, query, recID).Scan(
		&p.DataIniProx, &p.RecID, &p.ProductoID, &p.DepositoID, &p.Cantidad, &p.Movimiento, &p.TipoAccion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pendiente: %w", err)
	}
	return &p, nil
}

// Add inserta una entrada nueva con RecID generado.
func (r *PendienteRepo) Add(productoID, depositoID string, cantidad int64, movimiento, tipoAccion string) (string, error) {
	ctx, cancel := opCtx()
	defer cancel()
	query := `
		INSERT INTO logs_acn (data_ini_prox, rec_id, id_producto, id_deposito, cantidad, movimiento, tipo_accion)
		VALUES ('', $1, $2, $3, $4, $5, $6)`
	for intento := 0; ; intento++ {
		id := recid.New()
		_, err := r.pool.Exec(ctx, query, id, productoID, depositoID, cantidad, movimiento, tipoAccion)
		if err == nil {
			return id, nil
		}
		if isUniqueViolation(err) && intento < 2 {
			continue
		}
		return "", fmt.Errorf("insert pendiente: %w", err)
	}
}

// DeleteByRecID elimina la entrada.
func (r *PendienteRepo) DeleteByRecID(recID string) error {
	ctx, cancel := opCtx()
	defer cancel()
	cmd, err := r.pool.Exec(ctx, `DELETE FROM logs_acn WHERE rec_id = $1`, recID)
	if err != nil {
		return fmt.Errorf("delete pendiente: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
