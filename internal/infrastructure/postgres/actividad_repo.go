package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/repository"
	"github.com/RealMSClassic/Tactica-Sheet/pkg/recid"
)

var _ repository.ActividadRepository = (*ActividadRepo)(nil)

// ActividadRepo registro de actividad sobre PostgreSQL (append-only).
type ActividadRepo struct {
	pool *pgxpool.Pool
}

// NewActividadRepo construye el adaptador.
func NewActividadRepo(pool *pgxpool.Pool) *ActividadRepo {
	return &ActividadRepo{pool: pool}
}

// Append inserta una entrada con timestamp del servidor.
func (r *ActividadRepo) Append(mensaje string) error {
	ctx, cancel := opCtx()
	defer cancel()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO actividad (rec_id, mensaje, created_at) VALUES ($1, $2, now())`,
		recid.New(), mensaje,
	)
	if err != nil {
		return fmt.Errorf("insert actividad: %w", err)
	}
	return nil
}

// ListRecent devuelve hasta limit entradas, más nuevas primero.
func (r *ActividadRepo) ListRecent(limit int) ([]*entity.Actividad, error) {
	ctx, cancel := opCtx()
	defer cancel()
	rows, err := r.pool.Query(ctx,
		`SELECT rec_id, mensaje, created_at FROM actividad ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list actividad: %w", err)
	}
	defer rows.Close()
	var list []*entity.Actividad
	for rows.Next() {
		var a entity.Actividad
		if err := rows.Scan(&a.RecID, &a.Mensaje, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan actividad: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
