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

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre PostgreSQL.
// La columna version es el sello de concurrencia optimista: UpdateCantidad solo
// escribe si (rec_id, version) coincide.
type StockRepo struct {
	pool *pgxpool.Pool
}

// NewStockRepo construye el adaptador de persistencia de stock.
func NewStockRepo(pool *pgxpool.Pool) *StockRepo {
	return &StockRepo{pool: pool}
}

// List devuelve todas las filas de stock.
func (r *StockRepo) List() ([]*entity.StockRow, error) {
	ctx, cancel := opCtx()
	defer cancel()
	query := `
		SELECT rec_id, id_producto, id_deposito, cantidad, version, updated_at
		FROM stock`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRow
	for rows.Next() {
		var s entity.StockRow
		if err := rows.Scan(&s.RecID, &s.ProductoID, &s.DepositoID, &s.Cantidad, &s.Version, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// GetByRecID devuelve la fila o nil si no existe.
func (r *StockRepo) GetByRecID(recID string) (*entity.StockRow, error) {
	ctx, cancel := opCtx()
	defer cancel()
	query := `
		SELECT rec_id, id_producto, id_deposito, cantidad, version, updated_at
		FROM stock WHERE rec_id = $1`
	var s entity.StockRow
	err := r.pool.QueryRow(ctx, query, recID).Scan(
		&s.RecID, &s.ProductoID, &s.DepositoID, &s.Cantidad, &s.Version, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// FindByProductoAndDeposito devuelve la primera fila del par (producto, depósito) o nil.
func (r *StockRepo) FindByProductoAndDeposito(productoID, depositoID string) (*entity.StockRow, error) {
	ctx, cancel := opCtx()
	defer cancel()
	query := `
		SELECT rec_id, id_producto, id_deposito, cantidad, version, updated_at
		FROM stock WHERE id_producto = $1 AND id_deposito = $2
		ORDER BY updated_at LIMIT 1`
	var s entity.StockRow
	err := r.pool.QueryRow(ctx, query, productoID, depositoID).Scan(
		&s.RecID, &s.ProductoID, &s.DepositoID, &s.Cantidad, &s.Version, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find stock: %w", err)
	}
	return &s, nil
}

// Add inserta una fila nueva con RecID generado. Reintenta con otro token si el
// generado choca con uno existente.
func (r *StockRepo) Add(productoID, depositoID string, cantidad int64) (string, error) {
	ctx, cancel := opCtx()
	defer cancel()
	query := `
		INSERT INTO stock (rec_id, id_producto, id_deposito, cantidad, version, updated_at)
		VALUES ($1, $2, $3, $4, 1, now())`
	for intento := 0; ; intento++ {
		id := recid.New()
		_, err := r.pool.Exec(ctx, query, id, productoID, depositoID, cantidad)
		if err == nil {
			return id, nil
		}
		if isUniqueViolation(err) && intento < 2 {
			continue
		}
		return "", fmt.Errorf("insert stock: %w", err)
	}
}

// UpdateCantidad escribe la cantidad con compare-and-swap sobre (rec_id, version).
func (r *StockRepo) UpdateCantidad(recID string, version, cantidad int64) error {
	ctx, cancel := opCtx()
	defer cancel()
	query := `
		UPDATE stock SET cantidad = $3, version = version + 1, updated_at = now()
		WHERE rec_id = $1 AND version = $2`
	cmd, err := r.pool.Exec(ctx, query, recID, version, cantidad)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		var existe bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM stock WHERE rec_id = $1)`, recID).Scan(&existe); err != nil {
			return fmt.Errorf("update stock: %w", err)
		}
		if existe {
			return domain.ErrVersionConflict
		}
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByRecID elimina la fila.
func (r *StockRepo) DeleteByRecID(recID string) error {
	ctx, cancel := opCtx()
	defer cancel()
	cmd, err := r.pool.Exec(ctx, `DELETE FROM stock WHERE rec_id = $1`, recID)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
