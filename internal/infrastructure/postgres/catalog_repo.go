package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)
var _ repository.DepositoRepository = (*DepositoRepo)(nil)

// ProductoRepo lectura del catálogo de productos sobre PostgreSQL.
type ProductoRepo struct {
	pool *pgxpool.Pool
}

// NewProductoRepo construye el adaptador.
func NewProductoRepo(pool *pgxpool.Pool) *ProductoRepo {
	return &ProductoRepo{pool: pool}
}

// List devuelve el catálogo completo.
func (r *ProductoRepo) List() ([]*entity.Producto, error) {
	ctx, cancel := opCtx()
	defer cancel()
	rows, err := r.pool.Query(ctx, `SELECT rec_id, codigo_producto, nombre_producto FROM productos`)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(&p.RecID, &p.Codigo, &p.Nombre); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// GetByRecID devuelve el producto o nil.
func (r *ProductoRepo) GetByRecID(recID string) (*entity.Producto, error) {
	ctx, cancel := opCtx()
	defer cancel()
	var p entity.Producto
	err := r.pool.QueryRow(ctx,
		`SELECT rec_id, codigo_producto, nombre_producto FROM productos WHERE rec_id = $1`, recID,
	).Scan(&p.RecID, &p.Codigo, &p.Nombre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// DepositoRepo lectura del catálogo de depósitos sobre PostgreSQL.
type DepositoRepo struct {
	pool *pgxpool.Pool
}

// NewDepositoRepo construye el adaptador.
func NewDepositoRepo(pool *pgxpool.Pool) *DepositoRepo {
	return &DepositoRepo{pool: pool}
}

// List devuelve el catálogo completo.
func (r *DepositoRepo) List() ([]*entity.Deposito, error) {
	ctx, cancel := opCtx()
	defer cancel()
	rows, err := r.pool.Query(ctx, `SELECT rec_id, id_deposito, nombre_deposito FROM depositos`)
	if err != nil {
		return nil, fmt.Errorf("list depositos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Deposito
	for rows.Next() {
		var d entity.Deposito
		if err := rows.Scan(&d.RecID, &d.Codigo, &d.Nombre); err != nil {
			return nil, fmt.Errorf("scan deposito: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// GetByRecID devuelve el depósito o nil.
func (r *DepositoRepo) GetByRecID(recID string) (*entity.Deposito, error) {
	ctx, cancel := opCtx()
	defer cancel()
	var d entity.Deposito
	err := r.pool.QueryRow(ctx,
		`SELECT rec_id, id_deposito, nombre_deposito FROM depositos WHERE rec_id = $1`, recID,
	).Scan(&d.RecID, &d.Codigo, &d.Nombre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deposito: %w", err)
	}
	return &d, nil
}
