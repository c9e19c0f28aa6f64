package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo usuarios sobre PostgreSQL.
type UsuarioRepo struct {
	pool *pgxpool.Pool
}

// NewUsuarioRepo construye el adaptador.
func NewUsuarioRepo(pool *pgxpool.Pool) *UsuarioRepo {
	return &UsuarioRepo{pool: pool}
}

// Create persiste un usuario nuevo.
func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	ctx, cancel := opCtx()
	defer cancel()
	query := `
		INSERT INTO usuarios (rec_id, username, nombre, password_hash, estado, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, u.RecID, u.Username, u.Nombre, u.PasswordHash, u.Estado, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// FindByUsername devuelve el usuario o nil.
func (r *UsuarioRepo) FindByUsername(username string) (*entity.Usuario, error) {
	ctx, cancel := opCtx()
	defer cancel()
	query := `
		SELECT rec_id, username, nombre, password_hash, estado, created_at
		FROM usuarios WHERE username = $1`
	var u entity.Usuario
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&u.RecID, &u.Username, &u.Nombre, &u.PasswordHash, &u.Estado, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}
