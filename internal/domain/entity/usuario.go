package entity

import "time"

// Usuario cuenta con acceso al gestor. El login emite un JWT de sesión.
type Usuario struct {
	RecID        string
	Username     string
	Nombre       string
	PasswordHash string
	Estado       string // active | disabled
	CreatedAt    time.Time
}
