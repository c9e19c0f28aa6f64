package entity

import "time"

// Actividad es una entrada del registro de auditoría legible por humanos.
// Se escribe después de cada mutación exitosa del ledger; nunca bloquea la operación.
type Actividad struct {
	RecID     string    `json:"RecID"`
	Mensaje   string    `json:"mensaje"`
	CreatedAt time.Time `json:"created_at"`
}
