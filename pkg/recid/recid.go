package recid

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// Len longitud de un RecID generado.
const Len = 10

// New genera un RecID: token hexadecimal aleatorio de 10 caracteres, clave primaria
// opaca de toda fila en el almacén de registros.
func New() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])[:Len]
}
