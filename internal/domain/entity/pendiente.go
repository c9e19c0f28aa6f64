package entity

// TipoAccionPendiente valor fijo de tipo_accion para las entradas creadas por el flujo
// de "enviar pendiente".
const TipoAccionPendiente = "pendiente"

// Motivos de envío a pendiente ofrecidos por la interfaz.
var MotivosEnvio = []string{"Reparación", "Prestado", "Enviado", "Perdido", "Otros"}

// Motivos de descarte definitivo de un pendiente.
var MotivosDescarte = []string{"Sin Solucion", "Perdidos", "Destruido", "Regalado", "Otros"}

// MotivoOtros es el centinela que exige un motivo de texto libre.
const MotivoOtros = "Otros"

// MotivoSinEspecificar sustituye un texto libre vacío.
const MotivoSinEspecificar = "Sin especificar"

// Pendiente representa inventario retirado de circulación a la espera de resolución:
// restaurar (la cantidad vuelve a un depósito) o descartar (se elimina con motivo de
// auditoría). La resolución siempre consume la cantidad completa.
type Pendiente struct {
	RecID       string `json:"RecID"`
	ProductoID  string `json:"ID_producto"`
	DepositoID  string `json:"ID_deposito"` // último depósito conocido antes de pasar a pendiente
	Cantidad    int64  `json:"cantidad"`
	Movimiento  string `json:"movimiento"` // motivo/estado de texto libre, ej. "Perdido"
	TipoAccion  string `json:"tipo_accion"`
	DataIniProx string `json:"data_ini_prox"` // campo reservado, sin uso
}
