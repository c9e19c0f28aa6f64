package dto

// PendienteResponse entrada pendiente con datos visibles resueltos.
type PendienteResponse struct {
	RecID          string `json:"RecID"`
	ProductoID     string `json:"ID_producto"`
	ProductoNombre string `json:"nombre_producto"`
	DepositoID     string `json:"ID_deposito"`
	DepositoNombre string `json:"nombre_deposito"`
	Cantidad       int64  `json:"cantidad"`
	Movimiento     string `json:"movimiento"`
	TipoAccion     string `json:"tipo_accion"`
}

// RestaurarRequest body para POST /api/pendientes/:recid/restaurar.
type RestaurarRequest struct {
	DepositoDestID string `json:"ID_deposito_dest"`
}

// DescartarRequest body para POST /api/pendientes/:recid/descartar.
// Si Motivo es "Otros", Detalle sustituye al motivo; vacío se vuelve "Sin especificar".
type DescartarRequest struct {
	Motivo  string `json:"motivo"`
	Detalle string `json:"detalle,omitempty"`
}
