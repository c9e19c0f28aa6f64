package dto

import "time"

// StockGroupResponse total agregado por producto o depósito, con datos visibles resueltos.
type StockGroupResponse struct {
	RecID  string `json:"recid"`
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
	Total  int64  `json:"total"`
}

// StockRowResponse fila de stock para paneles de detalle.
type StockRowResponse struct {
	RecID          string `json:"recid"`
	ProductoID     string `json:"ID_producto"`
	ProductoNombre string `json:"nombre_producto"`
	DepositoID     string `json:"ID_deposito"`
	DepositoNombre string `json:"nombre_deposito"`
	Cantidad       int64  `json:"cantidad"`
}

// AddNewStockRequest body para POST /api/stock.
type AddNewStockRequest struct {
	ProductoID string `json:"ID_producto"`
	DepositoID string `json:"ID_deposito"`
	Cantidad   int64  `json:"cantidad"`
}

// QtyRequest body para agregar o descargar cantidad sobre una fila existente.
type QtyRequest struct {
	Cantidad int64 `json:"cantidad"`
}

// MoverRequest body para POST /api/stock/:recid/mover.
// Con EnviarPendiente=true la cantidad sale de circulación hacia la tabla de
// pendientes con el motivo dado en vez de acreditarse en un depósito destino.
type MoverRequest struct {
	DepositoDestID  string `json:"ID_deposito_dest,omitempty"`
	Cantidad        int64  `json:"cantidad"`
	EnviarPendiente bool   `json:"enviar_pendiente,omitempty"`
	Motivo          string `json:"movimiento,omitempty"`
	MotivoDetalle   string `json:"motivo_detalle,omitempty"`
}

// ActividadResponse entrada del registro de actividad.
type ActividadResponse struct {
	Mensaje   string    `json:"mensaje"`
	CreatedAt time.Time `json:"created_at"`
}
