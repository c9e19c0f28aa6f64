package stock

// Etiquetas de operación publicadas en el topic stock_changed.
const (
	TopicStockChanged = "stock_changed"

	OpAddNew        = "add_new"
	OpAddQty        = "add_qty"
	OpDescargar     = "descargar"
	OpMoveAddRow    = "move_add_row"
	OpDeletePending = "delete_pending"
)

// AuditLogger registro de actividad legible por humanos. Colaborador opcional y
// best-effort: se invoca después de que la mutación principal confirma y un fallo
// suyo nunca altera el resultado de la operación.
type AuditLogger interface {
	Append(mensaje string)
}

// EventBus bus de eventos consumido por la capa de presentación para re-render
// reactivo. Best-effort, mismo contrato que AuditLogger.
type EventBus interface {
	Publish(topic string, payload map[string]any)
}

type nopAudit struct{}

func (nopAudit) Append(string) {}

type nopBus struct{}

func (nopBus) Publish(string, map[string]any) {}
