package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RealMSClassic/Tactica-Sheet/internal/application/dto"
	"github.com/RealMSClassic/Tactica-Sheet/internal/application/pending"
	"github.com/RealMSClassic/Tactica-Sheet/internal/application/stock"
)

// PendingHandler maneja el listado y la resolución de pendientes (protegido).
type PendingHandler struct {
	rec    *pending.Reconciliation
	ledger *stock.Ledger
}

// NewPendingHandler construye el handler.
func NewPendingHandler(rec *pending.Reconciliation, ledger *stock.Ledger) *PendingHandler {
	return &PendingHandler{rec: rec, ledger: ledger}
}

// List devuelve las entradas pendientes, filtradas por nombre de producto con ?q=.
func (h *PendingHandler) List(c *fiber.Ctx) error {
	rows, err := h.rec.List(c.Context(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	if err := h.ledger.RefreshAll(c.Context()); err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PendienteResponse, 0, len(rows))
	for _, r := range rows {
		item := dto.PendienteResponse{
			RecID:      r.RecID,
			ProductoID: r.ProductoID,
			DepositoID: r.DepositoID,
			Cantidad:   r.Cantidad,
			Movimiento: r.Movimiento,
			TipoAccion: r.TipoAccion,
		}
		if p := h.ledger.Producto(r.ProductoID); p != nil {
			item.ProductoNombre = p.Nombre
		}
		if d := h.ledger.Deposito(r.DepositoID); d != nil {
			item.DepositoNombre = d.Nombre
		}
		out = append(out, item)
	}
	return c.JSON(fiber.Map{"total": len(out), "pendientes": out})
}

// Restaurar devuelve la cantidad pendiente al depósito destino y borra la entrada.
func (h *PendingHandler) Restaurar(c *fiber.Ctx) error {
	var in dto.RestaurarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.rec.Restaurar(c.Context(), c.Params("recid"), in.DepositoDestID, GetUserName(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "pendiente restaurado"})
}

// Descartar elimina la entrada pendiente de forma definitiva con motivo de auditoría.
func (h *PendingHandler) Descartar(c *fiber.Ctx) error {
	var in dto.DescartarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.rec.Descartar(c.Context(), c.Params("recid"), in.Motivo, in.Detalle, GetUserName(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "pendiente descartado"})
}
