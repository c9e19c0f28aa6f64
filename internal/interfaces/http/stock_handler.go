package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RealMSClassic/Tactica-Sheet/internal/application/dto"
	"github.com/RealMSClassic/Tactica-Sheet/internal/application/pending"
	"github.com/RealMSClassic/Tactica-Sheet/internal/application/stock"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"
)

// StockHandler maneja las vistas agrupadas y las mutaciones del ledger (protegido).
type StockHandler struct {
	ledger *stock.Ledger
	rec    *pending.Reconciliation
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *stock.Ledger, rec *pending.Reconciliation) *StockHandler {
	return &StockHandler{ledger: ledger, rec: rec}
}

// List devuelve los totales agrupados por producto o depósito.
// Query: group_by=producto|deposito, q=filtro, sort=name_asc|name_desc|qty_asc|qty_desc.
func (h *StockHandler) List(c *fiber.Ctx) error {
	if err := h.ledger.RefreshAll(c.Context()); err != nil {
		return respondError(c, err)
	}

	groupBy := c.Query("group_by", "producto")
	q := c.Query("q")
	sortMode := c.Query("sort", stock.SortNameAsc)

	var out []dto.StockGroupResponse
	switch groupBy {
	case "deposito":
		grouped := h.ledger.FilterGroupedByDeposito(q)
		grouped = stock.SortGrouped(grouped, sortMode, func(key string) string {
			if d := h.ledger.Deposito(key); d != nil {
				return d.Nombre
			}
			return ""
		})
		for _, g := range grouped {
			item := dto.StockGroupResponse{RecID: g.Key, Total: g.Total}
			if d := h.ledger.Deposito(g.Key); d != nil {
				item.Codigo, item.Nombre = d.Codigo, d.Nombre
			}
			out = append(out, item)
		}
	default:
		grouped := h.ledger.FilterGroupedByProducto(q)
		grouped = stock.SortGrouped(grouped, sortMode, func(key string) string {
			if p := h.ledger.Producto(key); p != nil {
				return p.Nombre
			}
			return ""
		})
		for _, g := range grouped {
			item := dto.StockGroupResponse{RecID: g.Key, Total: g.Total}
			if p := h.ledger.Producto(g.Key); p != nil {
				item.Codigo, item.Nombre = p.Codigo, p.Nombre
			}
			out = append(out, item)
		}
	}

	return c.JSON(fiber.Map{"total": len(out), "grupos": out})
}

// RowsForProducto devuelve las filas con cantidad > 0 del producto.
func (h *StockHandler) RowsForProducto(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.ledger.RefreshAll(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.toRowResponses(h.ledger.RowsForProducto(id)))
}

// RowsForDeposito devuelve las filas con cantidad > 0 del depósito.
func (h *StockHandler) RowsForDeposito(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.ledger.RefreshAll(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.toRowResponses(h.ledger.RowsForDeposito(id)))
}

// AddNew crea una fila nueva de stock.
func (h *StockHandler) AddNew(c *fiber.Ctx) error {
	var in dto.AddNewStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	recID, err := h.ledger.AddNewStock(c.Context(), in.ProductoID, in.DepositoID, in.Cantidad)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"recid": recID})
}

// AddQty incrementa la cantidad de una fila existente.
func (h *StockHandler) AddQty(c *fiber.Ctx) error {
	var in dto.QtyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ledger.AddQty(c.Context(), c.Params("recid"), in.Cantidad); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "cantidad agregada"})
}

// Descargar decrementa la cantidad de una fila existente.
func (h *StockHandler) Descargar(c *fiber.Ctx) error {
	var in dto.QtyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ledger.Descargar(c.Context(), c.Params("recid"), in.Cantidad); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "descarga registrada"})
}

// Mover transfiere cantidad a un depósito destino, o con enviar_pendiente=true la
// saca de circulación hacia la tabla de pendientes con el motivo dado.
func (h *StockHandler) Mover(c *fiber.Ctx) error {
	var in dto.MoverRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	recID := c.Params("recid")

	if in.EnviarPendiente {
		pendID, err := h.rec.Enviar(c.Context(), recID, in.Cantidad, in.Motivo, in.MotivoDetalle)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"pendiente_recid": pendID})
	}

	if err := h.ledger.Mover(c.Context(), recID, in.DepositoDestID, in.Cantidad); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "movimiento registrado"})
}

// Refresh relee las cuatro tablas del almacén.
func (h *StockHandler) Refresh(c *fiber.Ctx) error {
	if err := h.ledger.RefreshAll(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "caches actualizadas"})
}

func (h *StockHandler) toRowResponses(rows []*entity.StockRow) []dto.StockRowResponse {
	out := make([]dto.StockRowResponse, 0, len(rows))
	for _, r := range rows {
		item := dto.StockRowResponse{
			RecID:      r.RecID,
			ProductoID: r.ProductoID,
			DepositoID: r.DepositoID,
			Cantidad:   r.Cantidad,
		}
		if p := h.ledger.Producto(r.ProductoID); p != nil {
			item.ProductoNombre = p.Nombre
		}
		if d := h.ledger.Deposito(r.DepositoID); d != nil {
			item.DepositoNombre = d.Nombre
		}
		out = append(out, item)
	}
	return out
}
