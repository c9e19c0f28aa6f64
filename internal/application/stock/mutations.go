package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/RealMSClassic/Tactica-Sheet/internal/domain"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"
)

// Mensajes de auditoría del ledger.
func fmtStockAdd(n int64, producto, deposito string) string {
	return fmt.Sprintf("Se agregaron %d de %q en el deposito %q", n, producto, deposito)
}

func fmtStockOut(n int64, producto, deposito string) string {
	return fmt.Sprintf("Se descargaron %d de %q del deposito %q", n, producto, deposito)
}

func fmtStockMove(n int64, producto, origen, destino string) string {
	return fmt.Sprintf("Se movieron %d de %q de %q a %q", n, producto, origen, destino)
}

// AddNewStock crea una fila nueva de stock con la cantidad dada. Siempre crea fila;
// no fusiona con una existente del mismo par (producto, depósito).
// Devuelve el RecID generado.
func (l *Ledger) AddNewStock(ctx context.Context, productoID, depositoID string, qty int64) (string, error) {
	if productoID == "" || depositoID == "" || qty <= 0 {
		return "", domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	recID, err := l.stockRepo.Add(productoID, depositoID, qty)
	if err != nil {
		return "", err
	}

	l.audit.Append(fmtStockAdd(qty, l.nombreProducto(productoID), l.nombreDeposito(depositoID)))
	l.bus.Publish(TopicStockChanged, map[string]any{"op": OpAddNew, "recid": recID})
	return recID, nil
}

// AddQty incrementa la cantidad de la fila en delta (entero positivo).
func (l *Ledger) AddQty(ctx context.Context, stockRecID string, delta int64) error {
	if stockRecID == "" || delta <= 0 {
		return domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	row, err := l.casAdjust(stockRecID, delta)
	if err != nil {
		return err
	}

	l.audit.Append(fmtStockAdd(delta, l.nombreProducto(row.ProductoID), l.nombreDeposito(row.DepositoID)))
	l.bus.Publish(TopicStockChanged, map[string]any{"op": OpAddQty, "recid": stockRecID})
	return nil
}

// Descargar decrementa la cantidad de la fila en n. Falla con ErrInsufficientStock
// si n excede la cantidad actual: la cantidad nunca queda negativa y en ese caso no
// hay mutación ni auditoría.
func (l *Ledger) Descargar(ctx context.Context, stockRecID string, n int64) error {
	if stockRecID == "" || n <= 0 {
		return domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	row, err := l.casAdjust(stockRecID, -n)
	if err != nil {
		return err
	}

	l.audit.Append(fmtStockOut(n, l.nombreProducto(row.ProductoID), l.nombreDeposito(row.DepositoID)))
	l.bus.Publish(TopicStockChanged, map[string]any{"op": OpDescargar, "recid": stockRecID})
	return nil
}

// Mover descarga n de la fila origen y acredita n en una fila del depósito destino
// para el mismo producto, creándola si no existe. Si la acreditación falla después
// de descargar, se compensa reacreditando el origen antes de devolver el error.
func (l *Ledger) Mover(ctx context.Context, stockRecIDSrc, depositoIDDest string, n int64) error {
	if stockRecIDSrc == "" || depositoIDDest == "" || n <= 0 {
		return domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := l.stockRepo.GetByRecID(stockRecIDSrc)
	if err != nil {
		return err
	}
	if src == nil {
		return domain.ErrNotFound
	}
	if src.DepositoID == depositoIDDest {
		return domain.ErrInvalidInput
	}

	if _, err := l.casAdjust(stockRecIDSrc, -n); err != nil {
		return err
	}

	if err := l.creditDest(src.ProductoID, depositoIDDest, n); err != nil {
		// Compensación: devolver n al origen para no perder cantidad.
		if _, compErr := l.casAdjust(stockRecIDSrc, n); compErr != nil {
			l.log.Error().Err(compErr).
				Str("recid", stockRecIDSrc).
				Int64("cantidad", n).
				Msg("compensación de mover falló; el almacén quedó inconsistente")
		}
		return err
	}

	l.audit.Append(fmtStockMove(n, l.nombreProducto(src.ProductoID),
		l.nombreDeposito(src.DepositoID), l.nombreDeposito(depositoIDDest)))
	l.bus.Publish(TopicStockChanged, map[string]any{"op": OpMoveAddRow, "recid": stockRecIDSrc})
	return nil
}

// creditDest suma n a la fila (producto, depósito destino), creándola si no existe.
func (l *Ledger) creditDest(productoID, depositoID string, n int64) error {
	dest, err := l.stockRepo.FindByProductoAndDeposito(productoID, depositoID)
	if err != nil {
		return err
	}
	if dest == nil {
		_, err = l.stockRepo.Add(productoID, depositoID, n)
		return err
	}
	_, err = l.casAdjust(dest.RecID, n)
	return err
}

// casAdjust aplica un delta a la cantidad de la fila con compare-and-swap sobre
// (RecID, Version). Ante un conflicto de versión relee la fila y reintenta una sola
// vez; los errores de E/S del almacén no se reintentan.
func (l *Ledger) casAdjust(recID string, delta int64) (*entity.StockRow, error) {
	row, err := l.stockRepo.GetByRecID(recID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}

	for intento := 0; ; intento++ {
		next := row.Cantidad + delta
		if next < 0 {
			return nil, domain.ErrInsufficientStock
		}
		err = l.stockRepo.UpdateCantidad(row.RecID, row.Version, next)
		if err == nil {
			row.Cantidad = next
			row.Version++
			return row, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) || intento >= 1 {
			return nil, err
		}
		row, err = l.stockRepo.GetByRecID(recID)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, domain.ErrNotFound
		}
	}
}

// Ajustar aplica un delta a la cantidad de la fila sin auditoría ni publicación de
// eventos. Lo usan los flujos compuestos de varios pasos, que registran sus efectos
// recién cuando el último paso confirma.
func (l *Ledger) Ajustar(ctx context.Context, stockRecID string, delta int64) (*entity.StockRow, error) {
	if stockRecID == "" || delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.casAdjust(stockRecID, delta)
}

// RowSnapshot lee la fila directamente del almacén (no de la cache).
func (l *Ledger) RowSnapshot(recID string) (*entity.StockRow, error) {
	row, err := l.stockRepo.GetByRecID(recID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	return row, nil
}

// FindRow busca en el almacén la primera fila del par (producto, depósito); nil si no hay.
func (l *Ledger) FindRow(productoID, depositoID string) (*entity.StockRow, error) {
	return l.stockRepo.FindByProductoAndDeposito(productoID, depositoID)
}

func (l *Ledger) nombreProducto(recID string) string {
	if p := l.Producto(recID); p != nil {
		return p.Nombre
	}
	if p, err := l.prodRepo.GetByRecID(recID); err == nil && p != nil {
		return p.Nombre
	}
	return "(producto)"
}

func (l *Ledger) nombreDeposito(recID string) string {
	if d := l.Deposito(recID); d != nil {
		return d.Nombre
	}
	if d, err := l.depoRepo.GetByRecID(recID); err == nil && d != nil {
		return d.Nombre
	}
	return "(depósito)"
}
