package pending

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/RealMSClassic/Tactica-Sheet/internal/application/stock"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/repository"
	"github.com/RealMSClassic/Tactica-Sheet/pkg/logger"
)

// estadoResuelto: una entrada con movimiento "ok" se trata como resuelta de forma
// defensiva, aunque el flujo normal borra las entradas resueltas en vez de marcarlas.
const estadoResuelto = "ok"

// Reconciliation ciclo de vida de las entradas pendientes: creación (enviar a
// pendiente), listado con filtro y resolución (restaurar o descartar).
//
// Enviar y restaurar son flujos de dos pasos contra el almacén. No hay transacción:
// si el segundo paso falla, el primero se compensa; si la compensación también falla
// se registra y el almacén queda como fuente de verdad a refrescar.
type Reconciliation struct {
	ledger   *stock.Ledger
	pendRepo repository.PendienteRepository
	prodRepo repository.ProductoRepository
	depoRepo repository.DepositoRepository
	audit    stock.AuditLogger
	bus      stock.EventBus
	log      *logger.Logger
}

// NewReconciliation construye el caso de uso. audit y bus pueden ser nil.
func NewReconciliation(
	ledger *stock.Ledger,
	pendRepo repository.PendienteRepository,
	prodRepo repository.ProductoRepository,
	depoRepo repository.DepositoRepository,
	audit stock.AuditLogger,
	bus stock.EventBus,
	log *logger.Logger,
) *Reconciliation {
	r := &Reconciliation{
		ledger:   ledger,
		pendRepo: pendRepo,
		prodRepo: prodRepo,
		depoRepo: depoRepo,
		audit:    audit,
		bus:      bus,
		log:      log,
	}
	if r.audit == nil {
		r.audit = nopAudit{}
	}
	if r.bus == nil {
		r.bus = nopBus{}
	}
	if r.log == nil {
		r.log = logger.Nop()
	}
	return r
}

type nopAudit struct{}

func (nopAudit) Append(string) {}

type nopBus struct{}

func (nopBus) Publish(string, map[string]any) {}

// ResolverMotivo aplica el centinela "Otros": sustituye por el texto libre, y un
// texto vacío se vuelve "Sin especificar".
func ResolverMotivo(motivo, detalle string) string {
	if motivo == entity.MotivoOtros {
		detalle = strings.TrimSpace(detalle)
		if detalle == "" {
			return entity.MotivoSinEspecificar
		}
		return detalle
	}
	return motivo
}

// List devuelve las entradas cuyo movimiento no es "ok", opcionalmente filtradas por
// subcadena del nombre del producto (sin distinguir mayúsculas). Lee el almacén
// directamente: es la fuente de verdad, no la cache.
func (r *Reconciliation) List(ctx context.Context, q string) ([]*entity.Pendiente, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := r.pendRepo.List()
	if err != nil {
		return nil, err
	}
	ql := fold(q)
	out := make([]*entity.Pendiente, 0, len(rows))
	for _, row := range rows {
		if row.RecID == "" || fold(row.Movimiento) == estadoResuelto {
			continue
		}
		if ql != "" {
			nombre := ""
			if p, err := r.prodRepo.GetByRecID(row.ProductoID); err == nil && p != nil {
				nombre = p.Nombre
			}
			if !strings.Contains(fold(nombre), ql) {
				continue
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// Enviar descarga n unidades de la fila de stock origen y crea una entrada pendiente
// con el motivo elegido (debe pertenecer al catálogo de motivos de envío). Devuelve el
// RecID de la entrada creada.
// El ajuste de stock es silencioso: auditoría y evento se emiten recién cuando la
// inserción del pendiente confirma. Si esa inserción falla, la cantidad se reacredita
// al origen para no perderla y el flujo fallido no deja rastro.
func (r *Reconciliation) Enviar(ctx context.Context, stockRecID string, n int64, motivo, detalle string) (string, error) {
	if stockRecID == "" || n <= 0 || !motivoValido(motivo, entity.MotivosEnvio) {
		return "", domain.ErrInvalidInput
	}
	motivo = ResolverMotivo(motivo, detalle)

	src, err := r.ledger.RowSnapshot(stockRecID)
	if err != nil {
		return "", err
	}

	if _, err := r.ledger.Ajustar(ctx, stockRecID, -n); err != nil {
		return "", err
	}

	recID, err := r.pendRepo.Add(src.ProductoID, src.DepositoID, n, motivo, entity.TipoAccionPendiente)
	if err != nil {
		// Compensación: la cantidad ya salió del stock sin registro pendiente.
		if _, compErr := r.ledger.Ajustar(ctx, stockRecID, n); compErr != nil {
			r.log.Error().Err(compErr).
				Str("recid", stockRecID).
				Int64("cantidad", n).
				Msg("compensación de enviar pendiente falló; el almacén quedó inconsistente")
		}
		return "", err
	}

	r.audit.Append(fmtEnviar(n, r.nombreProducto(src.ProductoID), r.nombreDeposito(src.DepositoID), motivo))
	r.bus.Publish(stock.TopicStockChanged, map[string]any{
		"op": stock.OpMoveAddRow, "recid": stockRecID, "pendiente_recid": recID,
	})
	return recID, nil
}

// Restaurar devuelve la cantidad completa de la entrada al depósito destino: si ya
// existe una fila (producto, destino) la incrementa, si no crea una nueva. Después
// borra la entrada pendiente. actor es el usuario que ejecuta la acción.
func (r *Reconciliation) Restaurar(ctx context.Context, pendienteRecID, depositoDestID, actor string) error {
	if pendienteRecID == "" || depositoDestID == "" {
		return domain.ErrInvalidInput
	}
	row, err := r.pendRepo.GetByRecID(pendienteRecID)
	if err != nil {
		return err
	}
	if row == nil {
		return domain.ErrNotFound
	}

	existente, err := r.ledger.FindRow(row.ProductoID, depositoDestID)
	if err != nil {
		return err
	}
	if existente != nil {
		err = r.ledger.AddQty(ctx, existente.RecID, row.Cantidad)
	} else {
		_, err = r.ledger.AddNewStock(ctx, row.ProductoID, depositoDestID, row.Cantidad)
	}
	if err != nil {
		return err
	}

	if err := r.pendRepo.DeleteByRecID(pendienteRecID); err != nil {
		// La cantidad ya fue acreditada; la entrada sobrevivió. Se reporta y el
		// siguiente refresh mostrará el estado real del almacén.
		return err
	}

	r.audit.Append(fmtRestaurar(actor, row.Cantidad, r.nombreProducto(row.ProductoID), r.nombreDeposito(depositoDestID)))
	r.bus.Publish(stock.TopicStockChanged, map[string]any{
		"op": stock.OpDeletePending, "recid": pendienteRecID, "motivo": "Restaurado",
	})
	return nil
}

// Descartar elimina la entrada pendiente de forma definitiva sin tocar ninguna fila
// de stock. motivo debe pertenecer al catálogo de motivos de descarte; motivo/detalle
// siguen la regla del centinela "Otros".
func (r *Reconciliation) Descartar(ctx context.Context, pendienteRecID, motivo, detalle, actor string) error {
	if pendienteRecID == "" || !motivoValido(motivo, entity.MotivosDescarte) {
		return domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	motivo = ResolverMotivo(motivo, detalle)

	row, err := r.pendRepo.GetByRecID(pendienteRecID)
	if err != nil {
		return err
	}
	if row == nil {
		return domain.ErrNotFound
	}

	if err := r.pendRepo.DeleteByRecID(pendienteRecID); err != nil {
		return err
	}

	r.audit.Append(fmtDescartar(actor, row.Cantidad, r.nombreProducto(row.ProductoID), row.Movimiento, motivo))
	r.bus.Publish(stock.TopicStockChanged, map[string]any{
		"op": stock.OpDeletePending, "recid": pendienteRecID, "motivo": motivo,
	})
	return nil
}

// motivoValido verifica que el motivo pertenezca al catálogo dado.
func motivoValido(motivo string, catalogo []string) bool {
	for _, m := range catalogo {
		if m == motivo {
			return true
		}
	}
	return false
}

func fmtEnviar(n int64, producto, deposito, motivo string) string {
	return fmt.Sprintf("Se enviaron %d de %q del deposito %q a pendientes en estado %q", n, producto, deposito, motivo)
}

func fmtRestaurar(actor string, n int64, producto, deposito string) string {
	if actor == "" {
		actor = "User"
	}
	return fmt.Sprintf("%s Restauro %d de %q en el deposito: %q", actor, n, producto, deposito)
}

func fmtDescartar(actor string, n int64, producto, estado, motivo string) string {
	if actor == "" {
		actor = "User"
	}
	return fmt.Sprintf("%s Descarto %d de %q que estaban en estado %q por el motivo de %q.",
		actor, n, producto, estado, motivo)
}

func (r *Reconciliation) nombreProducto(recID string) string {
	if p, err := r.prodRepo.GetByRecID(recID); err == nil && p != nil {
		return p.Nombre
	}
	return "(producto)"
}

func (r *Reconciliation) nombreDeposito(recID string) string {
	if d, err := r.depoRepo.GetByRecID(recID); err == nil && d != nil {
		return d.Nombre
	}
	return "(depósito)"
}

func fold(s string) string {
	return cases.Fold().String(s)
}
