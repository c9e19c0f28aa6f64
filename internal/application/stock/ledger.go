package stock

import (
	"context"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/repository"
	"github.com/RealMSClassic/Tactica-Sheet/pkg/logger"
)

// Modos de ordenamiento para las vistas agrupadas.
const (
	SortNameAsc  = "name_asc"
	SortNameDesc = "name_desc"
	SortQtyAsc   = "qty_asc"
	SortQtyDesc  = "qty_desc"
)

// GroupTotal total agregado de cantidad por producto o por depósito.
type GroupTotal struct {
	Key   string // RecID del producto o del depósito según la dimensión
	Total int64
}

// Ledger capa de agregación y mutación sobre la tabla de stock.
//
// Mantiene caches transitorias de las cuatro tablas, reconstruidas por completo en
// cada RefreshAll; el almacén de registros es siempre la única fuente de verdad.
// Las mutaciones leen y escriben contra el almacén, nunca contra la cache.
type Ledger struct {
	stockRepo repository.StockRepository
	prodRepo  repository.ProductoRepository
	depoRepo  repository.DepositoRepository
	pendRepo  repository.PendienteRepository

	audit AuditLogger
	bus   EventBus
	log   *logger.Logger

	mu           sync.RWMutex
	productos    []*entity.Producto
	depositos    []*entity.Deposito
	stockRows    []*entity.StockRow
	pendientes   []*entity.Pendiente
	prodByRecID  map[string]*entity.Producto
	depoByRecID  map[string]*entity.Deposito
	stockByRecID map[string]*entity.StockRow
}

// NewLedger construye el ledger. audit y bus pueden ser nil; se sustituyen por no-ops.
func NewLedger(
	stockRepo repository.StockRepository,
	prodRepo repository.ProductoRepository,
	depoRepo repository.DepositoRepository,
	pendRepo repository.PendienteRepository,
	audit AuditLogger,
	bus EventBus,
	log *logger.Logger,
) *Ledger {
	if audit == nil {
		audit = nopAudit{}
	}
	if bus == nil {
		bus = nopBus{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Ledger{
		stockRepo:    stockRepo,
		prodRepo:     prodRepo,
		depoRepo:     depoRepo,
		pendRepo:     pendRepo,
		audit:        audit,
		bus:          bus,
		log:          log,
		prodByRecID:  map[string]*entity.Producto{},
		depoByRecID:  map[string]*entity.Deposito{},
		stockByRecID: map[string]*entity.StockRow{},
	}
}

// RefreshAll relee por completo las cuatro tablas y reemplaza las caches.
// Idempotente y seguro frente a llamadas concurrentes: la última en completar gana.
func (l *Ledger) RefreshAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	productos, err := l.prodRepo.List()
	if err != nil {
		return err
	}
	depositos, err := l.depoRepo.List()
	if err != nil {
		return err
	}
	stockRows, err := l.stockRepo.List()
	if err != nil {
		return err
	}
	pendientes, err := l.pendRepo.List()
	if err != nil {
		return err
	}

	prodByRecID := make(map[string]*entity.Producto, len(productos))
	for _, p := range productos {
		if p.RecID != "" {
			prodByRecID[p.RecID] = p
		}
	}
	depoByRecID := make(map[string]*entity.Deposito, len(depositos))
	for _, d := range depositos {
		if d.RecID != "" {
			depoByRecID[d.RecID] = d
		}
	}

	// Filas borradas quedan en blanco en el almacén: RecID vacío equivale a ausente.
	vivos := stockRows[:0:0]
	stockByRecID := make(map[string]*entity.StockRow, len(stockRows))
	for _, r := range stockRows {
		if r.RecID == "" {
			continue
		}
		vivos = append(vivos, r)
		stockByRecID[r.RecID] = r
	}

	pendVivos := pendientes[:0:0]
	for _, p := range pendientes {
		if p.RecID != "" {
			pendVivos = append(pendVivos, p)
		}
	}

	l.mu.Lock()
	l.productos = productos
	l.depositos = depositos
	l.stockRows = vivos
	l.pendientes = pendVivos
	l.prodByRecID = prodByRecID
	l.depoByRecID = depoByRecID
	l.stockByRecID = stockByRecID
	l.mu.Unlock()
	return nil
}

// Productos devuelve el catálogo cacheado de productos.
func (l *Ledger) Productos() []*entity.Producto {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]*entity.Producto(nil), l.productos...)
}

// Depositos devuelve el catálogo cacheado de depósitos.
func (l *Ledger) Depositos() []*entity.Deposito {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]*entity.Deposito(nil), l.depositos...)
}

// Producto busca un producto en cache por RecID; nil si no está.
func (l *Ledger) Producto(recID string) *entity.Producto {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.prodByRecID[recID]
}

// Deposito busca un depósito en cache por RecID; nil si no está.
func (l *Ledger) Deposito(recID string) *entity.Deposito {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.depoByRecID[recID]
}

// Pendientes devuelve las entradas pendientes cacheadas.
func (l *Ledger) Pendientes() []*entity.Pendiente {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]*entity.Pendiente(nil), l.pendientes...)
}

// AggregateByProducto agrupa las filas de stock por producto sumando cantidades.
// El orden es el de primera aparición; aplicar SortGrouped para ordenar.
func (l *Ledger) AggregateByProducto() []GroupTotal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return aggregate(l.stockRows, func(r *entity.StockRow) string { return r.ProductoID })
}

// AggregateByDeposito agrupa las filas de stock por depósito sumando cantidades.
func (l *Ledger) AggregateByDeposito() []GroupTotal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return aggregate(l.stockRows, func(r *entity.StockRow) string { return r.DepositoID })
}

func aggregate(rows []*entity.StockRow, key func(*entity.StockRow) string) []GroupTotal {
	totals := map[string]int64{}
	var order []string
	for _, r := range rows {
		k := key(r)
		if k == "" {
			continue
		}
		if _, seen := totals[k]; !seen {
			order = append(order, k)
		}
		totals[k] += r.Cantidad
	}
	out := make([]GroupTotal, 0, len(order))
	for _, k := range order {
		out = append(out, GroupTotal{Key: k, Total: totals[k]})
	}
	return out
}

// FilterGroupedByProducto agrupa por producto y filtra por subcadena (sin distinguir
// mayúsculas) sobre nombre o código del producto.
func (l *Ledger) FilterGroupedByProducto(q string) []GroupTotal {
	grouped := l.AggregateByProducto()
	if q == "" {
		return grouped
	}
	ql := fold(q)
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := grouped[:0:0]
	for _, g := range grouped {
		p := l.prodByRecID[g.Key]
		if p == nil {
			continue
		}
		if strings.Contains(fold(p.Nombre), ql) || strings.Contains(fold(p.Codigo), ql) {
			out = append(out, g)
		}
	}
	return out
}

// FilterGroupedByDeposito agrupa por depósito y filtra por subcadena sobre nombre o código.
func (l *Ledger) FilterGroupedByDeposito(q string) []GroupTotal {
	grouped := l.AggregateByDeposito()
	if q == "" {
		return grouped
	}
	ql := fold(q)
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := grouped[:0:0]
	for _, g := range grouped {
		d := l.depoByRecID[g.Key]
		if d == nil {
			continue
		}
		if strings.Contains(fold(d.Nombre), ql) || strings.Contains(fold(d.Codigo), ql) {
			out = append(out, g)
		}
	}
	return out
}

// SortGrouped ordena una vista agrupada según el modo. nameOf resuelve el nombre
// visible de cada clave; la comparación de nombres no distingue mayúsculas.
func SortGrouped(grouped []GroupTotal, mode string, nameOf func(key string) string) []GroupTotal {
	switch mode {
	case SortNameAsc, SortNameDesc:
		names := make(map[string]string, len(grouped))
		for _, g := range grouped {
			names[g.Key] = fold(nameOf(g.Key))
		}
		sort.SliceStable(grouped, func(i, j int) bool {
			if mode == SortNameDesc {
				return names[grouped[i].Key] > names[grouped[j].Key]
			}
			return names[grouped[i].Key] < names[grouped[j].Key]
		})
	case SortQtyAsc:
		sort.SliceStable(grouped, func(i, j int) bool { return grouped[i].Total < grouped[j].Total })
	case SortQtyDesc:
		sort.SliceStable(grouped, func(i, j int) bool { return grouped[i].Total > grouped[j].Total })
	}
	return grouped
}

// RowsForProducto devuelve las filas del producto con cantidad > 0.
func (l *Ledger) RowsForProducto(productoID string) []*entity.StockRow {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []*entity.StockRow
	for _, r := range l.stockRows {
		if r.ProductoID == productoID && r.Cantidad > 0 {
			out = append(out, r)
		}
	}
	return out
}

// RowsForDeposito devuelve las filas del depósito con cantidad > 0.
func (l *Ledger) RowsForDeposito(depositoID string) []*entity.StockRow {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []*entity.StockRow
	for _, r := range l.stockRows {
		if r.DepositoID == depositoID && r.Cantidad > 0 {
			out = append(out, r)
		}
	}
	return out
}

// fold normaliza para comparación sin distinguir mayúsculas (Unicode case folding).
func fold(s string) string {
	return cases.Fold().String(s)
}
