package stock_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RealMSClassic/Tactica-Sheet/internal/application/stock"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"
	"github.com/RealMSClassic/Tactica-Sheet/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fixture arma un ledger sobre repos en memoria con catálogos sembrados.
type fixture struct {
	ledger    *stock.Ledger
	stockRepo *memory.StockRepo
	pendRepo  *memory.PendienteRepo
	prodA     *entity.Producto
	prodB     *entity.Producto
	depoA     *entity.Deposito
	depoB     *entity.Deposito
	depoC     *entity.Deposito
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		stockRepo: memory.NewStockRepo(),
		pendRepo:  memory.NewPendienteRepo(),
		prodA:     &entity.Producto{RecID: "prod-a", Codigo: "NB-100", Nombre: "Notebook Lenovo"},
		prodB:     &entity.Producto{RecID: "prod-b", Codigo: "MO-200", Nombre: "Monitor Samsung"},
		depoA:     &entity.Deposito{RecID: "depo-a", Codigo: "D1", Nombre: "Central"},
		depoB:     &entity.Deposito{RecID: "depo-b", Codigo: "D2", Nombre: "Sucursal Norte"},
		depoC:     &entity.Deposito{RecID: "depo-c", Codigo: "D3", Nombre: "Sucursal Sur"},
	}
	prodRepo := memory.NewProductoRepo(f.prodA, f.prodB)
	depoRepo := memory.NewDepositoRepo(f.depoA, f.depoB, f.depoC)
	f.ledger = stock.NewLedger(f.stockRepo, prodRepo, depoRepo, f.pendRepo, nil, nil, nil)
	return f
}

// addRow inserta una fila de stock directamente en el almacén y devuelve su RecID.
func (f *fixture) addRow(t *testing.T, productoID, depositoID string, qty int64) string {
	t.Helper()
	id, err := f.stockRepo.Add(productoID, depositoID, qty)
	require.NoError(t, err)
	return id
}

func (f *fixture) refresh(t *testing.T) {
	t.Helper()
	require.NoError(t, f.ledger.RefreshAll(context.Background()))
}

// totalsByKey aplana una vista agrupada a mapa para asserts.
func totalsByKey(grouped []stock.GroupTotal) map[string]int64 {
	out := make(map[string]int64, len(grouped))
	for _, g := range grouped {
		out[g.Key] = g.Total
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Agregación
// ──────────────────────────────────────────────────────────────────────────────

// Varias filas del mismo producto en distintos depósitos se suman por producto,
// y las mismas filas vistas por depósito se suman por depósito.
func TestAggregate_SumaPorProductoYDeposito(t *testing.T) {
	f := newFixture(t)
	f.addRow(t, "prod-a", "depo-a", 10)
	f.addRow(t, "prod-a", "depo-b", 5)
	f.addRow(t, "prod-b", "depo-a", 3)
	f.refresh(t)

	porProducto := totalsByKey(f.ledger.AggregateByProducto())
	assert.Equal(t, int64(15), porProducto["prod-a"])
	assert.Equal(t, int64(3), porProducto["prod-b"])

	porDeposito := totalsByKey(f.ledger.AggregateByDeposito())
	assert.Equal(t, int64(13), porDeposito["depo-a"])
	assert.Equal(t, int64(5), porDeposito["depo-b"])
}

// Filas duplicadas del mismo par (producto, depósito) se agregan en lectura.
func TestAggregate_ParDuplicadoSeSuma(t *testing.T) {
	f := newFixture(t)
	f.addRow(t, "prod-a", "depo-a", 4)
	f.addRow(t, "prod-a", "depo-a", 6)
	f.refresh(t)

	porProducto := totalsByKey(f.ledger.AggregateByProducto())
	assert.Equal(t, int64(10), porProducto["prod-a"])
}

// Filas con clave vacía no aportan grupo.
func TestAggregate_ClaveVaciaSeOmite(t *testing.T) {
	f := newFixture(t)
	f.addRow(t, "prod-a", "depo-a", 10)
	f.addRow(t, "", "depo-a", 99)
	f.refresh(t)

	grouped := f.ledger.AggregateByProducto()
	require.Len(t, grouped, 1)
	assert.Equal(t, "prod-a", grouped[0].Key)
}

// El orden de los grupos es el de primera aparición en el almacén.
func TestAggregate_OrdenDePrimeraAparicion(t *testing.T) {
	f := newFixture(t)
	f.addRow(t, "prod-b", "depo-a", 1)
	f.addRow(t, "prod-a", "depo-a", 2)
	f.addRow(t, "prod-b", "depo-b", 3)
	f.refresh(t)

	grouped := f.ledger.AggregateByProducto()
	require.Len(t, grouped, 2)
	assert.Equal(t, "prod-b", grouped[0].Key)
	assert.Equal(t, "prod-a", grouped[1].Key)
}

// ──────────────────────────────────────────────────────────────────────────────
// RefreshAll
// ──────────────────────────────────────────────────────────────────────────────

// Dos refresh consecutivos sin mutaciones producen las mismas vistas.
func TestRefreshAll_Idempotente(t *testing.T) {
	f := newFixture(t)
	f.addRow(t, "prod-a", "depo-a", 10)
	f.addRow(t, "prod-b", "depo-b", 5)
	f.refresh(t)
	primera := f.ledger.AggregateByProducto()

	f.refresh(t)
	segunda := f.ledger.AggregateByProducto()

	assert.Equal(t, primera, segunda)
}

// Las filas borradas (en blanco en el almacén) no aparecen en las vistas.
func TestRefreshAll_OmiteFilasEnBlanco(t *testing.T) {
	f := newFixture(t)
	id := f.addRow(t, "prod-a", "depo-a", 10)
	f.addRow(t, "prod-b", "depo-b", 5)
	require.NoError(t, f.stockRepo.DeleteByRecID(id))
	f.refresh(t)

	grouped := f.ledger.AggregateByProducto()
	require.Len(t, grouped, 1)
	assert.Equal(t, "prod-b", grouped[0].Key)
}

// RefreshAll es seguro frente a llamadas concurrentes consigo mismo y con lecturas:
// la última en completar gana y las vistas quedan consistentes.
func TestRefreshAll_ConcurrenteUltimaGana(t *testing.T) {
	f := newFixture(t)
	f.addRow(t, "prod-a", "depo-a", 10)
	f.addRow(t, "prod-b", "depo-b", 5)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f.ledger.RefreshAll(context.Background()); err != nil {
				t.Error(err)
			}
			f.ledger.AggregateByProducto()
			f.ledger.Productos()
			f.ledger.Pendientes()
		}()
	}
	wg.Wait()

	porProducto := totalsByKey(f.ledger.AggregateByProducto())
	assert.Equal(t, int64(10), porProducto["prod-a"])
	assert.Equal(t, int64(5), porProducto["prod-b"])
}

// Contexto cancelado: RefreshAll devuelve el error del contexto sin tocar la cache.
func TestRefreshAll_ContextoCancelado(t *testing.T) {
	f := newFixture(t)
	f.addRow(t, "prod-a", "depo-a", 10)
	f.refresh(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := f.ledger.RefreshAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// La cache anterior sigue intacta.
	assert.Len(t, f.ledger.AggregateByProducto(), 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtro y ordenamiento
// ──────────────────────────────────────────────────────────────────────────────

func TestFilterGroupedByProducto_SubcadenaSinMayusculas(t *testing.T) {
	f := newFixture(t)
	f.addRow(t, "prod-a", "depo-a", 10)
	f.addRow(t, "prod-b", "depo-a", 5)
	f.refresh(t)

	// Por nombre, case-insensitive.
	grouped := f.ledger.FilterGroupedByProducto("notebook")
	require.Len(t, grouped, 1)
	assert.Equal(t, "prod-a", grouped[0].Key)

	// Por código.
	grouped = f.ledger.FilterGroupedByProducto("mo-2")
	require.Len(t, grouped, 1)
	assert.Equal(t, "prod-b", grouped[0].Key)

	// Filtro vacío devuelve todo.
	assert.Len(t, f.ledger.FilterGroupedByProducto(""), 2)

	// Sin coincidencias.
	assert.Empty(t, f.ledger.FilterGroupedByProducto("impresora"))
}

func TestFilterGroupedByDeposito_PorNombre(t *testing.T) {
	f := newFixture(t)
	f.addRow(t, "prod-a", "depo-a", 10)
	f.addRow(t, "prod-a", "depo-b", 5)
	f.refresh(t)

	grouped := f.ledger.FilterGroupedByDeposito("NORTE")
	require.Len(t, grouped, 1)
	assert.Equal(t, "depo-b", grouped[0].Key)
}

func TestSortGrouped_Modos(t *testing.T) {
	nombres := map[string]string{"a": "Zapato", "b": "alfombra", "c": "Mesa"}
	nameOf := func(k string) string { return nombres[k] }
	base := []stock.GroupTotal{
		{Key: "a", Total: 5},
		{Key: "b", Total: 20},
		{Key: "c", Total: 1},
	}
	clone := func() []stock.GroupTotal { return append([]stock.GroupTotal(nil), base...) }

	keys := func(g []stock.GroupTotal) []string {
		out := make([]string, len(g))
		for i, x := range g {
			out[i] = x.Key
		}
		return out
	}

	// Nombre ascendente sin distinguir mayúsculas: alfombra < Mesa < Zapato.
	assert.Equal(t, []string{"b", "c", "a"}, keys(stock.SortGrouped(clone(), stock.SortNameAsc, nameOf)))
	assert.Equal(t, []string{"a", "c", "b"}, keys(stock.SortGrouped(clone(), stock.SortNameDesc, nameOf)))
	assert.Equal(t, []string{"c", "a", "b"}, keys(stock.SortGrouped(clone(), stock.SortQtyAsc, nameOf)))
	assert.Equal(t, []string{"b", "a", "c"}, keys(stock.SortGrouped(clone(), stock.SortQtyDesc, nameOf)))

	// Modo desconocido deja el orden original.
	assert.Equal(t, []string{"a", "b", "c"}, keys(stock.SortGrouped(clone(), "otro", nameOf)))
}

// El ordenamiento es estable: empates conservan el orden de llegada.
func TestSortGrouped_EstableEnEmpates(t *testing.T) {
	nameOf := func(string) string { return "" }
	g := []stock.GroupTotal{
		{Key: "x", Total: 7},
		{Key: "y", Total: 7},
		{Key: "z", Total: 7},
	}
	out := stock.SortGrouped(g, stock.SortQtyDesc, nameOf)
	assert.Equal(t, "x", out[0].Key)
	assert.Equal(t, "y", out[1].Key)
	assert.Equal(t, "z", out[2].Key)
}

// ──────────────────────────────────────────────────────────────────────────────
// Paneles de detalle
// ──────────────────────────────────────────────────────────────────────────────

// Solo filas con cantidad positiva aparecen en el panel de detalle.
func TestRowsForProducto_ExcluyeCantidadCero(t *testing.T) {
	f := newFixture(t)
	f.addRow(t, "prod-a", "depo-a", 10)
	f.addRow(t, "prod-a", "depo-b", 0)
	f.addRow(t, "prod-b", "depo-a", 3)
	f.refresh(t)

	rows := f.ledger.RowsForProducto("prod-a")
	require.Len(t, rows, 1)
	assert.Equal(t, "depo-a", rows[0].DepositoID)
	assert.Equal(t, int64(10), rows[0].Cantidad)
}

func TestRowsForDeposito_ExcluyeCantidadCero(t *testing.T) {
	f := newFixture(t)
	f.addRow(t, "prod-a", "depo-a", 10)
	f.addRow(t, "prod-b", "depo-a", 0)
	f.refresh(t)

	rows := f.ledger.RowsForDeposito("depo-a")
	require.Len(t, rows, 1)
	assert.Equal(t, "prod-a", rows[0].ProductoID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogos cacheados
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogosCacheados(t *testing.T) {
	f := newFixture(t)
	f.refresh(t)

	assert.Len(t, f.ledger.Productos(), 2)
	assert.Len(t, f.ledger.Depositos(), 3)

	p := f.ledger.Producto("prod-a")
	require.NotNil(t, p)
	assert.Equal(t, "Notebook Lenovo", p.Nombre)

	assert.Nil(t, f.ledger.Producto("no-existe"))
	assert.Nil(t, f.ledger.Deposito("no-existe"))
}
