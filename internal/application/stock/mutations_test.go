package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RealMSClassic/Tactica-Sheet/internal/application/stock"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/entity"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/repository"
	"github.com/RealMSClassic/Tactica-Sheet/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs
// ──────────────────────────────────────────────────────────────────────────────

// captureAudit acumula los mensajes de auditoría emitidos.
type captureAudit struct {
	msgs []string
}

func (a *captureAudit) Append(m string) { a.msgs = append(a.msgs, m) }

// captureBus acumula los eventos publicados.
type captureBus struct {
	ops []string
}

func (b *captureBus) Publish(topic string, payload map[string]any) {
	op, _ := payload["op"].(string)
	b.ops = append(b.ops, op)
}

// stubStockRepo delega en el almacén en memoria permitiendo inyectar fallos:
// conflictos de versión forzados en UpdateCantidad y errores en Add.
type stubStockRepo struct {
	repository.StockRepository
	conflictos int   // conflictos de versión a forzar antes de delegar
	failAdd    error // error a devolver en Add
	addCalls   int
	updCalls   int
}

func (s *stubStockRepo) UpdateCantidad(recID string, version, cantidad int64) error {
	s.updCalls++
	if s.conflictos > 0 {
		s.conflictos--
		return domain.ErrVersionConflict
	}
	return s.StockRepository.UpdateCantidad(recID, version, cantidad)
}

func (s *stubStockRepo) Add(productoID, depositoID string, cantidad int64) (string, error) {
	s.addCalls++
	if s.failAdd != nil {
		return "", s.failAdd
	}
	return s.StockRepository.Add(productoID, depositoID, cantidad)
}

// mutFixture ledger sobre memoria con audit y bus de captura, stock repo reemplazable.
type mutFixture struct {
	ledger    *stock.Ledger
	stockRepo repository.StockRepository
	audit     *captureAudit
	bus       *captureBus
}

func newMutFixture(t *testing.T, sr repository.StockRepository) *mutFixture {
	t.Helper()
	prodRepo := memory.NewProductoRepo(
		&entity.Producto{RecID: "prod-a", Codigo: "NB-100", Nombre: "Notebook Lenovo"},
	)
	depoRepo := memory.NewDepositoRepo(
		&entity.Deposito{RecID: "depo-a", Codigo: "D1", Nombre: "Central"},
		&entity.Deposito{RecID: "depo-b", Codigo: "D2", Nombre: "Sucursal Norte"},
	)
	f := &mutFixture{
		stockRepo: sr,
		audit:     &captureAudit{},
		bus:       &captureBus{},
	}
	f.ledger = stock.NewLedger(sr, prodRepo, depoRepo, memory.NewPendienteRepo(), f.audit, f.bus, nil)
	require.NoError(t, f.ledger.RefreshAll(context.Background()))
	return f
}

func (f *mutFixture) cantidad(t *testing.T, recID string) int64 {
	t.Helper()
	row, err := f.stockRepo.GetByRecID(recID)
	require.NoError(t, err)
	require.NotNil(t, row)
	return row.Cantidad
}

// ──────────────────────────────────────────────────────────────────────────────
// AddNewStock / AddQty
// ──────────────────────────────────────────────────────────────────────────────

func TestAddNewStock_CreaFilaYAudita(t *testing.T) {
	f := newMutFixture(t, memory.NewStockRepo())

	recID, err := f.ledger.AddNewStock(context.Background(), "prod-a", "depo-a", 10)
	require.NoError(t, err)
	require.NotEmpty(t, recID)

	assert.Equal(t, int64(10), f.cantidad(t, recID))
	require.Len(t, f.audit.msgs, 1)
	assert.Contains(t, f.audit.msgs[0], "Notebook Lenovo")
	assert.Contains(t, f.audit.msgs[0], "Central")
	assert.Equal(t, []string{stock.OpAddNew}, f.bus.ops)
}

// Siempre se crea fila nueva: no se fusiona con una existente del mismo par.
func TestAddNewStock_NoFusionaParExistente(t *testing.T) {
	f := newMutFixture(t, memory.NewStockRepo())

	id1, err := f.ledger.AddNewStock(context.Background(), "prod-a", "depo-a", 10)
	require.NoError(t, err)
	id2, err := f.ledger.AddNewStock(context.Background(), "prod-a", "depo-a", 5)
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	rows, err := f.stockRepo.List()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestAddNewStock_EntradaInvalida(t *testing.T) {
	f := newMutFixture(t, memory.NewStockRepo())
	ctx := context.Background()

	_, err := f.ledger.AddNewStock(ctx, "", "depo-a", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.ledger.AddNewStock(ctx, "prod-a", "", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.ledger.AddNewStock(ctx, "prod-a", "depo-a", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.ledger.AddNewStock(ctx, "prod-a", "depo-a", -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddQty_Incrementa(t *testing.T) {
	f := newMutFixture(t, memory.NewStockRepo())
	recID, err := f.ledger.AddNewStock(context.Background(), "prod-a", "depo-a", 10)
	require.NoError(t, err)

	require.NoError(t, f.ledger.AddQty(context.Background(), recID, 7))
	assert.Equal(t, int64(17), f.cantidad(t, recID))
}

func TestAddQty_FilaInexistente(t *testing.T) {
	f := newMutFixture(t, memory.NewStockRepo())
	err := f.ledger.AddQty(context.Background(), "no-existe00", 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Descargar
// ──────────────────────────────────────────────────────────────────────────────

func TestDescargar_Decrementa(t *testing.T) {
	f := newMutFixture(t, memory.NewStockRepo())
	recID, err := f.ledger.AddNewStock(context.Background(), "prod-a", "depo-a", 10)
	require.NoError(t, err)

	require.NoError(t, f.ledger.Descargar(context.Background(), recID, 4))
	assert.Equal(t, int64(6), f.cantidad(t, recID))
}

// Descargar más de lo disponible se rechaza y la cantidad queda intacta,
// sin entrada de auditoría ni evento.
func TestDescargar_ExcedeDisponible(t *testing.T) {
	f := newMutFixture(t, memory.NewStockRepo())
	recID, err := f.ledger.AddNewStock(context.Background(), "prod-a", "depo-a", 10)
	require.NoError(t, err)
	auditAntes := len(f.audit.msgs)
	busAntes := len(f.bus.ops)

	err = f.ledger.Descargar(context.Background(), recID, 15)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), f.cantidad(t, recID))
	assert.Len(t, f.audit.msgs, auditAntes)
	assert.Len(t, f.bus.ops, busAntes)
}

// Descargar exactamente la cantidad disponible deja la fila en cero.
func TestDescargar_HastaCero(t *testing.T) {
	f := newMutFixture(t, memory.NewStockRepo())
	recID, err := f.ledger.AddNewStock(context.Background(), "prod-a", "depo-a", 10)
	require.NoError(t, err)

	require.NoError(t, f.ledger.Descargar(context.Background(), recID, 10))
	assert.Equal(t, int64(0), f.cantidad(t, recID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Mover
// ──────────────────────────────────────────────────────────────────────────────

// Mover hacia un depósito sin fila del producto crea la fila destino.
// La cantidad total del producto se conserva.
func TestMover_CreaFilaDestino(t *testing.T) {
	f := newMutFixture(t, memory.NewStockRepo())
	src, err := f.ledger.AddNewStock(context.Background(), "prod-a", "depo-a", 10)
	require.NoError(t, err)

	require.NoError(t, f.ledger.Mover(context.Background(), src, "depo-b", 7))

	assert.Equal(t, int64(3), f.cantidad(t, src))
	dest, err := f.stockRepo.FindByProductoAndDeposito("prod-a", "depo-b")
	require.NoError(t, err)
	require.NotNil(t, dest)
	assert.Equal(t, int64(7), dest.Cantidad)
}

// Mover hacia un depósito con fila existente la incrementa en vez de crear otra.
func TestMover_FusionaFilaDestinoExistente(t *testing.T) {
	f := newMutFixture(t, memory.NewStockRepo())
	ctx := context.Background()
	src, err := f.ledger.AddNewStock(ctx, "prod-a", "depo-a", 10)
	require.NoError(t, err)
	dest, err := f.ledger.AddNewStock(ctx, "prod-a", "depo-b", 2)
	require.NoError(t, err)

	require.NoError(t, f.ledger.Mover(ctx, src, "depo-b", 4))

	assert.Equal(t, int64(6), f.cantidad(t, src))
	assert.Equal(t, int64(6), f.cantidad(t, dest))

	rows, err := f.stockRepo.List()
	require.NoError(t, err)
	assert.Len(t, rows, 2, "no debe crearse una tercera fila")
}

func TestMover_MismoDepositoRechazado(t *testing.T) {
	f := newMutFixture(t, memory.NewStockRepo())
	src, err := f.ledger.AddNewStock(context.Background(), "prod-a", "depo-a", 10)
	require.NoError(t, err)

	err = f.ledger.Mover(context.Background(), src, "depo-a", 3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(10), f.cantidad(t, src))
}

func TestMover_ExcedeDisponible(t *testing.T) {
	f := newMutFixture(t, memory.NewStockRepo())
	src, err := f.ledger.AddNewStock(context.Background(), "prod-a", "depo-a", 10)
	require.NoError(t, err)

	err = f.ledger.Mover(context.Background(), src, "depo-b", 11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), f.cantidad(t, src))
}

// Si la acreditación en destino falla, la descarga del origen se compensa:
// la cantidad no se pierde.
func TestMover_CompensaSiAcreditacionFalla(t *testing.T) {
	stub := &stubStockRepo{StockRepository: memory.NewStockRepo(), failAdd: domain.ErrStoreUnavailable}
	f := newMutFixture(t, stub)

	// Fila origen creada directo en memoria para no pasar por el Add fallido.
	src, err := stub.StockRepository.Add("prod-a", "depo-a", 10)
	require.NoError(t, err)

	err = f.ledger.Mover(context.Background(), src, "depo-b", 7)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	assert.Equal(t, int64(10), f.cantidad(t, src), "la cantidad del origen debe restaurarse")
	_, errDest := f.stockRepo.FindByProductoAndDeposito("prod-a", "depo-b")
	require.NoError(t, errDest)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustar
// ──────────────────────────────────────────────────────────────────────────────

// Ajustar aplica el delta sin auditoría ni eventos; el registro queda en manos del
// flujo compuesto que lo invoca.
func TestAjustar_SilenciosoEnAmbosSentidos(t *testing.T) {
	f := newMutFixture(t, memory.NewStockRepo())
	recID, err := f.ledger.AddNewStock(context.Background(), "prod-a", "depo-a", 10)
	require.NoError(t, err)
	auditAntes := len(f.audit.msgs)
	busAntes := len(f.bus.ops)

	_, err = f.ledger.Ajustar(context.Background(), recID, -4)
	require.NoError(t, err)
	_, err = f.ledger.Ajustar(context.Background(), recID, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(7), f.cantidad(t, recID))
	assert.Len(t, f.audit.msgs, auditAntes)
	assert.Len(t, f.bus.ops, busAntes)
}

// Ajustar conserva la guarda de no-negatividad y la validación de entrada.
func TestAjustar_Guardas(t *testing.T) {
	f := newMutFixture(t, memory.NewStockRepo())
	recID, err := f.ledger.AddNewStock(context.Background(), "prod-a", "depo-a", 10)
	require.NoError(t, err)

	_, err = f.ledger.Ajustar(context.Background(), recID, -11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), f.cantidad(t, recID))

	_, err = f.ledger.Ajustar(context.Background(), recID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.ledger.Ajustar(context.Background(), "", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Compare-and-swap
// ──────────────────────────────────────────────────────────────────────────────

// Un solo conflicto de versión se resuelve releyendo y reintentando una vez.
func TestCAS_UnConflictoSeReintenta(t *testing.T) {
	stub := &stubStockRepo{StockRepository: memory.NewStockRepo(), conflictos: 1}
	f := newMutFixture(t, stub)
	src, err := stub.StockRepository.Add("prod-a", "depo-a", 10)
	require.NoError(t, err)

	require.NoError(t, f.ledger.AddQty(context.Background(), src, 5))
	assert.Equal(t, int64(15), f.cantidad(t, src))
	assert.Equal(t, 2, stub.updCalls)
}

// Dos conflictos seguidos agotan el único reintento y la operación falla.
func TestCAS_DosConflictosFallan(t *testing.T) {
	stub := &stubStockRepo{StockRepository: memory.NewStockRepo(), conflictos: 2}
	f := newMutFixture(t, stub)
	src, err := stub.StockRepository.Add("prod-a", "depo-a", 10)
	require.NoError(t, err)

	err = f.ledger.AddQty(context.Background(), src, 5)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	assert.Equal(t, int64(10), f.cantidad(t, src))
	assert.Equal(t, 2, stub.updCalls, "exactamente un reintento")
}

// El ajuste siempre parte del estado vigente del almacén, nunca de un valor
// cacheado: una escritura externa previa se refleja en el resultado final.
func TestAddQty_ParteDelEstadoVigente(t *testing.T) {
	mem := memory.NewStockRepo()
	f := newMutFixture(t, mem)
	src, err := mem.Add("prod-a", "depo-a", 10)
	require.NoError(t, err)
	require.NoError(t, f.ledger.RefreshAll(context.Background()))

	// Escritura externa posterior al refresh: la cache quedó vieja.
	row, err := mem.GetByRecID(src)
	require.NoError(t, err)
	require.NoError(t, mem.UpdateCantidad(src, row.Version, 20))

	require.NoError(t, f.ledger.AddQty(context.Background(), src, 5))
	assert.Equal(t, int64(25), f.cantidad(t, src))
}
