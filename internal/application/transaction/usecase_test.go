package transaction_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/application/transaction"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testActor = "00000000-0000-0000-0000-000000000002"

type txFixture struct {
	uc       *transaction.TransactionUseCase
	stockUC  *ledger.StockLedgerUseCase
	store    *memory.Store
	recorder *memory.EventRecorder
	stock    *entity.StockRecord
}

// newTxFixture construye ambos casos de uso sobre el mismo store en memoria,
// con producto, bodega y un registro de stock con existencia inicial sembrados.
func newTxFixture(t *testing.T, initial int64) *txFixture {
	t.Helper()
	store := memory.NewStore()
	recorder := memory.NewEventRecorder()
	now := time.Now()

	productRepo := memory.NewProductRepository(store)
	warehouseRepo := memory.NewWarehouseRepository(store)
	stockRepo := memory.NewStockRecordRepository(store)
	flags := ledger.DefaultFlags()

	product := &entity.Product{
		ID: uuid.New().String(), SKU: "ELE00000002", Name: "Switch 8 puertos",
		CategoryCode: "ELE", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, productRepo.Create(product))
	warehouse := &entity.Warehouse{
		ID: uuid.New().String(), Code: "PRINCIPAL", Name: "Bodega Principal",
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, warehouseRepo.Create(warehouse))

	stockUC := ledger.NewStockLedgerUseCase(
		memory.NewTxRunner(store),
		stockRepo,
		memory.NewStockMovementRepository(store),
		productRepo,
		warehouseRepo,
		recorder,
		flags,
	)
	stock, err := stockUC.Create(context.Background(), testActor,
		product.ID, warehouse.ID, decimal.NewFromInt(initial), "", decimal.Zero)
	require.NoError(t, err, "la siembra de stock no debe fallar")

	uc := transaction.NewTransactionUseCase(
		memory.NewTxRunner(store),
		memory.NewTransactionRepository(store),
		memory.NewTransactionHistoryRepository(store),
		stockRepo,
		recorder,
		flags,
	)
	return &txFixture{uc: uc, stockUC: stockUC, store: store, recorder: recorder, stock: stock}
}

// open abre una transacción sobre el stock sembrado.
func (f *txFixture) open(t *testing.T) *entity.InventoryTransaction {
	t.Helper()
	trans, err := f.uc.Create(context.Background(), testActor, f.stock.ID, "pedido de prueba")
	require.NoError(t, err, "abrir la transacción no debe fallar")
	return trans
}

// stockQty relee la existencia actual del registro de stock.
func (f *txFixture) stockQty(t *testing.T) decimal.Decimal {
	t.Helper()
	stock, err := f.stockUC.GetByID(f.stock.ID)
	require.NoError(t, err)
	return stock.Quantity
}

// history devuelve la traza completa de la transacción, en orden cronológico.
func (f *txFixture) history(t *testing.T, transactionID string) []*entity.TransactionHistory {
	t.Helper()
	rows, err := f.uc.ListHistory(transactionID, 100, 0)
	require.NoError(t, err)
	return rows
}

func qty(n int64) decimal.Decimal     { return decimal.NewFromInt(n) }
func qtyPtr(n int64) *decimal.Decimal { q := decimal.NewFromInt(n); return &q }

// ──────────────────────────────────────────────────────────────────────────────
// Apertura
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NaceEnOpenedConHistorial(t *testing.T) {
	f := newTxFixture(t, 10)

	trans := f.open(t)
	assert.Equal(t, entity.StateOpened, trans.State, "la transacción nace en opened")
	assert.True(t, trans.Quantity.IsZero(), "la cantidad inicial debe ser cero")

	rows := f.history(t, trans.ID)
	require.Len(t, rows, 1, "la apertura genera exactamente una fila de historial")
	assert.Equal(t, entity.TransactionState(""), rows[0].StateBefore)
	assert.Equal(t, entity.StateOpened, rows[0].StateAfter)
	assert.Equal(t, testActor, rows[0].CreatedBy)

	names := f.recorder.Names()
	assert.Equal(t, "inventory.transaction.opened", names[len(names)-1])
}

func TestCreate_StockInexistente(t *testing.T) {
	f := newTxFixture(t, 10)

	_, err := f.uc.Create(context.Background(), testActor, uuid.New().String(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrStockNotFound)
}

func TestCreate_SinUsuarioEsRechazada(t *testing.T) {
	f := newTxFixture(t, 10)

	_, err := f.uc.Create(context.Background(), "", f.stock.ID, "anónima")
	assert.ErrorIs(t, err, domain.ErrNoUserLoggedIn)
}

// ──────────────────────────────────────────────────────────────────────────────
// Checkout, venta y devolución
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_TomaStock(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	trans, err := f.uc.Checkout(context.Background(), testActor, trans.ID, qty(4), "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateCommerceCheckout, trans.State)
	assert.True(t, trans.Quantity.Equal(qty(4)))
	assert.True(t, f.stockQty(t).Equal(qty(6)), "el checkout descuenta la existencia")

	last, err := f.stockUC.GetLastMovement(f.stock.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stock tomado por checkout de la transacción "+trans.ID, last.Reason,
		"el motivo sale del catálogo con el ID interpolado")

	names := f.recorder.Names()
	assert.Equal(t, "inventory.transaction.checkout", names[len(names)-1])
}

func TestCheckout_InsuficienteNoDejaRastro(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	_, err := f.uc.Checkout(context.Background(), testActor, trans.ID, qty(50), "", decimal.Zero)
	var notEnough *domain.NotEnoughStockError
	require.ErrorAs(t, err, &notEnough)
	assert.True(t, notEnough.Requested.Equal(qty(50)))
	assert.True(t, notEnough.Available.Equal(qty(10)))

	got, err := f.uc.GetByID(trans.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StateOpened, got.State, "el estado no cambia cuando la operación falla")
	assert.True(t, got.Quantity.IsZero())
	assert.True(t, f.stockQty(t).Equal(qty(10)), "la existencia queda intacta")
	assert.Len(t, f.history(t, trans.ID), 1, "no se agrega historial en una operación fallida")
}

func TestCheckout_DesdeReservaNoVuelveATomar(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	_, err := f.uc.Reserved(context.Background(), testActor, trans.ID, qty(4), false, "", decimal.Zero)
	require.NoError(t, err)
	require.True(t, f.stockQty(t).Equal(qty(6)))

	trans, err = f.uc.Checkout(context.Background(), testActor, trans.ID, qty(999), "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateCommerceCheckout, trans.State)
	assert.True(t, trans.Quantity.Equal(qty(4)), "conserva la cantidad reservada")
	assert.True(t, f.stockQty(t).Equal(qty(6)), "el stock ya se había tomado al reservar")
}

func TestSold_SinCantidadSoloCambiaEstado(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	_, err := f.uc.Checkout(context.Background(), testActor, trans.ID, qty(4), "", decimal.Zero)
	require.NoError(t, err)

	trans, err = f.uc.Sold(context.Background(), testActor, trans.ID, nil, "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateCommerceSold, trans.State)
	assert.True(t, trans.Quantity.Equal(qty(4)))
	assert.True(t, f.stockQty(t).Equal(qty(6)), "la venta no vuelve a tocar el stock")
}

func TestSold_SinCantidadDesdeOpened(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	trans, err := f.uc.Sold(context.Background(), testActor, trans.ID, nil, "", decimal.Zero)
	require.NoError(t, err, "una transacción abierta puede marcarse vendida sin cantidad")
	assert.Equal(t, entity.StateCommerceSold, trans.State)
	assert.True(t, trans.Quantity.IsZero(), "sin cantidad explícita no hay nada que tomar")
	assert.True(t, f.stockQty(t).Equal(qty(10)), "la existencia queda intacta")
}

func TestSold_ConCantidadEsVentaDirecta(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	trans, err := f.uc.Sold(context.Background(), testActor, trans.ID, qtyPtr(3), "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateCommerceSold, trans.State)
	assert.True(t, trans.Quantity.Equal(qty(3)))
	assert.True(t, f.stockQty(t).Equal(qty(7)), "la venta directa toma el stock desde opened")
}

func TestReturnedPartial_DevuelveYRegresaAlEstadoPrevio(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	_, err := f.uc.Checkout(context.Background(), testActor, trans.ID, qty(5), "", decimal.Zero)
	require.NoError(t, err)

	trans, err = f.uc.Returned(context.Background(), testActor, trans.ID, qtyPtr(2), "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateCommerceCheckout, trans.State, "la parcial vuelve al estado previo")
	assert.True(t, trans.Quantity.Equal(qty(3)))
	assert.True(t, f.stockQty(t).Equal(qty(7)), "las 2 unidades devueltas vuelven a la existencia")

	rows := f.history(t, trans.ID)
	require.Len(t, rows, 4, "apertura + checkout + las dos filas de la parcial")
	assert.Equal(t, entity.StateCommerceReturnedPartial, rows[2].StateAfter)
	assert.True(t, rows[2].QuantityAfter.Equal(qty(3)))
	assert.Equal(t, entity.StateCommerceReturnedPartial, rows[3].StateBefore)
	assert.Equal(t, entity.StateCommerceCheckout, rows[3].StateAfter)
}

func TestReturnedPartial_CubreTotalYPromueve(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	_, err := f.uc.Checkout(context.Background(), testActor, trans.ID, qty(5), "", decimal.Zero)
	require.NoError(t, err)

	trans, err = f.uc.Returned(context.Background(), testActor, trans.ID, qtyPtr(5), "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateCommerceReturned, trans.State, "si cubre el total se promueve a devolución completa")
	assert.True(t, trans.Quantity.IsZero())
	assert.True(t, f.stockQty(t).Equal(qty(10)))
}

func TestReturnedAll(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	_, err := f.uc.Checkout(context.Background(), testActor, trans.ID, qty(5), "", decimal.Zero)
	require.NoError(t, err)

	trans, err = f.uc.Returned(context.Background(), testActor, trans.ID, nil, "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateCommerceReturned, trans.State)
	assert.True(t, trans.Quantity.IsZero())
	assert.True(t, f.stockQty(t).Equal(qty(10)), "la devolución total restituye todo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reserva y back-order
// ──────────────────────────────────────────────────────────────────────────────

func TestReserved_DesdeCheckoutSoloCambiaEstado(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	_, err := f.uc.Checkout(context.Background(), testActor, trans.ID, qty(4), "", decimal.Zero)
	require.NoError(t, err)

	trans, err = f.uc.Reserved(context.Background(), testActor, trans.ID, qty(999), false, "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateCommerceReserved, trans.State)
	assert.True(t, trans.Quantity.Equal(qty(4)), "conserva la cantidad del checkout")
	assert.True(t, f.stockQty(t).Equal(qty(6)))
}

func TestReserved_SinStockFallaSinBackOrder(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	_, err := f.uc.Reserved(context.Background(), testActor, trans.ID, qty(50), false, "", decimal.Zero)
	var notEnough *domain.NotEnoughStockError
	assert.ErrorAs(t, err, &notEnough)
}

func TestReserved_SinStockDegradaABackOrder(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	trans, err := f.uc.Reserved(context.Background(), testActor, trans.ID, qty(50), true, "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateCommerceBackOrdered, trans.State, "con back_order la reserva degrada en vez de fallar")
	assert.True(t, trans.Quantity.Equal(qty(50)), "la cantidad pendiente puede superar la existencia")
	assert.True(t, f.stockQty(t).Equal(qty(10)), "el back-order no toma existencia")
}

func TestFillBackOrder_CubreConStock(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	_, err := f.uc.BackOrder(context.Background(), testActor, trans.ID, qty(50))
	require.NoError(t, err)

	// Llega mercadería suficiente.
	_, err = f.stockUC.Put(context.Background(), f.stock.ID, ledger.StockMutation{
		Quantity: qty(100), Reason: "Reposición de bodega", Actor: testActor,
	})
	require.NoError(t, err)

	trans, err = f.uc.FillBackOrder(context.Background(), testActor, trans.ID, "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateCommerceBackOrderFilled, trans.State)
	assert.True(t, trans.Quantity.Equal(qty(50)))
	assert.True(t, f.stockQty(t).Equal(qty(60)), "110 menos los 50 del back-order")
}

func TestFillBackOrder_SinStockPropagaElError(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	_, err := f.uc.BackOrder(context.Background(), testActor, trans.ID, qty(50))
	require.NoError(t, err)

	_, err = f.uc.FillBackOrder(context.Background(), testActor, trans.ID, "", decimal.Zero)
	var notEnough *domain.NotEnoughStockError
	require.ErrorAs(t, err, &notEnough)

	got, err := f.uc.GetByID(trans.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StateCommerceBackOrdered, got.State, "sigue pendiente hasta que alcance la existencia")
	assert.True(t, got.Quantity.Equal(qty(50)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de compra
// ──────────────────────────────────────────────────────────────────────────────

func TestOrdered_RecepcionParcialYTotal(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	trans, err := f.uc.Ordered(context.Background(), testActor, trans.ID, qty(20))
	require.NoError(t, err)
	assert.Equal(t, entity.StateOrderedPending, trans.State)
	assert.True(t, f.stockQty(t).Equal(qty(10)), "ordenar no toca el stock")

	trans, err = f.uc.Received(context.Background(), testActor, trans.ID, qtyPtr(5), "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateOrderedPending, trans.State, "la recepción parcial vuelve a order-on-order")
	assert.True(t, trans.Quantity.Equal(qty(15)), "queda el resto pendiente")
	assert.True(t, f.stockQty(t).Equal(qty(15)), "lo recibido entra al stock")

	trans, err = f.uc.Received(context.Background(), testActor, trans.ID, nil, "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateOrderedReceived, trans.State)
	assert.True(t, trans.Quantity.IsZero())
	assert.True(t, f.stockQty(t).Equal(qty(30)), "entra el resto de la orden")
}

func TestReceivedPartial_CubreTotalYPromueve(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	_, err := f.uc.Ordered(context.Background(), testActor, trans.ID, qty(20))
	require.NoError(t, err)

	trans, err = f.uc.Received(context.Background(), testActor, trans.ID, qtyPtr(20), "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateOrderedReceived, trans.State, "recibir la cantidad completa es una recepción total")
	assert.True(t, f.stockQty(t).Equal(qty(30)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Retención, liberación y remoción
// ──────────────────────────────────────────────────────────────────────────────

func TestHold_ReleaseParcialYTotal(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	trans, err := f.uc.Hold(context.Background(), testActor, trans.ID, qty(6), "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateInventoryOnHold, trans.State)
	assert.True(t, f.stockQty(t).Equal(qty(4)))

	trans, err = f.uc.Release(context.Background(), testActor, trans.ID, qtyPtr(2), "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateInventoryOnHold, trans.State, "la liberación parcial mantiene la retención")
	assert.True(t, trans.Quantity.Equal(qty(4)))
	assert.True(t, f.stockQty(t).Equal(qty(6)))

	trans, err = f.uc.Release(context.Background(), testActor, trans.ID, nil, "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateInventoryReleased, trans.State)
	assert.True(t, trans.Quantity.IsZero())
	assert.True(t, f.stockQty(t).Equal(qty(10)), "todo lo retenido vuelve a la existencia")
}

func TestRemovePartial_DesdeOnHoldNoDevuelveStock(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	_, err := f.uc.Hold(context.Background(), testActor, trans.ID, qty(6), "", decimal.Zero)
	require.NoError(t, err)

	trans, err = f.uc.Remove(context.Background(), testActor, trans.ID, qtyPtr(2), "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateInventoryOnHold, trans.State, "la remoción parcial vuelve a la retención")
	assert.True(t, trans.Quantity.Equal(qty(4)))
	assert.True(t, f.stockQty(t).Equal(qty(4)), "lo removido no regresa a la existencia")
}

func TestRemovePartial_DesdeOnHoldCubreTotal(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	_, err := f.uc.Hold(context.Background(), testActor, trans.ID, qty(6), "", decimal.Zero)
	require.NoError(t, err)

	trans, err = f.uc.Remove(context.Background(), testActor, trans.ID, qtyPtr(6), "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateInventoryRemoved, trans.State)
	assert.True(t, trans.Quantity.IsZero())
	assert.True(t, f.stockQty(t).Equal(qty(4)))
}

func TestRemovePartial_DesdeNuevaTomaDelStock(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	trans, err := f.uc.Remove(context.Background(), testActor, trans.ID, qtyPtr(3), "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateInventoryRemoved, trans.State, "sin retención previa queda directamente removida")
	assert.True(t, trans.Quantity.Equal(qty(3)))
	assert.True(t, f.stockQty(t).Equal(qty(7)))
}

func TestRemoveAll_DesdeOnHold(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	_, err := f.uc.Hold(context.Background(), testActor, trans.ID, qty(6), "", decimal.Zero)
	require.NoError(t, err)

	trans, err = f.uc.Remove(context.Background(), testActor, trans.ID, nil, "", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, entity.StateInventoryRemoved, trans.State)
	assert.True(t, trans.Quantity.IsZero())
	assert.True(t, f.stockQty(t).Equal(qty(4)), "el stock salió al retener, removerlo no lo mueve")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_RestituyeDesdeCheckout(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	_, err := f.uc.Checkout(context.Background(), testActor, trans.ID, qty(4), "", decimal.Zero)
	require.NoError(t, err)

	trans, err = f.uc.Cancel(context.Background(), testActor, trans.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.StateCancelled, trans.State)
	assert.True(t, trans.Quantity.IsZero())
	assert.True(t, f.stockQty(t).Equal(qty(10)), "cancelar un checkout devuelve el stock tomado")

	last, err := f.stockUC.GetLastMovement(f.stock.ID)
	require.NoError(t, err)
	assert.Equal(t, "Transacción "+trans.ID+" cancelada", last.Reason)
}

func TestCancel_DesdeBackOrderNoTocaStock(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	_, err := f.uc.BackOrder(context.Background(), testActor, trans.ID, qty(50))
	require.NoError(t, err)

	trans, err = f.uc.Cancel(context.Background(), testActor, trans.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.StateCancelled, trans.State)
	assert.True(t, f.stockQty(t).Equal(qty(10)), "el back-order nunca tomó existencia")
}

func TestCancel_EsTerminal(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	_, err := f.uc.Cancel(context.Background(), testActor, trans.ID, "")
	require.NoError(t, err)

	_, err = f.uc.Checkout(context.Background(), testActor, trans.ID, qty(1), "", decimal.Zero)
	var invalid *domain.InvalidTransactionStateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, string(entity.StateCancelled), invalid.Current)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones inválidas
// ──────────────────────────────────────────────────────────────────────────────

func TestTransicionInvalida_NoCambiaNada(t *testing.T) {
	f := newTxFixture(t, 10)
	trans := f.open(t)

	_, err := f.uc.Checkout(context.Background(), testActor, trans.ID, qty(4), "", decimal.Zero)
	require.NoError(t, err)
	_, err = f.uc.Sold(context.Background(), testActor, trans.ID, nil, "", decimal.Zero)
	require.NoError(t, err)
	historyBefore := len(f.history(t, trans.ID))

	// Una transacción vendida no puede retener stock.
	_, err = f.uc.Hold(context.Background(), testActor, trans.ID, qty(2), "", decimal.Zero)
	var invalid *domain.InvalidTransactionStateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, string(entity.StateCommerceSold), invalid.Current)

	got, err := f.uc.GetByID(trans.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StateCommerceSold, got.State, "el estado queda igual")
	assert.True(t, got.Quantity.Equal(qty(4)), "la cantidad queda igual")
	assert.True(t, f.stockQty(t).Equal(qty(6)), "la existencia queda igual")
	assert.Len(t, f.history(t, trans.ID), historyBefore, "no se agrega historial")
}

func TestOperacion_SobreTransaccionInexistente(t *testing.T) {
	f := newTxFixture(t, 10)

	_, err := f.uc.Checkout(context.Background(), testActor, uuid.New().String(), qty(1), "", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByStock(t *testing.T) {
	f := newTxFixture(t, 10)
	first := f.open(t)
	second := f.open(t)

	list, err := f.uc.ListByStock(f.stock.ID, 100, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	ids := []string{list[0].ID, list[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}
