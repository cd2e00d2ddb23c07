package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testActor = "00000000-0000-0000-0000-000000000001"

type ledgerFixture struct {
	uc        *ledger.StockLedgerUseCase
	store     *memory.Store
	recorder  *memory.EventRecorder
	product   *entity.Product
	warehouse *entity.Warehouse
}

// newLedgerFixture construye el caso de uso sobre los repos en memoria con un
// producto y una bodega ya sembrados.
func newLedgerFixture(t *testing.T, flags ledger.Flags) *ledgerFixture {
	t.Helper()
	store := memory.NewStore()
	recorder := memory.NewEventRecorder()
	now := time.Now()

	productRepo := memory.NewProductRepository(store)
	warehouseRepo := memory.NewWarehouseRepository(store)

	product := &entity.Product{
		ID: uuid.New().String(), SKU: "ELE00000001", Name: "Router WiFi",
		CategoryCode: "ELE", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, productRepo.Create(product))
	warehouse := &entity.Warehouse{
		ID: uuid.New().String(), Code: "PRINCIPAL", Name: "Bodega Principal",
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, warehouseRepo.Create(warehouse))

	uc := ledger.NewStockLedgerUseCase(
		memory.NewTxRunner(store),
		memory.NewStockRecordRepository(store),
		memory.NewStockMovementRepository(store),
		productRepo,
		warehouseRepo,
		recorder,
		flags,
	)
	return &ledgerFixture{uc: uc, store: store, recorder: recorder, product: product, warehouse: warehouse}
}

// createStock da de alta stock con cantidad inicial y devuelve el registro.
func (f *ledgerFixture) createStock(t *testing.T, initial int64) *entity.StockRecord {
	t.Helper()
	stock, err := f.uc.Create(context.Background(), testActor,
		f.product.ID, f.warehouse.ID, decimal.NewFromInt(initial), "", decimal.Zero)
	require.NoError(t, err, "el alta de stock no debe fallar")
	return stock
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// ──────────────────────────────────────────────────────────────────────────────
// Alta y mutaciones básicas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_RegistraStockYPrimerMovimiento(t *testing.T) {
	f := newLedgerFixture(t, ledger.DefaultFlags())
	stock := f.createStock(t, 20)

	assert.True(t, stock.Quantity.Equal(qty(20)))

	// El primer movimiento del ledger es 0 → 20 con el motivo inicial.
	last, err := f.uc.GetLastMovement(stock.ID)
	require.NoError(t, err)
	require.NotNil(t, last, "el alta debe dejar movimiento en el ledger")
	assert.True(t, last.Before.IsZero())
	assert.True(t, last.After.Equal(qty(20)))
	assert.Equal(t, "Registro inicial de stock", last.Reason)
	assert.Equal(t, testActor, last.CreatedBy)

	assert.Equal(t, []string{ledger.EventStockAdded}, f.recorder.Names())
}

func TestCreate_DuplicadoPorBodegaRechazado(t *testing.T) {
	f := newLedgerFixture(t, ledger.DefaultFlags())
	f.createStock(t, 5)

	_, err := f.uc.Create(context.Background(), testActor,
		f.product.ID, f.warehouse.ID, qty(1), "", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrStockAlreadyExists)
}

func TestCreate_SinActorRechazado(t *testing.T) {
	f := newLedgerFixture(t, ledger.DefaultFlags())
	_, err := f.uc.Create(context.Background(), "",
		f.product.ID, f.warehouse.ID, qty(1), "", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrNoUserLoggedIn)
}

func TestCreate_SinActorPermitidoConFlag(t *testing.T) {
	flags := ledger.DefaultFlags()
	flags.AllowNoUser = true
	f := newLedgerFixture(t, flags)

	stock, err := f.uc.Create(context.Background(), "",
		f.product.ID, f.warehouse.ID, qty(1), "", decimal.Zero)
	require.NoError(t, err)
	assert.Empty(t, stock.CreatedBy)
}

func TestPutTake_ActualizanCantidadYLedger(t *testing.T) {
	f := newLedgerFixture(t, ledger.DefaultFlags())
	stock := f.createStock(t, 10)

	updated, err := f.uc.Put(context.Background(), stock.ID, ledger.StockMutation{
		Quantity: qty(5), Reason: "compra", Actor: testActor,
	})
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(qty(15)))

	updated, err = f.uc.Take(context.Background(), stock.ID, ledger.StockMutation{
		Quantity: qty(8), Reason: "venta mostrador", Actor: testActor,
	})
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(qty(7)))

	movements, err := f.uc.ListMovements(stock.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movements, 3, "alta + put + take")
	// Del más reciente al más antiguo.
	assert.True(t, movements[0].Before.Equal(qty(15)))
	assert.True(t, movements[0].After.Equal(qty(7)))
	assert.Equal(t, "venta mostrador", movements[0].Reason)
}

func TestTake_StockInsuficiente(t *testing.T) {
	f := newLedgerFixture(t, ledger.DefaultFlags())
	stock := f.createStock(t, 3)

	_, err := f.uc.Take(context.Background(), stock.ID, ledger.StockMutation{
		Quantity: qty(5), Actor: testActor,
	})

	var notEnough *domain.NotEnoughStockError
	require.ErrorAs(t, err, &notEnough)
	assert.True(t, notEnough.Requested.Equal(qty(5)))
	assert.True(t, notEnough.Available.Equal(qty(3)))

	// Un take fallido no deja rastro: ni cantidad ni movimiento.
	current, err := f.uc.GetByID(stock.ID)
	require.NoError(t, err)
	assert.True(t, current.Quantity.Equal(qty(3)))
	movements, _ := f.uc.ListMovements(stock.ID, 10, 0)
	assert.Len(t, movements, 1, "solo el movimiento del alta")
}

func TestTake_CantidadNegativaRechazada(t *testing.T) {
	f := newLedgerFixture(t, ledger.DefaultFlags())
	stock := f.createStock(t, 3)

	_, err := f.uc.Take(context.Background(), stock.ID, ledger.StockMutation{
		Quantity: qty(-1), Actor: testActor,
	})
	var qtyErr *domain.InvalidQuantityError
	assert.ErrorAs(t, err, &qtyErr)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos duplicados (cantidad sin cambio)
// ──────────────────────────────────────────────────────────────────────────────

func TestPut_CantidadCeroConDuplicadosHabilitados(t *testing.T) {
	f := newLedgerFixture(t, ledger.DefaultFlags())
	stock := f.createStock(t, 10)

	_, err := f.uc.Put(context.Background(), stock.ID, ledger.StockMutation{
		Quantity: decimal.Zero, Reason: "conteo físico", Actor: testActor,
	})
	require.NoError(t, err)

	movements, _ := f.uc.ListMovements(stock.ID, 10, 0)
	require.Len(t, movements, 2, "con duplicados habilitados el put de cero deja movimiento")
	assert.True(t, movements[0].Before.Equal(movements[0].After))
}

func TestPut_CantidadCeroConDuplicadosDeshabilitados(t *testing.T) {
	flags := ledger.DefaultFlags()
	flags.AllowDuplicateMovements = false
	f := newLedgerFixture(t, flags)
	stock := f.createStock(t, 10)

	_, err := f.uc.Put(context.Background(), stock.ID, ledger.StockMutation{
		Quantity: decimal.Zero, Actor: testActor,
	})
	require.NoError(t, err)

	movements, _ := f.uc.ListMovements(stock.ID, 10, 0)
	assert.Len(t, movements, 1, "sin duplicados el put de cero es un no-op")
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslado de bodega
// ──────────────────────────────────────────────────────────────────────────────

func TestPut_ActualizaCostoPromedioDelProducto(t *testing.T) {
	f := newLedgerFixture(t, ledger.DefaultFlags())
	stock, err := f.uc.Create(context.Background(), testActor,
		f.product.ID, f.warehouse.ID, qty(10), "", qty(100))
	require.NoError(t, err)

	productRepo := memory.NewProductRepository(f.store)
	product, err := productRepo.GetByID(f.product.ID)
	require.NoError(t, err)
	assert.True(t, product.Cost.Equal(qty(100)), "la primera entrada fija el costo promedio")

	_, err = f.uc.Put(context.Background(), stock.ID, ledger.StockMutation{
		Quantity: qty(10), Reason: "Compra a proveedor", Cost: qty(200), Actor: testActor,
	})
	require.NoError(t, err)
	product, err = productRepo.GetByID(f.product.ID)
	require.NoError(t, err)
	assert.True(t, product.Cost.Equal(qty(150)),
		"promedio ponderado: (10*100 + 10*200) / 20 = 150")

	_, err = f.uc.Take(context.Background(), stock.ID, ledger.StockMutation{
		Quantity: qty(5), Reason: "Venta mostrador", Cost: qty(150), Actor: testActor,
	})
	require.NoError(t, err)
	product, err = productRepo.GetByID(f.product.ID)
	require.NoError(t, err)
	assert.True(t, product.Cost.Equal(qty(150)), "las salidas no alteran el costo promedio")
}

func TestPut_SinCostoNoAlteraElPromedio(t *testing.T) {
	f := newLedgerFixture(t, ledger.DefaultFlags())
	stock, err := f.uc.Create(context.Background(), testActor,
		f.product.ID, f.warehouse.ID, qty(10), "", qty(100))
	require.NoError(t, err)

	_, err = f.uc.Put(context.Background(), stock.ID, ledger.StockMutation{
		Quantity: qty(5), Reason: "Ajuste de conteo", Actor: testActor,
	})
	require.NoError(t, err)

	product, err := memory.NewProductRepository(f.store).GetByID(f.product.ID)
	require.NoError(t, err)
	assert.True(t, product.Cost.Equal(qty(100)), "una entrada sin costo no recalcula el promedio")
}

func TestMoveTo_CambiaBodegaSinMovimiento(t *testing.T) {
	f := newLedgerFixture(t, ledger.DefaultFlags())
	stock := f.createStock(t, 10)

	destino := &entity.Warehouse{
		ID: uuid.New().String(), Code: "NORTE", Name: "Bodega Norte",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, memory.NewWarehouseRepository(f.store).Create(destino))

	moved, err := f.uc.MoveTo(context.Background(), testActor, stock.ID, destino.ID)
	require.NoError(t, err)
	assert.Equal(t, destino.ID, moved.WarehouseID)
	assert.True(t, moved.Quantity.Equal(qty(10)), "el traslado no altera la cantidad")

	movements, _ := f.uc.ListMovements(stock.ID, 10, 0)
	assert.Len(t, movements, 1, "el traslado no genera movimiento del ledger")
	assert.Contains(t, f.recorder.Names(), ledger.EventStockMoved)
}

func TestMoveTo_BodegaInexistente(t *testing.T) {
	f := newLedgerFixture(t, ledger.DefaultFlags())
	stock := f.createStock(t, 10)

	_, err := f.uc.MoveTo(context.Background(), testActor, stock.ID, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rollback
// ──────────────────────────────────────────────────────────────────────────────

func TestRollback_UltimoMovimiento(t *testing.T) {
	f := newLedgerFixture(t, ledger.DefaultFlags())
	stock := f.createStock(t, 10)

	_, err := f.uc.Take(context.Background(), stock.ID, ledger.StockMutation{
		Quantity: qty(4), Cost: qty(100), Actor: testActor,
	})
	require.NoError(t, err)

	// Sin movement_id revierte el más reciente: la cantidad vuelve al before.
	reverted, err := f.uc.Rollback(context.Background(), testActor, stock.ID, "", false)
	require.NoError(t, err)
	assert.True(t, reverted.Quantity.Equal(qty(10)))

	last, _ := f.uc.GetLastMovement(stock.ID)
	require.NotNil(t, last)
	assert.True(t, last.Before.Equal(qty(6)))
	assert.True(t, last.After.Equal(qty(10)))
	assert.Contains(t, last.Reason, "Rollback del movimiento ID")
	assert.True(t, last.Cost.Equal(qty(-100)), "con RollbackCost el costo se niega")
}

func TestRollback_SinReversionDeCosto(t *testing.T) {
	flags := ledger.DefaultFlags()
	flags.RollbackCost = false
	f := newLedgerFixture(t, flags)
	stock := f.createStock(t, 10)

	_, err := f.uc.Take(context.Background(), stock.ID, ledger.StockMutation{
		Quantity: qty(4), Cost: qty(100), Actor: testActor,
	})
	require.NoError(t, err)

	_, err = f.uc.Rollback(context.Background(), testActor, stock.ID, "", false)
	require.NoError(t, err)

	last, _ := f.uc.GetLastMovement(stock.ID)
	assert.True(t, last.Cost.IsZero(), "sin RollbackCost el movimiento de reversión lleva costo cero")
}

func TestRollback_MovimientoDeOtroStockRechazado(t *testing.T) {
	f := newLedgerFixture(t, ledger.DefaultFlags())
	stock := f.createStock(t, 10)

	_, err := f.uc.Rollback(context.Background(), testActor, stock.ID, "mov-ajeno", false)
	var movErr *domain.InvalidMovementError
	require.ErrorAs(t, err, &movErr)
	assert.Equal(t, "mov-ajeno", movErr.Ref)
}

func TestRollback_Recursivo(t *testing.T) {
	f := newLedgerFixture(t, ledger.DefaultFlags())
	stock := f.createStock(t, 10)
	ctx := context.Background()

	_, err := f.uc.Take(ctx, stock.ID, ledger.StockMutation{Quantity: qty(2), Actor: testActor})
	require.NoError(t, err)
	target, err := f.uc.GetLastMovement(stock.ID) // 10 → 8
	require.NoError(t, err)
	_, err = f.uc.Take(ctx, stock.ID, ledger.StockMutation{Quantity: qty(3), Actor: testActor})
	require.NoError(t, err)
	_, err = f.uc.Put(ctx, stock.ID, ledger.StockMutation{Quantity: qty(1), Actor: testActor})
	require.NoError(t, err)

	// Revierte del más reciente hacia atrás hasta el movimiento objetivo:
	// put(1) → take(3) → take(2); la cantidad termina en el before del objetivo.
	reverted, err := f.uc.Rollback(ctx, testActor, stock.ID, target.ID, true)
	require.NoError(t, err)
	assert.True(t, reverted.Quantity.Equal(qty(10)),
		"el rollback recursivo deja la cantidad previa al movimiento objetivo, got %s", reverted.Quantity)
}

func TestRollback_SinMovimientosEsNoOp(t *testing.T) {
	f := newLedgerFixture(t, ledger.DefaultFlags())

	// Stock sin movimientos: alta directa por repo, sin pasar por Create.
	store := f.store
	stockRepo := memory.NewStockRecordRepository(store)
	stock := &entity.StockRecord{
		ID: uuid.New().String(), ProductID: uuid.New().String(),
		WarehouseID: uuid.New().String(), Quantity: qty(5),
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, stockRepo.Create(stock))

	reverted, err := f.uc.Rollback(context.Background(), testActor, stock.ID, "", false)
	require.NoError(t, err)
	assert.True(t, reverted.Quantity.Equal(qty(5)), "sin movimientos no hay nada que revertir")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestHasEnoughStock(t *testing.T) {
	f := newLedgerFixture(t, ledger.DefaultFlags())
	stock := f.createStock(t, 10)

	ok, err := f.uc.HasEnoughStock(stock.ID, qty(10))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.uc.HasEnoughStock(stock.ID, qty(11))
	assert.False(t, ok)
	var notEnough *domain.NotEnoughStockError
	require.ErrorAs(t, err, &notEnough)
	assert.True(t, notEnough.Available.Equal(qty(10)))
}

func TestGetByID_Inexistente(t *testing.T) {
	f := newLedgerFixture(t, ledger.DefaultFlags())
	_, err := f.uc.GetByID(uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
