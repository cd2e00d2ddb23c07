package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// StockLedgerUseCase implementa el ledger de stock: alta de registros, put/take,
// traslado entre bodegas y rollback de movimientos. Pipeline explícito en cada
// operación: validar → calcular delta → persistir (tx atómica con bloqueo de
// fila) → registrar movimiento → emitir evento.
type StockLedgerUseCase struct {
	txRunner      TxRunner
	stockRepo     repository.StockRecordRepository
	movRepo       repository.StockMovementRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	bus           EventBus
	flags         Flags
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRecordRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	bus EventBus,
	flags Flags,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{
		txRunner:      txRunner,
		stockRepo:     stockRepo,
		movRepo:       movRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		bus:           bus,
		flags:         flags,
	}
}

// requireActor exige un actor autenticado salvo que la configuración permita anónimos.
func (uc *StockLedgerUseCase) requireActor(actor string) error {
	if actor == "" && !uc.flags.AllowNoUser {
		return domain.ErrNoUserLoggedIn
	}
	return nil
}

// Create da de alta el stock de un producto en una bodega. El registro nace en
// cero y la cantidad inicial entra por el mismo camino que cualquier put, de
// modo que el primer movimiento del ledger queda registrado.
func (uc *StockLedgerUseCase) Create(
	ctx context.Context,
	actor, productID, warehouseID string,
	initial decimal.Decimal,
	reason string,
	cost decimal.Decimal,
) (*entity.StockRecord, error) {
	if err := uc.requireActor(actor); err != nil {
		return nil, err
	}
	if initial.IsNegative() {
		return nil, &domain.InvalidQuantityError{Quantity: initial}
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.stockRepo.GetByProductAndWarehouse(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrStockAlreadyExists
	}
	if reason == "" {
		reason = inventory.Reason("stock.first", nil)
	}

	now := time.Now()
	stock := &entity.StockRecord{
		ID:          uuid.New().String(),
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    decimal.Zero,
		CreatedBy:   actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	var movement *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := stockRepo.Create(stock); err != nil {
			return err
		}
		updated, mov, err := PutInTx(stockRepo, movRepo, stock.ID, StockMutation{
			Quantity: initial,
			Reason:   reason,
			Cost:     cost,
			Actor:    actor,
		}, uc.flags.AllowDuplicateMovements)
		if err != nil {
			return err
		}
		stock = updated
		movement = mov
		return updateAverageCostInTx(productRepo, stock, movement, cost)
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, EventStockAdded, stock, movement, nil)
	return stock, nil
}

// Take descuenta cantidad del stock registrando el movimiento en la misma tx.
func (uc *StockLedgerUseCase) Take(ctx context.Context, stockID string, mut StockMutation) (*entity.StockRecord, error) {
	return uc.mutate(ctx, stockID, mut, EventStockTaken, TakeInTx)
}

// Put agrega cantidad al stock registrando el movimiento en la misma tx.
func (uc *StockLedgerUseCase) Put(ctx context.Context, stockID string, mut StockMutation) (*entity.StockRecord, error) {
	return uc.mutate(ctx, stockID, mut, EventStockAdded, PutInTx)
}

type mutateFn func(
	stockRepo repository.StockRecordRepository,
	movRepo repository.StockMovementRepository,
	stockID string,
	mut StockMutation,
	allowDuplicates bool,
) (*entity.StockRecord, *entity.StockMovement, error)

func (uc *StockLedgerUseCase) mutate(ctx context.Context, stockID string, mut StockMutation, eventName string, fn mutateFn) (*entity.StockRecord, error) {
	if err := uc.requireActor(mut.Actor); err != nil {
		return nil, err
	}
	var stock *entity.StockRecord
	var movement *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		stock, movement, err = fn(stockRepo, movRepo, stockID, mut, uc.flags.AllowDuplicateMovements)
		if err != nil {
			return err
		}
		if eventName == EventStockAdded {
			return updateAverageCostInTx(productRepo, stock, movement, mut.Cost)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if movement != nil {
		uc.publish(ctx, eventName, stock, movement, nil)
	}
	return stock, nil
}

// updateAverageCostInTx recalcula el costo promedio ponderado del producto tras
// una entrada con costo, dentro de la misma tx que registró el movimiento. Las
// salidas y los rollbacks no alteran el costo promedio.
func updateAverageCostInTx(
	productRepo repository.ProductRepository,
	stock *entity.StockRecord,
	movement *entity.StockMovement,
	entryCost decimal.Decimal,
) error {
	if movement == nil || !entryCost.GreaterThan(decimal.Zero) {
		return nil
	}
	entryQty := movement.Delta()
	if !entryQty.GreaterThan(decimal.Zero) {
		return nil
	}
	product, err := productRepo.GetByID(stock.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	newCost := inventory.AverageCost(movement.Before, product.Cost, entryQty, entryCost)
	return productRepo.UpdateCost(product.ID, newCost)
}

// MoveTo reasigna la bodega del registro de stock. No altera la cantidad ni
// genera movimiento; falla si ya existe stock del producto en la bodega destino.
func (uc *StockLedgerUseCase) MoveTo(ctx context.Context, actor, stockID, warehouseID string) (*entity.StockRecord, error) {
	if err := uc.requireActor(actor); err != nil {
		return nil, err
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	var stock *entity.StockRecord
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		var err error
		stock, err = stockRepo.GetByIDForUpdate(stockID)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.ErrNotFound
		}
		existing, err := stockRepo.GetByProductAndWarehouse(stock.ProductID, warehouseID)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != stock.ID {
			return domain.ErrStockAlreadyExists
		}
		stock.WarehouseID = warehouseID
		stock.UpdatedAt = time.Now()
		return stockRepo.Update(stock)
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, EventStockMoved, stock, nil, nil)
	return stock, nil
}

// Rollback revierte la cantidad del stock al valor "before" del movimiento
// indicado (el más reciente si movementID es vacío). No borra filas del ledger:
// la reversión entra por el mismo camino de mutación y genera un movimiento
// nuevo. Con recursive se repite para cada movimiento creado en o después del
// movimiento objetivo, del más reciente al más antiguo.
func (uc *StockLedgerUseCase) Rollback(ctx context.Context, actor, stockID, movementID string, recursive bool) (*entity.StockRecord, error) {
	if err := uc.requireActor(actor); err != nil {
		return nil, err
	}
	var stock *entity.StockRecord
	var lastMovement *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		var err error
		stock, err = stockRepo.GetByIDForUpdate(stockID)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.ErrNotFound
		}

		target, err := uc.resolveMovement(movRepo, stockID, movementID)
		if err != nil {
			return err
		}
		if target == nil {
			// Sin movimientos no hay nada que revertir.
			return nil
		}

		if !recursive {
			stock, lastMovement, err = uc.rollbackOne(stockRepo, movRepo, stock, target, actor)
			return err
		}

		movements, err := movRepo.ListSince(stockID, target.CreatedAt)
		if err != nil {
			return err
		}
		for _, mov := range movements {
			stock, lastMovement, err = uc.rollbackOne(stockRepo, movRepo, stock, mov, actor)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if lastMovement != nil {
		uc.publish(ctx, EventStockRollback, stock, lastMovement, nil)
	}
	return stock, nil
}

// resolveMovement resuelve el movimiento objetivo de un rollback: el último del
// stock cuando no se indica ID, o el ID dado verificando que pertenezca al stock.
func (uc *StockLedgerUseCase) resolveMovement(
	movRepo repository.StockMovementRepository,
	stockID, movementID string,
) (*entity.StockMovement, error) {
	if movementID == "" {
		return movRepo.GetLastByStock(stockID)
	}
	movement, err := movRepo.GetByID(movementID)
	if err != nil {
		return nil, err
	}
	if movement == nil || movement.StockID != stockID {
		return nil, &domain.InvalidMovementError{Ref: movementID}
	}
	return movement, nil
}

// rollbackOne revierte un movimiento: la cantidad vuelve al "before" del
// movimiento y el ledger recibe la entrada de reversión correspondiente.
func (uc *StockLedgerUseCase) rollbackOne(
	stockRepo repository.StockRecordRepository,
	movRepo repository.StockMovementRepository,
	stock *entity.StockRecord,
	target *entity.StockMovement,
	actor string,
) (*entity.StockRecord, *entity.StockMovement, error) {
	reason := inventory.Reason("stock.rollback", map[string]string{
		"id":   target.ID,
		"date": target.CreatedAt.Format("2006-01-02 15:04:05"),
	})
	cost := decimal.Zero
	if uc.flags.RollbackCost {
		cost = target.Cost.Neg()
	}
	return applyInTx(stockRepo, movRepo, stock, target.Before, StockMutation{
		Reason: reason,
		Cost:   cost,
		Actor:  actor,
	}, uc.flags.AllowDuplicateMovements)
}

// HasEnoughStock indica si el stock alcanza para la cantidad pedida. Devuelve
// (false, NotEnoughStockError) cuando no alcanza, con solicitado y disponible.
func (uc *StockLedgerUseCase) HasEnoughStock(stockID string, quantity decimal.Decimal) (bool, error) {
	if quantity.IsNegative() {
		return false, &domain.InvalidQuantityError{Quantity: quantity}
	}
	stock, err := uc.stockRepo.GetByID(stockID)
	if err != nil {
		return false, err
	}
	if stock == nil {
		return false, domain.ErrNotFound
	}
	if !stock.HasEnough(quantity) {
		return false, &domain.NotEnoughStockError{Requested: quantity, Available: stock.Quantity}
	}
	return true, nil
}

// GetLastMovement devuelve el movimiento más reciente del stock (nil si no hay).
func (uc *StockLedgerUseCase) GetLastMovement(stockID string) (*entity.StockMovement, error) {
	return uc.movRepo.GetLastByStock(stockID)
}

// GetByID devuelve un registro de stock.
func (uc *StockLedgerUseCase) GetByID(stockID string) (*entity.StockRecord, error) {
	stock, err := uc.stockRepo.GetByID(stockID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	return stock, nil
}

// List lista registros de stock con paginación.
func (uc *StockLedgerUseCase) List(limit, offset int) ([]*entity.StockRecord, error) {
	return uc.stockRepo.List(limit, offset)
}

// ListMovements lista el ledger de un stock con paginación.
func (uc *StockLedgerUseCase) ListMovements(stockID string, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByStock(stockID, limit, offset)
}

func (uc *StockLedgerUseCase) publish(ctx context.Context, name string, stock *entity.StockRecord, movement *entity.StockMovement, tx *entity.InventoryTransaction) {
	if uc.bus == nil {
		return
	}
	uc.bus.Publish(ctx, Event{
		Name:        name,
		At:          time.Now(),
		Stock:       stock,
		Movement:    movement,
		Transaction: tx,
	})
}
