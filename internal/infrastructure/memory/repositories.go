package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var (
	_ repository.StockRecordRepository        = (*StockRecordRepo)(nil)
	_ repository.StockMovementRepository      = (*StockMovementRepo)(nil)
	_ repository.TransactionRepository        = (*TransactionRepo)(nil)
	_ repository.TransactionHistoryRepository = (*TransactionHistoryRepo)(nil)
	_ repository.ProductRepository            = (*ProductRepo)(nil)
	_ repository.WarehouseRepository          = (*WarehouseRepo)(nil)
	_ repository.UserRepository               = (*UserRepo)(nil)
)

// base comparte el store y el modo de bloqueo. Con inTx=true el TxRunner ya
// retiene el mutex y los métodos no deben volver a tomarlo.
type base struct {
	s    *Store
	inTx bool
}

func (b base) lock() func() {
	if b.inTx {
		return func() {}
	}
	b.s.mu.Lock()
	return b.s.mu.Unlock
}

// ── StockRecordRepo ───────────────────────────────────────────────────────────

type StockRecordRepo struct{ base }

func NewStockRecordRepository(s *Store) *StockRecordRepo {
	return &StockRecordRepo{base{s: s}}
}

func (r *StockRecordRepo) Create(stock *entity.StockRecord) error {
	defer r.lock()()
	for _, existing := range r.s.stocks {
		if existing.ProductID == stock.ProductID && existing.WarehouseID == stock.WarehouseID {
			return domain.ErrStockAlreadyExists
		}
	}
	r.s.stocks[stock.ID] = *stock
	return nil
}

func (r *StockRecordRepo) GetByID(id string) (*entity.StockRecord, error) {
	defer r.lock()()
	if s, ok := r.s.stocks[id]; ok {
		return &s, nil
	}
	return nil, nil
}

// GetByIDForUpdate en memoria equivale a GetByID: el mutex del TxRunner ya
// serializa escritores.
func (r *StockRecordRepo) GetByIDForUpdate(id string) (*entity.StockRecord, error) {
	return r.GetByID(id)
}

func (r *StockRecordRepo) GetByProductAndWarehouse(productID, warehouseID string) (*entity.StockRecord, error) {
	defer r.lock()()
	for _, s := range r.s.stocks {
		if s.ProductID == productID && s.WarehouseID == warehouseID {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (r *StockRecordRepo) Update(stock *entity.StockRecord) error {
	defer r.lock()()
	r.s.stocks[stock.ID] = *stock
	return nil
}

func (r *StockRecordRepo) List(limit, offset int) ([]*entity.StockRecord, error) {
	defer r.lock()()
	all := make([]*entity.StockRecord, 0, len(r.s.stocks))
	for _, s := range r.s.stocks {
		out := s
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

// ── StockMovementRepo ─────────────────────────────────────────────────────────

type StockMovementRepo struct{ base }

func NewStockMovementRepository(s *Store) *StockMovementRepo {
	return &StockMovementRepo{base{s: s}}
}

func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	defer r.lock()()
	r.s.movements[m.ID] = *m
	r.s.movementIDs = append(r.s.movementIDs, m.ID)
	return nil
}

func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	defer r.lock()()
	if m, ok := r.s.movements[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (r *StockMovementRepo) GetLastByStock(stockID string) (*entity.StockMovement, error) {
	defer r.lock()()
	for i := len(r.s.movementIDs) - 1; i >= 0; i-- {
		m := r.s.movements[r.s.movementIDs[i]]
		if m.StockID == stockID {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *StockMovementRepo) ListByStock(stockID string, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.lock()()
	return paginate(r.byStockDesc(stockID, time.Time{}), limit, offset), nil
}

func (r *StockMovementRepo) ListSince(stockID string, since time.Time) ([]*entity.StockMovement, error) {
	defer r.lock()()
	return r.byStockDesc(stockID, since), nil
}

// byStockDesc devuelve los movimientos del stock del más reciente al más
// antiguo, filtrando por since cuando no es cero. Requiere el lock tomado.
func (r *StockMovementRepo) byStockDesc(stockID string, since time.Time) []*entity.StockMovement {
	var list []*entity.StockMovement
	for i := len(r.s.movementIDs) - 1; i >= 0; i-- {
		m := r.s.movements[r.s.movementIDs[i]]
		if m.StockID != stockID {
			continue
		}
		if !since.IsZero() && m.CreatedAt.Before(since) {
			continue
		}
		out := m
		list = append(list, &out)
	}
	return list
}

// ── TransactionRepo ───────────────────────────────────────────────────────────

type TransactionRepo struct{ base }

func NewTransactionRepository(s *Store) *TransactionRepo {
	return &TransactionRepo{base{s: s}}
}

func (r *TransactionRepo) Create(t *entity.InventoryTransaction) error {
	defer r.lock()()
	r.s.transactions[t.ID] = *t
	return nil
}

func (r *TransactionRepo) GetByID(id string) (*entity.InventoryTransaction, error) {
	defer r.lock()()
	if t, ok := r.s.transactions[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r *TransactionRepo) GetByIDForUpdate(id string) (*entity.InventoryTransaction, error) {
	return r.GetByID(id)
}

func (r *TransactionRepo) Update(t *entity.InventoryTransaction) error {
	defer r.lock()()
	r.s.transactions[t.ID] = *t
	return nil
}

func (r *TransactionRepo) ListByStock(stockID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	defer r.lock()()
	var all []*entity.InventoryTransaction
	for _, t := range r.s.transactions {
		if t.StockID == stockID {
			out := t
			all = append(all, &out)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

// ── TransactionHistoryRepo ────────────────────────────────────────────────────

type TransactionHistoryRepo struct{ base }

func NewTransactionHistoryRepository(s *Store) *TransactionHistoryRepo {
	return &TransactionHistoryRepo{base{s: s}}
}

func (r *TransactionHistoryRepo) Create(h *entity.TransactionHistory) error {
	defer r.lock()()
	r.s.histories = append(r.s.histories, *h)
	return nil
}

func (r *TransactionHistoryRepo) ListByTransaction(transactionID string, limit, offset int) ([]*entity.TransactionHistory, error) {
	defer r.lock()()
	var all []*entity.TransactionHistory
	for i := range r.s.histories {
		if r.s.histories[i].TransactionID == transactionID {
			out := r.s.histories[i]
			all = append(all, &out)
		}
	}
	return paginate(all, limit, offset), nil
}

// ── ProductRepo ───────────────────────────────────────────────────────────────

type ProductRepo struct{ base }

func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{base{s: s}}
}

func (r *ProductRepo) Create(p *entity.Product) error {
	defer r.lock()()
	for _, existing := range r.s.products {
		if existing.SKU == p.SKU {
			return domain.ErrSkuAlreadyExists
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	defer r.lock()()
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	defer r.lock()()
	for _, p := range r.s.products {
		if p.SKU == sku {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	defer r.lock()()
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) UpdateCost(id string, cost decimal.Decimal) error {
	defer r.lock()()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Cost = cost
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	defer r.lock()()
	all := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out := p
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (r *ProductRepo) CountByCategory(categoryCode string) (int, error) {
	defer r.lock()()
	count := 0
	for _, p := range r.s.products {
		if p.CategoryCode == categoryCode {
			count++
		}
	}
	return count, nil
}

// ── WarehouseRepo ─────────────────────────────────────────────────────────────

type WarehouseRepo struct{ base }

func NewWarehouseRepository(s *Store) *WarehouseRepo {
	return &WarehouseRepo{base{s: s}}
}

func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	defer r.lock()()
	for _, existing := range r.s.warehouses {
		if existing.Code == w.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	defer r.lock()()
	if w, ok := r.s.warehouses[id]; ok {
		return &w, nil
	}
	return nil, nil
}

func (r *WarehouseRepo) Update(w *entity.Warehouse) error {
	defer r.lock()()
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r *WarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	defer r.lock()()
	all := make([]*entity.Warehouse, 0, len(r.s.warehouses))
	for _, w := range r.s.warehouses {
		out := w
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return paginate(all, limit, offset), nil
}

// ── UserRepo ──────────────────────────────────────────────────────────────────

type UserRepo struct{ base }

func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{base{s: s}}
}

func (r *UserRepo) Create(u *entity.User) error {
	defer r.lock()()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	defer r.lock()()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	defer r.lock()()
	for _, u := range r.s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func paginate[T any](list []*T, limit, offset int) []*T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
