// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, con semántica transaccional por snapshot. Respaldo de los tests de
// casos de uso y de despliegues efímeros (demo, CI).
package memory

import (
	"sync"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// Store estado compartido de todos los repositorios en memoria. El mutex lo
// toman los repositorios fuera de transacción; dentro de una transacción lo
// retiene el TxRunner y los repos atados a la tx operan sin bloquear.
type Store struct {
	mu sync.Mutex

	stocks       map[string]entity.StockRecord
	movements    map[string]entity.StockMovement
	movementIDs  []string // orden de inserción: desempate cuando CreatedAt coincide
	transactions map[string]entity.InventoryTransaction
	histories    []entity.TransactionHistory
	products     map[string]entity.Product
	warehouses   map[string]entity.Warehouse
	users        map[string]entity.User
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		stocks:       make(map[string]entity.StockRecord),
		movements:    make(map[string]entity.StockMovement),
		transactions: make(map[string]entity.InventoryTransaction),
		products:     make(map[string]entity.Product),
		warehouses:   make(map[string]entity.Warehouse),
		users:        make(map[string]entity.User),
	}
}

// snapshot copia el estado completo. Las entidades son structs de valores, así
// que la copia de mapas basta para aislar el snapshot.
func (s *Store) snapshot() storeState {
	return storeState{
		stocks:       cloneMap(s.stocks),
		movements:    cloneMap(s.movements),
		movementIDs:  append([]string(nil), s.movementIDs...),
		transactions: cloneMap(s.transactions),
		histories:    append([]entity.TransactionHistory(nil), s.histories...),
		products:     cloneMap(s.products),
		warehouses:   cloneMap(s.warehouses),
		users:        cloneMap(s.users),
	}
}

// restore repone el estado de un snapshot (rollback).
func (s *Store) restore(st storeState) {
	s.stocks = st.stocks
	s.movements = st.movements
	s.movementIDs = st.movementIDs
	s.transactions = st.transactions
	s.histories = st.histories
	s.products = st.products
	s.warehouses = st.warehouses
	s.users = st.users
}

type storeState struct {
	stocks       map[string]entity.StockRecord
	movements    map[string]entity.StockMovement
	movementIDs  []string
	transactions map[string]entity.InventoryTransaction
	histories    []entity.TransactionHistory
	products     map[string]entity.Product
	warehouses   map[string]entity.Warehouse
	users        map[string]entity.User
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
