// seed pobla la base con datos mínimos de arranque: un usuario admin, una
// bodega principal, un producto de ejemplo y su stock inicial.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración de entorno que cmd/api. Idempotente: si el email
// o el SKU ya existen, los salta.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/pkg/config"
)

const (
	seedAdminEmail    = "admin@local"
	seedAdminPassword = "admin1234"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración", err)
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL", err)
	}
	defer pool.Close()

	now := time.Now()

	// Usuario admin
	userRepo := postgres.NewUserRepository(pool)
	admin, err := userRepo.FindByEmail(seedAdminEmail)
	if err != nil {
		fail("buscar admin", err)
	}
	if admin == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			fail("hash de password", err)
		}
		admin = &entity.User{
			ID:           uuid.New().String(),
			Email:        seedAdminEmail,
			PasswordHash: string(hash),
			Name:         "Administrador",
			Role:         entity.RoleAdmin,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(admin); err != nil {
			fail("crear admin", err)
		}
		fmt.Printf("admin creado: %s / %s\n", seedAdminEmail, seedAdminPassword)
	} else {
		fmt.Println("admin ya existe, saltando")
	}

	// Bodega principal
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Code:      "PRINCIPAL",
		Name:      "Bodega Principal",
		Address:   "",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := warehouseRepo.Create(warehouse); err != nil {
		if err != domain.ErrDuplicate {
			fail("crear bodega", err)
		}
		fmt.Println("bodega PRINCIPAL ya existe, saltando")
		existing, err := warehouseRepo.List(100, 0)
		if err != nil {
			fail("listar bodegas", err)
		}
		for _, w := range existing {
			if w.Code == "PRINCIPAL" {
				warehouse = w
				break
			}
		}
	} else {
		fmt.Println("bodega PRINCIPAL creada")
	}

	// Producto de ejemplo
	productRepo := postgres.NewProductRepository(pool)
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          "DEM00000001",
		Name:         "Producto demo",
		CategoryCode: "DEM",
		Price:        decimal.NewFromInt(1000),
		Cost:         decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := productRepo.Create(product); err != nil {
		if err != domain.ErrSkuAlreadyExists {
			fail("crear producto", err)
		}
		fmt.Println("producto demo ya existe, saltando")
		product, err = productRepo.GetBySKU(product.SKU)
		if err != nil {
			fail("buscar producto demo", err)
		}
	} else {
		fmt.Println("producto demo creado")
	}

	// Stock inicial por el camino del ledger, para que quede el primer movimiento
	stockRepo := postgres.NewStockRecordRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	stockUC := ledger.NewStockLedgerUseCase(
		postgres.NewTxRunner(pool), stockRepo, movementRepo,
		productRepo, warehouseRepo, noopBus{}, ledger.DefaultFlags(),
	)
	stock, err := stockUC.Create(ctx, admin.ID, product.ID, warehouse.ID,
		decimal.NewFromInt(100), "", decimal.NewFromInt(500))
	if err != nil {
		if err == domain.ErrStockAlreadyExists {
			fmt.Println("stock demo ya existe, saltando")
			return
		}
		fail("crear stock", err)
	}
	fmt.Printf("stock demo creado: %s (cantidad %s)\n", stock.ID, stock.Quantity.String())
}

type noopBus struct{}

func (noopBus) Publish(context.Context, ledger.Event) {}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", step, err)
	os.Exit(1)
}
