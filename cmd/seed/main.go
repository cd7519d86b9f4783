// Package main seeds the database with a demo dataset: an admin operator,
// catalog entries and one employee. Intended for local development.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"negocio/internal/core/types"
	"negocio/internal/docstore"
	"negocio/internal/docstore/postgres"
	"negocio/internal/domain/auth"
	"negocio/internal/domain/catalogs/client"
	"negocio/internal/domain/catalogs/product"
	"negocio/internal/domain/catalogs/supplier"
	"negocio/internal/domain/employees"
	"negocio/internal/domain/finance"
	"negocio/internal/domain/payments"
	"negocio/internal/domain/sales"
	"negocio/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required for seeding")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	store := postgres.New(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalw("failed to ensure schema", "error", err)
	}

	if err := seed(ctx, store, log); err != nil {
		log.Fatalw("seeding failed", "error", err)
	}
	log.Info("seeding complete")
}

func seed(ctx context.Context, store docstore.Store, log *logger.Logger) error {
	// Admin operator
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig("seed"))
	authService := auth.NewService(store, jwtService)

	password := envOr("SEED_ADMIN_PASSWORD", "admin12345")
	if _, err := authService.CreateUser(ctx, "admin", "Administrador", password); err != nil {
		log.Warnw("admin user not created (may already exist)", "error", err)
	} else {
		log.Infow("admin user created", "username", "admin")
	}

	// Suppliers
	supplierService := supplier.NewService(store)
	distribuidora := supplier.NewSupplier("Distribuidora Central")
	distribuidora.Phone = "555-0100"
	if err := supplierService.Create(ctx, distribuidora); err != nil {
		return err
	}

	// Products (prices in minor units)
	productService := product.NewService(product.NewRepo(store))
	for _, p := range []*product.Product{
		product.NewProduct("Café molido 500g", "CAF-500", types.MinorUnits(8500), 40),
		product.NewProduct("Azúcar 1kg", "AZU-100", types.MinorUnits(3200), 60),
		product.NewProduct("Leche entera 1L", "LEC-100", types.MinorUnits(2800), 24),
		product.NewProduct("Pan integral", "PAN-INT", types.MinorUnits(4500), 12),
	} {
		p.SupplierID = distribuidora.ID
		if err := productService.Create(ctx, p); err != nil {
			return err
		}
	}
	log.Info("products created")

	// Clients
	clientService := client.NewService(store)
	maria := client.NewClient("María López")
	maria.Phone = "555-0199"
	if err := clientService.Create(ctx, maria); err != nil {
		return err
	}

	// Employee with a weekday schedule
	employeeService := employees.NewService(store, nil)
	worker := &employees.Employee{Name: "Juan Pérez", Role: "Vendedor"}
	for i := 0; i < 5; i++ {
		worker.Schedule[i] = employees.DaySchedule{Start: "09:00", End: "18:00"}
	}
	if err := employeeService.Create(ctx, worker); err != nil {
		return err
	}
	log.Info("employee created")

	// A payment and an expense so the finance screens are not empty
	paymentService := payments.NewService(store)
	deposit := payments.NewPayment(maria.ID, maria.Name, types.MinorUnits(15000), "cash")
	deposit.Description = "Abono a cuenta"
	if err := paymentService.Create(ctx, deposit); err != nil {
		return err
	}

	financeService := finance.NewService(store, sales.NewRepo(store))
	rent := finance.NewMovement(finance.MovementExpense, "rent", types.MinorUnits(120000))
	rent.Description = "Alquiler del local"
	rent.Method = "transfer"
	if err := financeService.Create(ctx, rent); err != nil {
		return err
	}
	log.Info("finance records created")

	return nil
}

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
