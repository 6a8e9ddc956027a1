package integration

import (
	"context"
	"testing"
	"time"

	"cocodile/internal/model"
	"cocodile/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewProductRepository(testDB.Pool, logger)

	ctx := context.Background()

	seed := func() {
		CleanupDB(t, testDB.Pool)
		SeedWholesalers(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)
	}

	t.Run("GetAll returns seeded products", func(t *testing.T) {
		seed()

		products, err := repo.GetAll(ctx, repository.ProductFilter{}, 10, 0)
		require.NoError(t, err)
		assert.Len(t, products, 5)
		assert.Equal(t, "P001", products[0].ID)
	})

	t.Run("GetAll with pagination", func(t *testing.T) {
		seed()

		products, err := repo.GetAll(ctx, repository.ProductFilter{}, 2, 0)
		require.NoError(t, err)
		assert.Len(t, products, 2)

		products, err = repo.GetAll(ctx, repository.ProductFilter{}, 2, 2)
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("GetAll filters by wholesaler", func(t *testing.T) {
		seed()

		products, err := repo.GetAll(ctx, repository.ProductFilter{WholesalerID: "W002"}, 10, 0)
		require.NoError(t, err)
		assert.Len(t, products, 2)
		for _, p := range products {
			assert.Equal(t, "W002", p.WholesalerID)
		}
	})

	t.Run("GetAll filters by category", func(t *testing.T) {
		seed()

		products, err := repo.GetAll(ctx, repository.ProductFilter{Category: "Category A"}, 10, 0)
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("GetByID returns correct product", func(t *testing.T) {
		seed()

		product, err := repo.GetByID(ctx, "P001")
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "P001", product.ID)
		assert.Equal(t, "Test Product 1", product.Name)
		assert.Equal(t, 10.00, product.Price)
		assert.Equal(t, 100, product.Stock)
		assert.Equal(t, "W001", product.WholesalerID)
	})

	t.Run("GetByID returns nil for non-existent product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		product, err := repo.GetByID(ctx, "P999")
		require.NoError(t, err)
		assert.Nil(t, product)
	})

	t.Run("GetByIDs returns multiple products", func(t *testing.T) {
		seed()

		products, err := repo.GetByIDs(ctx, []string{"P001", "P003", "P005"})
		require.NoError(t, err)
		assert.Len(t, products, 3)
	})

	t.Run("ValidateProductsExist succeeds for valid products", func(t *testing.T) {
		seed()

		err := repo.ValidateProductsExist(ctx, []string{"P001", "P002"})
		require.NoError(t, err)
	})

	t.Run("ValidateProductsExist fails for invalid products", func(t *testing.T) {
		seed()

		err := repo.ValidateProductsExist(ctx, []string{"P001", "P999"})
		require.Error(t, err)
		assert.Equal(t, model.ErrProductNotFound, err)
	})
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewOrderRepository(testDB.Pool, logger)

	ctx := context.Background()

	seed := func() {
		CleanupDB(t, testDB.Pool)
		SeedWholesalers(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)
	}

	newOrder := func(retailerID string) *model.Order {
		now := time.Now()
		return &model.Order{
			ID:           uuid.New(),
			RetailerID:   retailerID,
			WholesalerID: "W001",
			Total:        40.00,
			Status:       model.OrderStatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	t.Run("CreateOrder and CreateOrderItems", func(t *testing.T) {
		seed()

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		order := newOrder("R001")

		err = repo.CreateOrder(ctx, tx, order)
		require.NoError(t, err)

		items := []model.OrderItem{
			{
				ID:        uuid.New(),
				OrderID:   order.ID,
				ProductID: "P001",
				Quantity:  2,
				Price:     10.00,
				Subtotal:  20.00,
			},
			{
				ID:        uuid.New(),
				OrderID:   order.ID,
				ProductID: "P002",
				Quantity:  1,
				Price:     20.00,
				Subtotal:  20.00,
			},
		}

		err = repo.CreateOrderItems(ctx, tx, items)
		require.NoError(t, err)

		err = tx.Commit(ctx)
		require.NoError(t, err)

		retrievedOrder, retrievedItems, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, retrievedOrder)
		assert.Equal(t, order.ID, retrievedOrder.ID)
		assert.Equal(t, "R001", retrievedOrder.RetailerID)
		assert.Equal(t, "W001", retrievedOrder.WholesalerID)
		assert.Equal(t, model.OrderStatusPending, retrievedOrder.Status)
		require.Len(t, retrievedItems, 2)

		// Price snapshots survive the round trip.
		for _, item := range retrievedItems {
			assert.Equal(t, float64(item.Quantity)*item.Price, item.Subtotal)
		}
	})

	t.Run("GetByID returns nil for non-existent order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		order, items, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, order)
		assert.Nil(t, items)
	})

	t.Run("Transaction rollback", func(t *testing.T) {
		seed()

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		order := newOrder("R001")

		err = repo.CreateOrder(ctx, tx, order)
		require.NoError(t, err)

		err = tx.Rollback(ctx)
		require.NoError(t, err)

		retrievedOrder, _, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Nil(t, retrievedOrder)
	})

	t.Run("ListByRetailer with status filter", func(t *testing.T) {
		seed()

		placeOrder := func(retailerID, status string) {
			tx, err := repo.BeginTx(ctx)
			require.NoError(t, err)

			order := newOrder(retailerID)
			order.Status = status
			require.NoError(t, repo.CreateOrder(ctx, tx, order))
			require.NoError(t, tx.Commit(ctx))
		}

		placeOrder("R001", model.OrderStatusPending)
		placeOrder("R001", model.OrderStatusDelivered)
		placeOrder("R002", model.OrderStatusPending)

		orders, err := repo.ListByRetailer(ctx, "R001", "")
		require.NoError(t, err)
		assert.Len(t, orders, 2)

		orders, err = repo.ListByRetailer(ctx, "R001", model.OrderStatusDelivered)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, model.OrderStatusDelivered, orders[0].Status)

		orders, err = repo.ListByRetailer(ctx, "R003", "")
		require.NoError(t, err)
		assert.Empty(t, orders)
	})
}

func TestInvoiceRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	invoiceRepo := repository.NewInvoiceRepository(testDB.Pool, logger)

	ctx := context.Background()

	createOrderWithInvoice := func(t *testing.T, retailerID, status string, amount float64) {
		t.Helper()

		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)

		now := time.Now()
		order := &model.Order{
			ID:           uuid.New(),
			RetailerID:   retailerID,
			WholesalerID: "W001",
			Total:        amount,
			Status:       model.OrderStatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		require.NoError(t, orderRepo.CreateOrder(ctx, tx, order))

		invoice := &model.Invoice{
			ID:           uuid.New(),
			OrderID:      order.ID,
			RetailerID:   retailerID,
			WholesalerID: "W001",
			Amount:       amount,
			DueAmount:    amount,
			Status:       status,
			IssueDate:    now,
			DueDate:      now.AddDate(0, 0, 30),
		}
		require.NoError(t, invoiceRepo.CreateInvoice(ctx, tx, invoice))
		require.NoError(t, tx.Commit(ctx))
	}

	t.Run("CreateInvoice and ListByRetailer", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedWholesalers(t, testDB.Pool)

		createOrderWithInvoice(t, "R001", model.InvoiceStatusUnpaid, 500.00)
		createOrderWithInvoice(t, "R001", model.InvoiceStatusPaid, 120.00)
		createOrderWithInvoice(t, "R002", model.InvoiceStatusUnpaid, 80.00)

		invoices, err := invoiceRepo.ListByRetailer(ctx, "R001", "")
		require.NoError(t, err)
		assert.Len(t, invoices, 2)

		invoices, err = invoiceRepo.ListByRetailer(ctx, "R001", model.InvoiceStatusUnpaid)
		require.NoError(t, err)
		require.Len(t, invoices, 1)
		assert.Equal(t, 500.00, invoices[0].Amount)
		assert.Equal(t, model.InvoiceStatusUnpaid, invoices[0].Status)
	})

	t.Run("Invoice rolls back with order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedWholesalers(t, testDB.Pool)

		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)

		now := time.Now()
		order := &model.Order{
			ID:           uuid.New(),
			RetailerID:   "R001",
			WholesalerID: "W001",
			Total:        100.00,
			Status:       model.OrderStatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		require.NoError(t, orderRepo.CreateOrder(ctx, tx, order))

		invoice := &model.Invoice{
			ID:           uuid.New(),
			OrderID:      order.ID,
			RetailerID:   "R001",
			WholesalerID: "W001",
			Amount:       100.00,
			DueAmount:    100.00,
			Status:       model.InvoiceStatusUnpaid,
			IssueDate:    now,
			DueDate:      now.AddDate(0, 0, 30),
		}
		require.NoError(t, invoiceRepo.CreateInvoice(ctx, tx, invoice))
		require.NoError(t, tx.Rollback(ctx))

		invoices, err := invoiceRepo.ListByRetailer(ctx, "R001", "")
		require.NoError(t, err)
		assert.Empty(t, invoices)
	})
}

func TestWholesalerRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewWholesalerRepository(testDB.Pool, logger)

	ctx := context.Background()

	CleanupDB(t, testDB.Pool)
	SeedWholesalers(t, testDB.Pool)

	t.Run("GetByID returns wholesaler", func(t *testing.T) {
		w, err := repo.GetByID(ctx, "W001")
		require.NoError(t, err)
		require.NotNil(t, w)
		assert.Equal(t, "Test Wholesaler 1", w.Name)
		assert.Equal(t, "WHOLESALE1", w.Code)
	})

	t.Run("GetByCode returns wholesaler", func(t *testing.T) {
		w, err := repo.GetByCode(ctx, "WHOLESALE2")
		require.NoError(t, err)
		require.NotNil(t, w)
		assert.Equal(t, "W002", w.ID)
	})

	t.Run("GetByID returns nil for unknown wholesaler", func(t *testing.T) {
		w, err := repo.GetByID(ctx, "W999")
		require.NoError(t, err)
		assert.Nil(t, w)
	})
}

func TestCartRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	store := repository.NewCartRepository(testDB.Pool, logger)

	ctx := context.Background()

	line := func(productID string, price float64, quantity int) model.CartLine {
		return model.CartLine{
			Product: model.Product{
				ID:           productID,
				Name:         "Test Product",
				Price:        price,
				Stock:        100,
				WholesalerID: "W001",
			},
			Quantity:       quantity,
			IsInStock:      true,
			AvailableStock: 100,
		}
	}

	t.Run("Save and Load round trip", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		lines := []model.CartLine{
			line("P001", 10.00, 2),
			line("P002", 20.00, 1),
		}

		err := store.Save(ctx, "cart-r001", lines)
		require.NoError(t, err)

		loaded, err := store.Load(ctx, "cart-r001")
		require.NoError(t, err)
		require.Len(t, loaded, 2)
		assert.Equal(t, "P001", loaded[0].Product.ID)
		assert.Equal(t, 2, loaded[0].Quantity)
		assert.Equal(t, 10.00, loaded[0].Product.Price)
		assert.True(t, loaded[0].IsInStock)
	})

	t.Run("Load returns nil for never-saved cart", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		loaded, err := store.Load(ctx, "cart-missing")
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("Save upserts whole record", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		require.NoError(t, store.Save(ctx, "cart-r001", []model.CartLine{
			line("P001", 10.00, 2),
			line("P002", 20.00, 1),
		}))

		// Second save replaces the first entirely: last writer wins.
		require.NoError(t, store.Save(ctx, "cart-r001", []model.CartLine{
			line("P003", 30.00, 5),
		}))

		loaded, err := store.Load(ctx, "cart-r001")
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "P003", loaded[0].Product.ID)
		assert.Equal(t, 5, loaded[0].Quantity)
	})

	t.Run("Carts are isolated by id", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		require.NoError(t, store.Save(ctx, "cart-r001", []model.CartLine{line("P001", 10.00, 1)}))
		require.NoError(t, store.Save(ctx, "cart-r002", []model.CartLine{line("P002", 20.00, 3)}))

		loaded, err := store.Load(ctx, "cart-r001")
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "P001", loaded[0].Product.ID)
	})

	t.Run("Delete removes cart and is idempotent", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		require.NoError(t, store.Save(ctx, "cart-r001", []model.CartLine{line("P001", 10.00, 1)}))
		require.NoError(t, store.Delete(ctx, "cart-r001"))

		loaded, err := store.Load(ctx, "cart-r001")
		require.NoError(t, err)
		assert.Nil(t, loaded)

		require.NoError(t, store.Delete(ctx, "cart-r001"))
	})
}
