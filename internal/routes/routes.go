package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"retail-pos/internal/checkout"
	"retail-pos/internal/config"
	"retail-pos/internal/handlers"
	"retail-pos/internal/inventory"
	"retail-pos/internal/metrics"
	"retail-pos/internal/receipt"
	"retail-pos/internal/refnum"
	"retail-pos/internal/repository"
)

func RegisterRoutes(router *gin.Engine, client *mongo.Client, db *mongo.Database, cfg *config.Config) error {
	productRepo := repository.NewProductRepository(db.Collection("products"))
	categoryRepo := repository.NewCategoryRepository(db.Collection("categories"))
	transactionRepo := repository.NewTransactionRepository(client, db.Collection("transactions"), productRepo)

	// El índice único de reference_number es parte del contrato de
	// unicidad del checkout, no una optimización
	if err := transactionRepo.EnsureIndexes(context.Background()); err != nil {
		return err
	}

	guard := inventory.NewGuard(productRepo)
	orchestrator := checkout.New(guard, transactionRepo, refnum.New())
	assembler := receipt.NewAssembler(cfg.StoreName, cfg.StoreTagline)
	checkoutMetrics := metrics.NewCheckoutMetrics()

	productHandler := handlers.NewProductHandler(productRepo)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo)
	transactionHandler := handlers.NewTransactionHandler(transactionRepo)
	checkoutHandler := handlers.NewCheckoutHandler(orchestrator, assembler, transactionRepo, checkoutMetrics)

	v1 := router.Group("/v1")
	{
		v1.POST("/products", productHandler.CreateProduct)
		v1.GET("/products", productHandler.ListProducts)
		v1.GET("/products/:id", productHandler.GetProduct)
		v1.PATCH("/products/:id", productHandler.UpdateProduct)
		v1.DELETE("/products/:id", productHandler.DeleteProduct)

		v1.POST("/categories", categoryHandler.CreateCategory)
		v1.GET("/categories", categoryHandler.ListCategories)

		v1.GET("/transactions", transactionHandler.ListTransactions)
		v1.GET("/transactions/:reference", transactionHandler.GetTransaction)
	}

	pos := router.Group("/pos")
	{
		pos.POST("/checkout", checkoutHandler.Checkout)
		pos.GET("/receipt/:reference", checkoutHandler.GetReceipt)
	}

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return nil
}
