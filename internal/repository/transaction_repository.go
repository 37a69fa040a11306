package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"retail-pos/internal/inventory"
	"retail-pos/internal/models"
)

var (
	// ErrDuplicateReference: el índice único rechazó el número de
	// referencia; el checkout genera uno nuevo y reintenta.
	ErrDuplicateReference = errors.New("duplicate reference number")
	// ErrTransactionNotFound: referencia inexistente.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// TransactionRepository persiste ventas. La inserción de la venta y
// los descuentos de stock de sus líneas ocurren dentro de una misma
// sesión transaccional de Mongo: o se confirma todo o nada.
type TransactionRepository struct {
	client       *mongo.Client
	transactions *mongo.Collection
	products     *ProductRepository
}

func NewTransactionRepository(client *mongo.Client, transactions *mongo.Collection, products *ProductRepository) *TransactionRepository {
	return &TransactionRepository{
		client:       client,
		transactions: transactions,
		products:     products,
	}
}

// EnsureIndexes crea el índice único de reference_number. Sin él la
// unicidad de las referencias sería solo probabilística.
func (r *TransactionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.transactions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "reference_number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// InsertAtomic descuenta el stock de cada línea y persiste la venta en
// una sola transacción de sesión. Un descuento sin stock suficiente
// aborta todo con InsufficientStockError; una referencia repetida
// aborta con ErrDuplicateReference. En ambos casos no queda nada
// escrito.
func (r *TransactionRepository) InsertAtomic(ctx context.Context, tx *models.Transaction, decrements []inventory.Line) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, dec := range decrements {
			// el SessionContext une cada update a la transacción
			if err := r.products.DecrementStock(sc, dec.ProductID, dec.Quantity); err != nil {
				return nil, err
			}
		}

		tx.ID = primitive.NewObjectID()
		if _, err := r.transactions.InsertOne(sc, tx); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, ErrDuplicateReference
			}
			return nil, err
		}
		return nil, nil
	})
	return err
}

// FindAll lista ventas, las más recientes primero
func (r *TransactionRepository) FindAll(ctx context.Context, page, pageSize int) ([]*models.Transaction, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	total, err := r.transactions.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "completed_at", Value: -1}})
	if page > 0 && pageSize > 0 {
		findOptions.SetSkip(int64((page - 1) * pageSize))
		findOptions.SetLimit(int64(pageSize))
	} else {
		findOptions.SetLimit(100)
	}

	cursor, err := r.transactions.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var transactions []*models.Transaction
	if err = cursor.All(ctx, &transactions); err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// FindByReference busca una venta por su número de referencia
func (r *TransactionRepository) FindByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var tx models.Transaction
	err := r.transactions.FindOne(ctx, bson.M{"reference_number": reference}).Decode(&tx)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}
