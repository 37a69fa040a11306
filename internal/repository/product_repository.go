package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"retail-pos/internal/inventory"
	"retail-pos/internal/models"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(collection *mongo.Collection) *ProductRepository {
	return &ProductRepository{
		collection: collection,
	}
}

// Create crea un nuevo producto
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	product.IsDeleted = false
	if product.Stock < 0 {
		product.Stock = 0
	}

	_, err := r.collection.InsertOne(ctx, product)
	return err
}

// FindByID obtiene un producto por ID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, inventory.ErrProductNotFound
	}

	var product models.Product
	filter := bson.M{
		"_id":        objID,
		"is_deleted": false,
	}

	err = r.collection.FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, inventory.ErrProductNotFound
		}
		return nil, err
	}

	return &product, nil
}

// FindAll lista productos con paginación y filtros
func (r *ProductRepository) FindAll(ctx context.Context, page, pageSize int, category, sortBy, sortOrder string, summary bool) ([]*models.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Construir filtro
	filter := bson.M{"is_deleted": false}

	if category != "" {
		filter["category"] = category
	}

	// Contar total en paralelo
	totalCh := make(chan int64, 1)
	errCh := make(chan error, 1)

	go func() {
		total, err := r.collection.CountDocuments(ctx, filter)
		if err != nil {
			errCh <- err
			return
		}
		totalCh <- total
	}()

	// Opciones de búsqueda
	findOptions := options.Find()

	// Projection para la grilla del POS
	if summary {
		findOptions.SetProjection(bson.M{
			"sku":         1,
			"name":        1,
			"category":    1,
			"price_cents": 1,
			"currency":    1,
			"stock":       1,
			"image":       1,
			"is_active":   1,
			"created_at":  1,
		})
	}

	// Paginación
	if page > 0 && pageSize > 0 {
		skip := (page - 1) * pageSize
		findOptions.SetSkip(int64(skip))
		findOptions.SetLimit(int64(pageSize))
	} else {
		findOptions.SetLimit(100)
	}

	// Ordenamiento
	sortField := "created_at"
	sortOrderInt := -1

	if sortBy != "" {
		sortField = sortBy
	}
	if sortOrder == "asc" {
		sortOrderInt = 1
	}

	findOptions.SetSort(bson.D{{Key: sortField, Value: sortOrderInt}})

	// Ejecutar query
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var products []*models.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	// Esperar el conteo
	var total int64
	select {
	case total = <-totalCh:
	case err := <-errCh:
		return products, 0, err
	case <-ctx.Done():
		return products, 0, ctx.Err()
	}

	return products, total, nil
}

// Update actualiza un producto
func (r *ProductRepository) Update(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return inventory.ErrProductNotFound
	}

	// Agregar updated_at automáticamente
	update["updated_at"] = time.Now()

	filter := bson.M{
		"_id":        objID,
		"is_deleted": false,
	}

	result, err := r.collection.UpdateOne(
		ctx,
		filter,
		bson.M{"$set": update},
	)

	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return inventory.ErrProductNotFound
	}

	return nil
}

// DecrementStock descuenta stock con compare-and-swap: solo matchea si
// el stock alcanza, así el contador nunca queda negativo.
func (r *ProductRepository) DecrementStock(ctx context.Context, id string, quantity int64) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return inventory.ErrProductNotFound
	}

	filter := bson.M{
		"_id":        objID,
		"is_deleted": false,
		"stock":      bson.M{"$gte": quantity},
	}
	update := bson.M{
		"$inc": bson.M{"stock": -quantity},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return r.insufficientOrMissing(ctx, objID, quantity)
	}
	return nil
}

// insufficientOrMissing distingue producto inexistente de stock
// insuficiente y arma el error de negocio con el disponible real.
func (r *ProductRepository) insufficientOrMissing(ctx context.Context, objID primitive.ObjectID, requested int64) error {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": objID, "is_deleted": false}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return inventory.ErrProductNotFound
		}
		return err
	}
	return &inventory.InsufficientStockError{
		ProductID: objID.Hex(),
		Name:      product.Name,
		Available: product.Stock,
		Requested: requested,
	}
}

// SoftDelete marca un producto como eliminado. Nunca se borra en duro:
// las ventas históricas referencian el documento.
func (r *ProductRepository) SoftDelete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return inventory.ErrProductNotFound
	}

	filter := bson.M{
		"_id":        objID,
		"is_deleted": false,
	}

	update := bson.M{
		"$set": bson.M{
			"is_deleted": true,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return inventory.ErrProductNotFound
	}

	return nil
}
