package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product representa un producto vendible del catálogo
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SKU         string             `json:"sku" bson:"sku" binding:"required"`
	Name        string             `json:"name" bson:"name" binding:"required"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Category    string             `json:"category" bson:"category" binding:"required"`
	PriceCents  int64              `json:"price_cents" bson:"price_cents" binding:"required"`
	CostCents   int64              `json:"cost_cents" bson:"cost_cents"`
	Currency    string             `json:"currency" bson:"currency" binding:"required"`
	Stock       int64              `json:"stock" bson:"stock"`
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	IsActive    bool               `json:"is_active" bson:"is_active"`
	IsDeleted   bool               `json:"-" bson:"is_deleted"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// ProductUpdate representa los campos actualizables de un producto
type ProductUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	PriceCents  *int64  `json:"price_cents,omitempty"`
	CostCents   *int64  `json:"cost_cents,omitempty"`
	Currency    *string `json:"currency,omitempty"`
	Stock       *int64  `json:"stock,omitempty"`
	Image       *string `json:"image,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
