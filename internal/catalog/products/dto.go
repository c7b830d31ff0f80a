package products

import (
	"fmt"
	"time"

	internalShared "github.com/kasira-pos/kasira-pos/internal/shared"
)

// ProductForm is the decimal-string boundary shape for create/update.
type ProductForm struct {
	Name       string `json:"name" validate:"required"`
	CategoryID string `json:"category_id" validate:"required"`
	SupplierID string `json:"supplier_id" validate:"required"`
	Cost       string `json:"cost" validate:"required"`
	Price      string `json:"price" validate:"required"`
	Stock      string `json:"stock" validate:"required"`
}

// ProductJSON mirrors the stored record back out with decimal strings.
type ProductJSON struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CategoryID string    `json:"category_id"`
	SupplierID string    `json:"supplier_id"`
	Cost       string    `json:"cost"`
	Price      string    `json:"price"`
	Stock      string    `json:"stock"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (f ProductForm) toDomain() (Product, error) {
	cost, err := internalShared.ParseAmount(f.Cost)
	if err != nil {
		return Product{}, fmt.Errorf("cost: %w", err)
	}
	price, err := internalShared.ParseAmount(f.Price)
	if err != nil {
		return Product{}, fmt.Errorf("price: %w", err)
	}
	stock, err := internalShared.ParseAmount(f.Stock)
	if err != nil {
		return Product{}, fmt.Errorf("stock: %w", err)
	}
	return Product{
		Name:       f.Name,
		CategoryID: f.CategoryID,
		SupplierID: f.SupplierID,
		Cost:       cost,
		Price:      price,
		Stock:      stock,
	}, nil
}

func toJSON(p Product) ProductJSON {
	return ProductJSON{
		ID:         p.ID,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		SupplierID: p.SupplierID,
		Cost:       internalShared.FormatAmount(p.Cost),
		Price:      internalShared.FormatAmount(p.Price),
		Stock:      internalShared.FormatAmount(p.Stock),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
